package timezone_test

import (
	"testing"
	"time"
	_ "time/tzdata"
	"todoapp/config"
	"todoapp/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() {
		timezone.Init(&config.Config{})
	})

	tests := []struct {
		name     string
		timezone string
		expected string
	}{
		{name: "empty falls back to UTC", timezone: "", expected: "UTC"},
		{name: "unknown falls back to UTC", timezone: "Mars/Olympus_Mons", expected: "UTC"},
		{name: "standard name", timezone: "Europe/London", expected: "Europe/London"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.App.Timezone = tt.timezone

			timezone.Init(cfg)

			assert.Equal(t, tt.expected, timezone.GetLocation().String())
			assert.Equal(t, tt.expected, timezone.Now().Location().String())
		})
	}
}

func TestFormat(t *testing.T) {
	timezone.Init(&config.Config{})

	testTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.FixedZone("UTC+2", 2*60*60))

	assert.Equal(t, "2024-01-01T10:00:00Z", timezone.Format(testTime, time.RFC3339))
	assert.Equal(t, time.UTC, timezone.ToAppTime(testTime).Location())
}
