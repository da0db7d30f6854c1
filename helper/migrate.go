package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"
	"todoapp/config"
	"todoapp/infras/postgres"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	ActionUp     = "up"
	ActionDown   = "down"
	ActionStepUp = "step-up"
	ActionDrop   = "drop"

	migrationSource = "file://migrations/postgres"
)

var ErrUnknownAction = errors.New("unknown migration action")

// ConnectionString is the write database URL with the migrations table set.
func ConnectionString(config *config.Config) (string, error) {
	descriptor, err := url.Parse(postgres.WriteDescriptor(*config))
	if err != nil {
		return "", fmt.Errorf("error parsing database descriptor: %w", err)
	}

	query := descriptor.Query()
	query.Set("x-migrations-table", config.DB.Postgres.MigrationTable)
	descriptor.RawQuery = query.Encode()

	return descriptor.String(), nil
}

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	connectionString, err := ConnectionString(config)
	if err != nil {
		return nil, err
	}

	mig, err := migrate.New(migrationSource, connectionString)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func Runner(config *config.Config, action string) error {
	run, ok := map[string]func(*migrate.Migrate) error{
		ActionUp:     func(mig *migrate.Migrate) error { return mig.Up() },
		ActionDown:   func(mig *migrate.Migrate) error { return mig.Steps(-1) },
		ActionStepUp: func(mig *migrate.Migrate) error { return mig.Steps(1) },
		ActionDrop:   func(mig *migrate.Migrate) error { return mig.Down() },
	}[action]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	mig, err := getConnection(config)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err := run(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migrations: %w", action, err)
	}

	log.Info().Str("action", action).Msg("Database migrations completed successfully")

	return nil
}
