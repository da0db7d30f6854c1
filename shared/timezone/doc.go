// Package timezone keeps the application location used to stamp todo records.
//
// Call Init once at startup with the loaded configuration:
//
//	timezone.Init(cfg)
//	now := timezone.Now()
//
// The location is configured via the APP_TIMEZONE environment variable using IANA names
// such as "UTC" or "Europe/London". Before Init, or when the name cannot be loaded, UTC is used.
package timezone
