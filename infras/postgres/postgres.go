package postgres

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"time"
	"todoapp/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
)

var ErrConnectionFailed = errors.New("failed connecting to database")

// Connection is the shared store handle. Handlers use it concurrently without client-side
// locking; sqlx.DB is safe for concurrent use and pools its connections.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// New opens the read and write pools. The returned cleanup closes both.
func New(config *config.Config) (*Connection, func(), error) {
	write, err := CreatePostgresWriteConn(*config)
	if err != nil {
		return nil, nil, err
	}

	read, err := CreatePostgresReadConn(*config)
	if err != nil {
		_ = write.Close()

		return nil, nil, err
	}

	conn := &Connection{
		Read:  read,
		Write: write,
	}

	return conn, conn.Close, nil
}

// Close releases both pools.
func (c *Connection) Close() {
	for name, db := range map[string]*sqlx.DB{"read": c.Read, "write": c.Write} {
		if db == nil {
			continue
		}

		if err := db.Close(); err != nil {
			log.Error().Err(err).Str("name", name).Msg("Failed closing database connection")

			continue
		}

		log.Info().Str("name", name).Msg("Database connection closed")
	}
}

// getDBName returns the database name with prefix if configured
func getDBName(config config.Config, baseName string) string {
	if config.DB.Postgres.Prefix != "" {
		return config.DB.Postgres.Prefix + baseName
	}

	return baseName
}

// WriteDescriptor is the connection URL of the write database, which also owns migrations.
func WriteDescriptor(config config.Config) string {
	write := config.DB.Postgres.Write

	return Descriptor(write.Username, write.Password, write.Host, write.Port, getDBName(config, write.Name), write.SSLMode)
}

// CreatePostgresWriteConn creates a database connection for write access.
func CreatePostgresWriteConn(config config.Config) (*sqlx.DB, error) {
	return CreatePostgresConnection(
		"write",
		WriteDescriptor(config),
		config.DB.Postgres.MaxRetry,
		config.DB.Postgres.RetryWaitTime,
	)
}

// CreatePostgresReadConn creates a database connection for read access.
func CreatePostgresReadConn(config config.Config) (*sqlx.DB, error) {
	read := config.DB.Postgres.Read

	return CreatePostgresConnection(
		"read",
		Descriptor(read.Username, read.Password, read.Host, read.Port, getDBName(config, read.Name), read.SSLMode),
		config.DB.Postgres.MaxRetry,
		config.DB.Postgres.RetryWaitTime,
	)
}

// Descriptor builds a postgres connection URL.
func Descriptor(username, password, host, port, dbName, sslMode string) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		username,
		password,
		net.JoinHostPort(host, port),
		dbName,
		sslMode,
	)
}

// CreatePostgresConnection connects, retrying maxRetry times with waitTime seconds in between.
func CreatePostgresConnection(name, descriptor string, maxRetry, waitTime int) (*sqlx.DB, error) {
	var lastErr error

	for retry := range max(maxRetry, 1) {
		sqlDB, err := sqlx.Connect("postgres", descriptor)
		if err == nil {
			log.
				Info().
				Str("name", name).
				Msg("Connected to database")
			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)

			return sqlDB, nil
		}

		lastErr = err

		log.
			Error().
			Err(err).
			Str("name", name).
			Int("attempt", retry+1).
			Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	return nil, fmt.Errorf("%w (%s): %w", ErrConnectionFailed, name, lastErr)
}
