package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/XSAM/otelsql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"ledger/internal/config"
)

const (
	// applicationName tags ledger sessions in pg_stat_activity.
	applicationName = "ledger"

	defaultDriver = "pgx"
)

var sqlOpen = sql.Open

// pingTimeout bounds the startup ping and is sent as connect_timeout.
var pingTimeout = 5 * time.Second

// supportedDrivers lists the database/sql driver names that accept a postgres:// DSN.
var supportedDrivers = map[string]bool{
	"pgx":      true, // jackc/pgx/v5/stdlib
	"postgres": true, // lib/pq
}

// driverName returns the configured driver, defaulting to pgx.
func driverName(c config.DatabaseConfig) (string, error) {
	if c.Driver == "" {
		return defaultDriver, nil
	}
	if !supportedDrivers[c.Driver] {
		return "", fmt.Errorf("unsupported database driver %q", c.Driver)
	}
	return c.Driver, nil
}

// DSN builds the URL form understood by both pgx and lib/pq, e.g.
// postgres://ledger:secret@db:5432/users?application_name=ledger&connect_timeout=5&sslmode=disable
func DSN(c config.DatabaseConfig) (string, error) {
	if c.Host == "" || c.Port == "" || c.User == "" || c.Name == "" {
		return "", fmt.Errorf("invalid database config: host, port, user, and name are required")
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   c.Host + ":" + c.Port,
		Path:   c.Name,
		User:   url.User(c.User),
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	}

	q := url.Values{}
	q.Set("application_name", applicationName)
	if secs := int(pingTimeout / time.Second); secs > 0 {
		q.Set("connect_timeout", strconv.Itoa(secs))
	}
	if c.SSLMode != "" {
		q.Set("sslmode", c.SSLMode)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Connect opens the users database through an otelsql-wrapped driver, sizes the pool
// and pings it once. The returned handle is ready for the user repository.
func Connect(ctx context.Context, c config.DatabaseConfig, log logrus.FieldLogger) (*sql.DB, error) {
	dsn, err := DSN(c)
	if err != nil {
		return nil, err
	}
	base, err := driverName(c)
	if err != nil {
		return nil, err
	}

	wrapped, err := otelsql.Register(base,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL, semconv.DBName(c.Name)),
		otelsql.WithSQLCommenter(true),
	)
	if err != nil {
		return nil, fmt.Errorf("register otelsql for %s: %w", base, err)
	}

	db, err := sqlOpen(wrapped, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	sizePool(db, c)

	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	log.WithFields(logrus.Fields{
		"driver":   base,
		"host":     c.Host,
		"database": c.Name,
	}).Info("database_connected")
	return db, nil
}

// sizePool applies the pool limits that are set; zero keeps the database/sql default.
func sizePool(db *sql.DB, c config.DatabaseConfig) {
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeSec) * time.Second)
	}
}
