package testhelpers

import (
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/findbus/internal/config"
	"github.com/findbus/internal/repository/sqlstore"
)

const mysqlBusTableDDL = `
CREATE TABLE busdetails (
	id              INT AUTO_INCREMENT PRIMARY KEY,
	route_name      VARCHAR(255) NOT NULL,
	route_link      VARCHAR(512),
	busname         VARCHAR(255) NOT NULL,
	bustype         VARCHAR(255) NOT NULL,
	departing_time  TIME NOT NULL,
	duration        TIME NOT NULL,
	reaching_time   TIME NOT NULL,
	star_rating     DOUBLE,
	price           DOUBLE NOT NULL,
	seats_available INT NOT NULL
)`

const postgresBusTableDDL = `
CREATE TABLE busdetails (
	id              SERIAL PRIMARY KEY,
	route_name      TEXT NOT NULL,
	route_link      TEXT,
	busname         TEXT NOT NULL,
	bustype         TEXT NOT NULL,
	departing_time  TIME NOT NULL,
	duration        INTERVAL NOT NULL,
	reaching_time   TIME NOT NULL,
	star_rating     DOUBLE PRECISION,
	price           DOUBLE PRECISION NOT NULL,
	seats_available INTEGER NOT NULL
)`

// SetupServerDB connects to the MySQL or PostgreSQL server named by
// TEST_DB_DRIVER and creates a fresh busdetails table. The test is skipped
// when TEST_DB_DRIVER is not set. The table is dropped on cleanup, so the
// target database must be disposable.
func SetupServerDB(t *testing.T) *TestDB {
	t.Helper()

	driver := os.Getenv("TEST_DB_DRIVER")
	if driver == "" {
		t.Skip("TEST_DB_DRIVER not set, skipping server database tests")
	}

	cfg := config.DatabaseConfig{
		Driver:         driver,
		Host:           getEnv("TEST_DB_HOST", "localhost"),
		Port:           getEnvInt(t, "TEST_DB_PORT", defaultPort(driver)),
		User:           getEnv("TEST_DB_USER", defaultUser(driver)),
		Password:       getEnv("TEST_DB_PASSWORD", ""),
		DBName:         getEnv("TEST_DB_NAME", "redbus_test"),
		SSLMode:        getEnv("TEST_DB_SSLMODE", "disable"),
		MaxConns:       4,
		ConnectTimeout: 5 * time.Second,
	}

	dialect, err := sqlstore.DialectFor(driver)
	if err != nil {
		t.Fatalf("Unsupported TEST_DB_DRIVER: %v", err)
	}
	ddl := mysqlBusTableDDL
	if driver == config.DriverPostgres {
		ddl = postgresBusTableDDL
	}

	// Сервер в CI может подниматься дольше теста
	var db *sqlx.DB
	retryDelay := 500 * time.Millisecond
	const maxRetries = 5
	for i := 0; i < maxRetries; i++ {
		db, err = sqlx.Connect(dialect.DriverName, cfg.DSN())
		if err == nil {
			break
		}
		if i < maxRetries-1 {
			t.Logf("Database not ready (attempt %d/%d), waiting %v...", i+1, maxRetries, retryDelay)
			time.Sleep(retryDelay)
			retryDelay *= 2
		}
	}
	if err != nil {
		t.Fatalf("Failed to connect to test database after %d attempts: %v", maxRetries, err)
	}

	if _, err := db.Exec("DROP TABLE IF EXISTS busdetails"); err != nil {
		_ = db.Close()
		t.Fatalf("Failed to drop busdetails: %v", err)
	}

	logger := zap.NewNop()
	provider, err := sqlstore.NewProvider(&cfg, logger)
	if err != nil {
		_ = db.Close()
		t.Fatalf("Failed to create provider: %v", err)
	}

	tdb := &TestDB{DB: db, Provider: provider, Dialect: dialect, Config: cfg, Logger: logger, ddl: ddl}
	t.Cleanup(func() {
		_, _ = tdb.DB.Exec("DROP TABLE IF EXISTS busdetails")
		tdb.Close()
	})
	tdb.CreateBusTable(t)
	return tdb
}

func defaultUser(driver string) string {
	if driver == config.DriverPostgres {
		return "postgres"
	}
	return "root"
}

func defaultPort(driver string) int {
	if driver == config.DriverPostgres {
		return 5432
	}
	return 3306
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(t *testing.T, key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		t.Fatalf("Invalid %s: %v", key, err)
	}
	return v
}
