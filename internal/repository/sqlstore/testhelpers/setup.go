package testhelpers

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/findbus/internal/config"
	"github.com/findbus/internal/repository/sqlstore"
)

const busTableDDL = `
CREATE TABLE busdetails (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	route_name      TEXT NOT NULL,
	route_link      TEXT,
	busname         TEXT NOT NULL,
	bustype         TEXT NOT NULL,
	departing_time  TEXT NOT NULL,
	duration        TEXT NOT NULL,
	reaching_time   TEXT NOT NULL,
	star_rating     REAL,
	price           REAL NOT NULL,
	seats_available INTEGER NOT NULL
)`

// TestDB is a bus database for tests: a temp SQLite file by default, or a
// MySQL/PostgreSQL server from SetupServerDB.
type TestDB struct {
	DB       *sqlx.DB
	Provider *sqlstore.Provider
	Dialect  sqlstore.Dialect
	Config   config.DatabaseConfig
	Logger   *zap.Logger

	ddl string
}

// BusRow is a busdetails fixture row. Times are 'HH:MM:SS', Duration is 'H:MM:SS'.
type BusRow struct {
	RouteName string
	RouteLink *string
	BusName   string
	BusType   string
	Departing string
	Duration  string
	Reaching  string
	Rating    float64
	// Unrated stores NULL in star_rating; Rating is ignored.
	Unrated   bool
	Price     float64
	Seats     int
}

// SetupTestDB creates an empty busdetails table in a temp SQLite file.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	tdb := SetupEmptyDB(t)
	tdb.CreateBusTable(t)
	return tdb
}

// CreateBusTable creates the busdetails table.
func (tdb *TestDB) CreateBusTable(t *testing.T) {
	t.Helper()
	ddl := tdb.ddl
	if ddl == "" {
		ddl = busTableDDL
	}
	if _, err := tdb.DB.Exec(ddl); err != nil {
		t.Fatalf("Failed to create busdetails: %v", err)
	}
}

// SetupEmptyDB creates a SQLite file without any tables.
func SetupEmptyDB(t *testing.T) *TestDB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver:   config.DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "redbus.db"),
		MaxConns: 4,
	}

	db, err := sqlx.Connect("sqlite", cfg.Path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	logger := zap.NewNop()
	provider, err := sqlstore.NewProvider(&cfg, logger)
	if err != nil {
		t.Fatalf("Failed to create provider: %v", err)
	}

	tdb := &TestDB{DB: db, Provider: provider, Dialect: sqlstore.SQLite, Config: cfg, Logger: logger}
	t.Cleanup(tdb.Close)
	return tdb
}

// InsertBuses seeds rows into busdetails.
func (tdb *TestDB) InsertBuses(t *testing.T, rows ...BusRow) {
	t.Helper()
	const q = `INSERT INTO busdetails
		(route_name, route_link, busname, bustype, departing_time, duration, reaching_time, star_rating, price, seats_available)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for _, r := range rows {
		var rating interface{} = r.Rating
		if r.Unrated {
			rating = nil
		}
		if _, err := tdb.DB.Exec(tdb.Dialect.Rebind(q), r.RouteName, r.RouteLink, r.BusName, r.BusType,
			r.Departing, r.Duration, r.Reaching, rating, r.Price, r.Seats); err != nil {
			t.Fatalf("Failed to insert bus %q: %v", r.BusName, err)
		}
	}
}

// Close closes the provider and the seeding connection.
func (tdb *TestDB) Close() {
	if tdb.Provider != nil {
		_ = tdb.Provider.Close()
	}
	if tdb.DB != nil {
		_ = tdb.DB.Close()
	}
}

// DefaultBuses is a small fixture spanning two routes and three bus types.
func DefaultBuses() []BusRow {
	link := "https://www.redbus.in/bus-tickets/chennai-to-bangalore"
	return []BusRow{
		{RouteName: "Chennai to Bangalore", RouteLink: &link, BusName: "KPN Travels", BusType: "A/C Sleeper (2+1)",
			Departing: "21:30:00", Duration: "6:30:00", Reaching: "04:00:00", Rating: 4.2, Price: 900, Seats: 12},
		{RouteName: "Chennai to Bangalore", RouteLink: &link, BusName: "SRS Travels", BusType: "Non A/C Seater (2+2)",
			Departing: "07:15:00", Duration: "5:45:00", Reaching: "13:00:00", Rating: 3.1, Price: 500, Seats: 30},
		{RouteName: "Kochi to Kottayam", BusName: "O'Brien Express", BusType: "O'Brien Travels",
			Departing: "09:05:00", Duration: "2:10:00", Reaching: "11:15:00", Rating: 4.8, Price: 100, Seats: 4},
		{RouteName: "Hyderabad to Vijayawada", BusName: "Orange Tours", BusType: "A/C Sleeper (2+1)",
			Departing: "22:00:00", Duration: "12:30:00", Reaching: "10:30:00", Rating: 2.5, Price: 1500, Seats: 0},
	}
}

// UnratedBus is a row with a NULL star_rating on a route of its own.
func UnratedBus() BusRow {
	return BusRow{RouteName: "Madurai to Trichy", BusName: "Parveen Travels", BusType: "Non A/C Seater (2+2)",
		Departing: "06:00:00", Duration: "3:00:00", Reaching: "09:00:00", Unrated: true, Price: 300, Seats: 20}
}
