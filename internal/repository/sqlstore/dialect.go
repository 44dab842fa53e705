package sqlstore

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/findbus/internal/config"

	// Драйверы всех поддерживаемых диалектов
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect - SQL-фрагменты, зависящие от СУБД
type Dialect struct {
	Name       string
	DriverName string
	BindType   int
	// ArrayParams: список биндится одним параметром-массивом
	ArrayParams bool

	durationSeconds func(col string) string
	clockHHMM       func(col string) string
	versionQuery    string
}

// DurationSeconds - выражение, приводящее хранимую длительность к секундам
func (d Dialect) DurationSeconds(col string) string {
	return d.durationSeconds(col)
}

// ClockHHMM - выражение, форматирующее время суток как HH:MM
func (d Dialect) ClockHHMM(col string) string {
	return d.clockHHMM(col)
}

// Rebind - перевод плейсхолдеров '?' в стиль диалекта
func (d Dialect) Rebind(query string) string {
	return sqlx.Rebind(d.BindType, query)
}

var (
	// MySQL: duration хранится как TIME
	MySQL = Dialect{
		Name:       config.DriverMySQL,
		DriverName: "mysql",
		BindType:   sqlx.QUESTION,
		durationSeconds: func(col string) string {
			return fmt.Sprintf("TIME_TO_SEC(%s)", col)
		},
		clockHHMM: func(col string) string {
			return fmt.Sprintf("DATE_FORMAT(%s, '%%H:%%i')", col)
		},
		versionQuery: "SELECT VERSION()",
	}

	// Postgres: duration хранится как INTERVAL
	Postgres = Dialect{
		Name:        config.DriverPostgres,
		DriverName:  "pgx",
		BindType:    sqlx.DOLLAR,
		ArrayParams: true,
		durationSeconds: func(col string) string {
			return fmt.Sprintf("CAST(EXTRACT(EPOCH FROM %s) AS BIGINT)", col)
		},
		clockHHMM: func(col string) string {
			return fmt.Sprintf("to_char(%s, 'HH24:MI')", col)
		},
		versionQuery: "SELECT version()",
	}

	// SQLite: duration - текст 'H:MM:SS', часов может быть больше 24
	SQLite = Dialect{
		Name:       config.DriverSQLite,
		DriverName: "sqlite",
		BindType:   sqlx.QUESTION,
		durationSeconds: func(col string) string {
			return fmt.Sprintf(
				"(CAST(substr(%[1]s, 1, instr(%[1]s, ':') - 1) AS INTEGER) * 3600"+
					" + CAST(substr(%[1]s, instr(%[1]s, ':') + 1, 2) AS INTEGER) * 60"+
					" + CAST(substr(%[1]s, instr(%[1]s, ':') + 4, 2) AS INTEGER))",
				col,
			)
		},
		clockHHMM: func(col string) string {
			return fmt.Sprintf("strftime('%%H:%%M', %s)", col)
		},
		versionQuery: "SELECT sqlite_version()",
	}
)

// DialectFor - диалект по имени драйвера из конфига
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case config.DriverMySQL:
		return MySQL, nil
	case config.DriverPostgres:
		return Postgres, nil
	case config.DriverSQLite:
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported driver %q", driver)
	}
}
