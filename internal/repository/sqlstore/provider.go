package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/findbus/internal/config"
	"github.com/findbus/internal/domain"
	"github.com/findbus/internal/pkg/errors"
)

const defaultConnectTimeout = 5 * time.Second

// Provider - ленивое подключение к базе автобусов, один пул на всех.
// Неудачное открытие не запоминается, следующий вызов пробует снова;
// одновременные первые вызовы делят одну попытку
type Provider struct {
	cfg     config.DatabaseConfig
	dialect Dialect
	logger  *zap.Logger

	mu      sync.Mutex
	db      *sqlx.DB
	opening singleflight.Group
}

func NewProvider(cfg *config.DatabaseConfig, logger *zap.Logger) (*Provider, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{
		cfg:     *cfg,
		dialect: dialect,
		logger:  logger,
	}, nil
}

func (p *Provider) Dialect() Dialect {
	return p.dialect
}

// Get - запомненный пул; при первом вызове открывает и проверяет схему.
// Ошибки: errors.ErrDatabaseConnection или errors.ErrSchemaMismatch
func (p *Provider) Get(ctx context.Context) (*sqlx.DB, error) {
	if db := p.current(); db != nil {
		return db, nil
	}

	// Попытка переживает отдельного вызывающего, её ограничивает ConnectTimeout
	attemptCtx := context.WithoutCancel(ctx)
	v, err, shared := p.opening.Do("open", func() (interface{}, error) {
		if db := p.current(); db != nil {
			return db, nil
		}
		db, err := p.open(attemptCtx)
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		p.db = db
		p.mu.Unlock()
		return db, nil
	})
	if err != nil {
		if shared {
			p.logger.Debug("Joined a failed connection attempt", zap.Error(err))
		}
		return nil, err
	}
	return v.(*sqlx.DB), nil
}

func (p *Provider) current() *sqlx.DB {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.db
}

func (p *Provider) open(ctx context.Context) (*sqlx.DB, error) {
	db, err := sqlx.Open(p.dialect.DriverName, p.cfg.DSN())
	if err != nil {
		p.logger.Error("Failed to open database", zap.String("driver", p.dialect.Name), zap.Error(err))
		return nil, errors.Wrap(errors.ErrDatabaseConnection, err)
	}

	if p.cfg.MaxConns > 0 {
		db.SetMaxOpenConns(p.cfg.MaxConns)
	}
	if p.cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(p.cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(p.cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(p.cfg.ConnMaxIdleTime)

	timeout := p.cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		p.logger.Error("Failed to ping database", zap.String("driver", p.dialect.Name), zap.Error(err))
		return nil, errors.Wrap(errors.ErrDatabaseConnection, err)
	}

	if err := validateSchema(pingCtx, db); err != nil {
		_ = db.Close()
		p.logger.Error("Schema validation failed", zap.Error(err))
		return nil, err
	}

	p.logger.Info("Database connected",
		zap.String("driver", p.dialect.Name),
		zap.String("host", p.cfg.Host),
		zap.String("database", p.cfg.DBName),
	)
	return db, nil
}

// validateSchema - в busdetails есть все колонки, которые читает дашборд
func validateSchema(ctx context.Context, db *sqlx.DB) error {
	rows, err := db.QueryContext(ctx, "SELECT * FROM "+domain.BusTable+" WHERE 1 = 0")
	if err != nil {
		return errors.Wrap(errors.ErrSchemaMismatch, fmt.Errorf("table %s is not readable: %w", domain.BusTable, err))
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return errors.Wrap(errors.ErrSchemaMismatch, err)
	}
	have := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		have[strings.ToLower(c)] = struct{}{}
	}

	var missing []string
	for _, c := range domain.RequiredColumns {
		if _, ok := have[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return errors.Wrap(errors.ErrSchemaMismatch,
			fmt.Errorf("table %s is missing columns: %s", domain.BusTable, strings.Join(missing, ", ")))
	}
	return nil
}

// Health - ping базы, при необходимости с подключением
func (p *Provider) Health(ctx context.Context) error {
	db, err := p.Get(ctx)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		return errors.Wrap(errors.ErrDatabaseConnection, err)
	}
	return nil
}

// ServerVersion - строка версии сервера БД
func (p *Provider) ServerVersion(ctx context.Context) (string, error) {
	db, err := p.Get(ctx)
	if err != nil {
		return "", err
	}
	var version string
	if err := db.GetContext(ctx, &version, p.dialect.versionQuery); err != nil {
		return "", errors.Wrap(errors.ErrQueryFailed, err)
	}
	return version, nil
}

// Close - закрытие пула; после него Get можно вызывать снова
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.db == nil {
		return nil
	}
	p.logger.Info("Closing database connection")
	err := p.db.Close()
	p.db = nil
	return err
}
