package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/findbus/internal/domain"
	"github.com/findbus/internal/domain/repository"
	"github.com/findbus/internal/pkg/errors"
)

// Колонки, которые можно подставлять как идентификаторы в справочные запросы
var (
	distinctColumns = map[string]struct{}{
		domain.ColRouteName: {},
		domain.ColBusType:   {},
	}
	rangeColumns = map[string]struct{}{
		domain.ColPrice:          {},
		domain.ColStarRating:     {},
		domain.ColSeatsAvailable: {},
	}
)

type busRepository struct {
	provider *Provider
	logger   *zap.Logger
}

// NewBusRepository - репозиторий busdetails поверх Provider
func NewBusRepository(provider *Provider) repository.BusRepository {
	return &busRepository{
		provider: provider,
		logger:   provider.logger,
	}
}

func (r *busRepository) DistinctValues(ctx context.Context, column string) ([]string, error) {
	if _, ok := distinctColumns[column]; !ok {
		return nil, errors.ErrInvalidColumn.WithDetails(map[string]interface{}{"column": column})
	}

	db, err := r.provider.Get(ctx)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		"SELECT DISTINCT %[1]s FROM %[2]s WHERE %[1]s IS NOT NULL ORDER BY %[1]s",
		column, domain.BusTable,
	)
	values := []string{}
	if err := db.SelectContext(ctx, &values, query); err != nil {
		r.logger.Error("Failed to fetch distinct values", zap.String("column", column), zap.Error(err))
		return nil, errors.Wrap(errors.ErrQueryFailed, err)
	}
	return values, nil
}

func (r *busRepository) MinMax(ctx context.Context, column string) (domain.Bounds, error) {
	if _, ok := rangeColumns[column]; !ok {
		return domain.Bounds{}, errors.ErrInvalidColumn.WithDetails(map[string]interface{}{"column": column})
	}

	db, err := r.provider.Get(ctx)
	if err != nil {
		return domain.Bounds{}, err
	}

	query := fmt.Sprintf("SELECT MIN(%[1]s), MAX(%[1]s) FROM %[2]s", column, domain.BusTable)
	var lo, hi sql.NullFloat64
	if err := db.QueryRowContext(ctx, query).Scan(&lo, &hi); err != nil {
		r.logger.Error("Failed to fetch min/max", zap.String("column", column), zap.Error(err))
		return domain.Bounds{}, errors.Wrap(errors.ErrQueryFailed, err)
	}
	if !lo.Valid || !hi.Valid {
		return domain.Bounds{}, nil
	}
	return domain.Bounds{Min: lo.Float64, Max: hi.Float64, Valid: true}, nil
}

func (r *busRepository) Search(ctx context.Context, criteria domain.FilterCriteria) ([]domain.BusRecord, error) {
	db, err := r.provider.Get(ctx)
	if err != nil {
		return nil, err
	}

	query, args, err := BuildFilterQuery(r.provider.Dialect(), criteria)
	if err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"reason": err.Error()})
	}

	buses := []domain.BusRecord{}
	if err := db.SelectContext(ctx, &buses, query, args...); err != nil {
		r.logger.Error("Failed to search buses", zap.Error(err))
		return nil, errors.Wrap(errors.ErrQueryFailed, err)
	}

	r.logger.Debug("Bus search finished", zap.Int("rows", len(buses)))
	return buses, nil
}

func (r *busRepository) Health(ctx context.Context) error {
	return r.provider.Health(ctx)
}
