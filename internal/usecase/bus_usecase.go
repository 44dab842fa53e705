package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/findbus/internal/domain"
	"github.com/findbus/internal/domain/repository"
	"github.com/findbus/internal/pkg/errors"
	"github.com/findbus/internal/usecase/dto"
)

// BusUseCase - use case для фильтрации и просмотра автобусов
type BusUseCase struct {
	busRepo repository.BusRepository
	logger  *zap.Logger
}

// NewBusUseCase - создание нового BusUseCase
func NewBusUseCase(busRepo repository.BusRepository, logger *zap.Logger) *BusUseCase {
	return &BusUseCase{
		busRepo: busRepo,
		logger:  logger,
	}
}

// FilterOptions - живые значения для контролов фильтра. Неудачный запрос
// деградирует до пустого списка или невалидных границ и попадает в Warnings;
// ошибкой возвращается только потеря соединения или несовпадение схемы
func (uc *BusUseCase) FilterOptions(ctx context.Context) (*dto.FilterOptions, error) {
	opts := &dto.FilterOptions{
		Routes:           []string{},
		BusTypes:         []string{},
		MaxDurationHours: domain.MaxDurationHoursLimit,
	}

	var err error
	if opts.Routes, err = uc.distinct(ctx, opts, domain.ColRouteName); err != nil {
		return nil, err
	}
	if opts.BusTypes, err = uc.distinct(ctx, opts, domain.ColBusType); err != nil {
		return nil, err
	}
	if opts.Price, err = uc.minMax(ctx, opts, domain.ColPrice); err != nil {
		return nil, err
	}
	if opts.Rating, err = uc.minMax(ctx, opts, domain.ColStarRating); err != nil {
		return nil, err
	}
	if opts.Seats, err = uc.minMax(ctx, opts, domain.ColSeatsAvailable); err != nil {
		return nil, err
	}

	return opts, nil
}

func (uc *BusUseCase) distinct(ctx context.Context, opts *dto.FilterOptions, column string) ([]string, error) {
	values, err := uc.busRepo.DistinctValues(ctx, column)
	if err == nil {
		return values, nil
	}
	if errors.IsFatal(err) {
		return nil, err
	}
	uc.logger.Warn("Degrading filter: distinct values unavailable", zap.String("column", column), zap.Error(err))
	opts.Warnings = append(opts.Warnings, fmt.Sprintf("Error fetching unique values for %s: %s", column, errors.CauseOf(err)))
	return []string{}, nil
}

func (uc *BusUseCase) minMax(ctx context.Context, opts *dto.FilterOptions, column string) (domain.Bounds, error) {
	bounds, err := uc.busRepo.MinMax(ctx, column)
	if err == nil {
		return bounds, nil
	}
	if errors.IsFatal(err) {
		return domain.Bounds{}, err
	}
	uc.logger.Warn("Degrading filter: min/max unavailable", zap.String("column", column), zap.Error(err))
	opts.Warnings = append(opts.Warnings, fmt.Sprintf("Error fetching min/max values for %s: %s", column, errors.CauseOf(err)))
	return domain.Bounds{}, nil
}

// Criteria - приведение сырого запроса к границам данных и сводка для пользователя
func (uc *BusUseCase) Criteria(req dto.BusSearchRequest, opts *dto.FilterOptions) (domain.FilterCriteria, dto.AppliedFilters) {
	hours := domain.DefaultMaxDurationHours
	if req.MaxDurationHours != nil {
		hours = domain.ClampDurationHours(*req.MaxDurationHours)
	}

	c := domain.FilterCriteria{
		Route:              resolveRoute(req.Route, opts.Routes),
		BusTypes:           domain.NormalizeBusTypes(req.BusTypes),
		Price:              opts.Price.Clamp(req.PriceMin, req.PriceMax),
		Rating:             opts.Rating.Clamp(req.RatingMin, req.RatingMax),
		Seats:              opts.Seats.Clamp(req.SeatsMin, req.SeatsMax),
		MaxDurationSeconds: hours * 3600,
		Sort:               req.Sort,
	}
	if c.Sort == "" {
		c.Sort = domain.SortDeparture
	}
	// Неоценённые автобусы видны, пока рейтинг не сужен
	c.IncludeUnrated = opts.Rating.Covers(c.Rating)

	applied := dto.AppliedFilters{
		Route:            domain.AllRoutes,
		AllRoutes:        c.Route == nil,
		BusTypes:         c.BusTypes,
		Price:            c.Price,
		Rating:           c.Rating,
		Seats:            c.Seats,
		MaxDurationHours: hours,
		Sort:             c.Sort,
	}
	if c.Route != nil {
		applied.Route = *c.Route
	}
	return c, applied
}

// resolveRoute - пустой маршрут означает все маршруты; литерал "All" тоже,
// если в данных нет маршрута с таким именем
func resolveRoute(raw string, routes []string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if raw == domain.AllRoutes {
		for _, r := range routes {
			if r == raw {
				return &raw
			}
		}
		return nil
	}
	return &raw
}

// Search - один проход отрисовки: справочники, приведение, запрос по фильтру.
// Сбой самого поиска кладётся в поле Error ответа, а не возвращается
func (uc *BusUseCase) Search(ctx context.Context, req dto.BusSearchRequest) (*dto.BusSearchResponse, error) {
	opts, err := uc.FilterOptions(ctx)
	if err != nil {
		return nil, err
	}

	criteria, applied := uc.Criteria(req, opts)
	resp := &dto.BusSearchResponse{
		Options: *opts,
		Applied: applied,
		Buses:   []dto.BusRow{},
	}

	records, err := uc.busRepo.Search(ctx, criteria)
	if err != nil {
		if errors.IsFatal(err) || errors.Is(err, errors.ErrInvalidRequest) {
			return nil, err
		}
		uc.logger.Error("Bus search failed", zap.Error(err))
		resp.Error = fmt.Sprintf("Error fetching bus data: %s", errors.CauseOf(err))
		return resp, nil
	}

	resp.Buses = dto.ConvertBusRows(records)
	resp.Total = len(resp.Buses)
	return resp, nil
}

// Health - проверка базы за репозиторием
func (uc *BusUseCase) Health(ctx context.Context) error {
	return uc.busRepo.Health(ctx)
}
