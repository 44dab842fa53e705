package repository

import (
	"context"

	"github.com/findbus/internal/domain"
)

// BusRepository определяет чтение таблицы busdetails
type BusRepository interface {
	// DistinctValues возвращает отсортированные уникальные значения колонки
	DistinctValues(ctx context.Context, column string) ([]string, error)

	// MinMax возвращает минимум и максимум числовой колонки; Valid=false для пустой таблицы
	MinMax(ctx context.Context, column string) (domain.Bounds, error)

	// Search возвращает строки, удовлетворяющие фильтру
	Search(ctx context.Context, criteria domain.FilterCriteria) ([]domain.BusRecord, error)

	// Health проверяет соединение с базой
	Health(ctx context.Context) error
}
