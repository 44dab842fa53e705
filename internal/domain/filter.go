package domain

import "strings"

// AllRoutes - метка селектора маршрута "без фильтра по маршруту"
const AllRoutes = "All"

// Границы слайдера длительности, в часах
const (
	MaxDurationHoursLimit   = 24
	DefaultMaxDurationHours = 10
)

// Ключи сортировки
const (
	SortDeparture = "departure"
	SortPrice     = "price"
	SortRating    = "rating"
	SortDuration  = "duration"
	SortSeats     = "seats"
)

// Range - включительный интервал [Min, Max]
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Bounds - текущие min/max колонки. Valid=false, если значений нет
// или их не удалось прочитать
type Bounds struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Valid bool    `json:"valid"`
}

// Full - границы целиком как Range
func (b Bounds) Full() Range {
	return Range{Min: b.Min, Max: b.Max}
}

// Clamp - приведение выбора пользователя к b: b.Min <= Min <= Max <= b.Max.
// Пустой конец берётся из границ, перевёрнутый выбор меняется местами.
// Для невалидных границ возвращает nil
func (b Bounds) Clamp(selMin, selMax *float64) *Range {
	if !b.Valid {
		return nil
	}
	lo, hi := b.Min, b.Max
	if lo > hi {
		lo, hi = hi, lo
	}

	r := Range{Min: lo, Max: hi}
	if selMin != nil {
		r.Min = *selMin
	}
	if selMax != nil {
		r.Max = *selMax
	}
	if r.Min > r.Max {
		r.Min, r.Max = r.Max, r.Min
	}
	r.Min = clamp(r.Min, lo, hi)
	r.Max = clamp(r.Max, lo, hi)
	return &r
}

// Covers - r покрывает b целиком, т.е. пользователь его не сужал
func (b Bounds) Covers(r *Range) bool {
	if !b.Valid || r == nil {
		return false
	}
	lo, hi := b.Min, b.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	return r.Min <= lo && r.Max >= hi
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// FilterCriteria - фильтры поиска на одну отрисовку
type FilterCriteria struct {
	// nil для AllRoutes
	Route    *string
	BusTypes []string
	// nil только при недоступных границах колонки; предикат тогда пропускается
	Price  *Range
	Rating *Range
	Seats  *Range
	// IncludeUnrated оставляет строки с NULL star_rating; ставится, когда
	// Rating покрывает границы целиком
	IncludeUnrated     bool
	MaxDurationSeconds int
	Sort               string
}

// NormalizeBusTypes - trim, без пустых и дубликатов, порядок сохраняется
func NormalizeBusTypes(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// ClampDurationHours - ограничение слайдера длительности [0, MaxDurationHoursLimit]
func ClampDurationHours(h int) int {
	if h < 0 {
		return 0
	}
	if h > MaxDurationHoursLimit {
		return MaxDurationHoursLimit
	}
	return h
}
