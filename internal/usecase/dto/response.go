package dto

import (
	"fmt"

	"github.com/findbus/internal/domain"
)

// FilterOptions - значения для построения контролов фильтра
type FilterOptions struct {
	Routes           []string      `json:"routes"`
	BusTypes         []string      `json:"bustypes"`
	Price            domain.Bounds `json:"price"`
	Rating           domain.Bounds `json:"star_rating"`
	Seats            domain.Bounds `json:"seats_available"`
	MaxDurationHours int           `json:"max_duration_hours"`
	// Warnings - неудавшиеся справочные запросы; их контролы деградированы
	Warnings []string `json:"warnings,omitempty"`
}

// AppliedFilters - фильтры после приведения к границам данных
type AppliedFilters struct {
	Route            string        `json:"route"`
	AllRoutes        bool          `json:"all_routes"`
	BusTypes         []string      `json:"bustypes"`
	Price            *domain.Range `json:"price,omitempty"`
	Rating           *domain.Range `json:"star_rating,omitempty"`
	Seats            *domain.Range `json:"seats_available,omitempty"`
	MaxDurationHours int           `json:"max_duration_hours"`
	Sort             string        `json:"sort"`
}

// HasBusType - t среди выбранных типов
func (a AppliedFilters) HasBusType(t string) bool {
	for _, s := range a.BusTypes {
		if s == t {
			return true
		}
	}
	return false
}

// BusRow - строка таблицы результатов
type BusRow struct {
	Index           int      `json:"index"`
	RouteName       string   `json:"route_name"`
	RouteLink       string   `json:"route_link,omitempty"`
	BusName         string   `json:"busname"`
	BusType         string   `json:"bustype"`
	DepartingTime   string   `json:"departing_time"`
	Duration        string   `json:"duration"`
	DurationSeconds int64    `json:"duration_seconds"`
	ReachingTime    string   `json:"reaching_time"`
	StarRating      *float64 `json:"star_rating"`
	Price           float64  `json:"price"`
	SeatsAvailable  int64    `json:"seats_available"`
}

// BusSearchResponse - ответ на поиск автобусов
type BusSearchResponse struct {
	Options FilterOptions  `json:"options"`
	Applied AppliedFilters `json:"applied"`
	Buses   []BusRow       `json:"buses"`
	Total   int            `json:"total"`
	// Error - сбой поискового запроса; Buses тогда пуст
	Error string `json:"error,omitempty"`
}

// Empty - поиск не вернул строк
func (r *BusSearchResponse) Empty() bool {
	return len(r.Buses) == 0
}

// ConvertBusRows - нумерация с 1 в порядке показа
func ConvertBusRows(records []domain.BusRecord) []BusRow {
	rows := make([]BusRow, 0, len(records))
	for i, r := range records {
		row := BusRow{
			Index:           i + 1,
			RouteName:       r.RouteName,
			BusName:         r.BusName,
			BusType:         r.BusType,
			DepartingTime:   r.DepartingTime,
			DurationSeconds: int64(r.DurationSeconds),
			Duration:        FormatDuration(int64(r.DurationSeconds)),
			ReachingTime:    r.ReachingTime,
			StarRating:      r.StarRating,
			Price:           r.Price,
			SeatsAvailable:  r.SeatsAvailable,
		}
		if r.RouteLink != nil {
			row.RouteLink = *r.RouteLink
		}
		rows = append(rows, row)
	}
	return rows
}

// FormatDuration - секунды в вид "6h 30m"
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	return fmt.Sprintf("%dh %02dm", h, m)
}
