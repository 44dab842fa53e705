package sqlstore

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/findbus/internal/domain"
)

// orderColumns - ключ сортировки -> сырая (неформатированная) колонка
var orderColumns = map[string]string{
	domain.SortDeparture: "b.departing_time",
	domain.SortPrice:     "b.price",
	domain.SortRating:    "b.star_rating IS NULL, b.star_rating DESC",
	domain.SortDuration:  "duration_seconds",
	domain.SortSeats:     "b.seats_available DESC",
}

func selectColumns(d Dialect) string {
	return strings.Join([]string{
		"b.route_name",
		"b.route_link",
		"b.busname",
		"b.bustype",
		d.ClockHHMM("b.departing_time") + " AS departing_time",
		d.DurationSeconds("b.duration") + " AS duration_seconds",
		d.ClockHHMM("b.reaching_time") + " AS reaching_time",
		"b.star_rating",
		"b.price",
		"b.seats_available",
	}, ",\n\t\t")
}

// BuildFilterQuery - запрос поиска автобусов и его аргументы.
// Предикаты маршрута и типа добавляются только если заданы, nil-интервал
// пропускается. Неоценённые строки проходят фильтр рейтинга только с
// IncludeUnrated. Значения пользователя в текст запроса не попадают
func BuildFilterQuery(d Dialect, c domain.FilterCriteria) (string, []interface{}, error) {
	var sb strings.Builder
	args := make([]interface{}, 0, 10)
	expandIn := false

	sb.WriteString("SELECT\n\t\t")
	sb.WriteString(selectColumns(d))
	sb.WriteString("\n\tFROM ")
	sb.WriteString(domain.BusTable)
	sb.WriteString(" b\n\tWHERE 1 = 1")

	if c.Route != nil {
		sb.WriteString("\n\t  AND b.route_name = ?")
		args = append(args, *c.Route)
	}

	if types := domain.NormalizeBusTypes(c.BusTypes); len(types) > 0 {
		if d.ArrayParams {
			sb.WriteString("\n\t  AND b.bustype = ANY(?)")
			args = append(args, pq.Array(types))
		} else {
			sb.WriteString("\n\t  AND b.bustype IN (?)")
			args = append(args, types)
			expandIn = true
		}
	}

	appendRange := func(col string, r *domain.Range) {
		if r == nil {
			return
		}
		fmt.Fprintf(&sb, "\n\t  AND %s BETWEEN ? AND ?", col)
		args = append(args, r.Min, r.Max)
	}
	appendRange("b.price", c.Price)
	if c.Rating != nil && c.IncludeUnrated {
		sb.WriteString("\n\t  AND (b.star_rating BETWEEN ? AND ? OR b.star_rating IS NULL)")
		args = append(args, c.Rating.Min, c.Rating.Max)
	} else {
		appendRange("b.star_rating", c.Rating)
	}
	appendRange("b.seats_available", c.Seats)

	sb.WriteString("\n\t  AND ")
	sb.WriteString(d.DurationSeconds("b.duration"))
	sb.WriteString(" <= ?")
	args = append(args, c.MaxDurationSeconds)

	sort := c.Sort
	if sort == "" {
		sort = domain.SortDeparture
	}
	order, ok := orderColumns[sort]
	if !ok {
		return "", nil, fmt.Errorf("unknown sort key %q", c.Sort)
	}
	sb.WriteString("\n\tORDER BY ")
	sb.WriteString(order)
	sb.WriteString(", b.route_name, b.departing_time, b.busname")

	query := sb.String()
	if expandIn {
		var err error
		query, args, err = sqlx.In(query, args...)
		if err != nil {
			return "", nil, fmt.Errorf("expand bustype list: %w", err)
		}
	}

	return d.Rebind(query), args, nil
}
