package domain

// BusRecord - строка busdetails в том виде, в каком её показывает дашборд
type BusRecord struct {
	RouteName       string  `db:"route_name" json:"route_name"`
	RouteLink       *string `db:"route_link" json:"route_link,omitempty"`
	BusName         string  `db:"busname" json:"busname"`
	BusType         string  `db:"bustype" json:"bustype"`
	DepartingTime   string  `db:"departing_time" json:"departing_time"`
	DurationSeconds float64 `db:"duration_seconds" json:"duration_seconds"`
	ReachingTime    string  `db:"reaching_time" json:"reaching_time"`
	// nil, если автобус ещё не оценивали
	StarRating     *float64 `db:"star_rating" json:"star_rating"`
	Price          float64  `db:"price" json:"price"`
	SeatsAvailable int64    `db:"seats_available" json:"seats_available"`
}

// Таблица и колонки источника данных
const (
	BusTable = "busdetails"

	ColRouteName      = "route_name"
	ColRouteLink      = "route_link"
	ColBusName        = "busname"
	ColBusType        = "bustype"
	ColDepartingTime  = "departing_time"
	ColDuration       = "duration"
	ColReachingTime   = "reaching_time"
	ColStarRating     = "star_rating"
	ColPrice          = "price"
	ColSeatsAvailable = "seats_available"
)

// RequiredColumns - все колонки, которые читает дашборд
var RequiredColumns = []string{
	ColRouteName,
	ColRouteLink,
	ColBusName,
	ColBusType,
	ColDepartingTime,
	ColDuration,
	ColReachingTime,
	ColStarRating,
	ColPrice,
	ColSeatsAvailable,
}

// DisplayColumns - порядок колонок в таблице результатов
var DisplayColumns = []string{
	ColRouteName,
	ColBusName,
	ColBusType,
	ColDepartingTime,
	ColDuration,
	ColReachingTime,
	ColStarRating,
	ColPrice,
	ColSeatsAvailable,
}
