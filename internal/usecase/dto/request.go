package dto

// BusSearchRequest - сырые значения фильтров из query string
type BusSearchRequest struct {
	Route            string   `json:"route,omitempty" validate:"max=255"`
	BusTypes         []string `json:"bustype,omitempty" validate:"max=100,dive,max=255"`
	PriceMin         *float64 `json:"price_min,omitempty" validate:"omitempty,gte=0"`
	PriceMax         *float64 `json:"price_max,omitempty" validate:"omitempty,gte=0"`
	RatingMin        *float64 `json:"rating_min,omitempty" validate:"omitempty,gte=0,lte=5"`
	RatingMax        *float64 `json:"rating_max,omitempty" validate:"omitempty,gte=0,lte=5"`
	SeatsMin         *float64 `json:"seats_min,omitempty" validate:"omitempty,gte=0"`
	SeatsMax         *float64 `json:"seats_max,omitempty" validate:"omitempty,gte=0"`
	MaxDurationHours *int     `json:"max_duration,omitempty" validate:"omitempty,gte=0,lte=24"`
	Sort             string   `json:"sort,omitempty" validate:"omitempty,oneof=departure price rating duration seats"`
}
