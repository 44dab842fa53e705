package handler

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/findbus/internal/pkg/errors"
	"github.com/findbus/internal/usecase/dto"
)

// parseBusSearchRequest читает фильтры из query string.
// bustype может повторяться: ?bustype=A&bustype=B
// Нечитаемые числа остаются nil, ошибка перечисляет все такие параметры.
func parseBusSearchRequest(c *fiber.Ctx) (dto.BusSearchRequest, error) {
	req := dto.BusSearchRequest{
		Route: c.Query("route"),
		Sort:  c.Query("sort"),
	}

	for _, raw := range c.Context().QueryArgs().PeekMulti("bustype") {
		if v := strings.TrimSpace(string(raw)); v != "" {
			req.BusTypes = append(req.BusTypes, v)
		}
	}

	invalid := map[string]interface{}{}
	floats := []struct {
		key string
		dst **float64
	}{
		{"price_min", &req.PriceMin},
		{"price_max", &req.PriceMax},
		{"rating_min", &req.RatingMin},
		{"rating_max", &req.RatingMax},
		{"seats_min", &req.SeatsMin},
		{"seats_max", &req.SeatsMax},
	}
	for _, f := range floats {
		v, err := optionalFloat(c.Query(f.key))
		if err != nil {
			invalid[f.key] = err.Error()
			continue
		}
		*f.dst = v
	}

	if raw := strings.TrimSpace(c.Query("max_duration")); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil {
			invalid["max_duration"] = err.Error()
		} else {
			req.MaxDurationHours = &hours
		}
	}

	if len(invalid) > 0 {
		return req, errors.ErrInvalidRequest.WithDetails(invalid)
	}
	return req, nil
}

func optionalFloat(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%q is not a finite number", raw)
	}
	return &v, nil
}

// resetInvalid сбрасывает к умолчанию только поля, названные в деталях ошибки.
// Ключи бывают именами параметров (price_min) или полей валидатора (PriceMin,
// BusTypes[0]). Ошибка без имён полей сбрасывает весь запрос.
func resetInvalid(req dto.BusSearchRequest, err error) dto.BusSearchRequest {
	var appErr *errors.AppError
	if !errors.As(err, &appErr) || len(appErr.Details) == 0 {
		return dto.BusSearchRequest{}
	}

	for key := range appErr.Details {
		if i := strings.IndexByte(key, '['); i >= 0 {
			key = key[:i]
		}
		switch key {
		case "route", "Route":
			req.Route = ""
		case "bustype", "BusTypes":
			req.BusTypes = nil
		case "price_min", "PriceMin":
			req.PriceMin = nil
		case "price_max", "PriceMax":
			req.PriceMax = nil
		case "rating_min", "RatingMin":
			req.RatingMin = nil
		case "rating_max", "RatingMax":
			req.RatingMax = nil
		case "seats_min", "SeatsMin":
			req.SeatsMin = nil
		case "seats_max", "SeatsMax":
			req.SeatsMax = nil
		case "max_duration", "MaxDurationHours":
			req.MaxDurationHours = nil
		case "sort", "Sort":
			req.Sort = ""
		default:
			return dto.BusSearchRequest{}
		}
	}
	return req
}
