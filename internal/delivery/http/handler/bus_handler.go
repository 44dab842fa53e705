package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/findbus/internal/pkg/utils"
	"github.com/findbus/internal/pkg/validator"
	"github.com/findbus/internal/usecase"
)

// BusHandler - JSON API для фильтров и поиска автобусов
type BusHandler struct {
	busUC  *usecase.BusUseCase
	logger *zap.Logger
}

// NewBusHandler - создание нового BusHandler
func NewBusHandler(busUC *usecase.BusUseCase, logger *zap.Logger) *BusHandler {
	return &BusHandler{
		busUC:  busUC,
		logger: logger,
	}
}

// HealthResponse - состояние сервиса и базы
type HealthResponse struct {
	Status   string    `json:"status"`
	Database string    `json:"database"`
	Time     time.Time `json:"time"`
}

// GetFilters godoc
// @Summary Значения для фильтров
// @Description Возвращает маршруты, типы автобусов и границы цены, рейтинга и мест. Неудачные выборки деградируют и перечисляются в meta.warnings.
// @Tags Buses
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.FilterOptions}
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/filters [get]
func (h *BusHandler) GetFilters(c *fiber.Ctx) error {
	opts, err := h.busUC.FilterOptions(c.Context())
	if err != nil {
		h.logger.Error("Failed to load filter options", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, opts, &utils.Meta{
		Total:    len(opts.Routes),
		Warnings: opts.Warnings,
	})
}

// SearchBuses godoc
// @Summary Поиск автобусов
// @Description Фильтрует busdetails по маршруту, типам, диапазонам цены, рейтинга и мест, а также максимальной длительности. Диапазоны приводятся к границам данных.
// @Tags Buses
// @Produce json
// @Param route query string false "Маршрут; пусто или All - все маршруты"
// @Param bustype query []string false "Типы автобусов (можно повторять)" collectionFormat(multi)
// @Param price_min query number false "Минимальная цена"
// @Param price_max query number false "Максимальная цена"
// @Param rating_min query number false "Минимальный рейтинг"
// @Param rating_max query number false "Максимальный рейтинг"
// @Param seats_min query number false "Минимум свободных мест"
// @Param seats_max query number false "Максимум свободных мест"
// @Param max_duration query int false "Максимальная длительность, часы (0-24)" default(10)
// @Param sort query string false "Сортировка" Enums(departure, price, rating, duration, seats) default(departure)
// @Success 200 {object} utils.SuccessResponse{data=dto.BusSearchResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/buses [get]
func (h *BusHandler) SearchBuses(c *fiber.Ctx) error {
	req, err := parseBusSearchRequest(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	// Валидация
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.busUC.Search(c.Context(), req)
	if err != nil {
		h.logger.Error("Bus search failed", zap.Error(err))
		return utils.SendError(c, err)
	}

	warnings := result.Options.Warnings
	if result.Error != "" {
		warnings = append(append([]string{}, warnings...), result.Error)
	}
	return utils.SendSuccess(c, result, &utils.Meta{
		Total:    result.Total,
		Warnings: warnings,
	})
}

// Health godoc
// @Summary Health check
// @Description Проверяет доступность базы данных
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /api/v1/health [get]
func (h *BusHandler) Health(c *fiber.Ctx) error {
	resp := HealthResponse{
		Status:   "healthy",
		Database: "connected",
		Time:     time.Now(),
	}

	if err := h.busUC.Health(c.Context()); err != nil {
		h.logger.Warn("Health check failed", zap.Error(err))
		resp.Status = "unhealthy"
		resp.Database = err.Error()
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}

	return c.JSON(resp)
}
