package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/findbus/internal/domain"
	"github.com/findbus/internal/pkg/errors"
	"github.com/findbus/internal/pkg/utils"
	"github.com/findbus/internal/pkg/validator"
	"github.com/findbus/internal/usecase"
	"github.com/findbus/internal/usecase/dto"
	"github.com/findbus/web"
)

const (
	pageHome  = "home"
	pageBuses = "buses"
)

// PageData - общие поля для layout
type PageData struct {
	Title  string
	Active string
}

// HomePageData - данные для главной страницы
type HomePageData struct {
	PageData
	ImageError string
}

// BusesPageData - данные для страницы "Select the Bus"
type BusesPageData struct {
	PageData
	// Fatal заменяет всю страницу: без контролов и таблицы
	Fatal   string
	Notice  string
	Columns []string
	Result  *dto.BusSearchResponse
}

type sortOption struct {
	Key   string
	Label string
}

var sortOptions = []sortOption{
	{domain.SortDeparture, "Departure time"},
	{domain.SortPrice, "Price (low to high)"},
	{domain.SortRating, "Star rating (high to low)"},
	{domain.SortDuration, "Duration (shortest first)"},
	{domain.SortSeats, "Seats available (most first)"},
}

// rangeControl - пара полей min/max в сайдбаре
type rangeControl struct {
	Label    string
	Name     string
	Bounds   domain.Bounds
	Selected domain.Range
	Step     float64
}

func newRangeControl(label, name string, bounds domain.Bounds, selected *domain.Range, step float64) rangeControl {
	rc := rangeControl{
		Label:    label,
		Name:     name,
		Bounds:   bounds,
		Selected: bounds.Full(),
		Step:     step,
	}
	if selected != nil {
		rc.Selected = *selected
	}
	return rc
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatRating - пустая ячейка для неоценённых автобусов
func formatRating(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}

var templateFuncs = template.FuncMap{
	"fmtNum":       formatNumber,
	"fmtRating":    formatRating,
	"rangeControl": newRangeControl,
	"sortOptions":  func() []sortOption { return sortOptions },
}

// PageHandler - HTML страницы дашборда
type PageHandler struct {
	busUC     *usecase.BusUseCase
	logger    *zap.Logger
	imagePath string
	pages     map[string]*template.Template
}

// NewPageHandler - создание нового PageHandler; шаблоны встроены в бинарник
func NewPageHandler(busUC *usecase.BusUseCase, logger *zap.Logger, imagePath string) (*PageHandler, error) {
	pages := make(map[string]*template.Template, 2)
	for _, name := range []string{pageHome, pageBuses} {
		tmpl, err := template.New(name).Funcs(templateFuncs).ParseFS(web.Templates,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &PageHandler{
		busUC:     busUC,
		logger:    logger,
		imagePath: imagePath,
		pages:     pages,
	}, nil
}

// Home - главная страница
func (h *PageHandler) Home(c *fiber.Ctx) error {
	data := HomePageData{
		PageData: PageData{Title: "Home", Active: pageHome},
	}
	if _, err := os.Stat(h.imagePath); err != nil {
		h.logger.Warn("Home image unavailable", zap.String("path", h.imagePath), zap.Error(err))
		data.ImageError = fmt.Sprintf("Error loading image: %s", err)
	}

	return h.render(c, fiber.StatusOK, pageHome, data)
}

// BusImage - картинка для главной страницы
func (h *PageHandler) BusImage(c *fiber.Ctx) error {
	if _, err := os.Stat(h.imagePath); err != nil {
		return fiber.ErrNotFound
	}
	return c.SendFile(h.imagePath)
}

// SelectBus - фильтры в сайдбаре и таблица найденных автобусов
func (h *PageHandler) SelectBus(c *fiber.Ctx) error {
	data := BusesPageData{
		PageData: PageData{Title: "Select the Bus", Active: pageBuses},
		Columns:  utils.ColumnLabels(domain.DisplayColumns),
	}

	req, err := parseBusSearchRequest(c)
	if err == nil {
		err = validator.Validate(&req)
	}
	if err != nil {
		// Сбрасываются только невалидные поля, остальные фильтры сохраняются
		h.logger.Debug("Invalid filter parameters", zap.Error(err))
		data.Notice = "Some filter values were invalid and have been reset to their defaults."
		req = resetInvalid(req, err)
		if verr := validator.Validate(&req); verr != nil {
			req = resetInvalid(req, verr)
		}
	}

	result, err := h.busUC.Search(c.Context(), req)
	if err != nil {
		if errors.IsFatal(err) {
			h.logger.Error("Database unavailable", zap.Error(err))
			data.Fatal = fmt.Sprintf("Error connecting to the database: %s", errors.CauseOf(err))
			return h.render(c, fiber.StatusServiceUnavailable, pageBuses, data)
		}
		return err
	}
	data.Result = result

	return h.render(c, fiber.StatusOK, pageBuses, data)
}

func (h *PageHandler) render(c *fiber.Ctx, status int, page string, data interface{}) error {
	var buf bytes.Buffer
	if err := h.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.logger.Error("Template rendering failed", zap.String("page", page), zap.Error(err))
		return err
	}

	c.Set("Content-Type", "text/html; charset=utf-8")
	return c.Status(status).Send(buf.Bytes())
}
