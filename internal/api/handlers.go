package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/zayrick/liuren-api/internal/calendar"
	"github.com/zayrick/liuren-api/internal/config"
	"github.com/zayrick/liuren-api/internal/database"
	"github.com/zayrick/liuren-api/internal/metrics"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db       *database.DB
	cfg      *config.Config
	logger   *slog.Logger
	metrics  *metrics.Metrics
	validate *validator.Validate
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *database.DB, cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) *Handlers {
	return &Handlers{
		db:       db,
		cfg:      cfg,
		logger:   logger,
		metrics:  m,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.db.Health(ctx); err != nil {
		h.logger.Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", "HEALTH_CHECK_FAILED")
		return
	}

	WriteSuccess(w, map[string]string{
		"status": "healthy",
	})
}

// divinationRequest is the body of POST /api/v1/divinations.
type divinationRequest struct {
	Question string `json:"question" validate:"required,max=500"`
	Numbers  []int  `json:"numbers" validate:"required,len=3,dive,min=1"`
	Time     string `json:"time,omitempty"`
}

// baziDetail is the calendar breakdown returned alongside readings.
type baziDetail struct {
	Time      string             `json:"time"`
	Lunar     calendar.LunarDate `json:"lunar"`
	SolarTerm string             `json:"solar_term,omitempty"`
	Year      string             `json:"year_pillar"`
	Month     string             `json:"month_pillar"`
	Day       string             `json:"day_pillar"`
	Hour      string             `json:"hour_pillar"`
	Bazi      string             `json:"bazi"`
}

// buildBaziDetail assembles the lunar date, solar term and four pillars
// for an instant. Returns calendar.ErrUnsupportedDateRange for dates the
// lunar table does not cover.
func buildBaziDetail(at time.Time) (*baziDetail, error) {
	c := calendar.CivilFromTime(at)

	lunar, err := calendar.ToLunar(c)
	if err != nil {
		return nil, err
	}

	year, err := calendar.YearPillar(c)
	if err != nil {
		return nil, err
	}
	month, err := calendar.MonthPillar(c, year)
	if err != nil {
		return nil, err
	}
	day := calendar.DayPillar(c)
	hour := calendar.HourPillar(c, day)

	return &baziDetail{
		Time:      at.Format(time.RFC3339),
		Lunar:     lunar,
		SolarTerm: calendar.SolarTermAt(c),
		Year:      year.String(),
		Month:     month.String(),
		Day:       day.String(),
		Hour:      hour.String(),
		Bazi:      fmt.Sprintf("%s年 %s月 %s日 %s时", year, month, day, hour),
	}, nil
}

// CreateDivination handles POST /api/v1/divinations
func (h *Handlers) CreateDivination(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req divinationRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	at := time.Now()
	if req.Time != "" {
		parsed, err := time.Parse(time.RFC3339, req.Time)
		if err != nil {
			WriteBadRequest(w, fmt.Sprintf("Invalid time format: %s. Use RFC 3339", req.Time))
			return
		}
		at = parsed
	}

	detail, err := buildBaziDetail(at)
	if err != nil {
		if errors.Is(err, calendar.ErrUnsupportedDateRange) {
			WriteError(w, http.StatusBadRequest, "Date is outside the supported range (1901-2050)", "UNSUPPORTED_DATE")
			return
		}
		h.logger.Error("failed to compute pillars", slog.Any("error", err))
		WriteInternalError(w, "Failed to compute reading")
		return
	}

	hexagram := calendar.Hexagram(req.Numbers[0], req.Numbers[1], req.Numbers[2])

	record := &database.Divination{
		Question: req.Question,
		Numbers:  req.Numbers,
		Hexagram: hexagram,
		Bazi:     detail.Bazi,
	}

	if err := h.db.CreateDivination(ctx, record); err != nil {
		h.logger.Error("failed to store divination", slog.Any("error", err))
		WriteInternalError(w, "Failed to store divination")
		return
	}

	h.metrics.DivinationsTotal.Inc()

	WriteCreated(w, map[string]any{
		"divination": record,
		"detail":     detail,
	})
}

// GetBazi handles GET /api/v1/bazi?at=RFC3339
func (h *Handlers) GetBazi(w http.ResponseWriter, r *http.Request) {
	at := time.Now()

	if atStr := r.URL.Query().Get("at"); atStr != "" {
		parsed, err := time.Parse(time.RFC3339, atStr)
		if err != nil {
			WriteBadRequest(w, fmt.Sprintf("Invalid time format: %s. Use RFC 3339", atStr))
			return
		}
		at = parsed
	}

	detail, err := buildBaziDetail(at)
	if err != nil {
		if errors.Is(err, calendar.ErrUnsupportedDateRange) {
			WriteError(w, http.StatusBadRequest, "Date is outside the supported range (1901-2050)", "UNSUPPORTED_DATE")
			return
		}
		h.logger.Error("failed to compute pillars", slog.Any("error", err))
		WriteInternalError(w, "Failed to compute pillars")
		return
	}

	WriteSuccess(w, detail)
}

// ListDivinations handles GET /api/v1/divinations?limit=N&offset=M
func (h *Handlers) ListDivinations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 50 // default
	offset := 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	page, err := h.db.ListDivinations(ctx, limit, offset)
	if err != nil {
		h.logger.Error("failed to list divinations", slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve history")
		return
	}

	WriteSuccess(w, page)
}

// GetDivination handles GET /api/v1/divinations/{id}
func (h *Handlers) GetDivination(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Invalid divination ID")
		return
	}

	record, err := h.db.GetDivination(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Divination not found")
			return
		}
		h.logger.Error("failed to get divination", slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve divination")
		return
	}

	WriteSuccess(w, record)
}

// DeleteDivination handles DELETE /api/v1/divinations/{id}
func (h *Handlers) DeleteDivination(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		WriteBadRequest(w, "Invalid divination ID")
		return
	}

	if err := h.db.DeleteDivination(ctx, id); err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Divination not found")
			return
		}
		h.logger.Error("failed to delete divination", slog.Any("error", err))
		WriteInternalError(w, "Failed to delete divination")
		return
	}

	WriteSuccess(w, map[string]string{"message": "Divination deleted"})
}

// decodeJSON decodes JSON request body.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("request body is empty")
	}
	defer r.Body.Close()

	return json.NewDecoder(r.Body).Decode(v)
}
