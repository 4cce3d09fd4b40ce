package workflow

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/BankimKamila185/Bankim-Jewellery/internal/platform/httpx"
)

// Handler manages progress tracking endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, validate *validator.Validate) *Handler {
	return &Handler{logger: logger, service: service, validate: validate}
}

// MountRoutes registers progress routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/stages", h.listStages)
	r.Post("/start", h.startProcess)
	r.Post("/complete/{progressID}", h.completeStage)
	r.Get("/variant/{variantID}", h.variantHistory)
	r.Get("/current/{variantID}", h.currentStage)
}

func (h *Handler) listStages(w http.ResponseWriter, r *http.Request) {
	stages, err := h.service.Stages(r.Context())
	if err != nil {
		h.logger.Error("list stages", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, stages)
}

func (h *Handler) startProcess(w http.ResponseWriter, r *http.Request) {
	var in StartInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request Body", err.Error())
		return
	}
	if err := h.validate.Struct(in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	entry, err := h.service.StartProcess(r.Context(), in)
	if err != nil {
		h.logger.Error("start process", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

func (h *Handler) completeStage(w http.ResponseWriter, r *http.Request) {
	var in CompleteInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request Body", err.Error())
		return
	}
	if err := h.validate.Struct(in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	entry, err := h.service.CompleteStage(r.Context(), chi.URLParam(r, "progressID"), in)
	if err != nil {
		h.logger.Error("complete stage", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, entry)
}

func (h *Handler) variantHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.service.VariantHistory(r.Context(), chi.URLParam(r, "variantID"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, history)
}

func (h *Handler) currentStage(w http.ResponseWriter, r *http.Request) {
	entry, err := h.service.CurrentStage(r.Context(), chi.URLParam(r, "variantID"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, entry)
}
