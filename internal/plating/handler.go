package plating

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/BankimKamila185/Bankim-Jewellery/internal/platform/httpx"
)

// Handler manages plating endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, validate *validator.Validate) *Handler {
	return &Handler{logger: logger, service: service, validate: validate}
}

// MountRoutes registers plating routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/rates", h.listRates)
	r.Post("/rates", h.createRate)
	r.Put("/rates/{id}", h.updateRate)
	r.Get("/jobs", h.listJobs)
	r.Post("/jobs", h.assignJob)
	r.Post("/jobs/{id}/complete", h.completeJob)
}

func (h *Handler) listRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.service.Rates(r.Context())
	if err != nil {
		h.logger.Error("list plating rates", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rates)
}

func (h *Handler) createRate(w http.ResponseWriter, r *http.Request) {
	var in CreateRateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request Body", err.Error())
		return
	}
	if err := h.validate.Struct(in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	rate, err := h.service.CreateRate(r.Context(), in)
	if err != nil {
		h.logger.Error("create plating rate", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, rate)
}

func (h *Handler) updateRate(w http.ResponseWriter, r *http.Request) {
	var in UpdateRateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request Body", err.Error())
		return
	}

	rate, err := h.service.UpdateRate(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.logger.Error("update plating rate", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rate)
}

func (h *Handler) listJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.service.Jobs(r.Context(), r.URL.Query().Get("dealer_id"))
	if err != nil {
		h.logger.Error("list plating jobs", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, jobs)
}

func (h *Handler) assignJob(w http.ResponseWriter, r *http.Request) {
	var in AssignInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request Body", err.Error())
		return
	}
	if err := h.validate.Struct(in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	job, err := h.service.AssignJob(r.Context(), in)
	if err != nil {
		h.logger.Error("assign plating job", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, job)
}

func (h *Handler) completeJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.service.CompleteJob(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.logger.Error("complete plating job", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, job)
}
