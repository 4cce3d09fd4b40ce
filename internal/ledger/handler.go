package ledger

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/BankimKamila185/Bankim-Jewellery/internal/platform/httpx"
)

// Handler manages payment endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, validate *validator.Validate) *Handler {
	return &Handler{logger: logger, service: service, validate: validate}
}

// MountRoutes registers payment routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/invoice/{invoiceID}", h.byInvoice)
	r.Get("/dealer/{dealerID}", h.byDealer)
	r.Get("/progress/{progressID}", h.byProgress)
	r.Post("/invoice/{invoiceID}/recompute", h.recompute)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var in CreateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request Body", err.Error())
		return
	}
	if err := h.validate.Struct(in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	payment, err := h.service.CreatePayment(r.Context(), in)
	if err != nil {
		h.logger.Error("create payment", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, payment)
}

func (h *Handler) byInvoice(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, Filter{InvoiceID: chi.URLParam(r, "invoiceID")})
}

func (h *Handler) byDealer(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, Filter{DealerID: chi.URLParam(r, "dealerID")})
}

func (h *Handler) byProgress(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, Filter{ProgressID: chi.URLParam(r, "progressID")})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, f Filter) {
	payments, err := h.service.Payments(r.Context(), f)
	if err != nil {
		h.logger.Error("list payments", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, payments)
}

func (h *Handler) recompute(w http.ResponseWriter, r *http.Request) {
	invoiceID := chi.URLParam(r, "invoiceID")
	if err := h.service.RecomputeInvoice(r.Context(), invoiceID); err != nil {
		h.logger.Error("recompute invoice", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "invoice reconciled"})
}
