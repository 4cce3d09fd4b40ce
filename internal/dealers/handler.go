package dealers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/BankimKamila185/Bankim-Jewellery/internal/platform/httpx"
)

// Handler manages dealer endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, validate *validator.Validate) *Handler {
	return &Handler{logger: logger, service: service, validate: validate}
}

// MountRoutes registers dealer routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/code/generate", h.generateCode)
	r.Get("/type/{dealerType}", h.listByType)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.remove)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := Query{
		DealerType: r.URL.Query().Get("dealer_type"),
		Category:   r.URL.Query().Get("category"),
		Status:     r.URL.Query().Get("status"),
	}
	dealers, err := h.service.Dealers(r.Context(), q)
	if err != nil {
		h.logger.Error("list dealers", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"total":   len(dealers),
		"dealers": dealers,
	})
}

func (h *Handler) listByType(w http.ResponseWriter, r *http.Request) {
	dealers, err := h.service.Dealers(r.Context(), Query{DealerType: chi.URLParam(r, "dealerType")})
	if err != nil {
		h.logger.Error("list dealers by type", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"total":   len(dealers),
		"dealers": dealers,
	})
}

func (h *Handler) generateCode(w http.ResponseWriter, r *http.Request) {
	dealerType := r.URL.Query().Get("dealer_type")
	category := r.URL.Query().Get("category")
	if dealerType == "" || category == "" {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "dealer_type and category are required")
		return
	}

	code, err := h.service.GenerateCode(r.Context(), dealerType, category)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"dealer_code": code})
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

	dealer, err := h.service.Create(r.Context(), in)
	if err != nil {
		h.logger.Error("create dealer", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, dealer)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	dealer, err := h.service.Dealer(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, dealer)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var in UpdateInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request Body", err.Error())
		return
	}

	dealer, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.logger.Error("update dealer", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, dealer)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logger.Error("delete dealer", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "dealer deleted"})
}
