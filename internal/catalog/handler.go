package catalog

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/BankimKamila185/Bankim-Jewellery/internal/platform/httpx"
)

// Handler manages design and variant endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, validate *validator.Validate) *Handler {
	return &Handler{logger: logger, service: service, validate: validate}
}

// MountDesignRoutes registers design routes.
func (h *Handler) MountDesignRoutes(r chi.Router) {
	r.Get("/", h.listDesigns)
	r.Post("/", h.createDesign)
	r.Get("/{id}", h.getDesign)
	r.Put("/{id}", h.updateDesign)
	r.Delete("/{id}", h.deleteDesign)
	r.Get("/{id}/variants", h.listDesignVariants)
}

// MountVariantRoutes registers variant routes.
func (h *Handler) MountVariantRoutes(r chi.Router) {
	r.Get("/", h.listVariants)
	r.Post("/", h.createVariant)
	r.Get("/{id}", h.getVariant)
	r.Put("/{id}", h.updateVariant)
	r.Delete("/{id}", h.deleteVariant)
}

func (h *Handler) listDesigns(w http.ResponseWriter, r *http.Request) {
	designs, err := h.service.Designs(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		h.logger.Error("list designs", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"total":   len(designs),
		"designs": designs,
	})
}

func (h *Handler) createDesign(w http.ResponseWriter, r *http.Request) {
	var in CreateDesignInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request Body", err.Error())
		return
	}
	if err := h.validate.Struct(in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	design, err := h.service.CreateDesign(r.Context(), in)
	if err != nil {
		h.logger.Error("create design", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, design)
}

func (h *Handler) getDesign(w http.ResponseWriter, r *http.Request) {
	design, err := h.service.Design(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, design)
}

func (h *Handler) updateDesign(w http.ResponseWriter, r *http.Request) {
	var in UpdateDesignInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request Body", err.Error())
		return
	}

	design, err := h.service.UpdateDesign(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.logger.Error("update design", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, design)
}

func (h *Handler) deleteDesign(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteDesign(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logger.Error("delete design", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "design deleted"})
}

func (h *Handler) listDesignVariants(w http.ResponseWriter, r *http.Request) {
	variants, err := h.service.DesignVariants(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, variants)
}

func (h *Handler) listVariants(w http.ResponseWriter, r *http.Request) {
	q := VariantQuery{
		DesignID: r.URL.Query().Get("design_id"),
		Finish:   r.URL.Query().Get("finish"),
		Status:   r.URL.Query().Get("status"),
	}
	variants, err := h.service.Variants(r.Context(), q)
	if err != nil {
		h.logger.Error("list variants", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"total":    len(variants),
		"variants": variants,
	})
}

func (h *Handler) createVariant(w http.ResponseWriter, r *http.Request) {
	var in CreateVariantInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request Body", err.Error())
		return
	}
	if err := h.validate.Struct(in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	variant, err := h.service.CreateVariant(r.Context(), in)
	if err != nil {
		h.logger.Error("create variant", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, variant)
}

func (h *Handler) getVariant(w http.ResponseWriter, r *http.Request) {
	variant, err := h.service.Variant(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, variant)
}

func (h *Handler) updateVariant(w http.ResponseWriter, r *http.Request) {
	var in UpdateVariantInput
	if err := httpx.DecodeJSON(r, &in); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Request Body", err.Error())
		return
	}

	variant, err := h.service.UpdateVariant(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		h.logger.Error("update variant", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, variant)
}

func (h *Handler) deleteVariant(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteVariant(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.logger.Error("delete variant", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "variant deleted"})
}
