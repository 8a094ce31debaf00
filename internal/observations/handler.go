package observations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tramites-backend/internal/filetypes"
	"tramites-backend/internal/shared/server/respond"
	"tramites-backend/internal/stages"
)

// Handler wires HTTP handlers to the observation and catalogue services.
type Handler struct {
	Svc       *Service
	Catalogue *filetypes.Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, catalogue *filetypes.Service) *Handler {
	return &Handler{Svc: svc, Catalogue: catalogue}
}

// RegisterRoutes attaches observation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/observations/status/:tramiteId/:stage", h.status)
	rg.GET("/observations/all/:tramiteId/:currentStage", h.all)
	rg.GET("/observations/file-types/:stage", h.fileTypes)
}

func (h *Handler) status(c *gin.Context) {
	tramiteID, ok := paramInt64(c, "tramiteId")
	if !ok {
		return
	}
	stage, ok := paramInt(c, "stage")
	if !ok {
		return
	}

	status, err := h.Svc.Status(c.Request.Context(), tramiteID, stage)
	if err != nil {
		if errors.Is(err, stages.ErrUnsupportedStage) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "stage is not part of the correction cycle", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to compute observation status", nil)
		return
	}
	respond.OK(c, toStatusResponse(status))
}

func (h *Handler) all(c *gin.Context) {
	tramiteID, ok := paramInt64(c, "tramiteId")
	if !ok {
		return
	}
	currentStage, ok := paramInt(c, "currentStage")
	if !ok {
		return
	}

	grouped, err := h.Svc.AllByTramite(c.Request.Context(), tramiteID, currentStage)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list observations", nil)
		return
	}
	respond.OK(c, toGroupedResponse(grouped))
}

func (h *Handler) fileTypes(c *gin.Context) {
	stage, ok := paramInt(c, "stage")
	if !ok {
		return
	}
	alreadyCorrected := c.Query("alreadyCorrected") == "true"

	entries, err := h.Catalogue.Catalogue(c.Request.Context(), stage, alreadyCorrected)
	if err != nil {
		if errors.Is(err, stages.ErrUnsupportedStage) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "stage is not part of the correction cycle", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load file-type catalogue", nil)
		return
	}
	respond.OK(c, toCatalogueResponse(entries))
}

func paramInt64(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || v <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", name+" must be a positive integer", nil)
		return 0, false
	}
	return v, true
}

func paramInt(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", name+" must be an integer", nil)
		return 0, false
	}
	return v, true
}
