package metadata

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tramites-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the metadata repo.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches metadata routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/metadata/:tramiteId", h.active)
}

type snapshotResponse struct {
	ID          int64     `json:"id"`
	Stage       int       `json:"stage"`
	Title       string    `json:"title"`
	Abstract    string    `json:"abstract"`
	Keywords    string    `json:"keywords"`
	Budget      float64   `json:"budget"`
	Conclusions *string   `json:"conclusions,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (h *Handler) active(c *gin.Context) {
	tramiteID, err := strconv.ParseInt(c.Param("tramiteId"), 10, 64)
	if err != nil || tramiteID <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "tramiteId must be a positive integer", nil)
		return
	}

	snap, err := h.Repo.ActiveSnapshot(c.Request.Context(), tramiteID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "no active metadata snapshot", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load metadata", nil)
		return
	}

	respond.OK(c, snapshotResponse{
		ID:          snap.ID,
		Stage:       snap.Stage,
		Title:       snap.Title,
		Abstract:    snap.Abstract,
		Keywords:    snap.Keywords,
		Budget:      snap.Budget,
		Conclusions: snap.Conclusions,
		CreatedAt:   snap.CreatedAt,
	})
}
