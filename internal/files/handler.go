package files

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tramites-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the file repo.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches file routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/files/:tramiteId", h.listActive)
}

type fileRecordResponse struct {
	ID         int64     `json:"id"`
	FileTypeID int       `json:"fileTypeId"`
	FileName   string    `json:"fileName"`
	StorageKey string    `json:"storageKey"`
	Stage      int       `json:"stage"`
	SnapshotID int64     `json:"snapshotId"`
	SizeBytes  int64     `json:"sizeBytes"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (h *Handler) listActive(c *gin.Context) {
	tramiteID, err := strconv.ParseInt(c.Param("tramiteId"), 10, 64)
	if err != nil || tramiteID <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "tramiteId must be a positive integer", nil)
		return
	}

	recs, err := h.Repo.ListActive(c.Request.Context(), tramiteID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list files", nil)
		return
	}

	out := make([]fileRecordResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, fileRecordResponse{
			ID:         rec.ID,
			FileTypeID: rec.FileTypeID,
			FileName:   rec.FileName,
			StorageKey: rec.StorageKey,
			Stage:      rec.Stage,
			SnapshotID: rec.SnapshotID,
			SizeBytes:  rec.SizeBytes,
			CreatedAt:  rec.CreatedAt,
		})
	}
	respond.OK(c, out)
}
