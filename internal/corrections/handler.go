package corrections

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"tramites-backend/internal/files"
	"tramites-backend/internal/metadata"
	"tramites-backend/internal/shared/server/middleware"
	"tramites-backend/internal/shared/server/respond"
	"tramites-backend/internal/shared/telemetry"
	"tramites-backend/internal/stages"
)

const defaultMaxUploadMB = 4

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc         *Service
	MaxUploadMB int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadMB int64) *Handler {
	if maxUploadMB <= 0 {
		maxUploadMB = defaultMaxUploadMB
	}
	return &Handler{Svc: svc, MaxUploadMB: maxUploadMB}
}

// RegisterRoutes attaches correction routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/corrections", h.submitCorrection)
	rg.GET("/corrections/first-presentation/:tramiteId", h.presented)
	rg.POST("/corrections/first-presentation", h.submitFirstPresentation)
}

func (h *Handler) submitCorrection(c *gin.Context) {
	sub, closeFiles, ok := h.bindSubmission(c)
	if !ok {
		return
	}
	defer closeFiles()

	res, err := h.Svc.SubmitCorrection(c.Request.Context(), sub)
	if err != nil {
		h.respondSubmissionError(c, sub, err)
		return
	}
	respond.Created(c, toResponse(res))
}

func (h *Handler) submitFirstPresentation(c *gin.Context) {
	sub, closeFiles, ok := h.bindSubmission(c)
	if !ok {
		return
	}
	defer closeFiles()

	res, err := h.Svc.SubmitFirstPresentation(c.Request.Context(), sub)
	if err != nil {
		if errors.Is(err, ErrAlreadyPresented) {
			respond.Error(c, http.StatusConflict, "already_presented", "first presentation already recorded", nil)
			return
		}
		h.respondSubmissionError(c, sub, err)
		return
	}
	respond.Created(c, toResponse(res))
}

func (h *Handler) presented(c *gin.Context) {
	tramiteID, err := strconv.ParseInt(c.Param("tramiteId"), 10, 64)
	if err != nil || tramiteID <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "tramiteId must be a positive integer", nil)
		return
	}
	stage := stages.StageFinalThesis
	if raw := strings.TrimSpace(c.Query("stage")); raw != "" {
		stage, err = strconv.Atoi(raw)
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "stage must be an integer", nil)
			return
		}
	}

	presented, err := h.Svc.HasPresented(c.Request.Context(), tramiteID, stage)
	if err != nil {
		if errors.Is(err, stages.ErrUnsupportedStage) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "stage has no first presentation", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to check first presentation", nil)
		return
	}
	respond.OK(c, presentedResponse{AlreadyPresented: presented})
}

// bindSubmission decodes the multipart form. Each uploaded file travels under
// an arbitrary field name with a fileTypeId_<field> companion value naming
// its file type. The returned close func releases the opened file parts and
// must be called once the service is done reading them.
func (h *Handler) bindSubmission(c *gin.Context) (Submission, func(), bool) {
	maxBytes := h.MaxUploadMB << 20
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)

	noop := func() {}
	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid multipart form", nil)
		return Submission{}, noop, false
	}

	var sub Submission
	sub.TramiteID, err = strconv.ParseInt(formValue(form.Value, "tramiteId"), 10, 64)
	if err != nil || sub.TramiteID <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "tramiteId must be a positive integer", nil)
		return Submission{}, noop, false
	}
	sub.Stage, err = strconv.Atoi(formValue(form.Value, "stage"))
	if err != nil || !stages.InCycle(sub.Stage) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "stage is not part of the correction cycle", nil)
		return Submission{}, noop, false
	}
	sub.ProjectCode = formValue(form.Value, "projectCode")
	if sub.ProjectCode == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "projectCode is required", nil)
		return Submission{}, noop, false
	}

	rawMeta := formValue(form.Value, "metadata")
	if rawMeta == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "metadata is required", nil)
		return Submission{}, noop, false
	}
	if err := json.Unmarshal([]byte(rawMeta), &sub.Metadata); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "metadata is not valid JSON", nil)
		return Submission{}, noop, false
	}
	if raw := formValue(form.Value, "auxiliaryMetadata"); raw != "" {
		var aux []metadata.AuxiliaryItem
		if err := json.Unmarshal([]byte(raw), &aux); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "auxiliaryMetadata is not valid JSON", nil)
			return Submission{}, noop, false
		}
		sub.Auxiliary = aux
	}

	var opened []io.Closer
	closeFiles := func() {
		for _, f := range opened {
			f.Close()
		}
	}
	for field, headers := range form.File {
		if len(headers) == 0 {
			continue
		}
		typeRaw := formValue(form.Value, "fileTypeId_"+field)
		fileTypeID, err := strconv.Atoi(typeRaw)
		if err != nil || fileTypeID <= 0 {
			closeFiles()
			respond.Error(c, http.StatusBadRequest, "validation_error", "fileTypeId_"+field+" is required", nil)
			return Submission{}, noop, false
		}
		file, err := headers[0].Open()
		if err != nil {
			closeFiles()
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file "+field, nil)
			return Submission{}, noop, false
		}
		opened = append(opened, file)
		sub.Uploads = append(sub.Uploads, files.Upload{
			FileTypeID: fileTypeID,
			FileName:   headers[0].Filename,
			Content:    file,
		})
	}

	// Map iteration order is random; keep ingestion deterministic.
	sort.Slice(sub.Uploads, func(i, j int) bool {
		return sub.Uploads[i].FileTypeID < sub.Uploads[j].FileTypeID
	})

	if id, ok := middleware.NumericUserID(c); ok {
		sub.UserID = id
	}
	return sub, closeFiles, true
}

func (h *Handler) respondSubmissionError(c *gin.Context, sub Submission, err error) {
	switch {
	case errors.Is(err, stages.ErrUnsupportedStage):
		respond.Error(c, http.StatusBadRequest, "validation_error", "stage is not part of the correction cycle", nil)
	case errors.Is(err, files.ErrMissingExtension):
		respond.Error(c, http.StatusBadRequest, "validation_error", "uploaded file name has no extension", nil)
	default:
		telemetry.Error("corrections.submit.failed", map[string]any{
			"tramite_id": sub.TramiteID,
			"stage":      sub.Stage,
			"err":        err.Error(),
			"request_id": c.GetString("requestId"),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to record submission", nil)
	}
}

func formValue(values map[string][]string, key string) string {
	if v, ok := values[key]; ok && len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}
