package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skinlab/skinanalyzer/internal/domain/analysis"
	"github.com/skinlab/skinanalyzer/internal/domain/intake"
	"github.com/skinlab/skinanalyzer/internal/domain/products"
	"github.com/skinlab/skinanalyzer/internal/domain/render"
	"github.com/skinlab/skinanalyzer/internal/domain/report"
	"github.com/skinlab/skinanalyzer/internal/domain/session"
)

// HandlerConfig bounds upload size and the background analysis deadline.
type HandlerConfig struct {
	MaxUploadBytes int64
	AnalyzeTimeout time.Duration
}

// Handler wires the HTTP transport to domain services.
type Handler struct {
	cfg         HandlerConfig
	sessions    *session.Manager
	analysisSvc analysis.Service
	exporter    *report.Exporter
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(cfg HandlerConfig, sessions *session.Manager, analysisSvc analysis.Service, exporter *report.Exporter, logger *slog.Logger) *Handler {
	return &Handler{
		cfg:         cfg,
		sessions:    sessions,
		analysisSvc: analysisSvc,
		exporter:    exporter,
		logger:      logger.With("component", "http.handler"),
	}
}

type progressResponse struct {
	Step    int    `json:"step"`
	Label   string `json:"label"`
	Percent int    `json:"percent"`
}

type sessionResponse struct {
	ID           string             `json:"id"`
	Phase        string             `json:"phase"`
	HasImage     bool               `json:"hasImage"`
	ImageDataURL string             `json:"imageDataUrl,omitempty"`
	Progress     *progressResponse  `json:"progress,omitempty"`
	Notice       string             `json:"notice,omitempty"`
	Report       *render.ReportView `json:"report,omitempty"`
}

func toSessionResponse(snap session.Snapshot) sessionResponse {
	resp := sessionResponse{
		ID:           snap.ID.String(),
		Phase:        string(snap.Phase),
		HasImage:     snap.HasImage,
		ImageDataURL: snap.ImageDataURL,
		Notice:       snap.Notice,
	}
	if snap.Phase == session.PhaseAnalyzing {
		resp.Progress = &progressResponse{
			Step:    snap.ProgressStep,
			Label:   snap.ProgressLabel,
			Percent: snap.ProgressPercent,
		}
	}
	if snap.Phase == session.PhaseResults && snap.Result != nil {
		view := render.BuildReportView(*snap.Result)
		resp.Report = &view
	}
	return resp
}

// CreateSession starts a fresh flow in the landing phase.
func (h *Handler) CreateSession(c *gin.Context) {
	sess := h.sessions.Create()
	c.JSON(http.StatusCreated, toSessionResponse(sess.Snapshot()))
}

// GetSession returns the observable session state, including the rendered
// report once analysis has finished.
func (h *Handler) GetSession(c *gin.Context) {
	sess, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(sess.Snapshot()))
}

// StartSession moves the session from landing to upload.
func (h *Handler) StartSession(c *gin.Context) {
	sess, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := sess.Start(); err != nil {
		abortWithError(c, httpErrorFrom(err))
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(sess.Snapshot()))
}

// AttachImage validates the uploaded photo and stores its preview on the
// session, replacing any previous upload.
func (h *Handler) AttachImage(c *gin.Context) {
	sess, ok := h.lookup(c)
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("file")
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_input", "Изображение не предоставлено", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.cfg.MaxUploadBytes+1))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_input", "Не удалось обработать изображение, попробуйте другой файл", err))
		return
	}

	preview, err := intake.Process(c.Request.Context(), data, h.cfg.MaxUploadBytes)
	if err != nil {
		abortWithError(c, httpErrorFrom(err))
		return
	}

	if err := sess.AttachImage(preview); err != nil {
		abortWithError(c, httpErrorFrom(err))
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(sess.Snapshot()))
}

// ClearImage discards the held photo.
func (h *Handler) ClearImage(c *gin.Context) {
	sess, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := sess.ClearImage(); err != nil {
		abortWithError(c, httpErrorFrom(err))
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(sess.Snapshot()))
}

// Analyze submits the held photo and runs the vision analysis in the
// background. The response returns immediately; clients poll GetSession for
// progress and the final phase.
func (h *Handler) Analyze(c *gin.Context) {
	sess, ok := h.lookup(c)
	if !ok {
		return
	}

	preview, err := sess.Submit()
	if err != nil {
		abortWithError(c, httpErrorFrom(err))
		return
	}

	go h.runAnalysis(sess, preview)

	c.JSON(http.StatusAccepted, toSessionResponse(sess.Snapshot()))
}

// runAnalysis drives a single background gateway call. The context is
// detached from the HTTP request so a closed connection cannot abort the
// session mid-flight.
func (h *Handler) runAnalysis(sess *session.Session, preview intake.Preview) {
	ctx, cancel := context.WithTimeout(context.Background(), h.cfg.AnalyzeTimeout)
	defer cancel()

	result, err := h.analysisSvc.Analyze(ctx, preview.DataURL)
	if err != nil {
		h.logger.Warn("analysis failed", "session", sess.ID(), "error", err)
		sess.Fail(err)
		return
	}
	sess.Complete(result)
}

// Back returns from the results screen to upload, keeping the photo.
func (h *Handler) Back(c *gin.Context) {
	sess, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := sess.Back(); err != nil {
		abortWithError(c, httpErrorFrom(err))
		return
	}
	c.JSON(http.StatusOK, toSessionResponse(sess.Snapshot()))
}

// DownloadReport streams the PDF rendition of the held result.
func (h *Handler) DownloadReport(c *gin.Context) {
	sess, ok := h.lookup(c)
	if !ok {
		return
	}

	snap := sess.Snapshot()
	if snap.Phase != session.PhaseResults || snap.Result == nil {
		abortWithError(c, NewHTTPError(http.StatusConflict, "invalid_transition", "no analysis result to export", nil))
		return
	}

	data, err := h.exporter.Render(*snap.Result)
	if err != nil {
		abortWithError(c, httpErrorFrom(err))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+h.exporter.FileName()+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// Products returns the categorized product selection for the held result.
func (h *Handler) Products(c *gin.Context) {
	sess, ok := h.lookup(c)
	if !ok {
		return
	}

	snap := sess.Snapshot()
	if snap.Phase != session.PhaseResults || snap.Result == nil {
		abortWithError(c, NewHTTPError(http.StatusConflict, "invalid_transition", "no analysis result to recommend from", nil))
		return
	}

	categories := products.Recommend(snap.Result.SkinType, snap.Result.Conditions)
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

func (h *Handler) lookup(c *gin.Context) (*session.Session, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_input", "malformed session id", err))
		return nil, false
	}
	sess, ok := h.sessions.Get(id)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusNotFound, "session_not_found", "session not found or expired", nil))
		return nil, false
	}
	return sess, true
}
