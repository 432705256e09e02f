package analysis

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"geovision-backend/internal/assemble"
	"geovision-backend/internal/llm"
	"geovision-backend/internal/locale"
	"geovision-backend/internal/shared/server/middleware"
	"geovision-backend/internal/shared/server/respond"
)

// SessionResolver yields per-session collaborators for the HTTP layer.
type SessionResolver interface {
	ControllerFor(sessionID string) *Controller
	LocaleFor(sessionID string) locale.Locale
	ViewFor(sessionID string) string
}

// Handler wires HTTP handlers to the controller and history repo.
type Handler struct {
	Sessions SessionResolver
	Repo     Repo
}

// NewHandler constructs a Handler.
func NewHandler(sessions SessionResolver, repo Repo) *Handler {
	return &Handler{Sessions: sessions, Repo: repo}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.submit)
	rg.GET("/analyses/state", h.state)
	rg.GET("/analyses", h.list)
	rg.GET("/analyses/:id", h.get)
}

type submitRequest struct {
	Mode   string `json:"mode"`
	Module string `json:"module"`
}

func (h *Handler) submit(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	mode, err := assemble.ParseMode(req.Mode, req.Module)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	ctrl := h.Sessions.ControllerFor(sessionID)
	id, err := ctrl.Submit(c.Request.Context(), mode)
	if err != nil {
		switch {
		case errors.Is(err, ErrInFlight):
			respond.Error(c, http.StatusConflict, "in_flight", "a submission is already in flight", nil)
		case errors.Is(err, llm.ErrNotConfigured):
			table := locale.For(h.Sessions.LocaleFor(sessionID))
			respond.Error(c, http.StatusServiceUnavailable, "not_configured", table.NotConfiguredError, nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to start submission", nil)
		}
		return
	}

	respond.JSON(c, http.StatusAccepted, gin.H{
		"submissionId": id,
		"state":        StateSubmitting,
	})
}

func (h *Handler) state(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)
	status := h.Sessions.ControllerFor(sessionID).Status()
	respond.OK(c, gin.H{
		"state":        status.State,
		"submissionId": status.SubmissionID,
		"result":       status.Result,
		"failure":      status.Failure,
		"activeView":   h.Sessions.ViewFor(sessionID),
	})
}

func (h *Handler) list(c *gin.Context) {
	sessionID := middleware.SessionIDFromContext(c)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	subs, err := h.Repo.ListBySession(c.Request.Context(), sessionID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list submissions", nil)
		return
	}
	respond.OK(c, gin.H{"submissions": subs})
}

func (h *Handler) get(c *gin.Context) {
	sub, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "submission not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load submission", nil)
		return
	}
	if sub.SessionID != middleware.SessionIDFromContext(c) {
		respond.Error(c, http.StatusNotFound, "not_found", "submission not found", nil)
		return
	}
	respond.OK(c, sub)
}
