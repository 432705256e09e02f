package inputs

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"geovision-backend/internal/shared/server/middleware"
	"geovision-backend/internal/shared/server/respond"
)

const maxUploadSize = 30 << 20 // 30MB multipart body

// StoreResolver yields the input store for a session, creating the session
// when it does not exist yet.
type StoreResolver interface {
	StoreFor(sessionID string) *Store
}

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc      *Service
	Sessions StoreResolver
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, sessions StoreResolver) *Handler {
	return &Handler{Svc: svc, Sessions: sessions}
}

// RegisterRoutes attaches input routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/inputs", h.snapshot)
	rg.PUT("/inputs/:category/text", h.setText)
	rg.POST("/inputs/:category/attachments", h.addAttachments)
	rg.DELETE("/inputs/:category/attachments/:id", h.removeAttachment)
	rg.POST("/inputs/clear", h.clear)
	rg.GET("/attachments/:id/preview", h.preview)
}

type setTextRequest struct {
	Text string `json:"text"`
}

func (h *Handler) setText(c *gin.Context) {
	category, ok := ParseCategory(c.Param("category"))
	if !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unknown category", nil)
		return
	}

	var req setTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	store := h.Sessions.StoreFor(middleware.SessionIDFromContext(c))
	store.SetText(category, req.Text)

	respond.OK(c, gin.H{
		"category": category,
		"text":     req.Text,
	})
}

func (h *Handler) addAttachments(c *gin.Context) {
	category, ok := ParseCategory(c.Param("category"))
	if !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unknown category", nil)
		return
	}

	sessionID := middleware.SessionIDFromContext(c)
	store := h.Sessions.StoreFor(sessionID)

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)
	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid multipart body", nil)
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "at least one file is required", nil)
		return
	}

	added := make([]Attachment, 0, len(files))
	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
			return
		}

		att, err := h.Svc.AddAttachment(c.Request.Context(), sessionID, store, category,
			fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
		file.Close()
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to store attachment", nil)
			return
		}
		added = append(added, att)
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"category":    category,
		"attachments": added,
	})
}

func (h *Handler) removeAttachment(c *gin.Context) {
	category, ok := ParseCategory(c.Param("category"))
	if !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unknown category", nil)
		return
	}

	store := h.Sessions.StoreFor(middleware.SessionIDFromContext(c))
	if !h.Svc.RemoveAttachment(c.Request.Context(), store, category, c.Param("id")) {
		respond.Error(c, http.StatusNotFound, "not_found", "attachment not found", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) clear(c *gin.Context) {
	store := h.Sessions.StoreFor(middleware.SessionIDFromContext(c))
	h.Svc.ClearInputs(c.Request.Context(), store)
	c.Status(http.StatusNoContent)
}

type categorySnapshot struct {
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments"`
}

func (h *Handler) snapshot(c *gin.Context) {
	store := h.Sessions.StoreFor(middleware.SessionIDFromContext(c))
	snap := store.Snapshot()

	out := make(map[Category]categorySnapshot, len(Categories()))
	for _, category := range Categories() {
		atts := snap.Attachments[category]
		if atts == nil {
			atts = []Attachment{}
		}
		out[category] = categorySnapshot{
			Text:        snap.Text(category),
			Attachments: atts,
		}
	}
	respond.OK(c, gin.H{"categories": out})
}

func (h *Handler) preview(c *gin.Context) {
	store := h.Sessions.StoreFor(middleware.SessionIDFromContext(c))
	att, ok := store.Find(c.Param("id"))
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "attachment not found", nil)
		return
	}

	body, err := h.Svc.OpenPreview(c.Request.Context(), att)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "preview not available", nil)
		return
	}
	defer body.Close()

	c.Header("Content-Type", att.MimeType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, body)
}
