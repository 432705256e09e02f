package session

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"geovision-backend/internal/catalog"
	"geovision-backend/internal/inputs"
	"geovision-backend/internal/locale"
	"geovision-backend/internal/shared/server/middleware"
	"geovision-backend/internal/shared/server/respond"
)

// Handler serves the session-scoped surface: active view, locale and the
// searchable catalog.
type Handler struct {
	Sessions *Manager
}

// NewHandler constructs a Handler.
func NewHandler(sessions *Manager) *Handler {
	return &Handler{Sessions: sessions}
}

// RegisterRoutes attaches session routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/view", h.getView)
	rg.POST("/view", h.setView)
	rg.GET("/catalog", h.catalog)
	rg.PUT("/locale", h.setLocale)
	rg.GET("/locale/labels", h.labels)
}

func (h *Handler) session(c *gin.Context) *Session {
	return h.Sessions.Get(middleware.SessionIDFromContext(c))
}

func (h *Handler) getView(c *gin.Context) {
	respond.OK(c, gin.H{"view": h.session(c).View()})
}

type setViewRequest struct {
	View string `json:"view"`
}

func (h *Handler) setView(c *gin.Context) {
	var req setViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	view, ok := ParseView(req.View)
	if !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unknown view", nil)
		return
	}
	h.session(c).SetView(view)
	respond.OK(c, gin.H{"view": view})
}

func (h *Handler) catalog(c *gin.Context) {
	sess := h.session(c)
	items := catalog.Items(locale.For(sess.Locale()))
	respond.OK(c, gin.H{"items": catalog.Filter(c.Query("q"), items)})
}

type setLocaleRequest struct {
	Locale string `json:"locale"`
}

func (h *Handler) setLocale(c *gin.Context) {
	var req setLocaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	loc := locale.Parse(req.Locale)
	h.session(c).SetLocale(loc)
	respond.OK(c, gin.H{"locale": loc})
}

func (h *Handler) labels(c *gin.Context) {
	sess := h.session(c)
	table := locale.For(sess.Locale())

	categories := make(map[inputs.Category]string, len(inputs.Categories()))
	for _, cat := range inputs.Categories() {
		categories[cat] = table.CategoryLabel(cat)
	}

	respond.OK(c, gin.H{
		"locale":      sess.Locale(),
		"placeholder": table.Placeholder,
		"categories":  categories,
		"modules":     table.Modules,
		"views": gin.H{
			"dataEntry":     table.DataEntryLabel,
			"results":       table.ResultsToolLabel,
			"heatmapScript": table.HeatmapToolLabel,
		},
	})
}
