package handler

import (
	"errors"
	"net/http"

	"reembolsos/internal/repository"
	"reembolsos/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PageHandler serves the server-rendered pages: the admin dashboard and the
// public payment page. All data-changing actions go through the JSON API;
// the pages only read.
type PageHandler struct {
	service service.ReimbursementService
	log     *zap.Logger
}

func NewPageHandler(svc service.ReimbursementService, log *zap.Logger) *PageHandler {
	return &PageHandler{service: svc, log: log}
}

func (h *PageHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/admin", h.AdminDashboard)
	router.GET("/reembolso/:token", h.PublicPage)
}

// AdminDashboard renders the creation form plus the paginated history table.
// The table itself is populated client-side from /api/reembolsos.
func (h *PageHandler) AdminDashboard(c *gin.Context) {
	c.HTML(http.StatusOK, "admin.html", gin.H{
		"title": "Panel de reembolsos",
	})
}

// PublicPage renders payment instructions for one reimbursement. An unknown
// token gets a dedicated not-found page with a way back, never an error dump.
func (h *PageHandler) PublicPage(c *gin.Context) {
	rec, err := h.service.GetByPublicToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.HTML(http.StatusNotFound, "notfound.html", gin.H{})
			return
		}
		h.log.Error("public page lookup failed", zap.String("token", c.Param("token")), zap.Error(err))
		c.HTML(http.StatusInternalServerError, "notfound.html", gin.H{
			"message": "No se pudo cargar la información. Inténtelo de nuevo.",
		})
		return
	}

	c.HTML(http.StatusOK, "reembolso.html", gin.H{
		"r": rec,
	})
}
