package handler

import (
	"errors"
	"net/http"

	"reembolsos/internal/repository"
	"reembolsos/internal/service"
	"reembolsos/pkg/pagination"
	"reembolsos/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReimbursementHandler struct {
	service service.ReimbursementService
	log     *zap.Logger
}

func NewReimbursementHandler(svc service.ReimbursementService, log *zap.Logger) *ReimbursementHandler {
	return &ReimbursementHandler{service: svc, log: log}
}

func (h *ReimbursementHandler) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/api/reembolsos")
	{
		admin.POST("", h.CreateReimbursement)
		admin.GET("", h.ListReimbursements)
		admin.PATCH("/:id/status", h.UpdateStatus)
	}

	public := router.Group("/api/public/reembolsos")
	{
		public.GET("/:token", h.GetByPublicToken)
	}
}

// CreateReimbursement creates a new reimbursement and mints its public link
// @Summary      Create reimbursement
// @Description  Validates the candidate record, persists it with status "pendiente" and a fresh 8-character public token
// @Tags         reembolsos
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateReimbursementRequest  true  "Create Reimbursement Payload"
// @Success      201      {object}  response.Response{data=service.ReimbursementResponse}
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /api/reembolsos [post]
func (h *ReimbursementHandler) CreateReimbursement(c *gin.Context) {
	var req service.CreateReimbursementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	rec, err := h.service.CreateReimbursement(c.Request.Context(), req)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, verr.Error()))
			return
		}
		h.log.Error("create reimbursement failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	h.log.Info("reimbursement created",
		zap.String("id", rec.ID),
		zap.String("public_token", rec.PublicToken),
		zap.String("company", rec.Company))
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, rec))
}

// ListReimbursements returns one page of records, newest first
// @Summary      List reimbursements
// @Description  Paginated history ordered by creation date descending; total reflects the whole record set
// @Tags         reembolsos
// @Produce      json
// @Param        page   query     int  false  "Page number (default 1)"
// @Param        limit  query     int  false  "Rows per page (default 10)"
// @Success      200    {object}  response.Response{data=object}
// @Failure      500    {object}  response.Response
// @Router       /api/reembolsos [get]
func (h *ReimbursementHandler) ListReimbursements(c *gin.Context) {
	params := pagination.Parse(c)

	records, total, err := h.service.ListReimbursements(c.Request.Context(), params.Page, params.Limit)
	if err != nil {
		h.log.Error("list reimbursements failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"reembolsos":  records,
		"total":       total,
		"page":        params.Page,
		"limit":       params.Limit,
		"total_pages": pagination.TotalPages(total, params.Limit),
	}))
}

// UpdateStatus sets the status of one reimbursement
// @Summary      Update status
// @Description  Unconditionally sets the status to pendiente, completado or rechazado; last write wins
// @Tags         reembolsos
// @Accept       json
// @Produce      json
// @Param        id       path      string               true  "Reimbursement ID"
// @Param        payload  body      UpdateStatusRequest  true  "New status"
// @Success      200      {object}  response.Response{data=service.ReimbursementResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/reembolsos/{id}/status [patch]
func (h *ReimbursementHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	rec, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, verr.Error()))
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, response.NotFound("Reembolso no encontrado"))
		default:
			h.log.Error("update status failed", zap.String("id", c.Param("id")), zap.Error(err))
			c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		}
		return
	}

	h.log.Info("reimbursement status updated",
		zap.String("id", rec.ID),
		zap.String("status", rec.Status))
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rec))
}

// GetByPublicToken resolves one record for the public payment page
// @Summary      Get reimbursement by public token
// @Description  Exact-match lookup by the 8-character public token, enriched with derived display fields
// @Tags         public
// @Produce      json
// @Param        token  path      string  true  "Public token"
// @Success      200    {object}  response.Response{data=service.PublicReimbursementResponse}
// @Failure      404    {object}  response.Response
// @Router       /api/public/reembolsos/{token} [get]
func (h *ReimbursementHandler) GetByPublicToken(c *gin.Context) {
	rec, err := h.service.GetByPublicToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.NotFound("Reembolso no encontrado"))
			return
		}
		h.log.Error("public lookup failed", zap.String("token", c.Param("token")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, rec))
}

// UpdateStatusRequest carries the new status value.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
