package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brexcellence/intranet-server/internal/models"
	"github.com/brexcellence/intranet-server/internal/period"
	"github.com/brexcellence/intranet-server/internal/service"
)

// Handler wires HTTP routes to the service layer.
type Handler struct {
	svc service.Service
}

// NewHandler creates a new API handler
func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

// SetupRoutes registers all routes on the router. Everything except login,
// password reset and health requires a bearer token.
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)

	auth := router.Group("/api/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/password-reset/request", h.RequestPasswordReset)
		auth.POST("/password-reset/confirm", h.ResetPasswordWithCode)
	}

	protected := router.Group("/api", AuthMiddleware())
	{
		protected.GET("/data/initial", h.GetInitialData)
		protected.GET("/dashboard", h.ComputeDashboard)
		protected.GET("/dashboard/kpi/:name", h.GetKpiDetails)
		protected.POST("/forecasts", h.AddForecast)
		protected.POST("/clients", h.AddClient)
		protected.POST("/proposals", h.SaveGeneratedProposal)
		protected.POST("/salaries", h.AddSalaryBaseEntry)
		protected.PUT("/salaries", h.UpdateSalaryBaseEntries)
		protected.POST("/documents/proposal", h.GenerateProposalPDF)
		protected.POST("/documents/report", h.GenerateReportPDF)
	}
}

// Health reports service liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Status:  "error",
				Code:    "INVALID_CREDENTIALS",
				Message: err.Error(),
			})
			return
		}
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) RequestPasswordReset(c *gin.Context) {
	var req models.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.svc.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		failure(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ResetPasswordWithCode(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.svc.ResetPasswordWithCode(c.Request.Context(), req.Code, req.NewPassword)
	if err != nil {
		failure(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) AddForecast(c *gin.Context) {
	var req models.ForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.svc.AddForecast(c.Request.Context(), req, c.GetString("userName"))
	if err != nil {
		failure(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) AddClient(c *gin.Context) {
	var req models.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.svc.AddClient(c.Request.Context(), req)
	if err != nil {
		failure(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) SaveGeneratedProposal(c *gin.Context) {
	var req models.ProposalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.svc.SaveGeneratedProposal(c.Request.Context(), req)
	if err != nil {
		failure(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) AddSalaryBaseEntry(c *gin.Context) {
	var req models.SalaryEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.svc.AddSalaryBaseEntry(c.Request.Context(), req)
	if err != nil {
		failure(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) UpdateSalaryBaseEntries(c *gin.Context) {
	var req models.UpdateSalariesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.svc.UpdateSalaryBaseEntries(c.Request.Context(), req.Entries)
	if err != nil {
		failure(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetInitialData(c *gin.Context) {
	resp, err := h.svc.GetInitialData(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ComputeDashboard(c *gin.Context) {
	var p period.Period
	if err := c.ShouldBindQuery(&p); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.svc.ComputeDashboard(c.Request.Context(), p)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetKpiDetails(c *gin.Context) {
	var p period.Period
	if err := c.ShouldBindQuery(&p); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.svc.GetKpiDetails(c.Request.Context(), c.Param("name"), p)
	if err != nil {
		if errors.Is(err, service.ErrUnknownKPI) {
			c.JSON(http.StatusNotFound, models.KpiDetailsResponse{
				Headers: []string{},
				Data:    [][]interface{}{},
				Error:   err.Error(),
			})
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GenerateProposalPDF(c *gin.Context) {
	var req models.ProposalPDFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.svc.GenerateProposalPDF(c.Request.Context(), req)
	if err != nil {
		failure(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GenerateReportPDF(c *gin.Context) {
	var req models.ReportPDFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := h.svc.GenerateReportPDF(c.Request.Context(), req, c.GetString("userRole"))
	if err != nil {
		failure(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Status:  "error",
		Code:    "BAD_REQUEST",
		Message: err.Error(),
	})
}

// failure converts a service error into the structured operation outcome;
// faults never propagate past the operation boundary as bare errors.
func failure(c *gin.Context, err error) {
	c.JSON(http.StatusOK, models.StatusResponse{
		Success: false,
		Message: err.Error(),
	})
}

func internalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Status:  "error",
		Code:    "INTERNAL_ERROR",
		Message: err.Error(),
	})
}
