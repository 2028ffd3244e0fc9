package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mocustoms/ledger_engine/internal/apperrors"
	portssvc "github.com/mocustoms/ledger_engine/internal/core/ports/services"
	"github.com/mocustoms/ledger_engine/internal/dto"
	"github.com/mocustoms/ledger_engine/internal/middleware"
)

// financialYearHandler handles HTTP requests for financial period lifecycle.
type financialYearHandler struct {
	yearService portssvc.FinancialYearSvcFacade
}

func newFinancialYearHandler(yearService portssvc.FinancialYearSvcFacade) *financialYearHandler {
	return &financialYearHandler{yearService: yearService}
}

// registerFinancialYearRoutes registers financial year routes.
func registerFinancialYearRoutes(group *gin.RouterGroup, yearService portssvc.FinancialYearSvcFacade) {
	h := newFinancialYearHandler(yearService)

	years := group.Group("/financial-years")
	{
		years.POST("", h.createFinancialYear)
		years.GET("", h.listFinancialYears)
		years.POST("/:yearID/close", h.closeFinancialYear)
	}
}

// createFinancialYear godoc
// @Summary Create a financial year
// @Description Creates a company-scoped accounting period. Ranges may not overlap existing years.
// @Tags financial-years
// @Accept json
// @Produce json
// @Param year body dto.CreateFinancialYearRequest true "Financial year"
// @Success 201 {object} dto.FinancialYearResponse
// @Failure 400 {object} map[string]string "Invalid range"
// @Failure 409 {object} map[string]string "Range overlaps an existing year"
// @Security BearerAuth
// @Router /financial-years [post]
func (h *financialYearHandler) createFinancialYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateFinancialYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	year, err := h.yearService.CreateFinancialYear(c.Request.Context(), actor.CompanyID, req, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to create financial year", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create financial year"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToFinancialYearResponse(year))
}

// listFinancialYears godoc
// @Summary List the company's financial years
// @Tags financial-years
// @Produce json
// @Success 200 {object} map[string][]dto.FinancialYearResponse
// @Security BearerAuth
// @Router /financial-years [get]
func (h *financialYearHandler) listFinancialYears(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	years, err := h.yearService.ListFinancialYears(c.Request.Context(), actor.CompanyID)
	if err != nil {
		logger.Error("Failed to list financial years", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list financial years"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"financialYears": dto.ToFinancialYearResponses(years)})
}

// closeFinancialYear godoc
// @Summary Close a financial year
// @Description Closing is terminal: no further postings land in the period and there is no reopening path.
// @Tags financial-years
// @Accept json
// @Produce json
// @Param yearID path string true "Financial year ID"
// @Param closing body dto.CloseFinancialYearRequest true "Closing metadata"
// @Success 200 {object} dto.FinancialYearResponse
// @Failure 404 {object} map[string]string "Year not found"
// @Failure 409 {object} map[string]string "Year already closed"
// @Security BearerAuth
// @Router /financial-years/{yearID}/close [post]
func (h *financialYearHandler) closeFinancialYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	yearID := c.Param("yearID")

	var req dto.CloseFinancialYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	year, err := h.yearService.CloseFinancialYear(c.Request.Context(), actor.CompanyID, yearID, req, actor)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Financial year not found"})
		case errors.Is(err, apperrors.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to close financial year", slog.String("error", err.Error()), slog.String("year_id", yearID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close financial year"})
		}
		return
	}

	logger.Info("Financial year closed", slog.String("year_id", yearID))
	c.JSON(http.StatusOK, dto.ToFinancialYearResponse(year))
}
