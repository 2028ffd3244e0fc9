package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mocustoms/ledger_engine/internal/apperrors"
	"github.com/mocustoms/ledger_engine/internal/core/domain"
	portssvc "github.com/mocustoms/ledger_engine/internal/core/ports/services"
	"github.com/mocustoms/ledger_engine/internal/core/services"
	"github.com/mocustoms/ledger_engine/internal/dto"
	"github.com/mocustoms/ledger_engine/internal/middleware"
)

// postingHandler handles HTTP requests for the posting engine.
type postingHandler struct {
	postingService portssvc.PostingSvcFacade
}

// newPostingHandler creates a new postingHandler.
func newPostingHandler(postingService portssvc.PostingSvcFacade) *postingHandler {
	return &postingHandler{postingService: postingService}
}

// registerPostingRoutes registers posting engine routes.
func registerPostingRoutes(group *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newPostingHandler(postingService)

	postings := group.Group("/postings")
	{
		postings.POST("", h.createPosting)
		postings.GET("", h.listPostingGroups)
		postings.GET("/:referenceNumber", h.getPostingGroup)
		postings.POST("/:referenceNumber/reverse", h.reversePosting)
	}
	entries := group.Group("/entries")
	{
		entries.PATCH("/:entryID/account", h.correctEntryAccount)
		entries.GET("/by-account/:accountID", h.listEntriesByAccount)
	}
}

// createPosting godoc
// @Summary Post a balanced group of ledger entries
// @Description Validates and persists one business event as a balanced posting group. Re-posting the same reference and type returns the existing group unchanged.
// @Tags postings
// @Accept json
// @Produce json
// @Param posting body dto.CreatePostingRequest true "Posting group"
// @Success 200 {object} dto.PostingGroupResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 422 {object} map[string]string "Period closed or rate missing"
// @Failure 500 {object} map[string]string "Failed to post"
// @Security BearerAuth
// @Router /postings [post]
func (h *postingHandler) createPosting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createPosting", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	group, err := h.postingService.Post(c.Request.Context(), actor.CompanyID, req, actor)
	if err != nil {
		respondPostingError(c, logger, err, req.ReferenceNumber)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostingGroupResponse(group))
}

// getPostingGroup godoc
// @Summary Get a posting group by reference number
// @Tags postings
// @Produce json
// @Param referenceNumber path string true "Reference number"
// @Param transactionType query string true "Transaction type"
// @Success 200 {object} dto.PostingGroupResponse
// @Failure 404 {object} map[string]string "Posting group not found"
// @Security BearerAuth
// @Router /postings/{referenceNumber} [get]
func (h *postingHandler) getPostingGroup(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	referenceNumber := c.Param("referenceNumber")
	transactionType := c.Query("transactionType")
	if transactionType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "transactionType query parameter required"})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	group, err := h.postingService.GetGroupByReference(c.Request.Context(), actor.CompanyID, referenceNumber, domain.TransactionType(transactionType))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Posting group not found"})
			return
		}
		logger.Error("Failed to get posting group", slog.String("error", err.Error()), slog.String("reference_number", referenceNumber))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posting group"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPostingGroupResponse(group))
}

// listPostingGroups godoc
// @Summary List the company's posting groups
// @Description Returns posting groups newest first, without their entries.
// @Tags postings
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} map[string][]dto.PostingGroupResponse
// @Security BearerAuth
// @Router /postings [get]
func (h *postingHandler) listPostingGroups(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	groups, err := h.postingService.ListGroups(c.Request.Context(), actor.CompanyID, limit, offset)
	if err != nil {
		logger.Error("Failed to list posting groups", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list posting groups"})
		return
	}

	responses := make([]dto.PostingGroupResponse, len(groups))
	for i := range groups {
		responses[i] = dto.ToPostingGroupResponse(&groups[i])
	}
	c.JSON(http.StatusOK, gin.H{"postingGroups": responses})
}

// reversePosting godoc
// @Summary Reverse a posted reference
// @Description Posts the offsetting group: sides mirrored, amounts, rates and dates identical.
// @Tags postings
// @Produce json
// @Param referenceNumber path string true "Original reference number"
// @Success 200 {object} dto.PostingGroupResponse
// @Failure 404 {object} map[string]string "Nothing to reverse"
// @Failure 409 {object} map[string]string "Already reversed"
// @Security BearerAuth
// @Router /postings/{referenceNumber}/reverse [post]
func (h *postingHandler) reversePosting(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	referenceNumber := c.Param("referenceNumber")

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	group, err := h.postingService.Reverse(c.Request.Context(), actor.CompanyID, referenceNumber, actor)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNothingToReverse):
			c.JSON(http.StatusNotFound, gin.H{"error": "No posted entries exist for reference " + referenceNumber})
		case errors.Is(err, services.ErrAlreadyReversed):
			c.JSON(http.StatusConflict, gin.H{"error": "Reference " + referenceNumber + " has already been reversed"})
		default:
			respondPostingError(c, logger, err, referenceNumber)
		}
		return
	}

	logger.Info("Posting reversed", slog.String("reference_number", referenceNumber))
	c.JSON(http.StatusOK, dto.ToPostingGroupResponse(group))
}

// correctEntryAccount godoc
// @Summary Repoint one ledger entry's account snapshot
// @Description The audited repair path for entries posted against the wrong account. Amounts, sides and dates never change; the owning period must be open.
// @Tags postings
// @Accept json
// @Produce json
// @Param entryID path string true "Ledger entry ID"
// @Param correction body dto.CorrectEntryAccountRequest true "Correction"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 404 {object} map[string]string "Entry or account not found"
// @Failure 422 {object} map[string]string "Period closed"
// @Security BearerAuth
// @Router /entries/{entryID}/account [patch]
func (h *postingHandler) correctEntryAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.CorrectEntryAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.postingService.CorrectEntryAccount(c.Request.Context(), actor.CompanyID, entryID, req, actor)
	if err != nil {
		respondPostingError(c, logger, err, entryID)
		return
	}

	logger.Info("Ledger entry account corrected", slog.String("entry_id", entryID), slog.String("reason", req.Reason))
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(*entry))
}

// listEntriesByAccount godoc
// @Summary List ledger entries for an account
// @Description Returns an account statement page with token-based pagination, newest first.
// @Tags postings
// @Produce json
// @Param accountID path string true "Account ID"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 404 {object} map[string]string "Account not found"
// @Security BearerAuth
// @Router /entries/by-account/{accountID} [get]
func (h *postingHandler) listEntriesByAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.postingService.ListEntriesByAccount(c.Request.Context(), actor.CompanyID, accountID, params)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		logger.Error("Failed to list account entries", slog.String("error", err.Error()), slog.String("account_id", accountID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve entries"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// respondPostingError maps posting pipeline errors onto HTTP statuses. An
// unbalanced group reaching persistence is an internal defect, so the client
// gets a correlation ID instead of the arithmetic detail.
func respondPostingError(c *gin.Context, logger *slog.Logger, err error, subject string) {
	var periodClosed *services.PeriodClosedError
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &periodClosed):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":        periodClosed.Error(),
			"closingNotes": periodClosed.ClosingNotes,
		})
	case errors.Is(err, services.ErrPostingTimeout):
		logger.Warn("Posting transaction timed out", slog.String("subject", subject))
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": err.Error(), "retryable": true})
	case errors.Is(err, services.ErrNoOpenPeriod):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNoExchangeRate):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmptyPosting):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUnbalancedPosting):
		incidentID := uuid.NewString()
		logger.Error("Unbalanced posting rejected", slog.String("error", err.Error()),
			slog.String("subject", subject), slog.String("incident_id", incidentID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Posting rejected", "incidentID": incidentID})
	case errors.Is(err, services.ErrTenantMismatch):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 500:
		// Repository-level rejections carry their own status, which keeps
		// them consistent with the equivalent service-level checks.
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Posting operation failed", slog.String("error", err.Error()), slog.String("subject", subject))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
