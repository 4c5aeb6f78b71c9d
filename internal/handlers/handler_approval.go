package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmcs-dev/cmcs_backend/internal/apperrors"
	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
	portssvc "github.com/cmcs-dev/cmcs_backend/internal/core/ports/services"
	"github.com/cmcs-dev/cmcs_backend/internal/dto"
	"github.com/cmcs-dev/cmcs_backend/internal/middleware"

	"github.com/gin-gonic/gin"
)

// approvalHandler handles the coordinator and manager decision routes.
type approvalHandler struct {
	claimService      portssvc.ClaimSvcFacade
	automationService portssvc.AutomationSvcFacade
	validationService portssvc.ValidationSvcFacade
}

// newApprovalHandler creates a new approvalHandler.
func newApprovalHandler(cs portssvc.ClaimSvcFacade, as portssvc.AutomationSvcFacade, vs portssvc.ValidationSvcFacade) *approvalHandler {
	return &approvalHandler{
		claimService:      cs,
		automationService: as,
		validationService: vs,
	}
}

// RegisterApprovalRoutes registers the approval workflow routes.
func RegisterApprovalRoutes(rg *gin.RouterGroup, claimService portssvc.ClaimSvcFacade, automationService portssvc.AutomationSvcFacade, validationService portssvc.ValidationSvcFacade) {
	h := newApprovalHandler(claimService, automationService, validationService)

	approvals := rg.Group("/approvals")
	{
		approvals.GET("/attention", middleware.RequireRole(domain.RoleCoordinator, domain.RoleManager, domain.RoleHR), h.listAttention)
		approvals.GET("/:id/validation", middleware.RequireRole(domain.RoleCoordinator, domain.RoleManager), h.validateClaim)
		approvals.POST("/:id/approve", middleware.RequireRole(domain.RoleCoordinator), h.approveClaim)
		approvals.POST("/:id/verify", middleware.RequireRole(domain.RoleManager), h.verifyClaim)
		approvals.POST("/:id/reject", middleware.RequireRole(domain.RoleCoordinator, domain.RoleManager), h.rejectClaim)
		approvals.POST("/:id/auto-verify", middleware.RequireRole(domain.RoleCoordinator), h.autoVerifyClaim)
	}
}

// listAttention godoc
// @Summary List claims requiring attention
// @Description Lists the claims awaiting action from the caller's role
// @Tags approvals
// @Produce json
// @Success 200 {object} dto.ListClaimsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list claims"
// @Security BearerAuth
// @Router /approvals/attention [get]
func (h *approvalHandler) listAttention(c *gin.Context) {
	role, ok := middleware.GetRoleFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	claims, err := h.automationService.GetClaimsRequiringAttention(c.Request.Context(), role)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list claims requiring attention", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list claims"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListClaimsResponse(claims, nil))
}

// validateClaim godoc
// @Summary Validate a claim
// @Description Runs the business-rule validation engine against a claim without changing it
// @Tags approvals
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} dto.ValidationResultResponse
// @Failure 404 {object} map[string]string "Claim not found"
// @Failure 500 {object} map[string]string "Failed to validate claim"
// @Security BearerAuth
// @Router /approvals/{id}/validation [get]
func (h *approvalHandler) validateClaim(c *gin.Context) {
	claim, err := h.claimService.GetClaimByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Claim not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve claim"})
		return
	}

	result, err := h.validationService.ValidateClaim(c.Request.Context(), *claim)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to validate claim", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate claim"})
		return
	}

	c.JSON(http.StatusOK, dto.ToValidationResultResponse(result))
}

// decisionError maps workflow errors to HTTP responses.
func decisionError(c *gin.Context, err error, failMessage string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Claim not found"})
	case errors.Is(err, apperrors.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		middleware.GetLoggerFromCtx(c.Request.Context()).Error(failMessage, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": failMessage})
	}
}

// approveClaim godoc
// @Summary Approve a claim
// @Description Records coordinator approval of a submitted claim
// @Tags approvals
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} dto.ClaimResponse
// @Failure 404 {object} map[string]string "Claim not found"
// @Failure 409 {object} map[string]string "Claim not in an approvable status"
// @Failure 500 {object} map[string]string "Failed to approve claim"
// @Security BearerAuth
// @Router /approvals/{id}/approve [post]
func (h *approvalHandler) approveClaim(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	claim, err := h.claimService.ApproveClaim(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		decisionError(c, err, "Failed to approve claim")
		return
	}

	c.JSON(http.StatusOK, dto.ToClaimResponse(claim))
}

// verifyClaim godoc
// @Summary Verify a claim
// @Description Records manager verification of a coordinator-approved claim
// @Tags approvals
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} dto.ClaimResponse
// @Failure 404 {object} map[string]string "Claim not found"
// @Failure 409 {object} map[string]string "Claim not in a verifiable status"
// @Failure 500 {object} map[string]string "Failed to verify claim"
// @Security BearerAuth
// @Router /approvals/{id}/verify [post]
func (h *approvalHandler) verifyClaim(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	claim, err := h.claimService.VerifyClaim(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		decisionError(c, err, "Failed to verify claim")
		return
	}

	c.JSON(http.StatusOK, dto.ToClaimResponse(claim))
}

// rejectClaim godoc
// @Summary Reject a claim
// @Description Rejects a claim on behalf of the caller's role, with a mandatory reason
// @Tags approvals
// @Accept json
// @Produce json
// @Param id path string true "Claim ID"
// @Param rejection body dto.RejectClaimRequest true "Rejection reason"
// @Success 200 {object} dto.ClaimResponse
// @Failure 400 {object} map[string]string "Reason missing"
// @Failure 404 {object} map[string]string "Claim not found"
// @Failure 409 {object} map[string]string "Claim not in a rejectable status"
// @Failure 500 {object} map[string]string "Failed to reject claim"
// @Security BearerAuth
// @Router /approvals/{id}/reject [post]
func (h *approvalHandler) rejectClaim(c *gin.Context) {
	var req dto.RejectClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rejection reason is required"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	role, ok := middleware.GetRoleFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	claim, err := h.claimService.RejectClaim(c.Request.Context(), c.Param("id"), req.Reason, role, userID)
	if err != nil {
		decisionError(c, err, "Failed to reject claim")
		return
	}

	c.JSON(http.StatusOK, dto.ToClaimResponse(claim))
}

// autoVerifyClaim godoc
// @Summary Auto-verify a claim
// @Description Runs the automation engine against a claim, applying at most one automatic decision
// @Tags approvals
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} dto.ValidationResultResponse
// @Failure 404 {object} map[string]string "Claim not found"
// @Failure 500 {object} map[string]string "Failed to auto-verify claim"
// @Security BearerAuth
// @Router /approvals/{id}/auto-verify [post]
func (h *approvalHandler) autoVerifyClaim(c *gin.Context) {
	result, err := h.automationService.AutoVerifyClaim(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Claim not found"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to auto-verify claim", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to auto-verify claim"})
		return
	}

	c.JSON(http.StatusOK, dto.ToValidationResultResponse(result))
}
