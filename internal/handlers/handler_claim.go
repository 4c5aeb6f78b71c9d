package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/cmcs-dev/cmcs_backend/internal/apperrors"
	"github.com/cmcs-dev/cmcs_backend/internal/core/domain"
	portssvc "github.com/cmcs-dev/cmcs_backend/internal/core/ports/services"
	"github.com/cmcs-dev/cmcs_backend/internal/dto"
	"github.com/cmcs-dev/cmcs_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxDocumentSizeBytes caps supporting document uploads at 5 MB.
const maxDocumentSizeBytes = 5 << 20

// allowedDocumentExtensions lists the accepted supporting document types.
var allowedDocumentExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".xlsx": true,
}

// claimHandler handles HTTP requests for the lecturer claim workflow.
type claimHandler struct {
	claimService portssvc.ClaimSvcFacade
	userService  portssvc.UserSvcFacade
	uploadDir    string
}

// newClaimHandler creates a new claimHandler.
func newClaimHandler(cs portssvc.ClaimSvcFacade, us portssvc.UserSvcFacade, uploadDir string) *claimHandler {
	return &claimHandler{
		claimService: cs,
		userService:  us,
		uploadDir:    uploadDir,
	}
}

// RegisterClaimRoutes registers the lecturer-facing claim routes.
func RegisterClaimRoutes(rg *gin.RouterGroup, claimService portssvc.ClaimSvcFacade, userService portssvc.UserSvcFacade, uploadDir string) {
	h := newClaimHandler(claimService, userService, uploadDir)

	claims := rg.Group("/claims")
	{
		claims.POST("", middleware.RequireRole(domain.RoleLecturer), h.submitClaim)
		claims.GET("/my", middleware.RequireRole(domain.RoleLecturer), h.listOwnClaims)
		claims.GET("/:id", h.getClaim)
		claims.GET("/:id/document", h.downloadDocument)
		claims.DELETE("/:id", middleware.RequireRole(domain.RoleLecturer, domain.RoleCoordinator, domain.RoleManager), h.deleteClaim)
	}
}

// lecturerIDForUser resolves the lecturer record linked to the logged-in user.
func (h *claimHandler) lecturerIDForUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve user"})
		return "", false
	}
	if user.LecturerID == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is not linked to a lecturer record"})
		return "", false
	}
	return *user.LecturerID, true
}

// submitClaim godoc
// @Summary Submit a new claim
// @Description Submits a monthly hours-worked claim, optionally with a supporting document (multipart field "document")
// @Tags claims
// @Accept mpfd
// @Produce json
// @Param moduleName formData string true "Module name"
// @Param month formData string true "Claim month"
// @Param hoursWorked formData int true "Hours worked"
// @Param document formData file false "Supporting document"
// @Success 201 {object} dto.ClaimResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 403 {object} map[string]string "Not a lecturer account"
// @Failure 500 {object} map[string]string "Failed to submit claim"
// @Security BearerAuth
// @Router /claims [post]
func (h *claimHandler) submitClaim(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SubmitClaimRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	lecturerID, ok := h.lecturerIDForUser(c)
	if !ok {
		return
	}
	userID, _ := middleware.GetUserIDFromContext(c)

	if file, err := c.FormFile("document"); err == nil {
		if file.Size > maxDocumentSizeBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Supporting document exceeds the 5MB limit"})
			return
		}
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedDocumentExtensions[ext] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Supporting document must be a PDF, DOCX or XLSX file"})
			return
		}
		storedName := uuid.NewString() + ext
		if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, storedName)); err != nil {
			logger.Error("Failed to store supporting document", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store supporting document"})
			return
		}
		req.SupportingDocument = &storedName
	}

	claim, err := h.claimService.SubmitClaim(c.Request.Context(), lecturerID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lecturer record not found"})
			return
		}
		logger.Error("Failed to submit claim", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit claim"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToClaimResponse(claim))
}

// listOwnClaims godoc
// @Summary List own claims
// @Description Lists every claim belonging to the logged-in lecturer
// @Tags claims
// @Produce json
// @Success 200 {object} dto.ListClaimsResponse
// @Failure 403 {object} map[string]string "Not a lecturer account"
// @Failure 500 {object} map[string]string "Failed to list claims"
// @Security BearerAuth
// @Router /claims/my [get]
func (h *claimHandler) listOwnClaims(c *gin.Context) {
	lecturerID, ok := h.lecturerIDForUser(c)
	if !ok {
		return
	}

	claims, err := h.claimService.ListClaimsByLecturer(c.Request.Context(), lecturerID)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list own claims", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list claims"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListClaimsResponse(claims, nil))
}

// canAccessClaim reports whether the logged-in user may read the claim.
// Staff roles see every claim; lecturers only see their own.
func (h *claimHandler) canAccessClaim(c *gin.Context, claim *domain.Claim) bool {
	role, ok := middleware.GetRoleFromContext(c)
	if !ok {
		return false
	}
	if role != domain.RoleLecturer {
		return true
	}

	lecturerID, ok := h.lecturerIDForUser(c)
	if !ok {
		return false
	}
	return claim.LecturerID == lecturerID
}

// getClaim godoc
// @Summary Get a claim by ID
// @Description Retrieves a single claim. Lecturers may only access their own claims.
// @Tags claims
// @Produce json
// @Param id path string true "Claim ID"
// @Success 200 {object} dto.ClaimResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Claim not found"
// @Failure 500 {object} map[string]string "Failed to retrieve claim"
// @Security BearerAuth
// @Router /claims/{id} [get]
func (h *claimHandler) getClaim(c *gin.Context) {
	claimID := c.Param("id")

	claim, err := h.claimService.GetClaimByID(c.Request.Context(), claimID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Claim not found"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to get claim", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve claim"})
		return
	}

	if !h.canAccessClaim(c, claim) {
		if !c.Writer.Written() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToClaimResponse(claim))
}

// downloadDocument godoc
// @Summary Download a claim's supporting document
// @Description Streams the supporting document attached to a claim
// @Tags claims
// @Produce octet-stream
// @Param id path string true "Claim ID"
// @Success 200 {file} file
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Claim or document not found"
// @Security BearerAuth
// @Router /claims/{id}/document [get]
func (h *claimHandler) downloadDocument(c *gin.Context) {
	claimID := c.Param("id")

	claim, err := h.claimService.GetClaimByID(c.Request.Context(), claimID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Claim not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve claim"})
		return
	}

	if !h.canAccessClaim(c, claim) {
		if !c.Writer.Written() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		}
		return
	}

	if claim.SupportingDocument == nil || *claim.SupportingDocument == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Claim has no supporting document"})
		return
	}

	// The stored name is server-generated, never client input
	c.FileAttachment(filepath.Join(h.uploadDir, *claim.SupportingDocument), *claim.SupportingDocument)
}

// deleteClaim godoc
// @Summary Delete a claim
// @Description Deletes a claim when the acting role may delete it in its current status
// @Tags claims
// @Produce json
// @Param id path string true "Claim ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Claim not found"
// @Failure 500 {object} map[string]string "Failed to delete claim"
// @Security BearerAuth
// @Router /claims/{id} [delete]
func (h *claimHandler) deleteClaim(c *gin.Context) {
	claimID := c.Param("id")

	role, ok := middleware.GetRoleFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// Lecturers may only delete their own claims
	if role == domain.RoleLecturer {
		claim, err := h.claimService.GetClaimByID(c.Request.Context(), claimID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Claim not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve claim"})
			return
		}
		if !h.canAccessClaim(c, claim) {
			if !c.Writer.Written() {
				c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			}
			return
		}
	}

	if err := h.claimService.DeleteClaim(c.Request.Context(), claimID, role, userID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Claim not found"})
		case errors.Is(err, apperrors.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "Claim cannot be deleted in its current status"})
		default:
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to delete claim", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete claim"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
