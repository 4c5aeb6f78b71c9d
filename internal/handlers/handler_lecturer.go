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

// lecturerHandler handles HTTP requests for lecturer record management.
type lecturerHandler struct {
	lecturerService portssvc.LecturerSvcFacade
}

// newLecturerHandler creates a new lecturerHandler.
func newLecturerHandler(ls portssvc.LecturerSvcFacade) *lecturerHandler {
	return &lecturerHandler{lecturerService: ls}
}

// registerLecturerRoutes registers the lecturer record routes. Creation and
// updates are HR-only; reads are open to every staff role.
func registerLecturerRoutes(rg *gin.RouterGroup, lecturerService portssvc.LecturerSvcFacade) {
	h := newLecturerHandler(lecturerService)

	staffRead := middleware.RequireRole(domain.RoleCoordinator, domain.RoleManager, domain.RoleHR)
	lecturers := rg.Group("/lecturers")
	{
		lecturers.POST("", middleware.RequireRole(domain.RoleHR), h.createLecturer)
		lecturers.GET("", staffRead, h.listLecturers)
		lecturers.GET("/:id", staffRead, h.getLecturer)
		lecturers.PUT("/:id", middleware.RequireRole(domain.RoleHR), h.updateLecturer)
	}
}

// createLecturer godoc
// @Summary Register a new lecturer
// @Description Creates a lecturer record and provisions a linked login account. The one-time initial password is returned exactly once.
// @Tags lecturers
// @Accept json
// @Produce json
// @Param lecturer body dto.CreateLecturerRequest true "Lecturer details"
// @Success 201 {object} dto.CreateLecturerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Email already registered"
// @Failure 500 {object} map[string]string "Failed to create lecturer"
// @Security BearerAuth
// @Router /lecturers [post]
func (h *lecturerHandler) createLecturer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateLecturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	lecturer, initialPassword, err := h.lecturerService.CreateLecturer(c.Request.Context(), req, creatorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "A lecturer with this email is already registered"})
			return
		}
		logger.Error("Failed to create lecturer", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create lecturer"})
		return
	}

	c.JSON(http.StatusCreated, dto.CreateLecturerResponse{
		Lecturer:        dto.ToLecturerResponse(lecturer),
		InitialPassword: initialPassword,
	})
}

// listLecturers godoc
// @Summary List lecturers
// @Description Lists lecturer records ordered by full name
// @Tags lecturers
// @Produce json
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListLecturersResponse
// @Failure 500 {object} map[string]string "Failed to list lecturers"
// @Security BearerAuth
// @Router /lecturers [get]
func (h *lecturerHandler) listLecturers(c *gin.Context) {
	var params struct {
		Limit  int `form:"limit,default=20"`
		Offset int `form:"offset,default=0"`
	}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	lecturers, err := h.lecturerService.ListLecturers(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list lecturers", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list lecturers"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListLecturersResponse(lecturers))
}

// getLecturer godoc
// @Summary Get a lecturer by ID
// @Description Retrieves a single lecturer record
// @Tags lecturers
// @Produce json
// @Param id path string true "Lecturer ID"
// @Success 200 {object} dto.LecturerResponse
// @Failure 404 {object} map[string]string "Lecturer not found"
// @Failure 500 {object} map[string]string "Failed to retrieve lecturer"
// @Security BearerAuth
// @Router /lecturers/{id} [get]
func (h *lecturerHandler) getLecturer(c *gin.Context) {
	lecturer, err := h.lecturerService.GetLecturerByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lecturer not found"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to get lecturer", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve lecturer"})
		return
	}

	c.JSON(http.StatusOK, dto.ToLecturerResponse(lecturer))
}

// updateLecturer godoc
// @Summary Update a lecturer
// @Description Updates a lecturer's details. Rate changes never alter already-submitted claims.
// @Tags lecturers
// @Accept json
// @Produce json
// @Param id path string true "Lecturer ID"
// @Param lecturer body dto.UpdateLecturerRequest true "Fields to update"
// @Success 200 {object} dto.LecturerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Lecturer not found"
// @Failure 500 {object} map[string]string "Failed to update lecturer"
// @Security BearerAuth
// @Router /lecturers/{id} [put]
func (h *lecturerHandler) updateLecturer(c *gin.Context) {
	var req dto.UpdateLecturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	lecturer, err := h.lecturerService.UpdateLecturer(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lecturer not found"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to update lecturer", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lecturer"})
		return
	}

	c.JSON(http.StatusOK, dto.ToLecturerResponse(lecturer))
}
