package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"coursekit/internal/application/admin/dto"
	"coursekit/internal/application/admin/usecases"
	"coursekit/internal/shared/logger"
	"coursekit/internal/shared/session"
	"coursekit/internal/shared/utils"
)

// EnrollmentHandler grants and revokes course access from the back-office.
// The same grant path is exposed to the checkout webhook.
type EnrollmentHandler struct {
	grantUseCase  *usecases.GrantEnrollmentUseCase
	revokeUseCase *usecases.RevokeEnrollmentUseCase
	sessions      *session.Store
	logger        logger.Interface
}

func NewEnrollmentHandler(
	grantUC *usecases.GrantEnrollmentUseCase,
	revokeUC *usecases.RevokeEnrollmentUseCase,
	sessions *session.Store,
	logger logger.Interface,
) *EnrollmentHandler {
	return &EnrollmentHandler{
		grantUseCase:  grantUC,
		revokeUseCase: revokeUC,
		sessions:      sessions,
		logger:        logger,
	}
}

// GrantEnrollment handles POST /admin/enrollments.
func (h *EnrollmentHandler) GrantEnrollment(c *gin.Context) {
	if !requireAdmin(c, h.sessions) {
		return
	}

	var req dto.GrantEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	e, err := h.grantUseCase.Execute(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"enrollment_id": e.ID,
		"user_id":       e.UserID,
		"course_id":     e.CourseID,
		"status":        string(e.Status),
	})
}

// RevokeEnrollment handles DELETE /admin/enrollments/:userID/:courseID.
func (h *EnrollmentHandler) RevokeEnrollment(c *gin.Context) {
	if !requireAdmin(c, h.sessions) {
		return
	}

	userID, err := strconv.ParseUint(c.Param("userID"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid user id")
		return
	}
	courseID, err := strconv.ParseUint(c.Param("courseID"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid course id")
		return
	}

	if err := h.revokeUseCase.Execute(c.Request.Context(), uint(userID), uint(courseID)); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "enrollment revoked", nil)
}
