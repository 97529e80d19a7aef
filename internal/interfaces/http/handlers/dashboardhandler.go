package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coursekit/internal/application/course/usecases"
	"coursekit/internal/shared/logger"
	"coursekit/internal/shared/session"
	"coursekit/internal/shared/utils"
)

// DashboardHandler serves the student's own course list.
type DashboardHandler struct {
	getDashboardUseCase *usecases.GetDashboardUseCase
	sessions            *session.Store
	logger              logger.Interface
}

func NewDashboardHandler(
	getDashboardUC *usecases.GetDashboardUseCase,
	sessions *session.Store,
	logger logger.Interface,
) *DashboardHandler {
	return &DashboardHandler{
		getDashboardUseCase: getDashboardUC,
		sessions:            sessions,
		logger:              logger,
	}
}

// GetDashboard handles GET /dashboard/courses.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	claims := h.sessions.Read(c)
	if claims == nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	enrolled, err := h.getDashboardUseCase.Execute(c.Request.Context(), claims.UserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", enrolled)
}
