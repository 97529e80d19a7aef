package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coursekit/internal/application/admin/dto"
	"coursekit/internal/application/admin/usecases"
	coursedto "coursekit/internal/application/course/dto"
	"coursekit/internal/shared/logger"
	"coursekit/internal/shared/session"
	"coursekit/internal/shared/utils"
)

// CourseHandler is the back-office course authoring surface.
type CourseHandler struct {
	createCourseUseCase *usecases.CreateCourseUseCase
	updateCourseUseCase *usecases.UpdateCourseUseCase
	sessions            *session.Store
	logger              logger.Interface
}

func NewCourseHandler(
	createCourseUC *usecases.CreateCourseUseCase,
	updateCourseUC *usecases.UpdateCourseUseCase,
	sessions *session.Store,
	logger logger.Interface,
) *CourseHandler {
	return &CourseHandler{
		createCourseUseCase: createCourseUC,
		updateCourseUseCase: updateCourseUC,
		sessions:            sessions,
		logger:              logger,
	}
}

// CreateCourse handles POST /admin/courses.
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	if !requireAdmin(c, h.sessions) {
		return
	}

	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.createCourseUseCase.Execute(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, coursedto.NewCourseDetail(created))
}

// UpdateCourse handles PATCH /admin/courses/:slug.
func (h *CourseHandler) UpdateCourse(c *gin.Context) {
	if !requireAdmin(c, h.sessions) {
		return
	}

	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.updateCourseUseCase.Execute(c.Request.Context(), c.Param("slug"), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "course updated", coursedto.NewCourseDetail(updated))
}
