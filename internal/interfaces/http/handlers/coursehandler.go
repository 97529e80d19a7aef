package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"coursekit/internal/application/course/usecases"
	apperrors "coursekit/internal/shared/errors"
	"coursekit/internal/shared/logger"
	"coursekit/internal/shared/session"
	"coursekit/internal/shared/utils"
)

// CourseHandler serves the public catalog and course pages.
type CourseHandler struct {
	listCoursesUseCase *usecases.ListCoursesUseCase
	getCourseUseCase   *usecases.GetCourseUseCase
	sessions           *session.Store
	logger             logger.Interface
}

func NewCourseHandler(
	listCoursesUC *usecases.ListCoursesUseCase,
	getCourseUC *usecases.GetCourseUseCase,
	sessions *session.Store,
	logger logger.Interface,
) *CourseHandler {
	return &CourseHandler{
		listCoursesUseCase: listCoursesUC,
		getCourseUseCase:   getCourseUC,
		sessions:           sessions,
		logger:             logger,
	}
}

// ListCourses handles GET /api/courses. Public; admins also see drafts.
func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.listCoursesUseCase.Execute(c.Request.Context(), h.isAdmin(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", courses)
}

// GetCourse handles GET /api/courses/:slug.
func (h *CourseHandler) GetCourse(c *gin.Context) {
	detail, err := h.getCourseUseCase.Execute(c.Request.Context(), c.Param("slug"), h.isAdmin(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", detail)
}

// isAdmin re-reads the session cookie directly. Catalog routes are public, so
// the access middleware never resolves a session for them.
func (h *CourseHandler) isAdmin(c *gin.Context) bool {
	claims := h.sessions.Read(c)
	return claims != nil && claims.Role.IsAdmin()
}

// LessonHandler serves lesson content and completion to enrolled students.
type LessonHandler struct {
	getLessonUseCase      *usecases.GetLessonUseCase
	completeCourseUseCase *usecases.CompleteCourseUseCase
	sessions              *session.Store
	logger                logger.Interface
}

func NewLessonHandler(
	getLessonUC *usecases.GetLessonUseCase,
	completeCourseUC *usecases.CompleteCourseUseCase,
	sessions *session.Store,
	logger logger.Interface,
) *LessonHandler {
	return &LessonHandler{
		getLessonUseCase:      getLessonUC,
		completeCourseUseCase: completeCourseUC,
		sessions:              sessions,
		logger:                logger,
	}
}

// GetLesson handles GET /learn/:slug/lessons/:lessonSlug. The access
// middleware already gated /learn, but the handler re-reads the session
// itself rather than trusting upstream context; a missing session here means
// something upstream is miswired and must fail closed.
func (h *LessonHandler) GetLesson(c *gin.Context) {
	claims := h.sessions.Read(c)
	if claims == nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	content, err := h.getLessonUseCase.Execute(c.Request.Context(), usecases.GetLessonCommand{
		UserID:     claims.UserID,
		CourseSlug: c.Param("slug"),
		LessonSlug: c.Param("lessonSlug"),
	})
	if err != nil {
		// A denied student is sent back to the course page, not shown a 403.
		if apperrors.IsForbiddenError(err) {
			c.Redirect(http.StatusFound, "/courses/"+c.Param("slug")+"?access_denied=1")
			return
		}
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", content)
}

// CompleteCourse handles POST /api/me/courses/:courseID/complete.
func (h *LessonHandler) CompleteCourse(c *gin.Context) {
	claims := h.sessions.Read(c)
	if claims == nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	courseID, err := strconv.ParseUint(c.Param("courseID"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid course id")
		return
	}

	if err := h.completeCourseUseCase.Execute(c.Request.Context(), usecases.CompleteCourseCommand{
		UserID:   claims.UserID,
		CourseID: uint(courseID),
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "course completed", nil)
}
