package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"coursekit/internal/application/admin/dto"
	"coursekit/internal/application/admin/usecases"
	authdto "coursekit/internal/application/auth/dto"
	"coursekit/internal/shared/logger"
	"coursekit/internal/shared/session"
	"coursekit/internal/shared/utils"
)

// UserHandler is the back-office account management surface. Every handler
// re-checks the session role itself; the route-level admin gate is not the
// only line of defense.
type UserHandler struct {
	createUserUseCase *usecases.CreateUserUseCase
	listUsersUseCase  *usecases.ListUsersUseCase
	updateUserUseCase *usecases.UpdateUserUseCase
	sessions          *session.Store
	logger            logger.Interface
}

func NewUserHandler(
	createUserUC *usecases.CreateUserUseCase,
	listUsersUC *usecases.ListUsersUseCase,
	updateUserUC *usecases.UpdateUserUseCase,
	sessions *session.Store,
	logger logger.Interface,
) *UserHandler {
	return &UserHandler{
		createUserUseCase: createUserUC,
		listUsersUseCase:  listUsersUC,
		updateUserUseCase: updateUserUC,
		sessions:          sessions,
		logger:            logger,
	}
}

// requireAdmin re-reads the session cookie and rejects non-admins. Returns
// false when it already wrote a response.
func requireAdmin(c *gin.Context, sessions *session.Store) bool {
	claims := sessions.Read(c)
	if claims == nil || !claims.Role.IsAdmin() {
		utils.ErrorResponse(c, http.StatusForbidden, "admin access required")
		return false
	}
	return true
}

// CreateUser handles POST /admin/users.
func (h *UserHandler) CreateUser(c *gin.Context) {
	if !requireAdmin(c, h.sessions) {
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.createUserUseCase.Execute(c.Request.Context(), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, authdto.NewUserResponse(u))
}

// ListUsers handles GET /admin/users.
func (h *UserHandler) ListUsers(c *gin.Context) {
	if !requireAdmin(c, h.sessions) {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	users, total, err := h.listUsersUseCase.Execute(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	items := make([]authdto.UserResponse, len(users))
	for i, u := range users {
		items[i] = authdto.NewUserResponse(u)
	}

	utils.SuccessResponse(c, http.StatusOK, "", utils.ListResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// UpdateUser handles PATCH /admin/users/:id.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	if !requireAdmin(c, h.sessions) {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid user id")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.updateUserUseCase.Execute(c.Request.Context(), uint(id), req)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "user updated", authdto.NewUserResponse(u))
}
