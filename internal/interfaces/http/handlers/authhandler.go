package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"coursekit/internal/application/auth/dto"
	"coursekit/internal/application/auth/usecases"
	"coursekit/internal/domain/user"
	"coursekit/internal/shared/constants"
	"coursekit/internal/shared/logger"
	"coursekit/internal/shared/session"
	"coursekit/internal/shared/utils"
)

type AuthHandler struct {
	requestMagicLinkUseCase *usecases.RequestMagicLinkUseCase
	verifyMagicLinkUseCase  *usecases.VerifyMagicLinkUseCase
	passwordLoginUseCase    *usecases.PasswordLoginUseCase
	sessions                *session.Store
	userRepo                user.Repository
	logger                  logger.Interface
}

func NewAuthHandler(
	requestMagicLinkUC *usecases.RequestMagicLinkUseCase,
	verifyMagicLinkUC *usecases.VerifyMagicLinkUseCase,
	passwordLoginUC *usecases.PasswordLoginUseCase,
	sessions *session.Store,
	userRepo user.Repository,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		requestMagicLinkUseCase: requestMagicLinkUC,
		verifyMagicLinkUseCase:  verifyMagicLinkUC,
		passwordLoginUseCase:    passwordLoginUC,
		sessions:                sessions,
		userRepo:                userRepo,
		logger:                  logger,
	}
}

// RequestMagicLink handles POST /auth/magic-link. It always answers 200 for
// well-formed requests; see the usecase for why.
func (h *AuthHandler) RequestMagicLink(c *gin.Context) {
	var req dto.MagicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.requestMagicLinkUseCase.Execute(c.Request.Context(), usecases.RequestMagicLinkCommand{
		Email:    req.Email,
		Redirect: sanitizeRedirect(req.Redirect),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "if the address exists, a login link has been sent", nil)
}

// VerifyMagicLink handles GET /auth/verify. On success it establishes the
// session cookie and redirects into the app.
func (h *AuthHandler) VerifyMagicLink(c *gin.Context) {
	code := c.Query("token")
	if code == "" {
		c.Redirect(http.StatusFound, constants.LoginPath+"?error=invalid_link")
		return
	}

	u, err := h.verifyMagicLinkUseCase.Execute(c.Request.Context(), usecases.VerifyMagicLinkCommand{
		Code:     code,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		c.Redirect(http.StatusFound, constants.LoginPath+"?error=invalid_link")
		return
	}

	if _, err := h.sessions.Create(c, u.ID, u.Email, u.Role); err != nil {
		h.logger.Errorw("failed to create session", "user_id", u.ID, "error", err)
		c.Redirect(http.StatusFound, constants.LoginPath+"?error=session")
		return
	}

	target := sanitizeRedirect(c.Query("redirect"))
	if target == "" {
		target = constants.DashboardPath
	}
	c.Redirect(http.StatusFound, target)
}

// Login handles POST /auth/login, the admin password path.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.PasswordLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.passwordLoginUseCase.Execute(c.Request.Context(), usecases.PasswordLoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if _, err := h.sessions.Create(c, u.ID, u.Email, u.Role); err != nil {
		h.logger.Errorw("failed to create session", "user_id", u.ID, "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "failed to create session")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "logged in", dto.NewUserResponse(u))
}

// Logout handles POST /auth/logout. Idempotent; logging out without a
// session still succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Destroy(c)
	utils.SuccessResponse(c, http.StatusOK, "logged out", nil)
}

// Me handles GET /auth/me. It re-reads the session cookie itself instead of
// trusting context values set upstream, and refreshes the profile from the
// user store so a role change shows up before the token is reissued.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := h.sessions.Read(c)
	if claims == nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	u, err := h.userRepo.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.NewUserResponse(u))
}

// sanitizeRedirect keeps redirect targets on-site. Anything that is not a
// plain absolute path (e.g. "//evil.com", "https://evil.com", "/\evil") is
// dropped.
func sanitizeRedirect(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") {
		return ""
	}
	if strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return ""
	}
	if u, err := url.Parse(target); err != nil || u.Host != "" || u.Scheme != "" {
		return ""
	}
	return target
}
