package api

import (
	"net/http"
	"time"

	"flight-booking/internal/handler/dto/request"
	resdto "flight-booking/internal/handler/dto/response"
	"flight-booking/internal/handler/httperr"
	"flight-booking/internal/handler/middleware"
	"flight-booking/internal/pkg/config"
	"flight-booking/internal/pkg/cookie"
	"flight-booking/internal/pkg/errs"
	"flight-booking/internal/usecase/commands"
	"flight-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var authErrors = []errorStatus{
	{commands.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password"},
	{commands.ErrUserInactive, http.StatusForbidden, "ACCOUNT_INACTIVE", "Account is inactive"},
	{queries.ErrUserInactive, http.StatusForbidden, "ACCOUNT_INACTIVE", "Account is inactive"},
	{queries.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND", "User not found"},
}

type AuthHandler struct {
	cmds      commands.AuthCommands
	users     queries.UserQueries
	cookieCfg config.CookieConfig
}

func NewAuthHandler(cmds commands.AuthCommands, users queries.UserQueries, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		cmds:      cmds,
		users:     users,
		cookieCfg: cfg.Cookie,
	}
}

// @Summary User login
// @Description Login with email and password. The token is returned and set as an HttpOnly cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err, "Invalid request format")
		return
	}

	result, err := h.cmds.Login(c.Request.Context(), req)
	if err != nil {
		abortWithMapped(c, err, authErrors)
		return
	}

	cookie.SetAccessToken(c, h.cookieCfg, result.AccessToken, time.Until(result.ExpiresAt))
	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken: result.AccessToken,
		ExpiresAt:   result.ExpiresAt,
		User:        resdto.FromAuthorizedUserView(result.User),
	})
}

// @Summary User logout
// @Description Clears the access token cookie
// @Tags auth
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearAccessToken(c, h.cookieCfg)
	c.Status(http.StatusNoContent)
}

// @Summary Get current user
// @Description Get current authenticated user information
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.UserResponse
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrUnauthorized, "User not authenticated", nil)
		return
	}

	view, err := h.users.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		abortWithMapped(c, err, authErrors)
		return
	}

	c.JSON(http.StatusOK, resdto.FromAuthorizedUserView(view))
}
