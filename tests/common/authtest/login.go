//go:build unit || e2e

package authtest

import (
	"net/http"
	nethttptest "net/http/httptest"
	"testing"

	"flight-booking/internal/handler/dto/request"
	resdto "flight-booking/internal/handler/dto/response"
	"flight-booking/tests/common/dbtest"
	"flight-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// Login signs in and returns the response so callers can reuse its cookies.
func Login(t *testing.T, router *gin.Engine, email, password string) *nethttptest.ResponseRecorder {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return w
}

// LoginUser returns the bearer token, checking that body and cookie agree.
func LoginUser(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := Login(t, router, email, password)

	accessCookie := httptest.ExtractCookie(w, "access_token")
	require.NotNil(t, accessCookie, "Access token not found in cookies")
	require.NotEmpty(t, accessCookie.Value, "Access token cookie is empty")

	var res resdto.LoginResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &res))
	require.Equal(t, accessCookie.Value, res.AccessToken)

	return res.AccessToken
}

func CreateAndLogin(t *testing.T, db dbtest.DBLike, router *gin.Engine, email, role string) string {
	t.Helper()
	dbtest.CreateTestUser(t, db, email, role)
	return LoginUser(t, router, email, dbtest.TestPassword)
}

func LogoutUser(t *testing.T, router *gin.Engine, cookies []*http.Cookie) *nethttptest.ResponseRecorder {
	t.Helper()

	w := httptest.PerformRequestWithCookies(t, router, http.MethodPost, "/api/auth/logout", nil, cookies, "")
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	return w
}
