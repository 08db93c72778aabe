package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/tasknest/task-tracker-api/internal/models"
)

// AuthHandlerTestSuite defines the test suite for AuthHandler
type AuthHandlerTestSuite struct {
	baseSuite
}

func (suite *AuthHandlerTestSuite) register(name, email, password string) *httptest.ResponseRecorder {
	return suite.do(http.MethodPost, "/api/auth/register", map[string]any{
		"name":     name,
		"email":    email,
		"password": password,
	}, "")
}

func (suite *AuthHandlerTestSuite) TestFirstRegisteredUserBecomesAdmin() {
	w := suite.register("Alice Admin", "alice@example.com", "password123")
	suite.Equal(http.StatusCreated, w.Code)

	w = suite.register("Bob Member", "bob@example.com", "password123")
	suite.Equal(http.StatusCreated, w.Code)

	var alice, bob models.User
	suite.Require().NoError(suite.db.Where("email = ?", "alice@example.com").First(&alice).Error)
	suite.Require().NoError(suite.db.Where("email = ?", "bob@example.com").First(&bob).Error)
	suite.True(alice.IsAdmin)
	suite.False(bob.IsAdmin)
	suite.True(alice.IsFirstLogin)
}

func (suite *AuthHandlerTestSuite) TestRegisterDuplicateEmail() {
	suite.register("Alice Admin", "alice@example.com", "password123")

	w := suite.register("Another Alice", "alice@example.com", "password123")

	suite.Equal(http.StatusConflict, w.Code)
	body := suite.parseBody(w)
	suite.Equal("Email already exists", body["message"])
}

func (suite *AuthHandlerTestSuite) TestRegisterShortPassword() {
	w := suite.register("Alice Admin", "alice@example.com", "short")
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *AuthHandlerTestSuite) TestRegisterNeverLeaksPasswordHash() {
	w := suite.register("Alice Admin", "alice@example.com", "password123")
	suite.Equal(http.StatusCreated, w.Code)
	suite.NotContains(w.Body.String(), "password")
}

func (suite *AuthHandlerTestSuite) TestLoginIssuesUsableToken() {
	suite.register("Alice Admin", "alice@example.com", "password123")

	w := suite.do(http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "alice@example.com",
		"password": "password123",
	}, "")
	suite.Equal(http.StatusOK, w.Code)

	body := suite.parseBody(w)
	suite.Equal(true, body["is_first_login"])
	token, ok := body["token"].(string)
	suite.Require().True(ok)
	suite.NotEmpty(token)

	// Token works against a protected route.
	w = suite.do(http.MethodGet, "/api/tasks", nil, token)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *AuthHandlerTestSuite) TestLoginWrongPassword() {
	suite.register("Alice Admin", "alice@example.com", "password123")

	w := suite.do(http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "alice@example.com",
		"password": "wrong-password",
	}, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	body := suite.parseBody(w)
	suite.Equal("Invalid email or password", body["message"])
}

func (suite *AuthHandlerTestSuite) TestLoginUnknownEmailSameError() {
	w := suite.do(http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "ghost@example.com",
		"password": "password123",
	}, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	body := suite.parseBody(w)
	suite.Equal("Invalid email or password", body["message"])
}

func (suite *AuthHandlerTestSuite) TestFirstChangePasswordClearsFlag() {
	suite.register("Alice Admin", "alice@example.com", "password123")
	var alice models.User
	suite.Require().NoError(suite.db.Where("email = ?", "alice@example.com").First(&alice).Error)
	token := suite.tokenFor(&alice)

	w := suite.do(http.MethodPost, "/api/auth/first-change-pass", map[string]any{
		"new_password": "rotated-secret",
	}, token)
	suite.Equal(http.StatusOK, w.Code)

	suite.Require().NoError(suite.db.Where("email = ?", "alice@example.com").First(&alice).Error)
	suite.False(alice.IsFirstLogin)

	// The rotation only works once.
	w = suite.do(http.MethodPost, "/api/auth/first-change-pass", map[string]any{
		"new_password": "rotated-again",
	}, token)
	suite.Equal(http.StatusBadRequest, w.Code)

	// The new password logs in.
	w = suite.do(http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "alice@example.com",
		"password": "rotated-secret",
	}, "")
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *AuthHandlerTestSuite) TestChangePasswordOnlyOwnAccount() {
	alice := suite.createUser("Alice Admin", "alice@example.com", true)
	suite.createUser("Bob Member", "bob@example.com", false)

	w := suite.do(http.MethodPost, "/api/auth/change-pass", map[string]any{
		"email":        "bob@example.com",
		"new_password": "hijacked-pass",
	}, suite.tokenFor(alice))

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *AuthHandlerTestSuite) TestForgotPasswordDoesNotLeakAccounts() {
	suite.createUser("Alice Admin", "alice@example.com", true)

	known := suite.do(http.MethodPost, "/api/auth/forgot-pass", map[string]any{
		"email": "alice@example.com",
	}, "")
	unknown := suite.do(http.MethodPost, "/api/auth/forgot-pass", map[string]any{
		"email": "ghost@example.com",
	}, "")

	suite.Equal(http.StatusOK, known.Code)
	suite.Equal(http.StatusOK, unknown.Code)
	suite.Equal(known.Body.String(), unknown.Body.String())
}

func (suite *AuthHandlerTestSuite) TestResetPassword() {
	suite.register("Alice Admin", "alice@example.com", "password123")

	w := suite.do(http.MethodPost, "/api/auth/reset-pass", map[string]any{
		"email":        "alice@example.com",
		"new_password": "fresh-secret",
	}, "")
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodPost, "/api/auth/login", map[string]any{
		"email":    "alice@example.com",
		"password": "fresh-secret",
	}, "")
	suite.Equal(http.StatusOK, w.Code)

	var alice models.User
	suite.Require().NoError(suite.db.Where("email = ?", "alice@example.com").First(&alice).Error)
	suite.False(alice.IsFirstLogin)
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
