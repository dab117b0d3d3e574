package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"github.com/staffsync/staffsync-backend-go/internal/pkg/database"
	"github.com/staffsync/staffsync-backend-go/internal/pkg/jwt"
	"github.com/staffsync/staffsync-backend-go/internal/repository/postgresql"
	authService "github.com/staffsync/staffsync-backend-go/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	handlerTestDB   *database.DB
	handlerTestOnce sync.Once
)

const (
	handlerTestAccessExp  = "1h"
	handlerTestRefreshExp = "24h"
	handlerTestSecret     = "test-secret-key-for-jwt"
)

func requireHandlerTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	handlerTestOnce.Do(func() {
		db, err := database.NewPostgreSQLDB(dsn)
		if err != nil {
			panic("Failed to connect to test database: " + err.Error())
		}
		if err := database.Migrate(db); err != nil {
			panic("Failed to migrate test database: " + err.Error())
		}
		handlerTestDB = db
	})

	return handlerTestDB
}

func truncateHandlerTables(t *testing.T, ctx context.Context) {
	t.Helper()

	tables := []string{"leave_requests", "payroll_records", "attendance_records", "users", "employees"}
	for _, table := range tables {
		_, err := handlerTestDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func newAuthTestHandler() AuthHandler {
	jwtService := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp, handlerTestRefreshExp)
	authSvc := authService.NewAuthService(
		handlerTestDB,
		postgresql.NewUserRepository(handlerTestDB),
		postgresql.NewEmployeeRepository(handlerTestDB),
		jwtService,
	)
	return NewAuthHandler(jwtService, authSvc)
}

func registerBody(email string) *bytes.Buffer {
	body, _ := json.Marshal(map[string]string{
		"email":            email,
		"password":         "password123",
		"confirm_password": "password123",
		"first_name":       "Test",
		"last_name":        "User",
	})
	return bytes.NewBuffer(body)
}

func refreshCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "refresh_token" {
			return cookie
		}
	}
	return nil
}

func TestAuthHandler_Register_Success(t *testing.T) {
	requireHandlerTestDB(t)
	ctx := context.Background()
	truncateHandlerTables(t, ctx)

	handler := newAuthTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", registerBody("register@example.com"))
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Data.AccessToken)
	assert.NotEmpty(t, resp.Data.RefreshToken)

	cookie := refreshCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Equal(t, resp.Data.RefreshToken, cookie.Value)
	assert.True(t, cookie.HttpOnly)
}

func TestAuthHandler_Register_InvalidBody(t *testing.T) {
	requireHandlerTestDB(t)
	ctx := context.Background()
	truncateHandlerTables(t, ctx)

	handler := newAuthTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Register_ValidationError(t *testing.T) {
	requireHandlerTestDB(t)
	ctx := context.Background()
	truncateHandlerTables(t, ctx)

	handler := newAuthTestHandler()

	body, _ := json.Marshal(map[string]string{"email": "not-an-email"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewBuffer(body))
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	requireHandlerTestDB(t)
	ctx := context.Background()
	truncateHandlerTables(t, ctx)

	handler := newAuthTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", registerBody("dup-handler@example.com"))
	rec := httptest.NewRecorder()
	handler.Register(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", registerBody("dup-handler@example.com"))
	rec = httptest.NewRecorder()
	handler.Register(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	requireHandlerTestDB(t)
	ctx := context.Background()
	truncateHandlerTables(t, ctx)

	handler := newAuthTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", registerBody("login-handler@example.com"))
	rec := httptest.NewRecorder()
	handler.Register(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	body, _ := json.Marshal(map[string]string{
		"email":    "login-handler@example.com",
		"password": "wrong-password",
	})
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBuffer(body))
	rec = httptest.NewRecorder()
	handler.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_RefreshToken_FromCookie(t *testing.T) {
	requireHandlerTestDB(t)
	ctx := context.Background()
	truncateHandlerTables(t, ctx)

	handler := newAuthTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", registerBody("refresh-handler@example.com"))
	rec := httptest.NewRecorder()
	handler.Register(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	cookie := refreshCookie(t, rec)
	require.NotNil(t, cookie)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	handler.RefreshToken(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.AccessToken)
}

func TestAuthHandler_Logout_RevokesRefreshToken(t *testing.T) {
	requireHandlerTestDB(t)
	ctx := context.Background()
	truncateHandlerTables(t, ctx)

	handler := newAuthTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", registerBody("logout-handler@example.com"))
	rec := httptest.NewRecorder()
	handler.Register(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	cookie := refreshCookie(t, rec)
	require.NotNil(t, cookie)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	handler.Logout(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// The revoked token no longer refreshes
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	handler.RefreshToken(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_Logout_MissingToken(t *testing.T) {
	requireHandlerTestDB(t)
	ctx := context.Background()
	truncateHandlerTables(t, ctx)

	handler := newAuthTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	handler.Logout(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
