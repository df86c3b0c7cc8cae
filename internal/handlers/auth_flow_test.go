package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/SaiPhaniAnirudh/invoice-manager/internal/services"
	"github.com/SaiPhaniAnirudh/invoice-manager/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) *chi.Mux {
	t.Helper()
	userService := services.NewUserService(store.NewUserRepository(t.TempDir()))

	router := chi.NewRouter()
	router.Route("/auth", func(r chi.Router) {
		AuthRouter(r, userService, testSecret)
	})
	return router
}

func TestRegisterLoginAndMe(t *testing.T) {
	t.Parallel()
	router := newAuthRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/auth/register", 0, RegisterRequest{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "s3cret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var registered AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &registered))
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "jane@example.com", registered.User.Email)
	assert.NotContains(t, rec.Body.String(), "passwordHash")

	rec = doJSON(t, router, http.MethodPost, "/auth/login", 0, LoginRequest{
		Email:    "Jane@Example.com",
		Password: "s3cret",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var loggedIn AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loggedIn))

	req := doJSON(t, router, http.MethodGet, "/auth/me", registered.User.ID, nil)
	require.Equal(t, http.StatusOK, req.Code)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	t.Parallel()
	router := newAuthRouter(t)

	payload := RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "s3cret"}
	rec := doJSON(t, router, http.MethodPost, "/auth/register", 0, payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	payload.Email = "JANE@example.com"
	rec = doJSON(t, router, http.MethodPost, "/auth/register", 0, payload)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin_InvalidCredentialsAreUniform(t *testing.T) {
	t.Parallel()
	router := newAuthRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/auth/register", 0, RegisterRequest{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: "s3cret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	unknown := doJSON(t, router, http.MethodPost, "/auth/login", 0, LoginRequest{
		Email:    "nobody@example.com",
		Password: "s3cret",
	})
	wrongPass := doJSON(t, router, http.MethodPost, "/auth/login", 0, LoginRequest{
		Email:    "jane@example.com",
		Password: "wrong",
	})

	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	require.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, unknown.Body.String(), wrongPass.Body.String())
}

func TestRegister_ValidationDetail(t *testing.T) {
	t.Parallel()
	router := newAuthRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/auth/register", 0, RegisterRequest{
		Name:  "",
		Email: "bad",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "name")
	assert.Contains(t, resp.Fields, "email")
	assert.Contains(t, resp.Fields, "password")
}

func TestRegister_OverlongPasswordIsValidationError(t *testing.T) {
	t.Parallel()
	router := newAuthRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/auth/register", 0, RegisterRequest{
		Name:     "Jane",
		Email:    "jane@example.com",
		Password: strings.Repeat("x", 100),
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation failed", resp.Error)
	assert.Equal(t, "is too long", resp.Fields["password"])
}
