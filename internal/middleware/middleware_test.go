package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"tkbshop/internal/config"
	"tkbshop/internal/domain/model"
	"tkbshop/internal/middleware"
	"tkbshop/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// UserRepository モック（middleware専用）
// =====================

type MockUserRepoForMiddleware struct {
	mock.Mock
}

func (m *MockUserRepoForMiddleware) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepoForMiddleware) FindByID(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepoForMiddleware) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepoForMiddleware) List(ctx context.Context, q repository.UserListQuery) ([]model.User, error) {
	args := m.Called(ctx, q)
	us, _ := args.Get(0).([]model.User)
	return us, args.Error(1)
}

func (m *MockUserRepoForMiddleware) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepoForMiddleware) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepoForMiddleware) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ repository.UserRepository = (*MockUserRepoForMiddleware)(nil)

// =====================
// helper
// =====================

func mustMakeJWT(t *testing.T, secret string, sub string, method jwt.SigningMethod) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub": sub,
		"iat": 1,
		"exp": 9999999999,
	}

	token := jwt.NewWithClaims(method, claims)

	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}
	return s
}

func runWithMiddleware(mw echo.MiddlewareFunc, authz string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_ = mw(next)(c)
	return rec
}

// =====================
// AuthJWT
// =====================

func TestAuthJWT_ValidToken(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	token := mustMakeJWT(t, cfg.JWTSecret, "u-1", jwt.SigningMethodHS256)

	called := false
	rec := runWithMiddleware(middleware.AuthJWT(cfg), "Bearer "+token, func(c echo.Context) error {
		called = true
		assert.Equal(t, "u-1", c.Get("user_id"))
		return c.NoContent(http.StatusOK)
	})

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}

	rec := runWithMiddleware(middleware.AuthJWT(cfg), "", func(c echo.Context) error {
		t.Fatal("next should not run")
		return nil
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSecret(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	token := mustMakeJWT(t, "other-secret", "u-1", jwt.SigningMethodHS256)

	rec := runWithMiddleware(middleware.AuthJWT(cfg), "Bearer "+token, func(c echo.Context) error {
		t.Fatal("next should not run")
		return nil
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSigningMethod(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	//HS256以外は拒否
	token := mustMakeJWT(t, cfg.JWTSecret, "u-1", jwt.SigningMethodHS512)

	rec := runWithMiddleware(middleware.AuthJWT(cfg), "Bearer "+token, func(c echo.Context) error {
		t.Fatal("next should not run")
		return nil
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// =====================
// OptionalAuthJWT
// =====================

func TestOptionalAuthJWT_NoTokenIsGuest(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}

	called := false
	rec := runWithMiddleware(middleware.OptionalAuthJWT(cfg), "", func(c echo.Context) error {
		called = true
		assert.Nil(t, c.Get("user_id"))
		return c.NoContent(http.StatusOK)
	})

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalAuthJWT_ValidTokenAttachesUser(t *testing.T) {
	cfg := config.Config{JWTSecret: "test-secret"}
	token := mustMakeJWT(t, cfg.JWTSecret, "u-1", jwt.SigningMethodHS256)

	rec := runWithMiddleware(middleware.OptionalAuthJWT(cfg), "Bearer "+token, func(c echo.Context) error {
		assert.Equal(t, "u-1", c.Get("user_id"))
		return c.NoContent(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, rec.Code)
}

// =====================
// IdentityGuard
// =====================

func newGuardContext(userID interface{}) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != nil {
		c.Set("user_id", userID)
	}
	return c, rec
}

func TestIdentityGuard_ActiveUser(t *testing.T) {
	repo := new(MockUserRepoForMiddleware)
	repo.On("FindByID", mock.Anything, "u-1").Return(&model.User{
		ID:       "u-1",
		Role:     model.RoleCustomer,
		IsActive: true,
	}, nil)

	c, rec := newGuardContext("u-1")

	err := middleware.IdentityGuard(repo)(func(c echo.Context) error {
		assert.Equal(t, model.RoleCustomer, c.Get("user_role"))
		return c.NoContent(http.StatusOK)
	})(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIdentityGuard_DeletedUser(t *testing.T) {
	repo := new(MockUserRepoForMiddleware)
	//tokenは有効でもDBから消えていれば401
	repo.On("FindByID", mock.Anything, "u-ghost").
		Return(nil, repository.ErrUserNotFound)

	c, rec := newGuardContext("u-ghost")

	_ = middleware.IdentityGuard(repo)(func(c echo.Context) error {
		t.Fatal("next should not run")
		return nil
	})(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestIdentityGuard_InactiveUser(t *testing.T) {
	repo := new(MockUserRepoForMiddleware)
	repo.On("FindByID", mock.Anything, "u-2").Return(&model.User{
		ID:       "u-2",
		IsActive: false,
	}, nil)

	c, rec := newGuardContext("u-2")

	_ = middleware.IdentityGuard(repo)(func(c echo.Context) error {
		t.Fatal("next should not run")
		return nil
	})(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// =====================
// AdminRoleGuard
// =====================

func TestAdminRoleGuard_Admin(t *testing.T) {
	c, rec := newGuardContext("u-admin")
	c.Set("user_role", model.RoleAdmin)

	err := middleware.AdminRoleGuard()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRoleGuard_CustomerForbidden(t *testing.T) {
	c, rec := newGuardContext("u-1")
	c.Set("user_role", model.RoleCustomer)

	_ = middleware.AdminRoleGuard()(func(c echo.Context) error {
		t.Fatal("next should not run")
		return nil
	})(c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRoleGuard_NoRoleUnauthorized(t *testing.T) {
	c, rec := newGuardContext(nil)

	_ = middleware.AdminRoleGuard()(func(c echo.Context) error {
		t.Fatal("next should not run")
		return nil
	})(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
