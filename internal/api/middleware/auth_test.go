package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/projectmanager/auth-service/internal/core/domain"
	"github.com/projectmanager/auth-service/internal/core/token"
)

type stubRepo struct {
	user *domain.User
}

func (r *stubRepo) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubRepo) FindByGoogleID(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubRepo) FindByResetTokenDigest(context.Context, string, time.Time) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (r *stubRepo) Create(context.Context, *domain.User) error { return nil }

func (r *stubRepo) UpdateGoogleProfile(context.Context, uint, string, *string) error { return nil }

func (r *stubRepo) UpdateProfile(context.Context, uint, string, string, *string) error { return nil }

func (r *stubRepo) SetResetToken(context.Context, uint, string, time.Time) error { return nil }

func (r *stubRepo) ConsumeResetToken(context.Context, uint, string) error { return nil }

func TestAuth_ValidToken(t *testing.T) {
	e := echo.New()
	issuer := token.NewIssuer("secret", time.Hour)
	repo := &stubRepo{user: &domain.User{ID: 42, Email: "a@x.com", FullName: "Ann", Role: domain.RoleEmployee}}

	signed, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(issuer, repo)(func(c echo.Context) error {
		called = true
		user, ok := c.Get(UserContextKey).(domain.PublicUser)
		if !ok {
			t.Fatalf("public user not injected")
		}
		if user.ID != 42 || user.Email != "a@x.com" {
			t.Fatalf("unexpected user in context: %+v", user)
		}
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if !called {
		t.Fatalf("next handler was not called")
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	e := echo.New()
	issuer := token.NewIssuer("secret", time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := Auth(issuer, &stubRepo{})(func(echo.Context) error {
		t.Fatalf("next handler should not run")
		return nil
	})(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	e := echo.New()
	issuer := token.NewIssuer("secret", time.Hour)

	for _, header := range []string{"Token abc", "Bearer", "abc"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := Auth(issuer, &stubRepo{})(func(echo.Context) error { return nil })(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %v", header, err)
		}
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	e := echo.New()
	signed, err := token.NewIssuer("other-secret", time.Hour).Issue(42)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err = Auth(token.NewIssuer("secret", time.Hour), &stubRepo{})(func(echo.Context) error { return nil })(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_DeletedUser(t *testing.T) {
	e := echo.New()
	issuer := token.NewIssuer("secret", time.Hour)

	signed, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Repo has no user 42: the token is valid but the account is gone.
	err = Auth(issuer, &stubRepo{})(func(echo.Context) error { return nil })(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
