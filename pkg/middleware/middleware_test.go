package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel-booking/internal/data/entity"
	"hotel-booking/pkg/apperror"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeAuth struct {
	users map[string]*entity.User
	err   error
}

func (f *fakeAuth) Authenticate(_ context.Context, token string) (*entity.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if user, ok := f.users[token]; ok {
		return user, nil
	}
	return nil, apperror.Unauthorized("Invalid or expired session")
}

func newFakeAuth() (*fakeAuth, *entity.User, *entity.User) {
	customer := &entity.User{Base: entity.Base{ID: uuid.New()}, Role: entity.RoleCustomer, IsActive: true}
	admin := &entity.User{Base: entity.Base{ID: uuid.New()}, Role: entity.RoleAdmin, IsActive: true}
	return &fakeAuth{users: map[string]*entity.User{
		"customer-token": customer,
		"admin-token":    admin,
	}}, customer, admin
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	role, _ := utils.GetRoleFromContext(r.Context())
	token, _ := utils.GetTokenFromContext(r.Context())
	w.Header().Set("X-User", userID.String())
	w.Header().Set("X-Role", role)
	w.Header().Set("X-Token", token)
	w.WriteHeader(http.StatusOK)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{header: "Bearer abc", want: "abc", ok: true},
		{header: "bearer abc", want: "abc", ok: true},
		{header: "Bearer   abc  ", want: "abc", ok: true},
		{header: "Bearer", ok: false},
		{header: "Bearer ", ok: false},
		{header: "Basic abc", ok: false},
		{header: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header.Set("Authorization", tt.header)
			got, ok := BearerToken(r)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthSession(t *testing.T) {
	auth, customer, _ := newFakeAuth()
	handler := AuthSession(auth, zap.NewNop())(http.HandlerFunc(echoUser))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{name: "missing header", header: "", status: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Token customer-token", status: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer nope", status: http.StatusUnauthorized},
		{name: "valid session", header: "Bearer customer-token", status: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)
			assert.Equal(t, tt.status, w.Code)
		})
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer customer-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, customer.ID.String(), w.Header().Get("X-User"))
	assert.Equal(t, "customer", w.Header().Get("X-Role"))
	assert.Equal(t, "customer-token", w.Header().Get("X-Token"))
}

func TestAuthSession_InternalError(t *testing.T) {
	auth := &fakeAuth{err: apperror.Internal("find session", errors.New("db down"))}
	handler := AuthSession(auth, zap.NewNop())(http.HandlerFunc(echoUser))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer anything")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAdmin(t *testing.T) {
	auth, _, _ := newFakeAuth()
	handler := AuthSession(auth, zap.NewNop())(Admin(zap.NewNop())(http.HandlerFunc(echoUser)))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer customer-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer admin-token")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)

	// Without AuthSession there is no identity at all.
	w = httptest.NewRecorder()
	Admin(zap.NewNop())(http.HandlerFunc(echoUser)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGuestOnly(t *testing.T) {
	auth, _, _ := newFakeAuth()
	handler := GuestOnly(auth, zap.NewNop())(http.HandlerFunc(echoUser))

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)

	r = httptest.NewRequest(http.MethodPost, "/", nil)
	r.Header.Set("Authorization", "Bearer stale-token")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code, "a dead session counts as a guest")

	r = httptest.NewRequest(http.MethodPost, "/", nil)
	r.Header.Set("Authorization", "Bearer customer-token")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "You are already authenticated")
}

func TestRecover(t *testing.T) {
	handler := Recover(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":false,"message":"Internal server error"}`, w.Body.String())
}
