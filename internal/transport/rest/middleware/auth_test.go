package middleware

import (
	"context"
	"desafiabrasil/internal/model"
	"desafiabrasil/internal/repository"
	"desafiabrasil/internal/service"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type storedUsers struct {
	repository.UserRepo
	byID map[string]*model.User
	err  error
}

func (s *storedUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byID[id], nil
}

func token(t *testing.T, authSvc *service.AuthService, id, role string) string {
	t.Helper()
	tok, err := authSvc.GenerateToken(&model.User{ID: id, Role: role})
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func TestAuthMiddleware(t *testing.T) {
	users := &storedUsers{byID: map[string]*model.User{
		"u1": {ID: "u1", Role: model.RoleStudent},
		"a1": {ID: "a1", Role: model.RoleAdmin},
	}}
	authSvc := service.NewAuthService(users, "test-secret", time.Hour)
	studentToken := token(t, authSvc, "u1", model.RoleStudent)
	adminToken := token(t, authSvc, "a1", model.RoleAdmin)
	demotedToken := token(t, authSvc, "u1", model.RoleAdmin)
	deletedToken := token(t, authSvc, "gone", model.RoleStudent)

	var seenUser string
	var seenAdmin bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser = GetUserID(r.Context())
		seenAdmin = IsAdmin(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	mw := NewAuthMiddleware(authSvc)
	tests := []struct {
		name      string
		handler   http.Handler
		header    string
		wantCode  int
		wantUser  string
		wantAdmin bool
	}{
		{"no header", mw.RequireUser(next), "", http.StatusUnauthorized, "", false},
		{"not bearer", mw.RequireUser(next), "Basic abc", http.StatusUnauthorized, "", false},
		{"bad token", mw.RequireUser(next), "Bearer nope", http.StatusUnauthorized, "", false},
		{"student", mw.RequireUser(next), "Bearer " + studentToken, http.StatusNoContent, "u1", false},
		{"lowercase scheme", mw.RequireUser(next), "bearer " + studentToken, http.StatusNoContent, "u1", false},
		{"student on admin route", mw.RequireAdmin(next), "Bearer " + studentToken, http.StatusForbidden, "", false},
		{"admin", mw.RequireAdmin(next), "Bearer " + adminToken, http.StatusNoContent, "a1", true},
		{"demoted admin on admin route", mw.RequireAdmin(next), "Bearer " + demotedToken, http.StatusForbidden, "", false},
		{"demoted admin on user route", mw.RequireUser(next), "Bearer " + demotedToken, http.StatusNoContent, "u1", false},
		{"deleted user", mw.RequireUser(next), "Bearer " + deletedToken, http.StatusUnauthorized, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenUser, seenAdmin = "", false
			req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			tt.handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			if seenUser != tt.wantUser || seenAdmin != tt.wantAdmin {
				t.Fatalf("context user=%q admin=%v", seenUser, seenAdmin)
			}
		})
	}
}

func TestAuthMiddleware_StoreDown(t *testing.T) {
	users := &storedUsers{err: errors.New("connection refused")}
	authSvc := service.NewAuthService(users, "test-secret", time.Hour)
	mw := NewAuthMiddleware(authSvc)
	handler := mw.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler reached while the user store is down")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, authSvc, "a1", model.RoleAdmin))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}
