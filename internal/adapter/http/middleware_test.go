package adapthttp

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"accounts/internal/app"
	"accounts/internal/domain"
)

func TestAuthMiddleware(t *testing.T) {
	tokens := app.NewTokenService([]byte("test-secret"), time.Hour)
	s := &Server{tokens: tokens}

	valid, err := tokens.Issue(&domain.User{ID: 5, Username: "alice"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	var gotClaims *domain.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = claimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := s.authMiddleware(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Token " + valid, http.StatusUnauthorized},
		{"bare token", valid, http.StatusUnauthorized},
		{"invalid token", "Bearer garbage", http.StatusForbidden},
		{"valid token", "Bearer " + valid, http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gotClaims = nil
			req := httptest.NewRequest("GET", "/users", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			if w.Code != tc.wantStatus {
				t.Errorf("expected %d, got %d", tc.wantStatus, w.Code)
			}
			if tc.wantStatus == http.StatusOK {
				if gotClaims == nil {
					t.Fatal("claims missing from request context")
				}
				if gotClaims.UserID != 5 || gotClaims.Username != "alice" {
					t.Errorf("unexpected claims: %+v", gotClaims)
				}
			} else if gotClaims != nil {
				t.Error("handler ran despite failed auth")
			}
		})
	}
}
