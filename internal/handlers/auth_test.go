package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndParseToken(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := IssueToken(42, "jane@example.com", secret, time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	userID, email, err := ParseToken(tok, secret)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if userID != 42 {
		t.Fatalf("userID mismatch: got %d want 42", userID)
	}
	if email != "jane@example.com" {
		t.Fatalf("email mismatch: got %q", email)
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := IssueToken(1, "u@example.com", secret, -1*time.Second)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	if _, _, err := ParseToken(tok, secret); err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := IssueToken(1, "u@example.com", []byte("secret-a"), time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	if _, _, err := ParseToken(tok, []byte("secret-b")); err == nil {
		t.Fatalf("expected error for forged token, got nil")
	}
}

// A 24h token is accepted 1h after issuance and rejected 25h after.
func TestToken_24HourExpiryWindow(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	tok, err := IssueToken(7, "u@example.com", secret, 24*time.Hour)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	parseAt := func(offset time.Duration) error {
		claims := Claims{}
		_, err := jwt.ParseWithClaims(tok, &claims, func(token *jwt.Token) (any, error) {
			return secret, nil
		}, jwt.WithTimeFunc(func() time.Time {
			return time.Now().Add(offset)
		}))
		return err
	}

	if err := parseAt(1 * time.Hour); err != nil {
		t.Fatalf("token should verify 1h after issuance: %v", err)
	}
	if err := parseAt(25 * time.Hour); err == nil {
		t.Fatalf("token should fail verification 25h after issuance")
	}
}

func TestRequireAuth(t *testing.T) {
	t.Parallel()

	const secret = "middleware-secret"

	var gotUserID int
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := userIDFromContext(r.Context())
		if err != nil {
			t.Errorf("userIDFromContext error: %v", err)
		}
		gotUserID = id
		w.WriteHeader(http.StatusOK)
	})
	protected := RequireAuth(secret)(next)

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("malformed token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		tok, err := IssueToken(9, "u@example.com", []byte(secret), time.Hour)
		if err != nil {
			t.Fatalf("IssueToken error: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		protected.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotUserID != 9 {
			t.Fatalf("expected user id 9 in context, got %d", gotUserID)
		}
	})
}
