package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tokens := NewTokenManager("secret", time.Hour)

	raw, err := tokens.Issue(42)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	data, err := tokens.Parse(raw)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if data.UserID != 42 {
		t.Errorf("Parse() = %+v, want user 42", data)
	}
}

func TestTokenManager_Rejects(t *testing.T) {
	tokens := NewTokenManager("secret", time.Hour)
	raw, _ := tokens.Issue(1)

	other, _ := NewTokenManager("other-secret", time.Hour).Issue(1)
	expired, _ := NewTokenManager("secret", -time.Minute).Issue(1)

	tests := map[string]string{
		"garbage":      "not.a.token",
		"other secret": other,
		"expired":      expired,
		"tampered":     raw + "x",
	}

	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := tokens.Parse(token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Parse() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestParseTokenDataCtx(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	if _, err := ParseTokenDataCtx(c); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ParseTokenDataCtx() on empty context = %v", err)
	}

	c.Set(TokenDataKey, &TokenData{UserID: 7})
	data, err := ParseTokenDataCtx(c)
	if err != nil || data.UserID != 7 {
		t.Errorf("ParseTokenDataCtx() = %+v, %v", data, err)
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("password1")
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}
	if hash == "password1" {
		t.Fatal("HashPassword() returned the plain password")
	}
	if !CheckPassword(hash, "password1") {
		t.Error("CheckPassword() rejected the right password")
	}
	if CheckPassword(hash, "password2") {
		t.Error("CheckPassword() accepted the wrong password")
	}
}
