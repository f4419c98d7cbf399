package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"guildhall/globals"
)

func signedToken(t *testing.T, expiry time.Duration) string {
	t.Helper()
	claims := Claims{
		Username: "ari",
		UserID:   "u1",
		Role:     []string{"member"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestValidateJWT(t *testing.T) {
	claims, err := ValidateJWT("Bearer " + signedToken(t, time.Minute))
	if err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}
	if claims.UserID != "u1" || claims.Username != "ari" {
		t.Errorf("claims = %s/%s, want u1/ari", claims.UserID, claims.Username)
	}
}

func TestValidateJWTRejections(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"no bearer prefix", signedToken(t, time.Minute)},
		{"garbage", "Bearer not.a.token"},
		{"expired", "Bearer " + signedToken(t, -time.Minute)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateJWT(tt.value); err == nil {
				t.Errorf("ValidateJWT(%q) should fail", tt.value)
			}
		})
	}
}

func TestValidateRawToken(t *testing.T) {
	claims, err := ValidateRawToken(signedToken(t, time.Minute))
	if err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}
	if claims.UserID != "u1" {
		t.Errorf("UserID = %s, want u1", claims.UserID)
	}

	if _, err := ValidateRawToken("Bearer " + signedToken(t, time.Minute)); err == nil {
		t.Error("raw validation should reject a prefixed header value")
	}
}
