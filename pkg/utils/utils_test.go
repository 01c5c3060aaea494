package utils

import (
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if !CheckPassword("hunter22", hash) {
		t.Errorf("Expected the original password to match its hash")
	}
	if CheckPassword("hunter23", hash) {
		t.Errorf("Expected a different password to be rejected")
	}
	if CheckPassword("hunter22", "not-a-bcrypt-hash") {
		t.Errorf("Expected a malformed hash to be rejected")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		userID string
		role   string
	}{
		{"student token", "42", "student"},
		{"mentor token", "77", "mentor"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := GenerateToken(tc.userID, tc.role, "supersecret")
			if err != nil {
				t.Fatalf("GenerateToken: %v", err)
			}

			claims, err := ValidateToken(token, "supersecret")
			if err != nil {
				t.Fatalf("ValidateToken: %v", err)
			}
			if claims.UserID != tc.userID {
				t.Errorf("Expected UserID %s, got %s", tc.userID, claims.UserID)
			}
			if claims.Role != tc.role {
				t.Errorf("Expected Role %s, got %s", tc.role, claims.Role)
			}
		})
	}
}

func TestValidateTokenRejectsBadInput(t *testing.T) {
	token, err := GenerateToken("42", "student", "supersecret")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ValidateToken(token, "wrongsecret"); err == nil {
		t.Errorf("Expected error with wrong secret")
	}
	if _, err := ValidateToken("not.a.token", "supersecret"); err == nil {
		t.Errorf("Expected error for a malformed token")
	}
}
