package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"short", "secret1"},
		{"exactly 72 bytes", strings.Repeat("a", 72)},
		{"longer than bcrypt input", strings.Repeat("p", 80)},
		{"multibyte", strings.Repeat("пароль", 20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password, bcrypt.MinCost)
			if err != nil {
				t.Fatalf("HashPassword: %v", err)
			}
			if !CheckPassword(hash, tt.password) {
				t.Error("CheckPassword rejected the hashed password")
			}
			if CheckPassword(hash, tt.password+"x") {
				t.Error("CheckPassword accepted a different password")
			}
		})
	}
}

func TestLongPasswordsDifferBeyond72Bytes(t *testing.T) {
	prefix := strings.Repeat("p", 72)
	hash, err := HashPassword(prefix+"-one", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if CheckPassword(hash, prefix+"-two") {
		t.Error("passwords sharing a 72-byte prefix were treated as equal")
	}
}
