package hash

import (
	"strings"
	"testing"
)

func TestTokenDigest(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "uuid token",
			token: "0b8c7c5e-2f0d-4a43-9d8a-3f1e2c4b5a69",
		},
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "unicode token",
			token: "tøken-ü",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digest := TokenDigest(tt.token)

			if len(digest) != 64 {
				t.Errorf("TokenDigest() length = %d, want 64", len(digest))
			}

			if digest == tt.token {
				t.Error("TokenDigest() returned the raw token")
			}

			if again := TokenDigest(tt.token); again != digest {
				t.Errorf("TokenDigest() not deterministic: %s != %s", digest, again)
			}
		})
	}
}

func TestTokenDigestCaseSensitive(t *testing.T) {
	token := "abcdef-0123"

	if TokenDigest(token) == TokenDigest(strings.ToUpper(token)) {
		t.Error("TokenDigest() should differ for differently-cased tokens")
	}
}
