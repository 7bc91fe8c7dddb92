package models

import (
	"strings"
	"testing"
)

func TestValidateUserID(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        string
		wantErr     bool
		errContains string
	}{
		{
			name:  "valid simple identifier",
			input: "test_user",
			want:  "test_user",
		},
		{
			name:  "valid with hyphen and digits",
			input: "user-42",
			want:  "user-42",
		},
		{
			name:  "surrounding whitespace is trimmed",
			input: "  gardener  ",
			want:  "gardener",
		},
		{
			name:  "maximum length accepted",
			input: strings.Repeat("a", 50),
			want:  strings.Repeat("a", 50),
		},
		{
			name:        "empty string",
			input:       "",
			wantErr:     true,
			errContains: "empty",
		},
		{
			name:        "whitespace only",
			input:       "   ",
			wantErr:     true,
			errContains: "empty",
		},
		{
			name:        "too long",
			input:       strings.Repeat("a", 51),
			wantErr:     true,
			errContains: "50 characters or less",
		},
		{
			name:        "invalid characters",
			input:       "!!!",
			wantErr:     true,
			errContains: "invalid characters",
		},
		{
			name:        "embedded space",
			input:       "user name",
			wantErr:     true,
			errContains: "invalid characters",
		},
		{
			name:        "path traversal attempt",
			input:       "../etc/passwd",
			wantErr:     true,
			errContains: "invalid characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateUserID(tt.input)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("ValidateUserID(%q) expected error, got none", tt.input)
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("ValidateUserID(%q) error = %q, want it to contain %q", tt.input, err.Error(), tt.errContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("ValidateUserID(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ValidateUserID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
