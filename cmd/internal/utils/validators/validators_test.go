package validators

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestRegisteredTags(t *testing.T) {
	validate := validator.New()
	Register(validate)

	tests := []struct {
		tag   string
		value string
		ok    bool
	}{
		{"hasletter", "abc123", true},
		{"hasletter", "123456", false},
		{"hasdigit", "abc123", true},
		{"hasdigit", "abcdef", false},
		{"nospaces", "abc", true},
		{"nospaces", "a bc", false},
		{"taskstatus", "pending", true},
		{"taskstatus", "partial", true},
		{"taskstatus", "done", true},
		{"taskstatus", "Done", false},
		{"taskstatus", "blocked", false},
	}

	for _, tt := range tests {
		err := validate.Var(tt.value, tt.tag)
		if (err == nil) != tt.ok {
			t.Errorf("%s(%q) valid = %v, want %v", tt.tag, tt.value, err == nil, tt.ok)
		}
	}
}
