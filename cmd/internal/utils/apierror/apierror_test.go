package apierror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/go-cmp/cmp"
)

func TestFromValidationError(t *testing.T) {
	req := struct {
		Title    string `validate:"required"`
		Priority int    `validate:"max=9"`
	}{Priority: 12}

	err := validator.New().Struct(req)
	apierr := FromValidationError(err)

	if apierr.Code() != http.StatusBadRequest {
		t.Errorf("Code() = %d, want 400", apierr.Code())
	}
	want := map[string]string{"title": "required", "priority": "max=9"}
	if diff := cmp.Diff(want, apierr.Details); diff != "" {
		t.Errorf("details mismatch (-want +got):\n%s", diff)
	}
}

func TestFromValidationError_Other(t *testing.T) {
	apierr := FromValidationError(errors.New("boom"))
	if apierr.Code() != http.StatusBadRequest || apierr.Message != "boom" {
		t.Errorf("FromValidationError() = %+v", apierr)
	}
}

func TestParamErrors(t *testing.T) {
	if got := NewMissingParamError("id").Error(); got != "Missing required parameter 'id'" {
		t.Errorf("NewMissingParamError() = %q", got)
	}
	if got := NewInvalidParamTypeError("id", "int").Error(); got != "Parameter 'id' must be of type int" {
		t.Errorf("NewInvalidParamTypeError() = %q", got)
	}
}
