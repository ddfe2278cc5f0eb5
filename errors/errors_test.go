package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New(t *testing.T) {
	err := New(ErrCodeInvalidConfig, "bad period")
	if err.Code != ErrCodeInvalidConfig {
		t.Errorf("expected code %s, got %s", ErrCodeInvalidConfig, err.Code)
	}
	if err.Message != "bad period" {
		t.Errorf("expected message 'bad period', got %q", err.Message)
	}
	if err.Fatal {
		t.Error("INVALID_CONFIG should not be fatal")
	}
}

func TestAppError_New_Fatal(t *testing.T) {
	err := New(ErrCodeContractViolation, "polled after completion")
	if !err.Fatal {
		t.Error("CONTRACT_VIOLATION should be fatal")
	}
}

func TestAppError_InvalidConfig(t *testing.T) {
	err := InvalidConfig("throttle.max_ready_count", "must be at least 1")
	if err.Code != ErrCodeInvalidConfig {
		t.Errorf("expected INVALID_CONFIG, got %s", err.Code)
	}
	if err.Details["field"] != "throttle.max_ready_count" {
		t.Errorf("expected field detail, got %v", err.Details["field"])
	}
	if !strings.Contains(err.Error(), "must be at least 1") {
		t.Errorf("expected reason in message, got %q", err.Error())
	}
}

func TestAppError_InvalidConfig_EmptyField(t *testing.T) {
	err := InvalidConfig("", "broken")
	if _, ok := err.Details["field"]; ok {
		t.Error("expected no 'field' key in details when field is empty")
	}
}

func TestAppError_ContractViolation(t *testing.T) {
	err := ContractViolation("throttle", "polled after completion")
	if !err.Fatal {
		t.Error("expected contract violation to be fatal")
	}
	if err.Details["component"] != "throttle" {
		t.Errorf("expected component=throttle, got %v", err.Details["component"])
	}
	want := "CONTRACT_VIOLATION: throttle: polled after completion"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}
}

func TestAppError_ConfigLoad_Unwrap(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := ConfigLoad("config.yml", cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if !strings.Contains(err.Error(), "cause: permission denied") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("loading: %w", MissingField("name"))

	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to unwrap")
	}
	if appErr.Code != ErrCodeMissingField {
		t.Errorf("expected MISSING_FIELD, got %s", appErr.Code)
	}
	if !IsAppError(wrapped) {
		t.Error("expected IsAppError to be true")
	}
	if IsAppError(stderrors.New("plain")) {
		t.Error("expected IsAppError to be false for plain errors")
	}
}

func TestHasCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code ErrorCode
		want bool
	}{
		{"matching code", InvalidConfig("x", "y"), ErrCodeInvalidConfig, true},
		{"other code", Internal(nil), ErrCodeInvalidConfig, false},
		{"plain error", stderrors.New("x"), ErrCodeInternal, false},
		{"nil", nil, ErrCodeInternal, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := HasCode(tc.err, tc.code); got != tc.want {
				t.Errorf("HasCode() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAppError_WithDetail(t *testing.T) {
	err := Internal(nil).WithDetail("stage", "debounce").WithCause(fmt.Errorf("boom"))
	if err.Details["stage"] != "debounce" {
		t.Errorf("expected stage detail, got %v", err.Details)
	}
	if err.Unwrap() == nil {
		t.Error("expected cause to be set")
	}
}
