package errors

import (
	"errors"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "error without cause",
			err:  InvalidCredentials(),
			want: "invalid email or password",
		},
		{
			name: "error with cause",
			err: &AppError{
				Code:    ErrCodeInternal,
				Message: "failed to process",
				Cause:   errors.New("underlying error"),
			},
			want: "failed to process: underlying error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("AppError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("signature mismatch")
	err := TicketInvalid(cause)

	if unwrapped := err.Unwrap(); !errors.Is(unwrapped, cause) {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
}

func TestInvalidCredentials_MessageIsFixed(t *testing.T) {
	// The same user-facing shape must come back regardless of the cause;
	// the constructor takes none on purpose.
	a := InvalidCredentials()
	b := InvalidCredentials()

	if a.Message != b.Message || a.Code != b.Code {
		t.Errorf("InvalidCredentials() not uniform: %+v vs %+v", a, b)
	}
	if a.Message != "invalid email or password" {
		t.Errorf("unexpected message %q", a.Message)
	}
}

func TestCodePredicates(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{name: "invalid credentials", err: InvalidCredentials(), check: IsInvalidCredentials, want: true},
		{name: "ticket invalid", err: TicketInvalid(nil), check: IsTicketInvalid, want: true},
		{name: "selection not offered", err: SelectionNotOffered(), check: IsSelectionNotOffered, want: true},
		{name: "repository unavailable", err: RepositoryUnavailable(errors.New("conn refused")), check: IsRepositoryUnavailable, want: true},
		{name: "mismatched code", err: InvalidCredentials(), check: IsTicketInvalid, want: false},
		{name: "plain error", err: errors.New("boom"), check: IsInvalidCredentials, want: false},
		{name: "nil", err: nil, check: IsTicketInvalid, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("predicate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCodePredicates_WrappedErrors(t *testing.T) {
	wrapped := Wrap(InvalidCredentials(), ErrCodeInternal, "outer")
	// errors.As finds the outermost AppError.
	if GetCode(wrapped) != ErrCodeInternal {
		t.Errorf("GetCode(wrapped) = %v, want %v", GetCode(wrapped), ErrCodeInternal)
	}

	var appErr *AppError
	if !errors.As(wrapped, &appErr) {
		t.Fatal("expected AppError")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %v, want empty", got)
	}
	if got := GetCode(errors.New("boom")); got != ErrCodeInternal {
		t.Errorf("GetCode(plain) = %v, want %v", got, ErrCodeInternal)
	}
	if got := GetCode(SelectionNotOffered()); got != ErrCodeSelectionNotOffered {
		t.Errorf("GetCode = %v, want %v", got, ErrCodeSelectionNotOffered)
	}
}
