package errors

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapDBError_NilError(t *testing.T) {
	if err := MapDBError(nil); err != nil {
		t.Errorf("MapDBError(nil) = %v, want nil", err)
	}
}

func TestMapDBError_ContextErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode ErrorCode
	}{
		{name: "deadline exceeded", err: context.DeadlineExceeded, wantCode: ErrCodeTimeout},
		{name: "canceled", err: context.Canceled, wantCode: ErrCodeCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapDBError(tt.err)
			if !IsAppError(err, tt.wantCode) {
				t.Errorf("MapDBError() code = %v, want %v", GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestMapDBError_ConnectionClass(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.ConnectionFailure}

	err := MapDBError(pgErr)

	if !IsRepositoryUnavailable(err) {
		t.Errorf("MapDBError(connection failure) code = %v, want %v", GetCode(err), ErrCodeRepositoryUnavailable)
	}
}

func TestMapDBError_AdminShutdown(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.AdminShutdown}

	if err := MapDBError(pgErr); !IsRepositoryUnavailable(err) {
		t.Errorf("MapDBError(admin shutdown) code = %v, want %v", GetCode(err), ErrCodeRepositoryUnavailable)
	}
}

func TestMapDBError_QueryCanceled(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.QueryCanceled}

	if err := MapDBError(pgErr); !IsAppError(err, ErrCodeTimeout) {
		t.Errorf("MapDBError(query canceled) code = %v, want %v", GetCode(err), ErrCodeTimeout)
	}
}

func TestMapDBError_OtherPgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.UndefinedTable}

	err := MapDBError(pgErr)

	if !IsAppError(err, ErrCodeInternal) {
		t.Errorf("MapDBError(undefined table) code = %v, want %v", GetCode(err), ErrCodeInternal)
	}
	if !errors.Is(err, pgErr) {
		t.Error("cause should be preserved for server-side logging")
	}
}

func TestMapDBError_UnrecognizedPassthrough(t *testing.T) {
	plain := errors.New("something else entirely")

	if err := MapDBError(plain); !errors.Is(err, plain) {
		t.Errorf("MapDBError(plain) = %v, want passthrough", err)
	}
}
