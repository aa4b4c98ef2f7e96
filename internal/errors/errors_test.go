package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError(t *testing.T) {
	cause := stderrors.New("no such file")

	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantMsg  string
	}{
		{
			name:     "storage with cause",
			err:      NewStorageError("failed to open dataset", cause),
			wantType: ErrTypeStorage,
			wantMsg:  "[STORAGE] failed to open dataset: no such file",
		},
		{
			name:     "parsing with cause",
			err:      NewParsingError("malformed csv", cause),
			wantType: ErrTypeParsing,
			wantMsg:  "[PARSING] malformed csv: no such file",
		},
		{
			name:     "validation without cause",
			err:      NewAppValidationError("missing column", nil),
			wantType: ErrTypeValidation,
			wantMsg:  "[VALIDATION] missing column",
		},
		{
			name:     "not found",
			err:      NewNotFoundError("dataset", nil),
			wantType: ErrTypeNotFound,
			wantMsg:  "[NOT_FOUND] dataset not found",
		},
		{
			name:     "export",
			err:      NewExportError("write failed", nil),
			wantType: ErrTypeExport,
			wantMsg:  "[EXPORT] write failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := stderrors.New("root cause")
	wrapped := fmt.Errorf("loading: %w", NewStorageError("failed", cause))

	assert.True(t, stderrors.Is(wrapped, cause))

	var appErr *AppError
	require.True(t, stderrors.As(wrapped, &appErr))
	assert.Equal(t, ErrTypeStorage, appErr.Type)
}

func TestAppErrorWithContext(t *testing.T) {
	err := &AppError{Type: ErrTypeValidation, Message: "bad cell"}
	err.WithContext("row", 3).WithContext("column", "ROAS")

	assert.Equal(t, 3, err.Context["row"])
	assert.Equal(t, "ROAS", err.Context["column"])
}

func TestErrValidation(t *testing.T) {
	err := ErrValidation("limit", "limit must be between 1 and 500")
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, CodeValidation, err.ErrorCode)
	assert.Equal(t, ValidationError{Field: "limit", Message: "limit must be between 1 and 500"}, err.Details)
	assert.Equal(t, "Request validation failed", err.Error())
}

func TestIsDataUnavailable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"not found", NewNotFoundError("dataset", nil), true},
		{"storage", NewStorageError("permission denied", nil), true},
		{"parsing wrapped", fmt.Errorf("load: %w", NewParsingError("bad quote", nil)), true},
		{"strict validation", NewAppValidationError("row 2: ROAS", nil), false},
		{"export", NewExportError("disk full", nil), false},
		{"plain", stderrors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDataUnavailable(tt.err))
		})
	}
}

func TestProblemDetailsMarshalJSON(t *testing.T) {
	pd := NewProblemDetails(http.StatusServiceUnavailable, TypeDataUnavailable, "Data Unavailable", "detail", "/api/dashboard").
		WithExtension("trace_id", "abc").
		WithExtension("status", 999)

	data, err := json.Marshal(pd)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, TypeDataUnavailable, out["type"])
	assert.Equal(t, float64(503), out["status"], "extensions must not shadow standard members")
	assert.Equal(t, "abc", out["trace_id"])
	assert.Equal(t, "/api/dashboard", out["instance"])
}

func TestProblemDetailsOmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(&ProblemDetails{Type: TypeInternal, Title: "x", Status: 500})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "detail")
	assert.NotContains(t, string(data), "instance")
}
