// Run with: go test ./internal/apperror/ -v
package apperror

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
)

// TABLE-DRIVEN TESTS:
// Each case names the error, the sentinel it should (or should not) match,
// and the expected answer from errors.Is.
func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("venue", "abc123"),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "InvalidReference wraps ErrReference",
			err:       InvalidReference("artist", "abc123"),
			target:    ErrReference,
			wantMatch: true,
		},
		{
			name:      "Persistence wraps ErrPersistence",
			err:       Persistence("list venue", errors.New("disk full")),
			target:    ErrPersistence,
			wantMatch: true,
		},
		{
			name:      "Persistence exposes its cause",
			err:       Persistence("list venue", sql.ErrConnDone),
			target:    sql.ErrConnDone,
			wantMatch: true,
		},
		{
			name:      "wrapped NotFound still matches",
			err:       fmt.Errorf("loading venue: %w", NotFound("venue", "x")),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationErrors matches ErrValidation",
			err:       &ValidationErrors{Fields: map[string]string{"name": "required"}},
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("venue", "abc123"),
			target:    ErrValidation,
			wantMatch: false,
		},
		{
			name:      "ValidationErrors does NOT match ErrNotFound",
			err:       &ValidationErrors{},
			target:    ErrNotFound,
			wantMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantMessage string
	}{
		{
			name:        "NotFound message includes resource and id",
			err:         NotFound("venue", "abc123"),
			wantMessage: "venue not found with id abc123",
		},
		{
			name:        "InvalidReference names the missing row",
			err:         InvalidReference("artist", "a1"),
			wantMessage: "artist with id a1 does not exist",
		},
		{
			name:        "Persistence hides the cause",
			err:         Persistence("create venue", errors.New("constraint failed")),
			wantMessage: "could not create venue",
		},
		{
			name: "ValidationErrors joins in field order",
			err: &ValidationErrors{Fields: map[string]string{
				"state": "state is invalid",
				"name":  "name is required",
			}},
			wantMessage: "name is required; state is invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestValidationErrorsAddKeepsFirstMessage(t *testing.T) {
	var v ValidationErrors
	v.Add("name", "first")
	v.Add("name", "second")

	if got := v.Fields["name"]; got != "first" {
		t.Errorf("Fields[name] = %q, want %q", got, "first")
	}
}

func TestInvalidReferenceField(t *testing.T) {
	err := InvalidReference("venue", "v1")

	if err.Field != "venue_id" {
		t.Errorf("Field = %q, want %q", err.Field, "venue_id")
	}
}
