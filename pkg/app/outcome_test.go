package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/flemzord/dadjoke/internal/joke"
)

func TestDescribe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantMsg  string
		wantCode int
	}{
		{"success", nil, "", ExitOK},
		{"no jokes", fmt.Errorf("%w: %w", ErrNoJokes, joke.ErrNotFound), "No jokes were found for that search term", ExitOK},
		{"empty store", fmt.Errorf("%w: %w", ErrEmptyStore, joke.ErrNotFound), "No jokes have been recorded yet", ExitOK},
		{"missing term", fmt.Errorf("%w: %w", ErrMissingTerm, joke.ErrInvalidArgument), "You should enter a term", ExitFailure},
		{"unknown command", ErrUnknownCommand, "Unknown command", ExitFailure},
		{"interrupted", fmt.Errorf("jokeapi: sending request: %w", context.Canceled), "Interrupted", ExitFailure},
		{"protocol", &joke.ProtocolError{Body: []byte("x"), Err: errors.New("bad")}, "unreadable response", ExitFailure},
		{"network", fmt.Errorf("jokeapi: HTTP 503: %w", joke.ErrNetwork), "could not reach the joke API", ExitFailure},
		{"index", fmt.Errorf("sampler: %w", joke.ErrIndexOutOfRange), "inconsistent results", ExitFailure},
		{"corrupt", &joke.CorruptRecordError{Line: 4, Reason: "missing separator"}, "store is corrupt", ExitFailure},
		{"invalid", fmt.Errorf("record: %w", joke.ErrInvalidArgument), "invalid argument", ExitFailure},
		{"other", errors.New("disk full"), "Error: disk full", ExitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			msg, code := Describe(tt.err)
			if code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("message = %q, want it to contain %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestDescribeIsSingleLine(t *testing.T) {
	t.Parallel()

	err := errors.Join(errors.New("config: first"), errors.New("config: second"))
	msg, _ := Describe(err)
	if strings.Contains(msg, "\n") {
		t.Errorf("message spans lines: %q", msg)
	}
	if !strings.Contains(msg, "first; config: second") {
		t.Errorf("message = %q", msg)
	}
}
