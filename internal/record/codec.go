package record

import (
	"fmt"
	"strings"

	"github.com/flemzord/dadjoke/internal/joke"
)

// Separator splits the id from the joke text on a persisted line.
const Separator = "|"

// Encode renders rec as a single "id|text\n" line. The id must not contain
// the separator and neither field may contain a newline; such records are
// rejected rather than written in a form that would not decode back.
func Encode(rec joke.Record) (string, error) {
	if rec.ID == "" {
		return "", fmt.Errorf("record: empty id: %w", joke.ErrInvalidArgument)
	}
	if strings.Contains(rec.ID, Separator) {
		return "", fmt.Errorf("record: id %q contains %q: %w", rec.ID, Separator, joke.ErrInvalidArgument)
	}
	if strings.ContainsAny(rec.ID, "\r\n") || strings.ContainsAny(rec.Text, "\r\n") {
		return "", fmt.Errorf("record: %q spans multiple lines: %w", rec.ID, joke.ErrInvalidArgument)
	}
	return rec.ID + Separator + rec.Text + "\n", nil
}

// Decode parses one line (without its trailing newline), splitting once
// on the first separator. Text may itself contain the separator.
func Decode(line string) (joke.Record, error) {
	id, text, ok := strings.Cut(line, Separator)
	if !ok {
		return joke.Record{}, &joke.CorruptRecordError{Reason: "missing separator"}
	}
	return joke.Record{ID: id, Text: text}, nil
}
