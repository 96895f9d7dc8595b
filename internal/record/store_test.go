package record

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flemzord/dadjoke/internal/joke"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "data", "jokes.txt"))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []joke.Record{
		{ID: "R7UfaahVfFd", Text: "My dog used to chase people on a bike a lot."},
		{ID: "1", Text: ""},
		{ID: "pipe", Text: "a | b || c|"},
		{ID: "unicode", Text: "Ça va? 🐟 ¯\\_(ツ)_/¯"},
		{ID: "spaces", Text: "  leading and trailing  "},
	}
	for _, rec := range tests {
		t.Run(rec.ID, func(t *testing.T) {
			t.Parallel()

			line, err := Encode(rec)
			if err != nil {
				t.Fatalf("Encode() error: %v", err)
			}
			if !strings.HasSuffix(line, "\n") || strings.Count(line, "\n") != 1 {
				t.Fatalf("Encode() = %q, want a single terminated line", line)
			}

			got, err := Decode(strings.TrimSuffix(line, "\n"))
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if got != rec {
				t.Errorf("round trip = %+v, want %+v", got, rec)
			}
		})
	}
}

func TestEncodeRejectsUnencodable(t *testing.T) {
	t.Parallel()

	tests := map[string]joke.Record{
		"empty id":        {ID: "", Text: "x"},
		"separator in id": {ID: "a|b", Text: "x"},
		"newline in id":   {ID: "a\nb", Text: "x"},
		"newline in text": {ID: "a", Text: "line one\nline two"},
		"carriage return": {ID: "a", Text: "line one\r"},
	}
	for name, rec := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if _, err := Encode(rec); !errors.Is(err, joke.ErrInvalidArgument) {
				t.Errorf("Encode(%+v) error = %v, want ErrInvalidArgument", rec, err)
			}
		})
	}
}

func TestDecodeMissingSeparator(t *testing.T) {
	t.Parallel()

	_, err := Decode("no separator here")
	if !errors.Is(err, joke.ErrCorruptRecord) {
		t.Fatalf("error = %v, want ErrCorruptRecord", err)
	}
}

func TestLoadAllMissingFile(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	records, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error: %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("LoadAll() = %#v, want an empty non-nil slice", records)
	}
	if _, err := os.Stat(s.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadAll() should not create the file, stat error = %v", err)
	}
}

func TestAppendThenLoadAll(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	prior := []joke.Record{
		{ID: "1", Text: "A"},
		{ID: "2", Text: "B"},
	}
	for _, rec := range prior {
		if err := s.Append(rec); err != nil {
			t.Fatalf("Append(%+v) error: %v", rec, err)
		}
	}

	next := joke.Record{ID: "3", Text: "A | with a pipe"}
	if err := s.Append(next); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	got, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error: %v", err)
	}
	want := append(prior, next)
	if len(got) != len(want) {
		t.Fatalf("LoadAll() returned %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("reading store: %v", err)
	}
	if string(data) != "1|A\n2|B\n3|A | with a pipe\n" {
		t.Errorf("file content = %q", data)
	}
}

func TestAppendDoesNotRewrite(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	if err := os.MkdirAll(filepath.Dir(s.Path()), 0o755); err != nil {
		t.Fatal(err)
	}
	// A hand-written prefix the store could not have produced survives.
	if err := os.WriteFile(s.Path(), []byte("x|first\n\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := s.Append(joke.Record{ID: "y", Text: "second"}); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "x|first\n\ny|second\n" {
		t.Errorf("file content = %q", data)
	}
}

func TestAppendRejectsUnencodableWithoutWriting(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)
	err := s.Append(joke.Record{ID: "1", Text: "two\nlines"})
	if !errors.Is(err, joke.ErrInvalidArgument) {
		t.Fatalf("error = %v, want ErrInvalidArgument", err)
	}
	if _, err := os.Stat(s.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("rejected record should not create the store, stat error = %v", err)
	}
}

func TestLoadAllSkipsEmptyLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "jokes.txt")
	if err := os.WriteFile(path, []byte("1|A\n\n2|B\n\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := NewFileStore(path).LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "1" || got[1].ID != "2" {
		t.Errorf("LoadAll() = %+v", got)
	}
}

func TestLoadAllCorruptLine(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "jokes.txt")
	if err := os.WriteFile(path, []byte("1|A\ngarbage\n2|B\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewFileStore(path).LoadAll()
	if !errors.Is(err, joke.ErrCorruptRecord) {
		t.Fatalf("error = %v, want ErrCorruptRecord", err)
	}
	var cre *joke.CorruptRecordError
	if !errors.As(err, &cre) {
		t.Fatalf("error %T is not *joke.CorruptRecordError", err)
	}
	if cre.Line != 2 {
		t.Errorf("Line = %d, want 2", cre.Line)
	}
}
