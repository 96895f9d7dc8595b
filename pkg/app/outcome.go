package app

import (
	"context"
	"errors"
	"strings"

	"github.com/flemzord/dadjoke/internal/joke"
)

// Errors raised at the command boundary. Each maps to a fixed user message.
var (
	// ErrMissingTerm indicates search-term was called without a term.
	ErrMissingTerm = errors.New("missing search term")

	// ErrUnknownCommand indicates an unrecognised or missing command.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrNoJokes indicates the search matched nothing.
	ErrNoJokes = errors.New("no jokes matched")

	// ErrEmptyStore indicates the leaderboard found no records.
	ErrEmptyStore = errors.New("empty store")
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// Describe converts the result of a command into the single line shown to
// the user and the process exit code. An empty store and a search without
// matches are handled outcomes and exit 0.
func Describe(err error) (string, int) {
	switch {
	case err == nil:
		return "", ExitOK
	case errors.Is(err, ErrNoJokes):
		return "No jokes were found for that search term", ExitOK
	case errors.Is(err, ErrEmptyStore):
		return "No jokes have been recorded yet. Try search-term first.", ExitOK
	case errors.Is(err, ErrMissingTerm):
		return "You should enter a term", ExitFailure
	case errors.Is(err, ErrUnknownCommand):
		return "Unknown command", ExitFailure
	case errors.Is(err, context.Canceled):
		return "Interrupted", ExitFailure
	case errors.Is(err, joke.ErrProtocol):
		return "Error: the joke API returned an unreadable response", ExitFailure
	case errors.Is(err, joke.ErrNetwork):
		return "Error: could not reach the joke API: " + oneLine(err), ExitFailure
	case errors.Is(err, joke.ErrIndexOutOfRange):
		return "Error: the joke API returned inconsistent results: " + oneLine(err), ExitFailure
	case errors.Is(err, joke.ErrCorruptRecord):
		return "Error: the joke store is corrupt: " + oneLine(err), ExitFailure
	case errors.Is(err, joke.ErrInvalidArgument):
		return "Error: invalid argument: " + oneLine(err), ExitFailure
	default:
		return "Error: " + oneLine(err), ExitFailure
	}
}

// oneLine folds joined errors onto a single line.
func oneLine(err error) string {
	return strings.ReplaceAll(err.Error(), "\n", "; ")
}
