package jokeapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/flemzord/dadjoke/internal/joke"
)

// apiError is the error body the API returns with non-2xx statuses.
type apiError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// mapHTTPError converts a non-2xx status and its body into an error
// wrapping joke.ErrNetwork.
func mapHTTPError(statusCode int, body io.Reader) error {
	var ae apiError

	data, readErr := io.ReadAll(io.LimitReader(body, 4096))
	if readErr == nil && len(data) > 0 {
		_ = json.Unmarshal(data, &ae)
	}

	msg := ae.Message
	if msg == "" {
		msg = strings.TrimSpace(string(data))
	}
	if msg == "" {
		msg = http.StatusText(statusCode)
	}

	return fmt.Errorf("jokeapi: HTTP %d: %s: %w", statusCode, msg, joke.ErrNetwork)
}
