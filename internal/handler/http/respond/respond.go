// Package respond writes HTTP responses: Atom documents for feed routes and
// JSON for errors and operational endpoints. Error bodies are sanitized so
// internal failures never leak connection strings or driver messages.
package respond

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
)

// AtomContentType is the Content-Type of feed responses.
const AtomContentType = "application/atom+xml; charset=utf-8"

// Atom writes a rendered Atom document with the given status code.
func Atom(w http.ResponseWriter, code int, doc string) {
	h := w.Header()
	h.Set("Content-Type", AtomContentType)
	h.Set("Content-Length", strconv.Itoa(len(doc)))
	w.WriteHeader(code)
	if _, err := io.WriteString(w, doc); err != nil {
		// ヘッダー送信後なのでログのみ
		slog.Default().Warn("failed to write atom response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes a JSON error response with the given status code and error message.
func Error(w http.ResponseWriter, code int, err error) {
	JSON(w, code, map[string]string{"error": err.Error()})
}

// safePhrases mark messages that describe a client mistake.
var safePhrases = []string{
	"required",
	"invalid",
	"not found",
	"must be",
	"rate limit",
	"unavailable",
}

// SafeError returns client errors as-is. Server errors (5xx) and messages
// that do not look like client errors are logged with secrets masked and
// replaced by a generic message.
func SafeError(w http.ResponseWriter, code int, err error) {
	if err == nil {
		return
	}

	msg := err.Error()
	if code < 500 && isSafe(msg) {
		JSON(w, code, map[string]string{"error": msg})
		return
	}

	slog.Default().Error("internal server error",
		slog.String("status", http.StatusText(code)),
		slog.Int("code", code),
		slog.String("error", SanitizeError(err)))
	JSON(w, code, map[string]string{"error": genericMessage(code)})
}

func isSafe(msg string) bool {
	lower := strings.ToLower(msg)
	for _, phrase := range safePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

func genericMessage(code int) string {
	if code == http.StatusServiceUnavailable {
		return "service temporarily unavailable"
	}
	return "internal server error"
}
