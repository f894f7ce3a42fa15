package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/repolens/repolens/pkg/domain/types"
	"github.com/repolens/repolens/pkg/utils/errutil"
	"github.com/repolens/repolens/pkg/utils/logging"
)

// errorBody is the uniform JSON shape of every failure response.
type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

const (
	codeNotFound = "404 http status code"
	codeConflict = "409 http status code"
	codeInternal = "500 http status code"
)

// respondError converts a domain error into its fixed status/code/message
// triple. This is the only place HTTP statuses are assigned to error
// kinds; nothing beyond the upstream's own message leaks into the body.
func respondError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, types.ErrUserNotFound):
		logging.From(ctx).Warn("user not found", slog.Any("error", err))
		writeError(w, http.StatusNotFound, codeNotFound, "User not found")

	case errors.Is(err, types.ErrReposNotFound):
		logging.From(ctx).Warn("repos not found", slog.Any("error", err))
		writeError(w, http.StatusNotFound, codeNotFound, "Repos not found")

	case errors.Is(err, types.ErrRestClient):
		logging.From(ctx).Warn("upstream request failed", slog.Any("error", err))
		msg := fmt.Sprintf("Server responded with error due to the reason: %s", upstreamMessage(err))
		writeError(w, http.StatusConflict, codeConflict, msg)

	default:
		errutil.HandleError(ctx, "unexpected error on request", err)
		writeError(w, http.StatusInternalServerError, codeInternal, "Internal server error")
	}
}

// upstreamMessage digs the upstream's raw message out of the goerr value
// chain; the error text itself is the fallback.
func upstreamMessage(err error) string {
	if goErr := goerr.Unwrap(err); goErr != nil {
		if msg, ok := goErr.Values()[types.KeyUpstreamMessage].(string); ok && msg != "" {
			return msg
		}
	}
	return err.Error()
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	body, err := json.Marshal(errorBody{Message: message, Code: code})
	if err != nil {
		logging.Default().Error("fail to marshal error body", slog.Any("error", err))
		safeWrite(w, http.StatusInternalServerError, []byte(`{"message":"Internal server error","code":"500 http status code"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	safeWrite(w, status, body)
}
