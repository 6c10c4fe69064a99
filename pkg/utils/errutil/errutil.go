package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/sableworks/grimoire/pkg/domain/types"
	"github.com/sableworks/grimoire/pkg/utils/logging"
	"github.com/sableworks/grimoire/pkg/utils/safe"
)

// StatusOf maps an error to an HTTP status code by its taxonomy tag.
// Validation failures are the caller's fault; store, generation engine and
// dataset failures are upstream faults.
func StatusOf(err error) int {
	if goerr.HasTag(err, types.ErrTagValidation) {
		return http.StatusBadRequest
	}
	if goerr.HasTag(err, types.ErrTagDependency) || goerr.HasTag(err, types.ErrTagFetch) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// HandleHTTP logs the error and writes a JSON error response.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)

	// Always log errors, especially 5xx errors
	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
		)
	}

	body, marshalErr := json.Marshal(map[string]string{"error": err.Error()})
	if marshalErr != nil {
		http.Error(w, err.Error(), statusCode)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	safe.Write(ctx, w, body)
}
