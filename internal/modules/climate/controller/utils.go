package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"climate-api/internal/httpapi"
	"climate-api/internal/modules/climate/service"
	"climate-api/internal/utils"
)

// writeServiceError maps service errors onto the {"error": ...} payload.
// Storage failures are logged and reported without their cause.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var nf *service.NotFoundError
	var invalid *service.InvalidInputError
	switch {
	case errors.As(err, &nf):
		utils.WriteError(w, http.StatusNotFound, nf.Message)
	case errors.As(err, &invalid):
		utils.WriteError(w, http.StatusBadRequest, invalid.Message)
	default:
		slog.Error("query failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", httpapi.RequestID(r.Context()),
			"error", err,
		)
		utils.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
