package main

import (
	"context"
	"net/http"
	"time"
)

// healthCheckHandler godoc
//
//	@Summary	Healthcheck endpoint
//	@Tags		ops
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Failure	503	{object}	map[string]string
//	@Router		/v1/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	data := map[string]string{
		"status":  "ok",
		"env":     app.config.env,
		"version": version,
		"storage": app.store.Driver,
		"media":   app.images.Backend(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	if err := app.store.Ping(ctx); err != nil {
		app.logger.Errorw("health check ping failed", "driver", app.store.Driver, "error", err)
		data["status"] = "unavailable"
		status = http.StatusServiceUnavailable
	}

	if err := writeJSON(w, status, data); err != nil {
		app.internalServerError(w, r, err)
	}
}
