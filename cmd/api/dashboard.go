package main

import (
	"context"
	"net/http"
	"time"
)

// dashboardHandler godoc
//
//	@Summary	Catalog counts for the admin dashboard
//	@Tags		dashboard
//	@Produce	json
//	@Success	200	{object}	recordstore.Envelope{record=catalog.Overview}
//	@Router		/api/dashboard [get]
func (app *application) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	env, err := app.catalog.Overview(ctx)
	app.respond(w, r, http.StatusOK, env, err)
}
