package main

import (
	"errors"
	"net/http"
	"time"

	"catalogadmin/internal/recordstore"
)

type CreateTokenPayload struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=3,max=72"`
}

type TokenRecord struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// createTokenHandler godoc
//
//	@Summary		Login to get an admin token
//	@Description	The token is required as a Bearer header to delete products.
//	@Tags			authentication
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateTokenPayload	true	"Admin credentials"
//	@Success		200		{object}	recordstore.Envelope{record=TokenRecord}
//	@Failure		400		{object}	recordstore.Envelope
//	@Failure		401		{object}	recordstore.Envelope
//	@Router			/api/auth/token [post]
func (app *application) createTokenHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateTokenPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if !app.admin.Check(payload.Username, payload.Password) {
		app.unauthorizedErrorResponse(w, r, errors.New("invalid admin credentials"))
		return
	}

	token, expiresAt, err := app.authenticator.GenerateToken(payload.Username)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.logger.Infow("admin token issued", "user", payload.Username, "expires_at", expiresAt)
	if err := writeJSON(w, http.StatusOK, recordstore.Envelope{
		Success: true,
		Record:  TokenRecord{Token: token, ExpiresAt: expiresAt},
	}); err != nil {
		app.internalServerError(w, r, err)
	}
}
