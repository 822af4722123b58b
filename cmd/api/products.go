package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"catalogadmin/internal/domain/catalog"
	"catalogadmin/internal/media"

	"github.com/go-chi/chi/v5"
)

// multipart bodies carry the image plus a handful of text fields
const maxProductBody = media.MaxImageBytes + 1<<20

// listProductsHandler godoc
//
//	@Summary	List products with their category and subcategory
//	@Tags		product
//	@Produce	json
//	@Success	200	{object}	recordstore.Envelope
//	@Router		/api/product [get]
func (app *application) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	env, err := app.catalog.ListProducts(ctx)
	app.respond(w, r, http.StatusOK, env, err)
}

// createProductHandler godoc
//
//	@Summary		Create a product
//	@Description	Accepts multipart/form-data with an optional "image" file, or a JSON body without an image.
//	@Tags			product
//	@Accept			multipart/form-data
//	@Accept			json
//	@Produce		json
//	@Param			category_id		formData	string	true	"Category ID"
//	@Param			subcategory_id	formData	string	true	"Subcategory ID"
//	@Param			p_name			formData	string	true	"Name"
//	@Param			p_price			formData	number	true	"Price"
//	@Param			p_description	formData	string	false	"Description"
//	@Param			status			formData	boolean	false	"Active"
//	@Param			image			formData	file	false	"Product image"
//	@Success		201				{object}	recordstore.Envelope
//	@Failure		400				{object}	recordstore.Envelope
//	@Failure		502				{object}	recordstore.Envelope
//	@Router			/api/product [post]
func (app *application) createProductHandler(w http.ResponseWriter, r *http.Request) {
	in, up, cleanup, err := app.readProduct(w, r)
	defer cleanup()
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	// hosted uploads can be slow
	ctx, cancel := context.WithTimeout(r.Context(), 45*time.Second)
	defer cancel()

	env, err := app.catalog.CreateProduct(ctx, in, up)
	app.respond(w, r, http.StatusCreated, env, err)
}

// updateProductHandler godoc
//
//	@Summary		Update a product
//	@Description	A new "image" file replaces the stored image; without one the image is kept.
//	@Tags			product
//	@Accept			multipart/form-data
//	@Accept			json
//	@Produce		json
//	@Param			id				path		string	true	"Product ID"
//	@Param			category_id		formData	string	true	"Category ID"
//	@Param			subcategory_id	formData	string	true	"Subcategory ID"
//	@Param			p_name			formData	string	true	"Name"
//	@Param			p_price			formData	number	true	"Price"
//	@Param			p_description	formData	string	false	"Description"
//	@Param			status			formData	boolean	false	"Active"
//	@Param			image			formData	file	false	"Product image"
//	@Success		200				{object}	recordstore.Envelope
//	@Failure		400				{object}	recordstore.Envelope
//	@Failure		404				{object}	recordstore.Envelope
//	@Router			/api/product/{id} [put]
func (app *application) updateProductHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	in, up, cleanup, err := app.readProduct(w, r)
	defer cleanup()
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 45*time.Second)
	defer cancel()

	env, err := app.catalog.UpdateProduct(ctx, id, in, up)
	app.respond(w, r, http.StatusOK, env, err)
}

// deleteProductHandler godoc
//
//	@Summary	Delete a product and its image
//	@Tags		product
//	@Produce	json
//	@Param		id	path		string	true	"Product ID"
//	@Success	200	{object}	recordstore.Envelope
//	@Failure	401	{object}	recordstore.Envelope
//	@Failure	404	{object}	recordstore.Envelope
//	@Security	ApiKeyAuth
//	@Router		/api/product/{id} [delete]
func (app *application) deleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	env, err := app.catalog.DeleteProduct(ctx, id)
	if err == nil {
		app.logger.Infow("product deleted", "product_id", id, "admin", getAdminFromContext(r))
	}
	app.respond(w, r, http.StatusOK, env, err)
}

// readProduct decodes a product payload from JSON or multipart form data. The
// returned cleanup must always be called; it releases multipart temp files.
func (app *application) readProduct(w http.ResponseWriter, r *http.Request) (catalog.ProductInput, *media.Upload, func(), error) {
	noop := func() {}
	var in catalog.ProductInput

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := readJSON(w, r, &in); err != nil {
			return in, nil, noop, err
		}
		return in, nil, noop, Validate.Struct(in)
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxProductBody)
	if err := r.ParseMultipartForm(maxProductBody); err != nil {
		return in, nil, noop, fmt.Errorf("parse form: %w", err)
	}
	cleanup := func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}

	in.CategoryID = r.FormValue("category_id")
	in.SubcategoryID = r.FormValue("subcategory_id")
	in.Name = r.FormValue("p_name")
	if _, ok := r.MultipartForm.Value["p_description"]; ok {
		desc := r.FormValue("p_description")
		in.Description = &desc
	}

	if v := r.FormValue("p_price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return in, nil, cleanup, fmt.Errorf("invalid p_price: %w", err)
		}
		if math.IsInf(price, 0) || math.IsNaN(price) {
			return in, nil, cleanup, fmt.Errorf("invalid p_price: %q is not a finite number", v)
		}
		in.Price = price
	}
	if v := r.FormValue("status"); v != "" {
		status, err := strconv.ParseBool(v)
		if err != nil {
			return in, nil, cleanup, fmt.Errorf("invalid status: %w", err)
		}
		in.Status = &status
	}

	if err := Validate.Struct(in); err != nil {
		return in, nil, cleanup, err
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return in, nil, cleanup, nil
		}
		return in, nil, cleanup, fmt.Errorf("read image: %w", err)
	}
	closeAll := func() {
		file.Close()
		cleanup()
	}

	up, err := media.NewUpload(file, header.Filename, header.Size)
	if err != nil {
		return in, nil, closeAll, err
	}
	return in, up, closeAll, nil
}
