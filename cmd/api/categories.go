package main

import (
	"context"
	"net/http"
	"time"

	"catalogadmin/internal/domain/catalog"

	"github.com/go-chi/chi/v5"
)

// listCategoriesHandler godoc
//
//	@Summary	List categories
//	@Tags		category
//	@Produce	json
//	@Success	200	{object}	recordstore.Envelope
//	@Router		/api/category [get]
func (app *application) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	env, err := app.catalog.ListCategories(ctx)
	app.respond(w, r, http.StatusOK, env, err)
}

// createCategoryHandler godoc
//
//	@Summary	Create a category
//	@Tags		category
//	@Accept		json
//	@Produce	json
//	@Param		payload	body		catalog.CategoryInput	true	"Category"
//	@Success	201		{object}	recordstore.Envelope
//	@Failure	400		{object}	recordstore.Envelope
//	@Router		/api/category [post]
func (app *application) createCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var in catalog.CategoryInput
	if err := readJSON(w, r, &in); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(in); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	env, err := app.catalog.CreateCategory(ctx, in)
	app.respond(w, r, http.StatusCreated, env, err)
}

// updateCategoryHandler godoc
//
//	@Summary	Update a category
//	@Tags		category
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Category ID"
//	@Param		payload	body		catalog.CategoryInput	true	"Category"
//	@Success	200		{object}	recordstore.Envelope
//	@Failure	404		{object}	recordstore.Envelope
//	@Router		/api/category/{id} [put]
func (app *application) updateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in catalog.CategoryInput
	if err := readJSON(w, r, &in); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if err := Validate.Struct(in); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	env, err := app.catalog.UpdateCategory(ctx, id, in)
	app.respond(w, r, http.StatusOK, env, err)
}

// deleteCategoryHandler godoc
//
//	@Summary		Delete a category
//	@Description	Subcategories and products that reference the category are left in place.
//	@Tags			category
//	@Produce		json
//	@Param			id	path		string	true	"Category ID"
//	@Success		200	{object}	recordstore.Envelope
//	@Failure		404	{object}	recordstore.Envelope
//	@Router			/api/category/{id} [delete]
func (app *application) deleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	env, err := app.catalog.DeleteCategory(ctx, chi.URLParam(r, "id"))
	app.respond(w, r, http.StatusOK, env, err)
}
