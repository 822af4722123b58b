package main

import (
	"context"
	"net/http"
	"time"

	"catalogadmin/internal/domain/catalog"

	"github.com/go-chi/chi/v5"
)

// @Summary	List subcategories with their category
// @Tags		subcategory
// @Produce	json
// @Success	200	{object}	recordstore.Envelope
// @Router		/api/subcategory [get]
func (app *application) listSubcategoriesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	env, err := app.catalog.ListSubcategories(ctx)
	app.respond(w, r, http.StatusOK, env, err)
}

// @Summary		List subcategories of one category
// @Description	Always returns a list (possibly empty) and its count.
// @Tags			subcategory
// @Produce		json
// @Param			categoryId	path		string	true	"Category ID"
// @Success		200			{object}	recordstore.Envelope
// @Router			/api/subcategory/byCategory/{categoryId} [get]
func (app *application) listSubcategoriesByCategoryHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	env, err := app.catalog.ListSubcategoriesByCategory(ctx, chi.URLParam(r, "categoryId"))
	app.respond(w, r, http.StatusOK, env, err)
}

// @Summary	Create a subcategory
// @Tags		subcategory
// @Accept		json
// @Produce	json
// @Param		payload	body		catalog.SubcategoryInput	true	"Subcategory"
// @Success	201		{object}	recordstore.Envelope
// @Failure	400		{object}	recordstore.Envelope
// @Failure	409		{object}	recordstore.Envelope
// @Router		/api/subcategory [post]
func (app *application) createSubcategoryHandler(w http.ResponseWriter, r *http.Request) {
	var in catalog.SubcategoryInput
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

	env, err := app.catalog.CreateSubcategory(ctx, in)
	app.respond(w, r, http.StatusCreated, env, err)
}

// @Summary	Update a subcategory
// @Tags		subcategory
// @Accept		json
// @Produce	json
// @Param		id		path		string						true	"Subcategory ID"
// @Param		payload	body		catalog.SubcategoryInput	true	"Subcategory"
// @Success	200		{object}	recordstore.Envelope
// @Failure	404		{object}	recordstore.Envelope
// @Failure	409		{object}	recordstore.Envelope
// @Router		/api/subcategory/{id} [put]
func (app *application) updateSubcategoryHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in catalog.SubcategoryInput
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

	env, err := app.catalog.UpdateSubcategory(ctx, id, in)
	app.respond(w, r, http.StatusOK, env, err)
}

// @Summary	Delete a subcategory
// @Tags		subcategory
// @Produce	json
// @Param		id	path		string	true	"Subcategory ID"
// @Success	200	{object}	recordstore.Envelope
// @Failure	404	{object}	recordstore.Envelope
// @Router		/api/subcategory/{id} [delete]
func (app *application) deleteSubcategoryHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	env, err := app.catalog.DeleteSubcategory(ctx, chi.URLParam(r, "id"))
	app.respond(w, r, http.StatusOK, env, err)
}
