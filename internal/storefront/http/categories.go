package http

import (
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/shopsdk"
)

type CategoryHandler struct {
	Categories *service.CategoryService
}

// HandleList godoc
//
//	@Summary	List categories
//	@Tags		Categories
//	@Produce	json
//	@Success	200	{array}		shopsdk.Category	"newest first"
//	@Failure	500	{object}	shopsdk.ErrorResponse
//	@Router		/api/categories [get].
func (h *CategoryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	cs, err := h.Categories.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCategories(cs))
}

// HandleGet godoc
//
//	@Summary	Get a category
//	@Tags		Categories
//	@Produce	json
//	@Param		id	path		string	true	"category id"
//	@Success	200	{object}	shopsdk.Category
//	@Failure	404	{object}	shopsdk.ErrorResponse
//	@Router		/api/categories/{id} [get].
func (h *CategoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.Categories.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCategory(c))
}

// HandleCreate godoc
//
//	@Summary		Create a category
//	@Description	The slug is derived from the name. Names are unique.
//	@Tags			Categories
//	@Accept			mpfd
//	@Produce		json
//	@Param			CategoryName	formData	string	true	"name"
//	@Param			description		formData	string	false	"description"
//	@Param			icon			formData	string	false	"icon"
//	@Param			emoji			formData	string	false	"emoji"
//	@Param			image			formData	file	false	"image, at most 5 MB"
//	@Success		201				{object}	shopsdk.Category
//	@Failure		400				{object}	shopsdk.ErrorResponse	"missing or duplicate name, or not an image"
//	@Failure		500				{object}	shopsdk.ErrorResponse
//	@Router			/api/categories [post].
func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	in, err := parseCategoryInput(r)
	if err != nil {
		writeFormError(w, r, err)
		return
	}

	c, err := h.Categories.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toCategory(c))
}

// HandleUpdate godoc
//
//	@Summary		Update a category
//	@Description	Only the fields sent are changed. A new image replaces the old one.
//	@Tags			Categories
//	@Accept			mpfd
//	@Produce		json
//	@Param			id				path		string	true	"category id"
//	@Param			CategoryName	formData	string	false	"name"
//	@Param			description		formData	string	false	"description"
//	@Param			icon			formData	string	false	"icon"
//	@Param			emoji			formData	string	false	"emoji"
//	@Param			image			formData	file	false	"image, at most 5 MB"
//	@Success		200				{object}	shopsdk.Category
//	@Failure		400				{object}	shopsdk.ErrorResponse
//	@Failure		404				{object}	shopsdk.ErrorResponse
//	@Router			/api/categories/{id} [put].
func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	in, err := parseCategoryInput(r)
	if err != nil {
		writeFormError(w, r, err)
		return
	}

	c, err := h.Categories.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCategory(c))
}

// HandleDelete godoc
//
//	@Summary	Delete a category
//	@Tags		Categories
//	@Produce	json
//	@Param		id	path		string	true	"category id"
//	@Success	200	{object}	shopsdk.MessageResponse
//	@Failure	404	{object}	shopsdk.ErrorResponse
//	@Router		/api/categories/{id} [delete].
func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Categories.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Category deleted successfully")
}

// HandleProductCount godoc
//
//	@Summary		Adjust a category's product count
//	@Description	Adds increment, which may be negative, to productCount.
//	@Tags			Categories
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string						true	"category id"
//	@Param			body	body		shopsdk.ProductCountRequest	true	"increment"
//	@Success		200		{object}	shopsdk.Category
//	@Failure		400		{object}	shopsdk.ErrorResponse
//	@Failure		404		{object}	shopsdk.ErrorResponse
//	@Router			/api/categories/{id}/product-count [patch].
func (h *CategoryHandler) HandleProductCount(w http.ResponseWriter, r *http.Request) {
	var req shopsdk.ProductCountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	c, err := h.Categories.AdjustProductCount(r.Context(), r.PathValue("id"), req.Increment)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toCategory(c))
}
