package http

import (
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
)

type ProductHandler struct {
	Products *service.ProductService
}

// HandleList godoc
//
//	@Summary	List products
//	@Tags		Products
//	@Produce	json
//	@Success	200	{array}		shopsdk.Product
//	@Failure	500	{object}	shopsdk.ErrorResponse
//	@Router		/api/products [get].
func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ps, err := h.Products.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProducts(ps))
}

// HandleListByCategory godoc
//
//	@Summary	List a category's products
//	@Tags		Products
//	@Produce	json
//	@Param		categoryId	path	string	true	"category id"
//	@Success	200			{array}	shopsdk.Product	"empty for unknown categories"
//	@Router		/api/products/category/{categoryId} [get].
func (h *ProductHandler) HandleListByCategory(w http.ResponseWriter, r *http.Request) {
	ps, err := h.Products.ListByCategory(r.Context(), r.PathValue("categoryId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProducts(ps))
}

// HandleGet godoc
//
//	@Summary	Get a product
//	@Tags		Products
//	@Produce	json
//	@Param		id	path		string	true	"product id"
//	@Success	200	{object}	shopsdk.Product
//	@Failure	404	{object}	shopsdk.ErrorResponse
//	@Router		/api/products/{id} [get].
func (h *ProductHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.Products.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProduct(p))
}

// HandleCreate godoc
//
//	@Summary		Create a product
//	@Description	categoryName is filled from the category when omitted. features may be a JSON array.
//	@Tags			Products
//	@Accept			mpfd
//	@Produce		json
//	@Param			name			formData	string	true	"name"
//	@Param			description		formData	string	true	"description"
//	@Param			price			formData	number	true	"price, >= 0"
//	@Param			quantity		formData	integer	true	"quantity, >= 0"
//	@Param			category		formData	string	true	"category id"
//	@Param			categoryName	formData	string	false	"category name"
//	@Param			features		formData	string	false	"JSON array of strings"
//	@Param			images			formData	file	false	"up to 4 images, 5 MB each"
//	@Success		201				{object}	shopsdk.Product
//	@Failure		400				{object}	shopsdk.ErrorResponse
//	@Failure		500				{object}	shopsdk.ErrorResponse
//	@Router			/api/products [post].
func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	in, err := parseProductInput(r)
	if err != nil {
		writeFormError(w, r, err)
		return
	}

	p, err := h.Products.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, toProduct(p))
}

// HandleUpdate godoc
//
//	@Summary		Update a product
//	@Description	Only the fields sent are changed. New images replace all stored ones.
//	@Tags			Products
//	@Accept			mpfd
//	@Produce		json
//	@Param			id				path		string	true	"product id"
//	@Param			name			formData	string	false	"name"
//	@Param			description		formData	string	false	"description"
//	@Param			price			formData	number	false	"price, >= 0"
//	@Param			quantity		formData	integer	false	"quantity, >= 0"
//	@Param			category		formData	string	false	"category id"
//	@Param			categoryName	formData	string	false	"category name"
//	@Param			features		formData	string	false	"JSON array of strings"
//	@Param			images			formData	file	false	"up to 4 images, 5 MB each"
//	@Success		200				{object}	shopsdk.Product
//	@Failure		400				{object}	shopsdk.ErrorResponse
//	@Failure		404				{object}	shopsdk.ErrorResponse
//	@Router			/api/products/{id} [put].
func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	in, err := parseProductInput(r)
	if err != nil {
		writeFormError(w, r, err)
		return
	}

	p, err := h.Products.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, toProduct(p))
}

// HandleDelete godoc
//
//	@Summary	Delete a product
//	@Tags		Products
//	@Produce	json
//	@Param		id	path		string	true	"product id"
//	@Success	200	{object}	shopsdk.MessageResponse
//	@Failure	404	{object}	shopsdk.ErrorResponse
//	@Router		/api/products/{id} [delete].
func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Products.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	httpx.WriteMessage(w, http.StatusOK, "Product deleted")
}
