package shopsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
)

// File is an image attached to a catalogue form.
type File struct {
	Name string
	Data []byte
}

// CategoryForm is the body of a category create or update. Nil fields are
// omitted.
type CategoryForm struct {
	CategoryName *string
	Description  *string
	Icon         *string
	Emoji        *string
	Image        *File
}

// ProductForm is the body of a product create or update. Nil fields are
// omitted; Images replace the stored ones only when non-empty.
type ProductForm struct {
	Name         *string
	Description  *string
	Price        *float64
	Quantity     *int
	Category     *string
	CategoryName *string
	Features     []string
	Images       []File
}

type multipartBody struct {
	buf bytes.Buffer
	w   *multipart.Writer
	err error
}

func newMultipartBody() *multipartBody {
	b := &multipartBody{}
	b.w = multipart.NewWriter(&b.buf)
	return b
}

func (b *multipartBody) field(name string, value *string) {
	if b.err != nil || value == nil {
		return
	}
	b.err = b.w.WriteField(name, *value)
}

func (b *multipartBody) file(field string, f File) {
	if b.err != nil {
		return
	}
	fw, err := b.w.CreateFormFile(field, f.Name)
	if err != nil {
		b.err = err
		return
	}
	_, b.err = fw.Write(f.Data)
}

func (b *multipartBody) close() error {
	if b.err != nil {
		return b.err
	}
	return b.w.Close()
}

func (f CategoryForm) encode() (*multipartBody, error) {
	b := newMultipartBody()
	b.field("CategoryName", f.CategoryName)
	b.field("description", f.Description)
	b.field("icon", f.Icon)
	b.field("emoji", f.Emoji)
	if f.Image != nil {
		b.file("image", *f.Image)
	}
	return b, b.close()
}

func (f ProductForm) encode() (*multipartBody, error) {
	b := newMultipartBody()
	b.field("name", f.Name)
	b.field("description", f.Description)
	if f.Price != nil {
		b.field("price", String(strconv.FormatFloat(*f.Price, 'f', -1, 64)))
	}
	if f.Quantity != nil {
		b.field("quantity", String(strconv.Itoa(*f.Quantity)))
	}
	b.field("category", f.Category)
	b.field("categoryName", f.CategoryName)
	if f.Features != nil {
		raw, err := json.Marshal(f.Features)
		if err != nil {
			return nil, err
		}
		b.field("features", String(string(raw)))
	}
	for _, img := range f.Images {
		b.file("images", img)
	}
	return b, b.close()
}

func (c *Client) sendForm(ctx context.Context, method, path string, b *multipartBody, out any, expectedStatus int) error {
	resp, err := c.doRequest(ctx, method, c.url(path), &b.buf, map[string]string{
		"Content-Type": b.w.FormDataContentType(),
	})
	if err != nil {
		return err
	}
	return decodeJSON(resp, out, expectedStatus)
}

// ============================================================================
// Categories
// ============================================================================

// ListCategories returns every category, newest first.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.doJSON(ctx, http.MethodGet, "/categories", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCategory(ctx context.Context, id string) (*Category, error) {
	var out Category
	if err := c.doJSON(ctx, http.MethodGet, "/categories/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateCategory(ctx context.Context, form CategoryForm) (*Category, error) {
	body, err := form.encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode form: %w", err)
	}
	var out Category
	if err := c.sendForm(ctx, http.MethodPost, "/categories", body, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCategory(ctx context.Context, id string, form CategoryForm) (*Category, error) {
	body, err := form.encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode form: %w", err)
	}
	var out Category
	if err := c.sendForm(ctx, http.MethodPut, "/categories/"+url.PathEscape(id), body, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.doJSON(ctx, http.MethodDelete, "/categories/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdjustProductCount adds increment to the category's product count.
func (c *Client) AdjustProductCount(ctx context.Context, id string, increment int) (*Category, error) {
	var out Category
	path := "/categories/" + url.PathEscape(id) + "/product-count"
	if err := c.doJSON(ctx, http.MethodPatch, path, ProductCountRequest{Increment: increment}, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Products
// ============================================================================

func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := c.doJSON(ctx, http.MethodGet, "/products", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListProductsByCategory(ctx context.Context, categoryID string) ([]Product, error) {
	var out []Product
	if err := c.doJSON(ctx, http.MethodGet, "/products/category/"+url.PathEscape(categoryID), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	var out Product
	if err := c.doJSON(ctx, http.MethodGet, "/products/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProduct(ctx context.Context, form ProductForm) (*Product, error) {
	body, err := form.encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode form: %w", err)
	}
	var out Product
	if err := c.sendForm(ctx, http.MethodPost, "/products", body, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, form ProductForm) (*Product, error) {
	body, err := form.encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode form: %w", err)
	}
	var out Product
	if err := c.sendForm(ctx, http.MethodPut, "/products/"+url.PathEscape(id), body, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.doJSON(ctx, http.MethodDelete, "/products/"+url.PathEscape(id), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
