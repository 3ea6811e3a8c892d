package http

import (
	"encoding/json"
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/media"
	"github.com/aussiebroadwan/storefront/internal/storefront/service"
)

// maxMultipartMemory is how much of a multipart body is held in memory
// before parts spill to temporary files.
const maxMultipartMemory = 32 << 20

// errBadForm carries a 400 message for a malformed catalogue body.
type errBadForm string

func (e errBadForm) Error() string { return string(e) }

// catalogueForm is a parsed multipart or urlencoded body. A field is
// present only when its key was sent, even with an empty value.
type catalogueForm struct {
	values map[string][]string
	files  map[string][]*multipart.FileHeader
}

func isJSON(r *http.Request) bool {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return ct == "application/json"
}

func readForm(r *http.Request) (*catalogueForm, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var err error
	if ct == "multipart/form-data" {
		err = r.ParseMultipartForm(maxMultipartMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errBodyTooLarge
		}
		return nil, errBadForm("Invalid form body")
	}

	f := &catalogueForm{values: r.PostForm}
	if r.MultipartForm != nil {
		f.files = r.MultipartForm.File
	}
	return f, nil
}

// first returns the first value of the first key that was sent.
func (f *catalogueForm) first(keys ...string) *string {
	for _, k := range keys {
		if vs, ok := f.values[k]; ok {
			v := ""
			if len(vs) > 0 {
				v = vs[0]
			}
			return &v
		}
	}
	return nil
}

func (f *catalogueForm) number(key string) (*float64, error) {
	s := f.first(key)
	if s == nil {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(*s), 64)
	if err != nil {
		return nil, errBadForm(key + " must be a number")
	}
	return &v, nil
}

func (f *catalogueForm) integer(key string) (*int, error) {
	s := f.first(key)
	if s == nil {
		return nil, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(*s))
	if err != nil {
		return nil, errBadForm(key + " must be an integer")
	}
	return &v, nil
}

// features accepts either one JSON array value or the repeated form values.
func (f *catalogueForm) features() (*[]string, error) {
	vs, ok := f.values["features"]
	if !ok {
		return nil, nil
	}
	if len(vs) == 1 && strings.HasPrefix(strings.TrimSpace(vs[0]), "[") {
		var out []string
		if err := json.Unmarshal([]byte(vs[0]), &out); err != nil {
			return nil, errBadForm("features must be a JSON array of strings")
		}
		if out == nil {
			out = []string{}
		}
		return &out, nil
	}
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return &out, nil
}

func (f *catalogueForm) uploads(key string) ([]media.Upload, error) {
	fhs := f.files[key]
	out := make([]media.Upload, 0, len(fhs))
	for _, fh := range fhs {
		u, err := media.FromFileHeader(fh)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

type categoryJSON struct {
	CategoryName *string `json:"CategoryName"`
	Description  *string `json:"description"`
	Icon         *string `json:"icon"`
	Emoji        *string `json:"emoji"`
}

// parseCategoryInput reads a category body. JSON bodies cannot carry an
// image.
func parseCategoryInput(r *http.Request) (service.CategoryInput, error) {
	if isJSON(r) {
		var body categoryJSON
		if err := decodeJSON(r, &body); err != nil {
			if errors.Is(err, errBodyTooLarge) {
				return service.CategoryInput{}, err
			}
			return service.CategoryInput{}, errBadForm("Invalid request body")
		}
		return service.CategoryInput{
			Name:        body.CategoryName,
			Description: body.Description,
			Icon:        body.Icon,
			Emoji:       body.Emoji,
		}, nil
	}

	f, err := readForm(r)
	if err != nil {
		return service.CategoryInput{}, err
	}

	in := service.CategoryInput{
		Name:        f.first("CategoryName", "categoryName"),
		Description: f.first("description"),
		Icon:        f.first("icon"),
		Emoji:       f.first("emoji"),
	}

	images, err := f.uploads("image")
	if err != nil {
		return service.CategoryInput{}, err
	}
	if len(images) > 1 {
		return service.CategoryInput{}, errBadForm("Only one image may be uploaded")
	}
	if len(images) == 1 {
		in.Image = &images[0]
	}
	return in, nil
}

type productJSON struct {
	Name         *string   `json:"name"`
	Description  *string   `json:"description"`
	Price        *float64  `json:"price"`
	Quantity     *int      `json:"quantity"`
	Category     *string   `json:"category"`
	CategoryName *string   `json:"categoryName"`
	Features     *[]string `json:"features"`
}

func parseProductInput(r *http.Request) (service.ProductInput, error) {
	if isJSON(r) {
		var body productJSON
		if err := decodeJSON(r, &body); err != nil {
			if errors.Is(err, errBodyTooLarge) {
				return service.ProductInput{}, err
			}
			return service.ProductInput{}, errBadForm("Invalid request body")
		}
		return service.ProductInput{
			Name:         body.Name,
			Description:  body.Description,
			Price:        body.Price,
			Quantity:     body.Quantity,
			CategoryID:   body.Category,
			CategoryName: body.CategoryName,
			Features:     body.Features,
		}, nil
	}

	f, err := readForm(r)
	if err != nil {
		return service.ProductInput{}, err
	}

	if len(f.files["images"]) > domain.MaxProductImages {
		return service.ProductInput{}, service.ErrTooManyImages
	}

	in := service.ProductInput{
		Name:         f.first("name"),
		Description:  f.first("description"),
		CategoryID:   f.first("category"),
		CategoryName: f.first("categoryName"),
	}
	if in.Price, err = f.number("price"); err != nil {
		return service.ProductInput{}, err
	}
	if in.Quantity, err = f.integer("quantity"); err != nil {
		return service.ProductInput{}, err
	}
	if in.Features, err = f.features(); err != nil {
		return service.ProductInput{}, err
	}
	if in.Images, err = f.uploads("images"); err != nil {
		return service.ProductInput{}, err
	}
	return in, nil
}

// writeFormError reports a body parse failure.
func writeFormError(w http.ResponseWriter, r *http.Request, err error) {
	var bad errBadForm
	if errors.As(err, &bad) {
		writeBadRequest(w, string(bad))
		return
	}
	writeServiceError(w, r, err)
}
