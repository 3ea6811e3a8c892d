package media

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// DefaultBaseURL is where local uploads are served from.
const DefaultBaseURL = "/uploads"

// Local stores uploads as files in Dir, served under BaseURL.
type Local struct {
	Dir     string
	BaseURL string
}

var _ Storage = (*Local)(nil)

// NewLocal creates dir if needed.
func NewLocal(dir, baseURL string) (*Local, error) {
	if dir == "" {
		return nil, errors.New("media: upload dir is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("media: create upload dir: %w", err)
	}
	return &Local{Dir: dir, BaseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (l *Local) Put(_ context.Context, u Upload) (string, error) {
	key := u.Key()
	if err := os.WriteFile(filepath.Join(l.Dir, key), u.Data, 0o640); err != nil {
		return "", fmt.Errorf("media: write %s: %w", key, err)
	}
	return l.BaseURL + "/" + key, nil
}

func (l *Local) Delete(_ context.Context, url string) error {
	if !strings.HasPrefix(url, l.BaseURL+"/") {
		return nil
	}
	err := os.Remove(filepath.Join(l.Dir, KeyFromURL(url)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("media: remove: %w", err)
	}
	return nil
}

// Handler serves stored files under BaseURL. Directory listings are not
// exposed and browsers are told not to second-guess the content type.
func (l *Local) Handler() http.Handler {
	files := http.FileServer(http.Dir(l.Dir))
	return http.StripPrefix(l.BaseURL, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		files.ServeHTTP(w, r)
	}))
}
