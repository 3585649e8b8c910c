// Package iofetch retrieves raw dataset documents over HTTP or from
// a local directory.
package iofetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gnames/tsbrowse/pkg/catalog"
	"github.com/gnames/tsbrowse/pkg/config"
)

// Timeout of one HTTP request.
const Timeout = 30 * time.Second

// New chooses a fetcher for the data source of the configuration.
func New(cfg *config.Config) catalog.Fetcher {
	if cfg.Data.IsURL() {
		return NewHTTP(cfg.Data.Source, nil)
	}
	return NewDir(cfg.Data.Source)
}

type httpFetcher struct {
	base   string
	client *http.Client
}

// NewHTTP creates a fetcher of documents under a base URL. When client is
// nil, a client with the default Timeout is used.
func NewHTTP(baseURL string, client *http.Client) catalog.Fetcher {
	if client == nil {
		client = &http.Client{Timeout: Timeout}
	}
	return &httpFetcher{
		base:   strings.TrimSuffix(baseURL, "/"),
		client: client,
	}
}

// Fetch implements catalog.Fetcher.
func (h *httpFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	url := h.base + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, FetchRequestError(path, err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, FetchRequestError(path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, FetchStatusError(path, resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, FetchRequestError(path, err)
	}
	slog.Debug("Fetched document", "url", url, "bytes", len(body))
	return body, nil
}

type dirFetcher struct {
	root string
}

// NewDir creates a fetcher of documents from a local directory.
func NewDir(root string) catalog.Fetcher {
	return &dirFetcher{root: root}
}

// Fetch implements catalog.Fetcher.
func (d *dirFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, FetchRequestError(path, err)
	}

	clean := filepath.Clean("/" + path)
	file := filepath.Join(d.root, filepath.FromSlash(clean))
	body, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, FetchStatusError(path, http.StatusNotFound,
			fmt.Sprintf("%d %s", http.StatusNotFound,
				http.StatusText(http.StatusNotFound)))
	}
	if err != nil {
		return nil, FetchRequestError(path, err)
	}
	slog.Debug("Read document", "file", file, "bytes", len(body))
	return body, nil
}
