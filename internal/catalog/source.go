package catalog

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	assets "github.com/cristianoliveira/adnow"
	"github.com/cristianoliveira/adnow/internal/version"
)

// Source fetches the raw catalog payload.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
	String() string
}

// maxPayloadSize bounds how much of an HTTP response is read.
const maxPayloadSize = 8 << 20

// HTTPSource fetches the payload with a GET request.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPSource creates an HTTP source with a default client.
func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{URL: url, Client: &http.Client{Timeout: 30 * time.Second}}
}

// Fetch performs the request. Non-2xx responses are transport failures.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPayloadSize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}

func (s *HTTPSource) String() string { return s.URL }

// FileSource reads the payload from a local file.
type FileSource struct {
	Path string
}

func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(s.Path)
}

func (s FileSource) String() string { return s.Path }

// FSSource reads the payload from a file system, typically the embedded dataset.
type FSSource struct {
	FS   fs.FS
	Path string
}

// EmbeddedSource returns the source for the dataset bundled with the binary.
func EmbeddedSource() FSSource {
	return FSSource{FS: assets.FS, Path: assets.SellersPath}
}

func (s FSSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.ReadFile(s.FS, s.Path)
}

func (s FSSource) String() string { return "embedded:" + s.Path }

// SourceFor picks a source from a location string.
// Empty selects the embedded dataset, http(s) URLs use HTTP, anything else is a file path.
func SourceFor(location string) Source {
	location = strings.TrimSpace(location)
	switch {
	case location == "", location == "embedded":
		return EmbeddedSource()
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return NewHTTPSource(location)
	default:
		return FileSource{Path: location}
	}
}
