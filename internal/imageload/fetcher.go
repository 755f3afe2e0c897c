package imageload

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"time"

	_ "golang.org/x/image/webp"
	"golang.org/x/time/rate"
)

// Info describes a retrieved image.
type Info struct {
	Width  int
	Height int
	Format string
}

// Fetcher retrieves one image.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Info, error)
}

// HTTPFetcher downloads images over HTTP and decodes their header.
type HTTPFetcher struct {
	Client   *http.Client
	Limiter  *rate.Limiter
	MaxBytes int64
}

// NewHTTPFetcher returns a fetcher allowing perSecond requests with the
// given burst. perSecond <= 0 disables the limit.
func NewHTTPFetcher(perSecond float64, burst int, maxBytes int64) *HTTPFetcher {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	if burst < 1 {
		burst = 1
	}
	return &HTTPFetcher{
		Client:   &http.Client{Timeout: 30 * time.Second},
		Limiter:  rate.NewLimiter(limit, burst),
		MaxBytes: maxBytes,
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (Info, error) {
	if f.Limiter != nil {
		if err := f.Limiter.Wait(ctx); err != nil {
			return Info{}, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Info{}, err
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Info{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Info{}, fmt.Errorf("image %s: status %d", url, resp.StatusCode)
	}

	var body io.Reader = resp.Body
	if f.MaxBytes > 0 {
		body = io.LimitReader(resp.Body, f.MaxBytes)
	}
	cfg, format, err := image.DecodeConfig(body)
	if err != nil {
		return Info{}, fmt.Errorf("image %s: %w", url, err)
	}
	return Info{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}
