package remote

import (
	"context"
	"mime"
	"net/http"
	"time"

	"go.uber.org/zap"
)

var supportedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/tiff": true,
}

// Prober checks image URLs before they are sent to the platform by reference.
type Prober struct {
	http   *http.Client
	logger *zap.Logger
}

// NewProber creates a Prober with the given per-request timeout.
func NewProber(timeout time.Duration, logger *zap.Logger) *Prober {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prober{http: &http.Client{Timeout: timeout}, logger: logger.Named("prober")}
}

// IsImage fetches url and reports whether it answers 2xx with a png, jpeg, gif, bmp or tiff content type.
func (p *Prober) IsImage(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := p.http.Do(req)
	if err != nil {
		p.logger.Debug("Image probe failed", zap.String("url", url), zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return supportedImageTypes[mediaType]
}
