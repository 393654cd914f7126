package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// maxLogoBytes caps the logo download; anything larger is not a logo.
const maxLogoBytes = 5 << 20

// HTTPLogoFetcher resolves logo references. Data URIs are decoded inline;
// http(s) URLs are fetched with the caller's context so cancellation gates
// the fetch. The blob content is opaque here: decode failures belong to
// the renderer.
type HTTPLogoFetcher struct {
	client *http.Client
	logger *zap.Logger
}

// NewHTTPLogoFetcher creates a logo fetcher with the given timeout.
func NewHTTPLogoFetcher(timeout time.Duration, logger *zap.Logger) *HTTPLogoFetcher {
	return &HTTPLogoFetcher{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Fetch resolves url to raw image bytes.
func (f *HTTPLogoFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	if strings.HasPrefix(url, "data:") {
		return decodeDataURI(url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build logo request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch logo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch logo: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLogoBytes))
	if err != nil {
		return nil, fmt.Errorf("read logo body: %w", err)
	}
	return data, nil
}

// decodeDataURI extracts the payload of a base64 data URI like
// "data:image/png;base64,...".
func decodeDataURI(uri string) ([]byte, error) {
	idx := strings.Index(uri, ",")
	if idx < 0 {
		return nil, fmt.Errorf("malformed data URI")
	}
	meta, payload := uri[:idx], uri[idx+1:]

	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("decode data URI: %w", err)
		}
		return data, nil
	}
	return []byte(payload), nil
}
