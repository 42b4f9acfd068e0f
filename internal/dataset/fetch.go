package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// ErrNotFound is returned when upstream cannot find the dataset.
var ErrNotFound = errors.New("dataset: not found")

// Fetcher downloads the movie dataset CSV from an upstream URL.
type Fetcher struct {
	url    string
	client *http.Client
	logger *log.Logger
}

// NewFetcher constructs an HTTP-backed dataset fetcher.
func NewFetcher(url string, timeout time.Duration, logger *log.Logger) *Fetcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Fetcher{
		url: url,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		logger: logger,
	}
}

// EnsureLocal makes sure the dataset exists at path, downloading it when
// missing. An existing file is never overwritten.
func (f *Fetcher) EnsureLocal(ctx context.Context, path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat dataset: %w", err)
	}

	if f.url == "" {
		return fmt.Errorf("dataset missing at %s and no download url configured", path)
	}

	f.logger.Printf("dataset: downloading %s to %s", f.url, path)
	return f.download(ctx, path)
}

func (f *Fetcher) download(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fallthrough to write below
	case http.StatusNotFound:
		return ErrNotFound
	default:
		f.logger.Printf("dataset: unexpected status %d from %s", resp.StatusCode, f.url)
		return fmt.Errorf("dataset: upstream returned %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dataset dir: %w", err)
	}

	// Write to a temp file first so a partial download never masquerades
	// as a complete dataset.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".dataset-*.csv")
	if err != nil {
		return fmt.Errorf("create temp dataset: %w", err)
	}
	defer func() {
		tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close dataset: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("move dataset into place: %w", err)
	}
	return nil
}
