// Package archivefetch implements ports.ArchiveFetcher over net/http,
// streaming the response body straight to a file.
package archivefetch

import (
	"context"
	"io"
	"net/http"
	"os"

	"go.trai.ch/zerr"

	"github.com/wow2006/poac/internal/core/domain"
	"github.com/wow2006/poac/internal/core/ports"
)

// Fetcher implements ports.ArchiveFetcher.
type Fetcher struct {
	HTTP *http.Client
}

// New creates a Fetcher using http.DefaultClient.
func New() ports.ArchiveFetcher {
	return &Fetcher{HTTP: http.DefaultClient}
}

// Fetch downloads url into destFile.
func (f *Fetcher) Fetch(ctx context.Context, url, destFile string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return zerr.Wrap(err, "build request")
	}

	resp, err := f.HTTP.Do(req)
	if err != nil {
		return zerr.With(domain.ErrRegistryRequest, "url", url, "cause", err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return zerr.With(domain.ErrRegistryRequest, "url", url, "status", resp.StatusCode)
	}

	out, err := os.Create(destFile) //nolint:gosec // destFile is a caller-controlled temp path
	if err != nil {
		return zerr.Wrap(err, "create archive file")
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return zerr.Wrap(err, "write archive file")
	}
	return nil
}
