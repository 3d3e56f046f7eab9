// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pasta

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/edi-fetch/pkg/types"
)

// archivePath returns the archive endpoint path for id, with an optional
// transaction suffix.
func archivePath(id types.PackageID, tx string) string {
	p := "/package/archive/eml/" + id.Path()
	if tx != "" {
		p += "/" + tx
	}
	return p
}

// ArchiveURL returns the download URL for a package archive transaction.
func (c *Client) ArchiveURL(id types.PackageID, tx string) string {
	return c.cfg.BaseURL + archivePath(id, tx)
}

// CreateArchive asks PASTA to build a ZIP archive of the package and
// returns the transaction id to download it with.
func (c *Client) CreateArchive(ctx context.Context, id types.PackageID) (string, error) {
	body, err := c.readText(ctx, http.MethodPost, archivePath(id, ""))
	if err != nil {
		return "", fmt.Errorf("creating archive for %s: %w", id, err)
	}
	tx := strings.TrimSpace(body)
	if tx == "" {
		return "", &EmptyTransactionError{Package: id.String()}
	}
	c.logger.Debug("archive transaction", "package", id.String(), "transaction", tx)
	return tx, nil
}

// DownloadArchive streams the archive for transaction tx to outPath and
// returns the number of bytes written. Parent directories are created as
// needed and an existing file is truncated. DownloadTimeout limits how long
// the transfer may stall, not its total duration. A failure mid-stream may
// leave a partial file behind.
func (c *Client) DownloadArchive(ctx context.Context, id types.PackageID, tx, outPath string) (int64, error) {
	resp, err := c.do(ctx, http.MethodGet, archivePath(id, tx), c.cfg.DownloadTimeout)
	if err != nil {
		return 0, fmt.Errorf("downloading archive for %s: %w", id, err)
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return 0, fmt.Errorf("creating directory for %s: %w", outPath, err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", outPath, err)
	}

	n, copyErr := copyChunks(f, resp.Body, c.cfg.ChunkSize)
	closeErr := f.Close()
	if copyErr != nil {
		return n, fmt.Errorf("writing %s: %w", outPath, copyErr)
	}
	if closeErr != nil {
		return n, fmt.Errorf("closing %s: %w", outPath, closeErr)
	}
	c.logger.Debug("archive saved", "path", outPath, "bytes", n)
	return n, nil
}

// copyChunks copies src to dst through a buffer of size chunk, writing only
// non-empty reads. Peak memory stays at one chunk regardless of archive size.
func copyChunks(dst io.Writer, src io.Reader, chunk int) (int64, error) {
	buf := make([]byte, chunk)
	var written int64
	for {
		nr, rerr := src.Read(buf)
		if nr > 0 {
			nw, werr := dst.Write(buf[:nr])
			written += int64(nw)
			if werr != nil {
				return written, werr
			}
			if nw != nr {
				return written, io.ErrShortWrite
			}
		}
		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, rerr
		}
	}
}
