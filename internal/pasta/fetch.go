// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pasta

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/pdiddy/edi-fetch/pkg/types"
)

// Fetch resolves doi, requests its archive, and saves it to outPath,
// printing one progress line per stage to w. It stops at the first error.
func (c *Client) Fetch(ctx context.Context, doi, outPath string, w io.Writer) (*types.PackageRecord, error) {
	seg, err := Segment(doi)
	if err != nil {
		return nil, err
	}

	id, err := c.Resolve(ctx, seg)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "Resolved DOI -> package: %s\n", id)

	tx, err := c.CreateArchive(ctx, id)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "Archive transaction: %s\n", tx)

	absPath, err := filepath.Abs(outPath)
	if err != nil {
		return nil, fmt.Errorf("resolving output path %s: %w", outPath, err)
	}
	n, err := c.DownloadArchive(ctx, id, tx, absPath)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "Saved ZIP: %s\n", absPath)

	return &types.PackageRecord{
		DOI:          NormalizeDOI(doi),
		PackageID:    id,
		Transaction:  tx,
		SourceURL:    c.ArchiveURL(id, tx),
		Path:         absPath,
		Bytes:        n,
		DownloadedAt: time.Now().UTC(),
	}, nil
}
