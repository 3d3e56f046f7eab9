// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pasta

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/edi-fetch/pkg/types"
)

// emlMarker identifies the metadata URL within a resource map.
const emlMarker = "/package/eml/"

// Resolve looks up the package coordinates for a DOI's segments by reading
// the package resource map.
func (c *Client) Resolve(ctx context.Context, seg Segments) (types.PackageID, error) {
	body, err := c.readText(ctx, http.MethodGet, "/package/doi/"+seg.Path())
	if err != nil {
		return types.PackageID{}, fmt.Errorf("resolving DOI: %w", err)
	}
	id, err := ParseResourceMap(body)
	if err != nil {
		return types.PackageID{}, err
	}
	c.logger.Debug("resolved", "package", id.String())
	return id, nil
}

// ParseResourceMap extracts package coordinates from a newline-delimited
// resource map. The first line containing /package/eml/ is parsed as a URL
// and the three path segments after "eml" are scope, identifier and revision.
func ParseResourceMap(body string) (types.PackageID, error) {
	emlURL := ""
	for _, line := range strings.FieldsFunc(body, isLineBreak) {
		line = strings.TrimSpace(line)
		if line != "" && strings.Contains(line, emlMarker) {
			emlURL = line
			break
		}
	}
	if emlURL == "" {
		return types.PackageID{}, &ResolutionError{
			Reason: "could not find an EML URL in resource map",
			Detail: body,
		}
	}

	id, ok := parseEMLURL(emlURL)
	if !ok {
		return types.PackageID{}, &ResolutionError{
			Reason: "unexpected EML URL format",
			Detail: emlURL,
		}
	}
	return id, nil
}

// parseEMLURL expects a path of the form package/eml/<scope>/<identifier>/<revision>.
func parseEMLURL(raw string) (types.PackageID, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return types.PackageID{}, false
	}
	// The escaped path keeps %2F inside a segment instead of splitting on it.
	parts := strings.Split(strings.Trim(u.EscapedPath(), "/"), "/")
	for i, p := range parts {
		if p != "eml" {
			continue
		}
		if len(parts) < i+4 {
			return types.PackageID{}, false
		}
		id := types.PackageID{Scope: parts[i+1], Identifier: parts[i+2], Revision: parts[i+3]}
		if id.Scope == "" || id.Identifier == "" || id.Revision == "" {
			return types.PackageID{}, false
		}
		return id, true
	}
	return types.PackageID{}, false
}

// isLineBreak reports whether r ends a line: \n, \r, \v, \f, the ASCII
// file/group/record separators, NEL, and the Unicode line and paragraph
// separators.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}
