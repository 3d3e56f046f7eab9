// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pasta

import (
	"regexp"
	"strings"
)

// Constant DOI segments for EDI packages. PASTA's read-package-from-DOI
// endpoint expects /package/doi/{shoulder}/{pasta}/{md5}.
const (
	ediShoulder = "doi:10.6073"
	ediLiteral  = "pasta"
)

// Prefixes stripped during normalization, in this order.
const (
	doiResolverPrefix = "https://doi.org/"
	doiSchemePrefix   = "doi:"
)

// ediDOIPattern matches EDI DOIs: "10.6073/pasta/7ac5818bb45bb42c2d935ce7e3756c00".
var ediDOIPattern = regexp.MustCompile(`^10\.6073/pasta/([0-9a-f]{32})$`)

// Segments holds the three path segments of a PASTA DOI lookup.
type Segments struct {
	Shoulder string
	Literal  string
	MD5      string
}

// NormalizeDOI trims whitespace and strips a leading "https://doi.org/"
// and then a leading "doi:". Both strips are no-ops when the prefix is absent.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	doi = strings.TrimPrefix(doi, doiResolverPrefix)
	doi = strings.TrimPrefix(doi, doiSchemePrefix)
	return doi
}

// Segment normalizes doi and splits it into PASTA lookup segments.
// Only DOIs of the form 10.6073/pasta/<32 lowercase hex> are accepted;
// anything else returns a *ValidationError.
func Segment(doi string) (Segments, error) {
	doi = NormalizeDOI(doi)
	m := ediDOIPattern.FindStringSubmatch(doi)
	if m == nil {
		return Segments{}, &ValidationError{DOI: doi}
	}
	return Segments{
		Shoulder: ediShoulder,
		Literal:  ediLiteral,
		MD5:      m[1],
	}, nil
}

// Path returns the segments joined for use in a URL path.
func (s Segments) Path() string {
	return s.Shoulder + "/" + s.Literal + "/" + s.MD5
}
