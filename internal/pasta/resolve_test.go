// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pasta

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/edi-fetch/internal/httputil"
	"github.com/pdiddy/edi-fetch/pkg/types"
)

const sampleResourceMap = `https://pasta.lternet.edu/package/data/eml/edi/100/3/3a7cd9c2b8e3f1
https://pasta.lternet.edu/package/metadata/eml/edi/100/3

https://pasta.lternet.edu/package/report/eml/edi/100/3
  https://pasta.lternet.edu/package/eml/edi/100/3  
https://pasta.lternet.edu/package/eml/other/9/9
`

func TestParseResourceMap(t *testing.T) {
	tests := []struct {
		name string
		body string
		want types.PackageID
	}{
		{"picks the package eml line", sampleResourceMap, types.PackageID{Scope: "edi", Identifier: "100", Revision: "3"}},
		{"single line", "https://pasta.lternet.edu/package/eml/knb-lter-ntl/1/59", types.PackageID{Scope: "knb-lter-ntl", Identifier: "1", Revision: "59"}},
		{"trailing slash", "https://pasta.lternet.edu/package/eml/edi/7/1/", types.PackageID{Scope: "edi", Identifier: "7", Revision: "1"}},
		{"extra trailing segments", "https://pasta.lternet.edu/package/eml/edi/7/1/extra", types.PackageID{Scope: "edi", Identifier: "7", Revision: "1"}},
		{"crlf line endings", "https://x/a\r\nhttps://x/package/eml/edi/5/2\r\n", types.PackageID{Scope: "edi", Identifier: "5", Revision: "2"}},
		{"cr-only line endings", "https://x/package/metadata/eml/a/1/1\rhttps://x/package/eml/edi/5/2\r", types.PackageID{Scope: "edi", Identifier: "5", Revision: "2"}},
		{"form feed and unicode line separator", "https://x/a\fhttps://x/b\u2028https://x/package/eml/edi/6/1", types.PackageID{Scope: "edi", Identifier: "6", Revision: "1"}},
		{"escaped slash stays in segment", "https://x/package/eml/edi%2F1/2/3", types.PackageID{Scope: "edi%2F1", Identifier: "2", Revision: "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResourceMap(tt.body)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseResourceMap_NoEMLLine(t *testing.T) {
	body := "https://pasta.lternet.edu/package/data/foo\nhttps://example.com/other\n"
	_, err := ParseResourceMap(body)
	require.Error(t, err)

	var rerr *ResolutionError
	require.True(t, errors.As(err, &rerr))
	assert.True(t, errors.Is(err, ErrUnresolved))
	assert.Equal(t, body, rerr.Detail, "full body is kept for diagnosis")
}

func TestParseResourceMap_BadEMLURL(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too few segments", "https://pasta.lternet.edu/package/eml/edi/100"},
		{"no segments after eml", "https://pasta.lternet.edu/package/eml/"},
		{"empty segment", "https://pasta.lternet.edu/package/eml/edi//3"},
		{"unparseable url", "https://pasta.lternet.edu/package/eml/%zz/1/2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResourceMap(tt.line)
			require.Error(t, err)
			var rerr *ResolutionError
			require.True(t, errors.As(err, &rerr))
			assert.Equal(t, tt.line, rerr.Detail)
			assert.Contains(t, err.Error(), tt.line)
		})
	}
}

func TestResolve(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, DefaultUserAgent, r.UserAgent())
		fmt.Fprint(w, sampleResourceMap)
	}))
	defer ts.Close()

	c := New(types.FetchConfig{HTTPConfig: types.HTTPConfig{BaseURL: ts.URL}}, nil)
	seg, err := Segment("10.6073/pasta/" + sampleMD5)
	require.NoError(t, err)

	id, err := c.Resolve(context.Background(), seg)
	require.NoError(t, err)
	assert.Equal(t, types.PackageID{Scope: "edi", Identifier: "100", Revision: "3"}, id)
	assert.Equal(t, "/package/doi/doi:10.6073/pasta/"+sampleMD5, gotPath)
}

func TestResolve_HTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Unable to access DOI", http.StatusNotFound)
	}))
	defer ts.Close()

	c := New(types.FetchConfig{HTTPConfig: types.HTTPConfig{BaseURL: ts.URL}}, nil)
	_, err := c.Resolve(context.Background(), Segments{Shoulder: ediShoulder, Literal: ediLiteral, MD5: sampleMD5})
	require.Error(t, err)

	var httpErr *httputil.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.StatusCode)
	assert.Equal(t, "Unable to access DOI", httpErr.Body)
}

func TestResolve_NoEMLLine(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "https://pasta.lternet.edu/package/data/x\n")
	}))
	defer ts.Close()

	c := New(types.FetchConfig{HTTPConfig: types.HTTPConfig{BaseURL: ts.URL}}, nil)
	_, err := c.Resolve(context.Background(), Segments{Shoulder: ediShoulder, Literal: ediLiteral, MD5: sampleMD5})
	assert.True(t, errors.Is(err, ErrUnresolved))
}
