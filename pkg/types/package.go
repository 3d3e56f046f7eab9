// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// PackageID identifies one package revision in a PASTA repository.
type PackageID struct {
	Scope      string `json:"scope" yaml:"scope"`
	Identifier string `json:"identifier" yaml:"identifier"`
	Revision   string `json:"revision" yaml:"revision"`
}

// String returns the dotted package identifier, e.g. "edi.100.3".
func (p PackageID) String() string {
	return fmt.Sprintf("%s.%s.%s", p.Scope, p.Identifier, p.Revision)
}

// Path returns the slash-joined coordinates used in PASTA URL paths.
func (p PackageID) Path() string {
	return p.Scope + "/" + p.Identifier + "/" + p.Revision
}

// PackageRecord describes a downloaded package archive. It is written as a
// YAML sidecar next to the archive when requested.
type PackageRecord struct {
	// DOI is the normalized DOI the package was resolved from.
	DOI string `json:"doi" yaml:"doi"`

	PackageID `yaml:",inline"`

	// Transaction is the archive transaction id issued by PASTA.
	Transaction string `json:"transaction" yaml:"transaction"`

	// SourceURL is the URL the archive was downloaded from.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// Path is the absolute local path of the saved archive.
	Path string `json:"path" yaml:"path"`

	// Bytes is the size of the saved archive.
	Bytes int64 `json:"bytes" yaml:"bytes"`

	DownloadedAt time.Time `json:"downloaded_at" yaml:"downloaded_at"`
}
