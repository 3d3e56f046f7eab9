package types

import "time"

// HTTPConfig holds shared HTTP settings for requests against a PASTA host.
type HTTPConfig struct {
	// BaseURL is the PASTA repository endpoint (e.g. "https://pasta.lternet.edu").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "edi-fetch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for a single DOI-to-archive run.
//
// Only HTTPConfig is read from the config file. The timeouts and chunk size
// are fixed by pasta.New defaults in production and are set directly only
// by tests, so they are excluded from serialization.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// ResolveTimeout bounds connecting, response headers, and each body read
	// for the DOI lookup and archive creation calls.
	ResolveTimeout time.Duration `json:"-" yaml:"-"`

	// DownloadTimeout is the same per-read bound for the archive download.
	// It limits stalls, not total transfer time.
	DownloadTimeout time.Duration `json:"-" yaml:"-"`

	// ChunkSize is the buffer size used when streaming the archive to disk.
	ChunkSize int `json:"-" yaml:"-"`
}
