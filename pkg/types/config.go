// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network
// requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paperscope/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// HarvestConfig holds settings for the harvest stage.
type HarvestConfig struct {
	HTTPConfig `yaml:",inline"`

	// QueriesPath is the YAML file mapping category ids to arXiv query
	// term sets.
	QueriesPath string `json:"queries_path" yaml:"queries_path"`

	// ArchivePath is the SQLite archive holding every paper ever
	// harvested.
	ArchivePath string `json:"archive_path" yaml:"archive_path"`

	// OutputDir is the directory the JSON artifacts are exported into.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// MaxResults is the per-query cap on arXiv results (default 100).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// DefaultStartDate is the date harvesting starts from when the
	// archive is empty, YYYY-MM-DD (default 2024-01-01).
	DefaultStartDate string `json:"default_start_date" yaml:"default_start_date"`

	// RecencyWindow is how far back a paper's publication date may lie
	// for it to be exported with is_recent set (default 7 days).
	RecencyWindow time.Duration `json:"recency_window" yaml:"recency_window"`
}

// ServeConfig holds settings for the browse server.
type ServeConfig struct {
	// Host and Port form the listen address.
	Host string `json:"host" yaml:"host"`
	Port int    `json:"port" yaml:"port"`

	// PapersPath and CountsPath locate the two dataset artifacts.
	PapersPath string `json:"papers_path" yaml:"papers_path"`
	CountsPath string `json:"counts_path" yaml:"counts_path"`

	// PageSize is the fixed page size for browsing sessions (default 10).
	// Fixed for the life of a session.
	PageSize int `json:"page_size" yaml:"page_size"`

	// Watch enables reloading the dataset when the harvester replaces the
	// artifact files.
	Watch bool `json:"watch" yaml:"watch"`
}
