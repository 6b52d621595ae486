// Package config defines the canonical, JSON-serializable configuration model
// for a cleaning run. It is intentionally small, explicit, and dependency-
// free so that run settings can be loaded from disk (or assembled from CLI
// flags) and passed through the program without additional glue code.
//
// Design goals:
//
//  1. Stability: Changes to this package should be additive and backwards-
//     compatible whenever possible.
//  2. Clarity: Field names in Go mirror the JSON structure used in run files
//     passed to the -config flag.
//  3. Minimalism: No third-party config libraries; decoding is performed by
//     the standard library.
//
// Example (trimmed):
//
//	{
//	  "input":        "data/raw.csv",
//	  "output":       "data/clean.csv",
//	  "report":       "report.txt",
//	  "separator":    ";",
//	  "encoding":     "utf-8",
//	  "dedupe_on":    ["id", "email"],
//	  "empty_policy": "mark",
//	  "storage":      { "kind": "sqlite", "db": { "dsn": "file:clean.db", "table": "rows" } }
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Defaults applied by ApplyDefaults and used by the CLI for flag defaults.
const (
	DefaultSeparator   = ","
	DefaultEmptyPolicy = "mark"
	DefaultEncoding    = "utf-8"
	DefaultReportPath  = "report.txt"
)

// Config describes one cleaning run end to end. It is the top-level object
// decoded from a run file.
type Config struct {
	// Input locates the delimited text file to clean: a local filesystem
	// path, or an http(s) URL fetched at the start of the run.
	Input string `json:"input"`

	// Output is the path the cleaned table is written to. Parent directories
	// are created as needed.
	Output string `json:"output"`

	// Report is the path the plain-text run report is written to. An empty
	// Report disables the report file; the CLI defaults it to "report.txt".
	Report string `json:"report"`

	// Separator is the field separator, a single character. Empty means comma.
	Separator string `json:"separator"`

	// Encoding names the input character encoding (e.g. "utf-8", "latin-1").
	// Empty means UTF-8. Output is always UTF-8.
	Encoding string `json:"encoding"`

	// DedupeOn lists the column names whose values form the duplicate key.
	// Empty or nil means the full row across all columns.
	DedupeOn []string `json:"dedupe_on"`

	// EmptyPolicy selects how empty cells are handled: "mark" replaces them
	// with the __EMPTY__ marker, "delete-row" drops the containing row.
	// Empty means "mark".
	EmptyPolicy string `json:"empty_policy"`

	// Storage optionally exports the cleaned table to a database after the
	// output file is written. Nil disables the export.
	Storage *Storage `json:"storage,omitempty"`

	// Metrics configures the optional metrics backend.
	Metrics Metrics `json:"metrics"`
}

// Storage selects the sink used to export the cleaned table.
type Storage struct {
	// Kind selects the storage implementation ("postgres", "mysql", "mssql",
	// "sqlite"). Implementations register themselves with the storage factory.
	Kind string `json:"kind"`

	// DB carries options shared by all storage kinds.
	DB DBConfig `json:"db"`
}

// DBConfig configures the database sink.
type DBConfig struct {
	// DSN is the connection string for the selected driver
	// (e.g. postgresql://..., file:clean.db).
	DSN string `json:"dsn"`

	// Table is the destination table name. Postgres accepts a schema-qualified
	// name (e.g. "public.clean_rows").
	Table string `json:"table"`

	// BatchSize is the number of rows per insert batch. Zero or negative means
	// the loader default.
	BatchSize int `json:"batch_size"`

	// AutoCreateTable creates the destination table from the cleaned header
	// (all TEXT columns) before loading when true.
	AutoCreateTable bool `json:"auto_create_table"`
}

// Metrics configures the optional metrics backend. The zero value disables
// metrics entirely.
type Metrics struct {
	// Backend selects the implementation ("pushgateway", "datadog", "none").
	// Empty means disabled.
	Backend string `json:"backend"`

	// PushGatewayURL is the Pushgateway base URL for the "pushgateway"
	// backend. Empty falls back to the PUSHGATEWAY_URL environment variable,
	// then http://localhost:9091.
	PushGatewayURL string `json:"push_gateway_url"`

	// DogstatsdAddr is the agent address for the "datadog" backend. Empty
	// falls back to the DOGSTATSD_ADDR environment variable, then
	// 127.0.0.1:8125.
	DogstatsdAddr string `json:"dogstatsd_addr"`

	// Job is the metrics job label. Empty means "csvclean".
	Job string `json:"job"`
}

// Load reads and decodes a Config from a JSON file. It does not apply
// defaults or validate; callers typically follow with ApplyDefaults and
// Validate.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var c Config
	if err := json.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	return c, nil
}

// ApplyDefaults fills unset fields with their documented defaults. Report is
// left alone: an empty Report deliberately disables the report file.
func (c *Config) ApplyDefaults() {
	if c.Separator == "" {
		c.Separator = DefaultSeparator
	}
	if c.EmptyPolicy == "" {
		c.EmptyPolicy = DefaultEmptyPolicy
	}
	if c.Encoding == "" {
		c.Encoding = DefaultEncoding
	}
	if c.Metrics.Job == "" {
		c.Metrics.Job = "csvclean"
	}
}

// SeparatorRune returns the separator as a rune, or ',' when Separator is
// empty. Validate rejects multi-character separators; this method simply
// takes the first rune.
func (c Config) SeparatorRune() rune {
	if c.Separator == "" {
		return ','
	}
	return []rune(c.Separator)[0]
}

// ParseDedupeOn turns the CLI's comma-separated column list into the
// DedupeOn slice. "" and "all" (case-insensitive) mean full-row
// de-duplication and yield nil. Names are trimmed, empties dropped, and the
// first occurrence of a repeated name wins.
func ParseDedupeOn(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return nil
	}
	var out []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
