package main

import (
	"reflect"
	"testing"

	"csvclean/internal/config"
)

// TestMergeConfig_FlagsOverrideFile checks that only explicitly-set flags
// replace values from the config file.
func TestMergeConfig_FlagsOverrideFile(t *testing.T) {
	t.Parallel()

	base := config.Config{
		Input:       "file/in.csv",
		Output:      "file/out.csv",
		Report:      "file/report.txt",
		Separator:   ";",
		EmptyPolicy: "delete-row",
		DedupeOn:    []string{"id"},
	}
	fl := cliFlags{
		in:       "cli/in.csv",
		dedupeOn: "id,email",
		sep:      ",",
	}

	got := mergeConfig(base, fl, map[string]bool{"in": true, "dedupe-on": true})

	if got.Input != "cli/in.csv" {
		t.Errorf("Input = %q, want cli/in.csv", got.Input)
	}
	if got.Output != "file/out.csv" || got.Report != "file/report.txt" {
		t.Errorf("unset flags must keep file values, got out=%q report=%q", got.Output, got.Report)
	}
	if got.Separator != ";" {
		t.Errorf("Separator = %q, want file value \";\"", got.Separator)
	}
	if got.EmptyPolicy != "delete-row" {
		t.Errorf("EmptyPolicy = %q, want file value", got.EmptyPolicy)
	}
	if want := []string{"id", "email"}; !reflect.DeepEqual(got.DedupeOn, want) {
		t.Errorf("DedupeOn = %v, want %v", got.DedupeOn, want)
	}
}

// TestMergeConfig_DedupeAllClearsColumns checks -dedupe-on=all yields full-row
// dedup even when the file requested a column subset.
func TestMergeConfig_DedupeAllClearsColumns(t *testing.T) {
	t.Parallel()

	base := config.Config{DedupeOn: []string{"id"}}
	got := mergeConfig(base, cliFlags{dedupeOn: "all"}, map[string]bool{"dedupe-on": true})
	if got.DedupeOn != nil {
		t.Fatalf("DedupeOn = %v, want nil for \"all\"", got.DedupeOn)
	}
}

// TestMergeConfig_StorageFlagsMaterializeSection checks that -store/-dsn/-table
// create the storage section when the file has none.
func TestMergeConfig_StorageFlagsMaterializeSection(t *testing.T) {
	t.Parallel()

	fl := cliFlags{store: "sqlite", dsn: "file:clean.db", table: "rows"}
	got := mergeConfig(config.Config{}, fl, map[string]bool{"store": true, "dsn": true, "table": true})

	if got.Storage == nil {
		t.Fatal("Storage section not materialized")
	}
	if got.Storage.Kind != "sqlite" || got.Storage.DB.DSN != "file:clean.db" || got.Storage.DB.Table != "rows" {
		t.Errorf("Storage = %+v", got.Storage)
	}
}

// TestMergeConfig_StorageFlagKeepsFileRest checks a single storage flag leaves
// the file's other storage fields intact.
func TestMergeConfig_StorageFlagKeepsFileRest(t *testing.T) {
	t.Parallel()

	base := config.Config{Storage: &config.Storage{
		Kind: "postgres",
		DB:   config.DBConfig{DSN: "postgresql://file", Table: "file_rows", BatchSize: 500},
	}}
	got := mergeConfig(base, cliFlags{table: "cli_rows"}, map[string]bool{"table": true})

	if got.Storage.Kind != "postgres" || got.Storage.DB.DSN != "postgresql://file" {
		t.Errorf("file storage fields clobbered: %+v", got.Storage)
	}
	if got.Storage.DB.Table != "cli_rows" {
		t.Errorf("Table = %q, want cli_rows", got.Storage.DB.Table)
	}
	if got.Storage.DB.BatchSize != 500 {
		t.Errorf("BatchSize = %d, want 500", got.Storage.DB.BatchSize)
	}
}

// TestMergeConfig_NoFlagsNoStorage checks mergeConfig does not invent a
// storage section out of thin air.
func TestMergeConfig_NoFlagsNoStorage(t *testing.T) {
	t.Parallel()

	got := mergeConfig(config.Config{}, cliFlags{}, map[string]bool{})
	if got.Storage != nil {
		t.Fatalf("Storage = %+v, want nil", got.Storage)
	}
}

func TestResolveMetricsBackend(t *testing.T) {
	t.Setenv("CSVCLEAN_METRICS_BACKEND", "")

	if got := resolveMetricsBackend("pushgateway", "none"); got != "pushgateway" {
		t.Errorf("flag should win, got %q", got)
	}
	if got := resolveMetricsBackend("", "none"); got != "none" {
		t.Errorf("config should win over env, got %q", got)
	}
	if got := resolveMetricsBackend("", ""); got != "" {
		t.Errorf("unset everywhere = %q, want empty", got)
	}

	t.Setenv("CSVCLEAN_METRICS_BACKEND", "pushgateway")
	if got := resolveMetricsBackend("", ""); got != "pushgateway" {
		t.Errorf("env fallback = %q, want pushgateway", got)
	}
}

func TestResolvePushGatewayURL(t *testing.T) {
	t.Setenv("PUSHGATEWAY_URL", "")

	if got := resolvePushGatewayURL("http://flag:9091", "http://cfg:9091"); got != "http://flag:9091" {
		t.Errorf("flag should win, got %q", got)
	}
	if got := resolvePushGatewayURL("", "http://cfg:9091"); got != "http://cfg:9091" {
		t.Errorf("config should win, got %q", got)
	}
	if got := resolvePushGatewayURL("", ""); got != "http://localhost:9091" {
		t.Errorf("default = %q, want http://localhost:9091", got)
	}

	t.Setenv("PUSHGATEWAY_URL", "http://env:9091")
	if got := resolvePushGatewayURL("", ""); got != "http://env:9091" {
		t.Errorf("env fallback = %q, want http://env:9091", got)
	}
}

func TestResolveDogstatsdAddr(t *testing.T) {
	t.Setenv("DOGSTATSD_ADDR", "")

	if got := resolveDogstatsdAddr("10.0.0.1:8125"); got != "10.0.0.1:8125" {
		t.Errorf("config should win, got %q", got)
	}
	if got := resolveDogstatsdAddr(""); got != "127.0.0.1:8125" {
		t.Errorf("default = %q, want 127.0.0.1:8125", got)
	}

	t.Setenv("DOGSTATSD_ADDR", "agent:8125")
	if got := resolveDogstatsdAddr(""); got != "agent:8125" {
		t.Errorf("env fallback = %q, want agent:8125", got)
	}
}
