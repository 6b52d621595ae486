package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"csvclean/internal/cleaner"
	"csvclean/internal/config"
	"csvclean/internal/logging"
	"csvclean/internal/metrics"
	"csvclean/internal/metrics/datadog"
	"csvclean/internal/metrics/prompush"

	// register all backends with the storage factory.
	// config specifies which to use but we need to build in support for all of them.
	_ "csvclean/internal/storage/all"
)

// cliFlags carries the raw flag values; mergeConfig folds them onto the
// config-file base.
type cliFlags struct {
	in, out, report       string
	dedupeOn, emptyPolicy string
	sep, encoding         string
	store, dsn, table     string
}

// main is the entry point for the csvclean binary. It resolves the run
// config from file and flags, optionally initializes a metrics backend, and
// executes the cleaning run.
func main() {
	var (
		fl                cliFlags
		cfgPath           string
		metricsBackendFlg string
		pushGatewayURLFlg string
		validate          bool
	)

	flag.StringVar(&fl.in, "in", "", "input delimited text file")
	flag.StringVar(&fl.out, "out", "", "output file for the cleaned table")
	flag.StringVar(&fl.report, "report", config.DefaultReportPath, "run report path (empty disables the report file)")
	flag.StringVar(&fl.dedupeOn, "dedupe-on", "all", `dedupe key: "all" or a comma-separated column list`)
	flag.StringVar(&fl.emptyPolicy, "empty-policy", config.DefaultEmptyPolicy, `empty-cell policy: "mark" or "delete-row"`)
	flag.StringVar(&fl.sep, "sep", config.DefaultSeparator, "field separator (single character)")
	flag.StringVar(&fl.encoding, "encoding", "", `input encoding (e.g. "latin-1"); empty means UTF-8`)
	flag.StringVar(&fl.store, "store", "", "export backend kind (postgres, mysql, mssql, sqlite)")
	flag.StringVar(&fl.dsn, "dsn", "", "export DSN")
	flag.StringVar(&fl.table, "table", "", "export destination table")
	flag.StringVar(&cfgPath, "config", "", "run config JSON path (flags override file values)")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "", "metrics backend to use (pushgateway, datadog, none)")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	logger := logging.New(*verbose)

	// Resolve the config: file base when given, flags on top. Without a file
	// every core flag applies, defaults included.
	var base config.Config
	set := map[string]bool{}
	if cfgPath != "" {
		var err error
		base, err = config.Load(cfgPath)
		if err != nil {
			fatalf("%v", err)
		}
	} else {
		for _, n := range []string{"in", "out", "report", "dedupe-on", "empty-policy", "sep", "encoding"} {
			set[n] = true
		}
	}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	cfg := mergeConfig(base, fl, set)

	issues := config.Validate(cfg)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}

	// If validate flag is set, only validate the configuration and exit.
	if validate {
		if hasError {
			os.Exit(2)
		}
		fmt.Println("Configuration is valid")
		os.Exit(0)
	}
	if hasError {
		fatalf("configuration is invalid")
	}

	// Decide metrics backend: flag → config → env.
	backendName := resolveMetricsBackend(metricsBackendFlg, cfg.Metrics.Backend)
	jobName := cfg.Metrics.Job
	if jobName == "" {
		jobName = "csvclean"
	}

	var mb metrics.Backend
	switch backendName {
	case "pushgateway":
		gwURL := resolvePushGatewayURL(pushGatewayURLFlg, cfg.Metrics.PushGatewayURL)
		b, err := prompush.NewBackend(jobName, gwURL)
		if err != nil {
			logger.Warn("metrics: failed to init prom push backend; using nop", "err", err)
		} else {
			logger.Info("metrics enabled", "backend", backendName, "url", gwURL, "job", jobName)
			mb = b
		}

	case "datadog":
		addr := resolveDogstatsdAddr(cfg.Metrics.DogstatsdAddr)
		b, err := datadog.NewBackend(datadog.Config{
			Addr:       addr,
			Namespace:  "csvclean.",
			GlobalTags: []string{"job:" + jobName},
		})
		if err != nil {
			logger.Warn("metrics: failed to init dogstatsd backend; using nop", "err", err)
		} else {
			logger.Info("metrics enabled", "backend", backendName, "addr", addr, "job", jobName)
			mb = b
		}

	case "", "none":
		// metrics disabled; nop backend remains
		logger.Debug("metrics disabled", "backend", backendName)

	default:
		logger.Warn("metrics: unknown backend; metrics disabled", "backend", backendName)
	}
	if mb != nil {
		metrics.SetBackend(mb)
		defer func() {
			if err := metrics.Flush(); err != nil {
				logger.Warn("metrics: flush error", "err", err)
			}
		}()
	}

	if _, err := cleaner.Run(context.Background(), cfg, logger); err != nil {
		var re *cleaner.ReadError
		if errors.As(err, &re) && errors.Is(err, os.ErrNotExist) {
			fatalf("Error: input file not found: %s", re.Path)
		}
		fatalf("Error: %v", err)
	}
}

// mergeConfig applies the flags named in 'set' onto the base config. Storage
// flags materialize the storage section when the base has none.
func mergeConfig(base config.Config, fl cliFlags, set map[string]bool) config.Config {
	cfg := base
	if set["in"] {
		cfg.Input = fl.in
	}
	if set["out"] {
		cfg.Output = fl.out
	}
	if set["report"] {
		cfg.Report = fl.report
	}
	if set["dedupe-on"] {
		cfg.DedupeOn = config.ParseDedupeOn(fl.dedupeOn)
	}
	if set["empty-policy"] {
		cfg.EmptyPolicy = fl.emptyPolicy
	}
	if set["sep"] {
		cfg.Separator = fl.sep
	}
	if set["encoding"] {
		cfg.Encoding = fl.encoding
	}
	if set["store"] || set["dsn"] || set["table"] {
		if cfg.Storage == nil {
			cfg.Storage = &config.Storage{}
		}
		if set["store"] {
			cfg.Storage.Kind = fl.store
		}
		if set["dsn"] {
			cfg.Storage.DB.DSN = fl.dsn
		}
		if set["table"] {
			cfg.Storage.DB.Table = fl.table
		}
	}
	return cfg
}

// resolveMetricsBackend picks the metrics backend name: flag, then config
// file, then environment.
func resolveMetricsBackend(flagVal, cfgVal string) string {
	if flagVal != "" {
		return flagVal
	}
	if cfgVal != "" {
		return cfgVal
	}
	return os.Getenv("CSVCLEAN_METRICS_BACKEND")
}

// resolvePushGatewayURL picks the Pushgateway URL: flag, config file,
// environment, default.
func resolvePushGatewayURL(flagVal, cfgVal string) string {
	if flagVal != "" {
		return flagVal
	}
	if cfgVal != "" {
		return cfgVal
	}
	if v := os.Getenv("PUSHGATEWAY_URL"); v != "" {
		return v
	}
	return "http://localhost:9091"
}

// resolveDogstatsdAddr picks the DogStatsD agent address: config file,
// environment, default.
func resolveDogstatsdAddr(cfgVal string) string {
	if cfgVal != "" {
		return cfgVal
	}
	if v := os.Getenv("DOGSTATSD_ADDR"); v != "" {
		return v
	}
	return "127.0.0.1:8125"
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
