// Command csvclean-web starts a tiny web UI for the CSV cleaner.
//
// Usage:
//
//	go run ./cmd/csvclean-web -addr :8080
package main

import (
	"flag"
	"log"
	"os"

	"csvclean/internal/webui"
)

// server is the behavior main needs from webui.Server.
type server interface {
	ListenAndServe() error
}

// newServer is a seam so tests can swap in a double.
var newServer = func(cfg webui.Config) server {
	return webui.NewServer(cfg)
}

// run wires flags to the server. Split from main so tests can drive the full
// startup path with their own args and logger.
func run(args []string, logger *log.Logger) error {
	fs := flag.NewFlagSet("csvclean-web", flag.ContinueOnError)
	fs.SetOutput(logger.Writer())
	addr := fs.String("addr", ":8080", "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	srv := newServer(webui.Config{Addr: *addr})
	logger.Printf("listening on %s", *addr)
	return srv.ListenAndServe()
}

func main() {
	if err := run(os.Args[1:], log.Default()); err != nil {
		log.Fatal(err)
	}
}
