// Package webui exposes a minimal HTTP server with an HTML form that
// lets you paste delimited text, run the cleaning pipeline on it in
// memory, and see the cleaned table and run report rendered inline.
//
// Routes:
//
//	GET  /          → form
//	POST /clean     → cleans pasted text with form inputs; renders output inline
//	GET  /api/clean → machine-friendly API, returns text/plain (cleaned CSV or report)
//
// Nothing is persisted; every request is a fresh in-memory run.
package webui

import (
	"bytes"
	_ "embed"
	"html/template"
	"log"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"csvclean/internal/config"
	"csvclean/internal/metrics"
	pcsv "csvclean/internal/parser/csv"
	"csvclean/internal/report"
	"csvclean/internal/transformer"
	"csvclean/internal/transformer/builtin"
	wcsv "csvclean/internal/writer/csv"
)

// Config controls server startup.
type Config struct {
	Addr string
}

// Server wraps http.Server for convenience.
type Server struct {
	cfg  Config
	mux  *http.ServeMux
	tmpl *template.Template
}

// NewServer constructs a Server with routes and embedded template.
func NewServer(cfg Config) *Server {
	s := &Server{
		cfg: cfg,
		mux: http.NewServeMux(),
		// Parse the embedded template at init time.
		tmpl: template.Must(template.New("index").Parse(indexHTML)),
	}
	s.routes()
	return s
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return http.ListenAndServe(s.cfg.Addr, s.mux)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/clean", s.handleClean)
	s.mux.HandleFunc("/api/clean", s.handleAPIClean)
}

// pageData feeds the index template. The zero value renders the bare form.
type pageData struct {
	Data       string
	Sep        string
	Policy     string
	DedupeOn   string
	Cleaned    string
	ReportText string
}

// handleIndex renders the input form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	_ = s.tmpl.Execute(w, pageData{})
}

// handleClean processes the form and renders a results page.
func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form: "+err.Error(), http.StatusBadRequest)
		return
	}
	data := r.FormValue("data")
	sep := r.FormValue("sep")
	policy := r.FormValue("empty_policy")
	dedupeOn := strings.TrimSpace(r.FormValue("dedupe_on"))

	cleaned, reportText, err := runClean(data, cleanOptions{
		Separator:   decodeSeparator(sep),
		EmptyPolicy: policy,
		DedupeOn:    config.ParseDedupeOn(dedupeOn),
	})
	if err != nil {
		http.Error(w, "clean failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	page := pageData{
		Data:       data,
		Sep:        sep,
		Policy:     policy,
		DedupeOn:   dedupeOn,
		Cleaned:    cleaned,
		ReportText: reportText,
	}
	if err := s.tmpl.Execute(w, page); err != nil {
		log.Println("template error:", err)
	}
}

// handleAPIClean returns text/plain so scripts can curl it easily. mode=report
// swaps the cleaned table for the run report.
func (s *Server) handleAPIClean(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data := q.Get("data")
	sep := q.Get("sep")
	policy := q.Get("empty_policy")
	dedupeOn := strings.TrimSpace(q.Get("dedupe_on"))
	mode := q.Get("mode") // "csv" or "report"

	cleaned, reportText, err := runClean(data, cleanOptions{
		Separator:   decodeSeparator(sep),
		EmptyPolicy: policy,
		DedupeOn:    config.ParseDedupeOn(dedupeOn),
	})
	if err != nil {
		http.Error(w, "clean failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	// Both payloads are plain text, so browsers render them as-is.
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if mode == "report" {
		_, _ = w.Write([]byte(reportText))
		return
	}
	_, _ = w.Write([]byte(cleaned))
}

// cleanOptions are the pipeline knobs the form and the API expose.
type cleanOptions struct {
	Separator   rune
	EmptyPolicy string
	DedupeOn    []string
}

// runClean executes the cleaning pipeline over pasted text and returns the
// cleaned table plus the rendered report.
func runClean(input string, opt cleanOptions) (cleaned, reportText string, err error) {
	start := time.Now()

	st := &metrics.RunStats{
		RunID:                  uuid.NewString(),
		InputPath:              "(pasted)",
		OutputPath:             "(inline)",
		Separator:              string(opt.Separator),
		EmptyPolicy:            opt.EmptyPolicy,
		RequestedDedupeColumns: opt.DedupeOn,
	}

	t, err := pcsv.NewParser(pcsv.Options{Comma: opt.Separator, LazyQuotes: true}).Parse(strings.NewReader(input))
	if err != nil {
		return "", "", err
	}
	st.RowsIn = len(t.Rows)

	chain := transformer.Chain{
		builtin.Normalize{},
		builtin.Empties{Policy: opt.EmptyPolicy},
		builtin.DeDup{Keys: opt.DedupeOn},
	}
	t = chain.Apply(t, st)
	st.RowsOut = len(t.Rows)

	var buf bytes.Buffer
	res, err := wcsv.NewWriter(wcsv.Options{Comma: opt.Separator}).Write(&buf, t)
	if err != nil {
		return "", "", err
	}
	st.OutputBytes = res.Bytes
	st.OutputChecksum = res.Checksum
	st.Runtime = time.Since(start)

	return buf.String(), report.Render(st), nil
}

// decodeSeparator converts a user-supplied string into a single rune
// separator. Named values cover what a form select can't express literally.
func decodeSeparator(s string) rune {
	switch s {
	case "", "comma":
		return ','
	case "semicolon":
		return ';'
	case "tab":
		return '\t'
	case "pipe":
		return '|'
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// indexHTML is an embedded, minimal page with Tailwind-less vanilla styling.
//
//go:embed index.tmpl.html
var indexHTML string
