package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/dhamidi/ged/format"
	"github.com/dhamidi/ged/gedcom"
)

var contentTypes = map[string]string{
	"json": "application/json",
	"yaml": "application/yaml",
	"ged":  "text/plain; charset=utf-8",
	"line": "text/tab-separated-values; charset=utf-8",
}

// handleParse parses the request body and renders the document in the
// format named by the format query parameter.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("format")
	if name == "" {
		name = s.cfg.Format
	}

	data, ok := readBody(w, r)
	if !ok {
		return
	}
	doc, diags, err := gedcom.Parse(data, gedcom.WithFile("request"))
	if err != nil {
		fatal(w, err)
		return
	}

	var buf bytes.Buffer
	enc, err := format.New(name, &buf,
		format.WithDiagnostics(diags),
		format.WithWriteOptions(s.cfg.WriteOptions()...),
	)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := enc.Encode(doc); err != nil {
		jsonError(w, "encode: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypes[name])
	w.Write(buf.Bytes())
}

// handleFormat re-serializes the request body as canonical GEDCOM.
func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	opts := s.cfg.WriteOptions()
	if v := r.URL.Query().Get("line_length"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			jsonError(w, fmt.Sprintf("invalid line_length %q", v), http.StatusBadRequest)
			return
		}
		opts = append(opts, gedcom.WithMaxLineLength(n))
	}

	data, ok := readBody(w, r)
	if !ok {
		return
	}
	doc, diags, err := gedcom.Parse(data, gedcom.WithFile("request"))
	if err != nil {
		fatal(w, err)
		return
	}
	out, err := gedcom.Marshal(doc, opts...)
	if err != nil {
		jsonError(w, "write: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypes["ged"])
	w.Header().Set("X-Ged-Diagnostics", strconv.Itoa(len(diags)))
	w.Write(out)
}

type validateResponse struct {
	*gedcom.Report
	Valid   bool   `json:"valid"`
	Summary string `json:"summary"`
}

// handleValidate reports the errors and warnings for the request body at
// the level named by the level query parameter.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	level := s.cfg.Level()
	if v := r.URL.Query().Get("level"); v != "" {
		var err error
		if level, err = gedcom.ParseLevel(v); err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	data, ok := readBody(w, r)
	if !ok {
		return
	}
	report := gedcom.Validate(data, level, gedcom.WithFile("request"))
	if report.Fatal != nil {
		fatal(w, report.Fatal)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(validateResponse{
		Report:  report,
		Valid:   !report.Failed(),
		Summary: report.String(),
	})
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return nil, false
		}
		jsonError(w, "read body: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return data, true
}

// fatal reports input that could not be parsed at all.
func fatal(w http.ResponseWriter, err error) {
	log.Debugf("rejected input: %s", err)
	jsonError(w, err.Error(), http.StatusUnprocessableEntity)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
