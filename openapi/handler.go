package openapi

import (
	"fmt"
	"net/http"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// DocumentHandler serves a Document as JSON (default) or YAML (with
// ?format=yaml). The document is serialized once on first request and
// cached.
func DocumentHandler(doc *Document) http.Handler {
	var (
		once     sync.Once
		jsonData []byte
		yamlData []byte
		buildErr error
	)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		once.Do(func() {
			jsonData, buildErr = json.MarshalIndent(doc, "", "  ")
			if buildErr == nil {
				yamlData, buildErr = yaml.Marshal(doc)
			}
		})
		if buildErr != nil {
			http.Error(w, "failed to serialize document", http.StatusInternalServerError)
			return
		}
		if r.URL.Query().Get("format") == "yaml" {
			w.Header().Set("Content-Type", "application/x-yaml")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(yamlData)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(jsonData)
	})
}

// DocumentFunc supplies a Document on demand, e.g. by parsing the authored
// specification or running the analyzer.
type DocumentFunc func() (*Document, error)

// ReportHandler serves the discrepancy report between an expected and an
// actual document as plain text, one discrepancy per line. Every response
// carries a generated X-Report-ID header; a clean comparison answers 200,
// discrepancies answer 409 Conflict.
func ReportHandler(expected, actual DocumentFunc, opts MatchOptions) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Report-ID", uuid.NewString())

		exp, err := expected()
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to load expected document: %v", err), http.StatusInternalServerError)
			return
		}
		act, err := actual()
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to build actual document: %v", err), http.StatusInternalServerError)
			return
		}

		report := Match(exp, act, opts)

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if len(report) == 0 {
			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, "specification matches implementation")
			return
		}
		w.WriteHeader(http.StatusConflict)
		for _, line := range report {
			fmt.Fprintln(w, line)
		}
	})
}
