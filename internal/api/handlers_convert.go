package api

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/dgallion1/convertwi/internal/acronym"
	"github.com/dgallion1/convertwi/internal/annotate"
	"github.com/dgallion1/convertwi/internal/parser"
	"github.com/dgallion1/convertwi/internal/pipeline"
	"github.com/go-chi/chi/v5/middleware"
)

// handleConvert converts one upload synchronously. An optional "acronyms"
// table upload replaces the loaded dictionary for this request only.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	entries := s.orchestrator.Entries()
	table, header, err := r.FormFile("acronyms")
	switch {
	case err == nil:
		defer table.Close()
		entries, err = acronym.Load(table, sanitizeFilename(header.Filename))
		if err != nil {
			jsonError(w, "invalid acronym table: "+err.Error(), http.StatusBadRequest)
			return
		}
	case !errors.Is(err, http.ErrMissingFile):
		jsonError(w, "invalid acronym table: "+err.Error(), http.StatusBadRequest)
		return
	}

	log := s.log.With("filename", filename, "request_id", middleware.GetReqID(r.Context()))
	p, err := parser.ForFile(filename, s.orchestrator.DocxConverter())
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	res, err := pipeline.Convert(r.Context(), p, bytes.NewReader(data), filename, entries)
	stats := s.orchestrator.Stats()
	if err != nil {
		if stats != nil {
			stats.RecordFailure()
		}
		log.Error("conversion failed", "error", err)
		jsonError(w, "conversion failed: "+err.Error(), convertErrorStatus(err))
		return
	}
	if stats != nil {
		stats.Record(time.Since(start))
	}

	writeResult(w, r, filename, res)
}

func convertErrorStatus(err error) int {
	switch {
	case errors.Is(err, annotate.ErrMissingAnchor), errors.Is(err, parser.ErrConversion):
		return http.StatusUnprocessableEntity
	case errors.Is(err, parser.ErrUnsupportedFormat):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
