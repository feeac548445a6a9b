package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ysamfaidi-del/boublenza-command-center-sub001/internal/core"
	"github.com/ysamfaidi-del/boublenza-command-center-sub001/internal/excel"
	"github.com/ysamfaidi-del/boublenza-command-center-sub001/internal/logging"
	"github.com/ysamfaidi-del/boublenza-command-center-sub001/internal/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// parseResponse is the preview returned before an import is committed.
// Rows carries at most the preview window; TotalRows counts the full
// sheet, which the import will process in its entirety.
type parseResponse struct {
	Dataset   core.Dataset         `json:"dataType"`
	Headers   []string             `json:"headers"`
	TotalRows int                  `json:"totalRows"`
	Rows      []excel.Row          `json:"rows"`
	Mapping   []core.ColumnMapping `json:"mapping"`
}

// handleParse reads an uploaded workbook, matches its headers against the
// canonical field table and classifies the dataset. Nothing is written.
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	file, _, ok := s.formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	table, err := excel.Read(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, readErrorMessage(err))
		return
	}

	mapping := s.matcher.MatchHeaders(table)
	dataset := core.DetectDataset(mapping)

	logging.FromContext(r.Context()).Info("workbook parsed",
		"dataset", dataset,
		"columns", len(table.Headers),
		"rows", len(table.Rows),
	)

	writeJSON(w, parseResponse{
		Dataset:   dataset,
		Headers:   table.Headers,
		TotalRows: len(table.Rows),
		Rows:      table.Preview(),
		Mapping:   mapping,
	})
}

// handleExecute imports an uploaded workbook as the dataset named in the
// form. A submitted mapping is used verbatim; when none is submitted the
// headers are matched afresh.
func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	file, header, ok := s.formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	dataset, err := core.ParseDataset(r.FormValue("dataType"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown dataset %q", r.FormValue("dataType")))
		return
	}

	table, err := excel.Read(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, readErrorMessage(err))
		return
	}

	var mapping []core.ColumnMapping
	if raw := r.FormValue("mapping"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
			writeError(w, http.StatusBadRequest, "invalid mapping format")
			return
		}
	} else {
		mapping = s.matcher.MatchHeaders(table)
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.Import.Timeout)
	defer cancel()

	start := time.Now()
	outcome, err := s.importer.Execute(ctx, dataset, table, mapping)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Best effort: a lost log line never fails a completed import.
	rec := &store.ImportRecord{
		ID:         uuid.New(),
		Dataset:    string(dataset),
		FileName:   header.Filename,
		Imported:   outcome.Imported,
		Errors:     outcome.Errors,
		Skipped:    outcome.Skipped,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err := s.store.RecordImport(r.Context(), rec); err != nil {
		logging.FromContext(r.Context()).Error("record import failed", "error", err)
	}

	writeJSON(w, outcome)
}

// handleDownloadTemplate serves an empty workbook with the dataset's
// expected headers and one example row.
func (s *Server) handleDownloadTemplate(w http.ResponseWriter, r *http.Request) {
	dataset, err := core.ParseDataset(chi.URLParam(r, "dataset"))
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown dataset %q", chi.URLParam(r, "dataset")))
		return
	}

	def, ok := core.Get(dataset)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown dataset %q", dataset))
		return
	}

	data, err := excel.BuildTemplate(def.Info.Label, def.Info.TemplateHeaders, def.Info.ExampleRow)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "template generation failed")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("boublenza_%s_template.xlsx", dataset)))
	w.Write(data)
}

// handleListDatasets lists the registered datasets and their template
// headers.
func (s *Server) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	defs := core.All()
	infos := make([]core.DatasetInfo, 0, len(defs))
	for _, def := range defs {
		infos = append(infos, def.Info)
	}
	writeJSON(w, map[string]any{"datasets": infos})
}

// handleImportHistory returns the most recent import-log entries.
func (s *Server) handleImportHistory(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.RecentImports(r.Context(), s.cfg.Import.HistoryLimit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load import history")
		return
	}
	if records == nil {
		records = []store.ImportRecord{}
	}
	writeJSON(w, map[string]any{"imports": records})
}

// formFile enforces the upload size cap and extracts the "file" form
// field. On failure it writes the error response and returns ok=false.
func (s *Server) formFile(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, bool) {
	maxSize := s.cfg.Import.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		writeError(w, http.StatusBadRequest, "file too large or invalid form")
		return nil, nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return nil, nil, false
	}
	return file, header, true
}

func readErrorMessage(err error) string {
	if errors.Is(err, excel.ErrEmptySheet) {
		return "the workbook has no data rows"
	}
	return fmt.Sprintf("unreadable workbook: %v", err)
}
