package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tsawler/hsereport/batch"
	"github.com/tsawler/hsereport/export"
	"github.com/tsawler/hsereport/extract"
	"github.com/tsawler/hsereport/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// extractResponse is the batch-level summary for one upload.
type extractResponse struct {
	BatchID   string          `json:"batch_id"`
	Processed int             `json:"processed"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Results   []extractResult `json:"results"`
}

// extractResult is the outcome for one uploaded file.
type extractResult struct {
	File   string          `json:"file"`
	OK     bool            `json:"ok"`
	Record *extract.Record `json:"record,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// handleExtract accepts a multipart upload of one or more DOCX files, runs
// the batch driver and persists the successful records. Failures are
// reported per file; a corrupt file never hides the other results.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.Server.MaxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("parsing upload: %v", err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		respondError(w, http.StatusBadRequest, "no files uploaded; use multipart field \"files\"")
		return
	}

	var inputs []batch.Input
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("opening %s: %v", fh.Filename, err))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("reading %s: %v", fh.Filename, err))
			return
		}
		inputs = append(inputs, batch.Input{Name: fh.Filename, Data: data})
	}

	batchID := uuid.NewString()
	results, err := s.proc.Process(r.Context(), inputs)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, fmt.Sprintf("batch aborted: %v", err))
		return
	}

	succeeded := batch.Succeeded(results)
	if len(succeeded) > 0 {
		if err := s.store.SaveRecords(r.Context(), succeeded); err != nil {
			s.log.Error("saving records", zap.String("batch_id", batchID), zap.Error(err))
			respondError(w, http.StatusInternalServerError, "storing records failed")
			return
		}
	}

	resp := extractResponse{BatchID: batchID, Processed: len(results)}
	for _, res := range results {
		er := extractResult{File: res.Name, OK: res.OK()}
		if res.OK() {
			rec := res.Record
			er.Record = &rec
			resp.Succeeded++
		} else {
			er.Error = res.Err.Error()
			resp.Failed++
		}
		resp.Results = append(resp.Results, er)
	}

	s.log.Info("batch processed",
		zap.String("batch_id", batchID),
		zap.Int("succeeded", resp.Succeeded),
		zap.Int("failed", resp.Failed))
	respondJSON(w, http.StatusOK, resp)
}

// handleRecords lists recent stored records, newest first.
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	recs, err := s.store.Recent(r.Context(), limit)
	if err != nil {
		s.log.Error("listing records", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "listing records failed")
		return
	}
	if recs == nil {
		recs = []store.StoredRecord{}
	}
	respondJSON(w, http.StatusOK, recs)
}

// handleExportXLSX serves recent records as a spreadsheet attachment.
func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	recs, err := s.exportRecords(r)
	if err != nil {
		s.log.Error("export query", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "export failed")
		return
	}

	data, err := export.XLSX(recs, s.cfg.Fields)
	if err != nil {
		s.log.Error("building workbook", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.WorkbookName))
	w.Write(data)
}

// handleExportCSV serves the same projection as CSV.
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	recs, err := s.exportRecords(r)
	if err != nil {
		s.log.Error("export query", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "export failed")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="hse_summary.csv"`)
	if err := export.CSV(w, recs, s.cfg.Fields); err != nil {
		s.log.Error("writing csv", zap.Error(err))
	}
}

// exportRecords loads the stored records to export, oldest of the recent
// window first so the spreadsheet reads top-down in upload order.
func (s *Server) exportRecords(r *http.Request) ([]extract.Record, error) {
	limit := 1000
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	stored, err := s.store.Recent(r.Context(), limit)
	if err != nil {
		return nil, err
	}

	recs := make([]extract.Record, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		recs = append(recs, stored[i].Record())
	}
	return recs, nil
}

// handleHealthz reports liveness.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
