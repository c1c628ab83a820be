package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"doccount/internal/compile"
	"doccount/internal/count"
	"doccount/internal/pipeline"
)

// handleCount counts an upload synchronously. All files in the form are
// added to an in-memory world so includes resolve against each other; the
// "roots" field names the files whose counts are reported (default: all).
func (s *Server) handleCount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	files, excludeImports, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	world := compile.NewMemWorld()
	var roots []string
	for _, f := range files {
		world.Add(f.Name, f.Data)
		if f.Root {
			roots = append(roots, f.Name)
		}
	}

	report := count.Aggregate(r.Context(), world, roots, count.Options{
		ExcludeImports: excludeImports,
		Concurrency:    s.cfg.AggregateConcurrency,
	})
	s.stats.Record(time.Since(start).Milliseconds())

	status := http.StatusOK
	if report.Failed() {
		status = http.StatusUnprocessableEntity
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"files": fileResults(report),
		"total": report.Total,
	})
}

// handleBatchCount queues an upload for asynchronous counting and returns a
// job ID to poll.
func (s *Server) handleBatchCount(w http.ResponseWriter, r *http.Request) {
	files, excludeImports, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	now := time.Now()
	job := &pipeline.Job{
		ID:             pipeline.JobID(files, now),
		Status:         pipeline.StatusQueued,
		ExcludeImports: excludeImports,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	job.SetFiles(files)

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/count/%s/status", job.ID),
	})
}

func (s *Server) handleCountStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"requests":    s.stats.Snapshot(),
		"queue_depth": s.orchestrator.QueueDepth(),
	})
}

// readUpload parses a multipart upload into job files. Every "files" part is
// added to the batch; the optional repeated "roots" field restricts which
// files get counted (others serve only as include targets). On failure a
// JSON error has already been written.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) ([]pipeline.JobFile, bool, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return nil, false, false
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		jsonError(w, "at least one file is required", http.StatusBadRequest)
		return nil, false, false
	}

	roots := make(map[string]bool)
	for _, name := range r.Form["roots"] {
		clean, err := sanitizeName(name)
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return nil, false, false
		}
		roots[clean] = true
	}

	var files []pipeline.JobFile
	for _, fh := range headers {
		name, err := sanitizeName(partFilename(fh))
		if err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return nil, false, false
		}
		isRoot := len(roots) == 0 || roots[name]
		if isRoot && !compile.IsSupportedExtension(name) {
			jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(name)), http.StatusBadRequest)
			return nil, false, false
		}

		data, err := readPart(fh, s.cfg.MaxUploadBytes)
		if err != nil {
			jsonError(w, fmt.Sprintf("%s: %s", name, err), http.StatusRequestEntityTooLarge)
			return nil, false, false
		}
		files = append(files, pipeline.JobFile{Name: name, Data: data, Root: isRoot})
	}

	for name := range roots {
		found := false
		for _, f := range files {
			if f.Name == name {
				found = true
				break
			}
		}
		if !found {
			jsonError(w, fmt.Sprintf("root %q not among uploaded files", name), http.StatusBadRequest)
			return nil, false, false
		}
	}

	excludeImports := r.FormValue("exclude_imports") == "true"
	return files, excludeImports, true
}

// partFilename recovers the filename as the client sent it.
// FileHeader.Filename is base-named by net/http, which would strip the
// subdirectories an include layout needs (and hide traversal attempts from
// sanitizeName), so read it from the part's own Content-Disposition.
func partFilename(fh *multipart.FileHeader) string {
	if cd := fh.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name, ok := params["filename"]; ok {
				return name
			}
		}
	}
	return fh.Filename
}

func readPart(fh *multipart.FileHeader, maxBytes int64) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file")
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("file exceeds max size (%d bytes)", maxBytes)
	}
	return data, nil
}

func fileResults(report count.Report) []pipeline.FileResult {
	results := make([]pipeline.FileResult, 0, len(report.Files))
	for _, f := range report.Files {
		fr := pipeline.FileResult{File: f.File, Words: f.Result.Words, Characters: f.Result.Characters}
		if f.Err != nil {
			fr.Error = f.Err.Error()
		}
		results = append(results, fr)
	}
	return results
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// sanitizeName normalizes an uploaded filename to a clean relative slash
// path. Subdirectories are allowed so uploads can mirror an include layout,
// but absolute paths and parent traversal are not.
func sanitizeName(name string) (string, error) {
	clean := path.Clean(filepath.ToSlash(name))
	if clean == "" || clean == "." {
		return "", fmt.Errorf("empty filename")
	}
	if path.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("invalid filename %q", name)
	}
	return clean, nil
}
