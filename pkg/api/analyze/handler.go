package analyze

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"finhealth/pkg/core/pipeline"
)

// Upload limits, matching what the frontend enforces client-side.
const (
	MaxFiles      = 5
	maxUploadSize = 32 << 20 // per-request multipart memory budget
)

var allowedExtensions = map[string]bool{
	".xlsx": true,
	".xls":  true,
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves the analysis upload endpoint.
type Handler struct {
	Analyzer *pipeline.Analyzer
}

func NewHandler(analyzer *pipeline.Analyzer) *Handler {
	return &Handler{Analyzer: analyzer}
}

// HandleAnalyze accepts up to MaxFiles spreadsheets in the multipart
// field "file", stages them in a per-request scratch directory, runs the
// pipeline, and always removes the scratch files afterwards, success or
// failure.
func (h *Handler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	// CORS for local dev, same as the other endpoints.
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart request")
		return
	}
	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "No file part in the request")
		return
	}
	if len(files) > MaxFiles {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("You can upload a maximum of %d files.", MaxFiles))
		return
	}

	scratchDir := filepath.Join(os.TempDir(), "finhealth", uuid.New().String())
	if err := os.MkdirAll(scratchDir, 0o755); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to stage uploads: %v", err))
		return
	}
	defer os.RemoveAll(scratchDir)

	var paths []string
	for _, fh := range files {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if !allowedExtensions[ext] {
			writeError(w, http.StatusBadRequest, "File type not allowed. Please upload only .xlsx files")
			return
		}
		path, err := saveUpload(fh, scratchDir)
		if err != nil {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to save upload: %v", err))
			return
		}
		paths = append(paths, path)
	}

	fmt.Printf("[ANALYZE] Request with %d file(s)\n", len(paths))
	result, err := h.Analyzer.Analyze(r.Context(), paths)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func saveUpload(fh *multipart.FileHeader, dir string) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	// Base() strips any client-supplied directory components.
	path := filepath.Join(dir, filepath.Base(fh.Filename))
	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return path, nil
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
