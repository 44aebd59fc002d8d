package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"video-sprite-generator/internal/logging"

	"github.com/gorilla/mux"
)

// ServeAsset serves a generated sprite or VTT file from a job
// workspace. Requests resolving outside the thumbnail directory are
// rejected.
func (h *Handlers) ServeAsset(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	jobID := vars["jobID"]
	filename := vars["filename"]

	fullPath := filepath.Join(h.thumbnailDir, jobID, filename)

	absPath, err := filepath.Abs(fullPath)
	if err != nil || !isSubPath(h.thumbnailDir, absPath) {
		logging.Warn("asset request escapes thumbnail dir: %s/%s", jobID, filename)
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	info, err := os.Stat(absPath)
	if err != nil || info.IsDir() {
		logging.Warn("file not found or invalid path requested: %s", absPath)
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	http.ServeFile(w, r, absPath)
}

// isSubPath reports whether target sits inside base after both are
// resolved to absolute paths.
func isSubPath(base, target string) bool {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absBase, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
