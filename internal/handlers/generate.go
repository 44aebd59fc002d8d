package handlers

import (
	"errors"
	"net/http"

	"video-sprite-generator/internal/logging"
	"video-sprite-generator/internal/pipeline"
)

// GenerateResponse is the success payload for a completed job.
type GenerateResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	SpriteURL string `json:"sprite_url"`
	VTTURL    string `json:"vtt_url"`
}

// Generate processes a video URL submitted as a form field and responds
// with the URLs of the generated sprite and VTT file.
func (h *Handlers) Generate(w http.ResponseWriter, r *http.Request) {
	videoURL := r.FormValue("video_url")
	if videoURL == "" {
		writeJSONError(w, "Video URL is required.", http.StatusBadRequest)
		return
	}

	result, err := h.generator.Run(r.Context(), videoURL)
	if err != nil {
		writeJSONError(w, generateErrorMessage(err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, GenerateResponse{
		Status:    "success",
		Message:   "Sprite and VTT generated successfully!",
		SpriteURL: result.SpriteURL,
		VTTURL:    result.VTTURL,
	})
}

// generateErrorMessage maps a pipeline stage error to a client-facing
// message that says which stage failed without leaking internals.
func generateErrorMessage(err error) string {
	switch {
	case errors.Is(err, pipeline.ErrFetch):
		return "Failed to download video. Please check the URL or network access."
	case errors.Is(err, pipeline.ErrProbe):
		return "Could not get valid video duration. Video might be corrupted or empty."
	case errors.Is(err, pipeline.ErrNoFrames):
		return "Failed to generate any valid thumbnails. Video might be unreadable or too short for extraction."
	case errors.Is(err, pipeline.ErrCompose):
		return "Failed to create sprite image. Check server logs for FFmpeg details."
	case errors.Is(err, pipeline.ErrVTT):
		return "Failed to create VTT file."
	default:
		logging.Error("unhandled generation error: %v", err)
		return "An unexpected server error occurred."
	}
}
