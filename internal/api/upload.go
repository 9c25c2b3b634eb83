package api

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Joshua-Anderson1/scoutradioz/internal/logging"
	"github.com/Joshua-Anderson1/scoutradioz/internal/metrics"
	"github.com/Joshua-Anderson1/scoutradioz/internal/models/dtos"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxUploadBytes caps pit image uploads.
const maxUploadBytes = 10 << 20 // 10 MiB

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// PitImageUploadHandler accepts a multipart pit-scouting photo for a
// team and stores it under the upload root, named by a fresh uuid so
// re-uploads never clobber each other.
func PitImageUploadHandler(uploadDir string, metricsReg *metrics.MetricsRegistry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamKey := chi.URLParam(r, "teamKey")
		if teamKey == "" {
			metricsReg.UploadsTotal.WithLabelValues("rejected").Inc()
			respondWithError(w, http.StatusBadRequest, "team key is required")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			metricsReg.UploadsTotal.WithLabelValues("rejected").Inc()
			respondWithError(w, http.StatusRequestEntityTooLarge, "image too large")
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			metricsReg.UploadsTotal.WithLabelValues("rejected").Inc()
			respondWithError(w, http.StatusBadRequest, "image field is required")
			return
		}
		defer file.Close()

		contentType := header.Header.Get("Content-Type")
		ext, ok := allowedImageTypes[strings.ToLower(contentType)]
		if !ok {
			metricsReg.UploadsTotal.WithLabelValues("rejected").Inc()
			respondWithError(w, http.StatusUnsupportedMediaType,
				fmt.Sprintf("unsupported image type %q", contentType))
			return
		}

		teamDir := filepath.Join(uploadDir, teamKey)
		if err := os.MkdirAll(teamDir, 0o755); err != nil {
			metricsReg.UploadsTotal.WithLabelValues("error").Inc()
			respondWithError(w, http.StatusInternalServerError, "failed to store image")
			return
		}

		filename := uuid.New().String() + ext
		dst, err := os.Create(filepath.Join(teamDir, filename))
		if err != nil {
			metricsReg.UploadsTotal.WithLabelValues("error").Inc()
			respondWithError(w, http.StatusInternalServerError, "failed to store image")
			return
		}
		defer dst.Close()

		size, err := io.Copy(dst, file)
		if err != nil {
			metricsReg.UploadsTotal.WithLabelValues("error").Inc()
			respondWithError(w, http.StatusInternalServerError, "failed to store image")
			return
		}

		metricsReg.UploadsTotal.WithLabelValues("stored").Inc()
		metricsReg.UploadSizeBytes.Observe(float64(size))
		logging.Info("Pit image stored",
			"team_key", teamKey,
			"filename", filename,
			"size_bytes", size,
		)

		resp := dtos.UploadResponse{Filename: filepath.Join(teamKey, filename), Size: size}
		respondWithSuccess(w, http.StatusCreated, &resp)
	}
}
