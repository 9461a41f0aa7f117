package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/promptpix/promptpix/internal/service"
)

type generateRequest struct {
	Prompt string `json:"prompt"`
}

func (s *Server) handleGenerateImage(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, http.StatusBadRequest, "invalid json")
		return
	}

	userID := userIDFrom(r.Context())
	result, err := s.generations.Generate(r.Context(), userID, req.Prompt)
	if err != nil {
		if errors.Is(err, service.ErrInsufficientCredit) {
			payload := map[string]any{"success": false, "message": err.Error()}
			if user, accErr := s.auths.Account(r.Context(), userID); accErr == nil {
				payload["creditBalance"] = user.CreditBalance
			}
			s.writeJSON(w, http.StatusPaymentRequired, payload)
			return
		}
		s.failFromError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"message":       "image generated",
		"imageId":       result.ImageID,
		"resultImage":   result.ResultImage,
		"publicUrl":     result.PublicURL,
		"contentType":   result.ContentType,
		"creditBalance": result.CreditBalance,
		"generationMs":  result.GenerationMS,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	s.listImages(w, r, false)
}

func (s *Server) handleFavorites(w http.ResponseWriter, r *http.Request) {
	s.listImages(w, r, true)
}

func (s *Server) listImages(w http.ResponseWriter, r *http.Request, favoritesOnly bool) {
	images, err := s.images.List(r.Context(), userIDFrom(r.Context()), favoritesOnly)
	if err != nil {
		s.failFromError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"images": images})
}

type imageIDRequest struct {
	ImageID string `json:"imageId"`
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	var req imageIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ImageID == "" {
		s.fail(w, http.StatusBadRequest, "imageId is required")
		return
	}

	isFavorite, err := s.images.ToggleFavorite(r.Context(), userIDFrom(r.Context()), req.ImageID)
	if err != nil {
		s.failFromError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"isFavorite": isFavorite})
}

func (s *Server) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	var req imageIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ImageID == "" {
		s.fail(w, http.StatusBadRequest, "imageId is required")
		return
	}

	if err := s.images.Delete(r.Context(), userIDFrom(r.Context()), req.ImageID); err != nil {
		s.failFromError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"message": "image deleted"})
}

func (s *Server) handleRawImage(w http.ResponseWriter, r *http.Request) {
	imageID := chi.URLParam(r, "imageID")
	image, err := s.images.Raw(r.Context(), userIDFrom(r.Context()), imageID)
	if err != nil {
		s.failFromError(w, err)
		return
	}

	w.Header().Set("Content-Type", image.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(image.Payload)))
	w.Header().Set("Cache-Control", "private, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(image.Payload)
}
