package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/KAsare1/Kodefx-channels/cmd/models"
	"github.com/KAsare1/Kodefx-channels/cmd/utils"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	minRating = 1
	maxRating = 5
)

type ReviewRequest struct {
	Name        string          `json:"name"`
	Rating      json.RawMessage `json:"rating"`
	Comment     string          `json:"comment"`
	ChannelType *string         `json:"channelType"`
}

type OpinionRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Opinion string `json:"opinion"`
}

type Handler struct {
	reviews  *Queue[models.Review]
	opinions *Queue[models.Opinion]
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{
		reviews:  NewQueue[models.Review](db),
		opinions: NewQueue[models.Opinion](db),
	}
}

func (h *Handler) RegisterRoutes(router *mux.Router, requireAdmin utils.Middleware) {
	router.HandleFunc("/reviews", h.CreateReview).Methods("POST")
	router.HandleFunc("/reviews", listItems(h.reviews.Approved, "list_reviews")).Methods("GET")
	router.HandleFunc("/reviews/pending", requireAdmin(listItems(h.reviews.Pending, "list_pending_reviews"))).Methods("GET")
	router.HandleFunc("/reviews/{id:[0-9]+}", requireAdmin(getItem(h.reviews, "get_review"))).Methods("GET")
	router.HandleFunc("/reviews/{id:[0-9]+}/approve", requireAdmin(approveItem(h.reviews, "approve_review"))).Methods("PUT")
	router.HandleFunc("/reviews/{id:[0-9]+}", requireAdmin(deleteItem(h.reviews, "delete_review"))).Methods("DELETE")

	router.HandleFunc("/opinions", h.CreateOpinion).Methods("POST")
	router.HandleFunc("/opinions/approved", listItems(h.opinions.Approved, "list_opinions")).Methods("GET")
	router.HandleFunc("/opinions/pending", requireAdmin(listItems(h.opinions.Pending, "list_pending_opinions"))).Methods("GET")
	router.HandleFunc("/opinions/{id:[0-9]+}", requireAdmin(getItem(h.opinions, "get_opinion"))).Methods("GET")
	router.HandleFunc("/opinions/{id:[0-9]+}/approve", requireAdmin(approveItem(h.opinions, "approve_opinion"))).Methods("PUT")
	router.HandleFunc("/opinions/{id:[0-9]+}", requireAdmin(deleteItem(h.opinions, "delete_opinion"))).Methods("DELETE")
}

// CreateReview validates and queues a review for moderation.
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	review := models.Review{
		Name:    strings.TrimSpace(req.Name),
		Comment: strings.TrimSpace(req.Comment),
	}
	if review.Name == "" {
		utils.RespondError(w, http.StatusBadRequest, "name is required")
		return
	}

	rating, msg := parseRating(req.Rating)
	if msg != "" {
		utils.RespondError(w, http.StatusBadRequest, msg)
		return
	}
	review.Rating = rating

	if review.Comment == "" {
		utils.RespondError(w, http.StatusBadRequest, "comment is required")
		return
	}

	if req.ChannelType != nil {
		channel := strings.ToLower(strings.TrimSpace(*req.ChannelType))
		if channel != "" {
			if !models.IsChannelType(channel) {
				utils.RespondError(w, http.StatusBadRequest, "channelType must be one of gold, forex, analysis, education")
				return
			}
			review.ChannelType = &channel
		}
	}

	if err := h.reviews.Create(r.Context(), &review); err != nil {
		log.WithError(err).WithFields(log.Fields{"operation": "create_review", "name": review.Name}).Error("failed to persist review")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to create review")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, review)
}

// parseRating accepts only a JSON integer in [minRating, maxRating].
func parseRating(raw json.RawMessage) (int, string) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return 0, "rating is required"
	}

	const invalid = "rating must be an integer between 1 and 5"
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return 0, invalid
	}
	num, ok := v.(json.Number)
	if !ok {
		return 0, invalid
	}
	n, err := strconv.ParseInt(num.String(), 10, 64)
	if err != nil || n < minRating || n > maxRating {
		return 0, invalid
	}
	return int(n), ""
}

// CreateOpinion validates and queues an opinion for moderation.
func (h *Handler) CreateOpinion(w http.ResponseWriter, r *http.Request) {
	var req OpinionRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	opinion := models.Opinion{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Opinion: strings.TrimSpace(req.Opinion),
	}

	switch {
	case opinion.Name == "":
		utils.RespondError(w, http.StatusBadRequest, "name is required")
		return
	case opinion.Email == "":
		utils.RespondError(w, http.StatusBadRequest, "email is required")
		return
	case !utils.IsValidEmail(opinion.Email):
		utils.RespondError(w, http.StatusBadRequest, "email is invalid")
		return
	case opinion.Opinion == "":
		utils.RespondError(w, http.StatusBadRequest, "opinion is required")
		return
	}

	if err := h.opinions.Create(r.Context(), &opinion); err != nil {
		log.WithError(err).WithFields(log.Fields{"operation": "create_opinion", "email": opinion.Email}).Error("failed to persist opinion")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to create opinion")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, opinion)
}

func listItems[T Item](fetch func(context.Context) ([]T, error), operation string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := fetch(r.Context())
		if err != nil {
			log.WithError(err).WithField("operation", operation).Error("failed to list items")
			utils.RespondError(w, http.StatusInternalServerError, "Failed to retrieve items")
			return
		}
		utils.RespondJSON(w, http.StatusOK, items)
	}
}

func getItem[T Item](q *Queue[T], operation string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := itemID(w, r)
		if !ok {
			return
		}

		item, err := q.Get(r.Context(), id)
		if errors.Is(err, ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "not found")
			return
		}
		if err != nil {
			log.WithError(err).WithFields(log.Fields{"operation": operation, "id": id}).Error("failed to load item")
			utils.RespondError(w, http.StatusInternalServerError, "Failed to retrieve item")
			return
		}
		utils.RespondJSON(w, http.StatusOK, item)
	}
}

func approveItem[T Item](q *Queue[T], operation string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := itemID(w, r)
		if !ok {
			return
		}

		item, err := q.Approve(r.Context(), id)
		if err != nil {
			respondQueueError(w, err, operation, id)
			return
		}
		utils.RespondJSON(w, http.StatusOK, item)
	}
}

func deleteItem[T Item](q *Queue[T], operation string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := itemID(w, r)
		if !ok {
			return
		}

		if err := q.Delete(r.Context(), id); err != nil {
			respondQueueError(w, err, operation, id)
			return
		}
		utils.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

func itemID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid ID")
		return 0, false
	}
	return uint(id), true
}

func respondQueueError(w http.ResponseWriter, err error, operation string, id uint) {
	if errors.Is(err, ErrNotFound) {
		utils.RespondError(w, http.StatusNotFound, "not found")
		return
	}
	log.WithError(err).WithFields(log.Fields{"operation": operation, "id": id}).Error("moderation action failed")
	utils.RespondError(w, http.StatusInternalServerError, "Failed to update item")
}
