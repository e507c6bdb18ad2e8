package broker

import (
	"net/http"
	"strings"

	"github.com/KAsare1/Kodefx-channels/cmd/models"
	"github.com/KAsare1/Kodefx-channels/cmd/utils"
	"github.com/KAsare1/Kodefx-channels/db"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const exportFileName = "broker-subscribers.csv"

type CreateRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	AccountNumber string `json:"accountNumber"`
	BrokerName    string `json:"brokerName"`
}

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) RegisterRoutes(router *mux.Router, requireAdmin utils.Middleware) {
	router.HandleFunc("/broker-subscribers", h.CreateSubscriber).Methods("POST")

	router.HandleFunc("/broker-subscribers", requireAdmin(h.ListSubscribers)).Methods("GET")
	router.HandleFunc("/broker-subscribers/export", requireAdmin(h.ExportSubscribers)).Methods("GET")
}

func (h *Handler) CreateSubscriber(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	subscriber := models.BrokerSubscriber{
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.TrimSpace(req.Email),
		AccountNumber: strings.TrimSpace(req.AccountNumber),
		BrokerName:    strings.TrimSpace(req.BrokerName),
	}

	switch {
	case subscriber.Name == "":
		utils.RespondError(w, http.StatusBadRequest, "name is required")
		return
	case subscriber.Email == "":
		utils.RespondError(w, http.StatusBadRequest, "email is required")
		return
	case !utils.IsValidEmail(subscriber.Email):
		utils.RespondError(w, http.StatusBadRequest, "email is invalid")
		return
	case subscriber.AccountNumber == "":
		utils.RespondError(w, http.StatusBadRequest, "accountNumber is required")
		return
	case subscriber.BrokerName == "":
		utils.RespondError(w, http.StatusBadRequest, "brokerName is required")
		return
	}

	if err := h.db.WithContext(r.Context()).Create(&subscriber).Error; err != nil {
		log.WithError(err).WithFields(log.Fields{
			"operation":   "create_broker_subscriber",
			"email":       subscriber.Email,
			"broker_name": subscriber.BrokerName,
		}).Error("failed to persist broker subscriber")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to create broker subscriber")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, subscriber)
}

func (h *Handler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	subscribers, err := h.find(r)
	if err != nil {
		log.WithError(err).WithField("operation", "list_broker_subscribers").Error("failed to list broker subscribers")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to retrieve broker subscribers")
		return
	}
	utils.RespondJSON(w, http.StatusOK, subscribers)
}

func (h *Handler) ExportSubscribers(w http.ResponseWriter, r *http.Request) {
	subscribers, err := h.find(r)
	if err != nil {
		log.WithError(err).WithField("operation", "export_broker_subscribers").Error("failed to export broker subscribers")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to export broker subscribers")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFileName+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(EncodeCSV(subscribers)))
}

// find applies the optional ?broker= case-insensitive partial match.
func (h *Handler) find(r *http.Request) ([]models.BrokerSubscriber, error) {
	query := h.db.WithContext(r.Context()).Model(&models.BrokerSubscriber{})
	if broker := strings.TrimSpace(r.URL.Query().Get("broker")); broker != "" {
		query = query.Where(db.CaseInsensitiveLikeExpr(h.db, "broker_name"), db.ContainsPattern(h.db, broker))
	}

	subscribers := []models.BrokerSubscriber{}
	err := query.Order("created_at DESC, id DESC").Find(&subscribers).Error
	return subscribers, err
}
