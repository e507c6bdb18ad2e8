package subscription

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/KAsare1/Kodefx-channels/cmd/models"
	"github.com/KAsare1/Kodefx-channels/cmd/utils"
	"github.com/KAsare1/Kodefx-channels/pricing"
	"github.com/KAsare1/Kodefx-channels/service/notify"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Response is a standardized list response structure
type Response struct {
	Data interface{} `json:"data"`
	Meta interface{} `json:"meta,omitempty"`
}

// SubscriptionFilter represents all possible filters for subscriptions
type SubscriptionFilter struct {
	Status      string
	ChannelType string
	Email       string
}

// Notifier hands confirmation emails off without waiting for them.
type Notifier interface {
	Dispatch(c notify.Confirmation)
}

// RegistrationRequest is the body of a channel registration.
type RegistrationRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	TelegramUsername     string `json:"telegram_username"`
	ChannelType          string `json:"channel_type"`
	SubscriptionDuration string `json:"subscription_duration"`
	IDDocumentURL        string `json:"id_document_url"`
	TermsAccepted        bool   `json:"terms_accepted"`
}

// ProgramRegistrationRequest is the body of a profit-plan program registration.
type ProgramRegistrationRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	TelegramUsername string `json:"telegram_username"`
	PlanAmount       string `json:"plan_amount"`
	IDDocumentURL    string `json:"id_document_url"`
	TermsAccepted    bool   `json:"terms_accepted"`
}

// SubscriptionHandler handles subscription-related HTTP requests
type SubscriptionHandler struct {
	db       *gorm.DB
	notifier Notifier
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(db *gorm.DB, notifier Notifier) *SubscriptionHandler {
	return &SubscriptionHandler{db: db, notifier: notifier}
}

// RegisterRoutes registers all subscription routes
func (h *SubscriptionHandler) RegisterRoutes(router *mux.Router, requireAdmin utils.Middleware) {
	router.HandleFunc("/subscriptions", h.CreateSubscription).Methods("POST")
	router.HandleFunc("/profit-plans/register", h.CreateProgramSubscription).Methods("POST")

	router.HandleFunc("/subscriptions", requireAdmin(h.GetSubscriptions)).Methods("GET")
	router.HandleFunc("/subscriptions/{id:[0-9]+}", requireAdmin(h.GetSubscription)).Methods("GET")
}

// CreateSubscription registers a channel subscription. The ID document must
// already be uploaded; only its URL is accepted here.
func (h *SubscriptionHandler) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	var req RegistrationRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	trimRegistration(&req)

	if msg := validateRegistration(req); msg != "" {
		utils.RespondError(w, http.StatusBadRequest, msg)
		return
	}

	subscription := models.Subscription{
		Name:                 req.Name,
		Email:                req.Email,
		TelegramUsername:     req.TelegramUsername,
		ChannelType:          req.ChannelType,
		SubscriptionDuration: req.SubscriptionDuration,
		IDDocumentURL:        req.IDDocumentURL,
		TermsAccepted:        true,
		Status:               models.StatusPending,
		TotalMonths:          pricing.Months(req.SubscriptionDuration),
	}

	if err := h.db.WithContext(r.Context()).Create(&subscription).Error; err != nil {
		log.WithError(err).WithFields(log.Fields{
			"operation":             "create_subscription",
			"name":                  req.Name,
			"email":                 req.Email,
			"telegram_username":     req.TelegramUsername,
			"channel_type":          req.ChannelType,
			"subscription_duration": req.SubscriptionDuration,
			"id_document_url":       req.IDDocumentURL,
		}).Error("failed to persist subscription")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to create subscription")
		return
	}

	h.notifier.Dispatch(notify.Confirmation{
		Name:                 subscription.Name,
		Email:                subscription.Email,
		Program:              notify.ProgramChannel,
		ChannelType:          subscription.ChannelType,
		SubscriptionDuration: subscription.SubscriptionDuration,
	})

	utils.RespondJSON(w, http.StatusCreated, subscription)
}

// CreateProgramSubscription registers for the profit-plan program.
func (h *SubscriptionHandler) CreateProgramSubscription(w http.ResponseWriter, r *http.Request) {
	var req ProgramRegistrationRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.PlanAmount = strings.TrimSpace(req.PlanAmount)
	base := RegistrationRequest{
		Name:                 req.Name,
		Email:                req.Email,
		TelegramUsername:     req.TelegramUsername,
		ChannelType:          models.ChannelEducation,
		SubscriptionDuration: models.DurationProgram,
		IDDocumentURL:        req.IDDocumentURL,
		TermsAccepted:        req.TermsAccepted,
	}
	trimRegistration(&base)

	if msg := validateRegistration(base); msg != "" {
		utils.RespondError(w, http.StatusBadRequest, msg)
		return
	}
	if req.PlanAmount == "" {
		utils.RespondError(w, http.StatusBadRequest, "plan_amount is required")
		return
	}

	planAmount := req.PlanAmount
	subscription := models.Subscription{
		Name:                 base.Name,
		Email:                base.Email,
		TelegramUsername:     base.TelegramUsername,
		ChannelType:          base.ChannelType,
		SubscriptionDuration: base.SubscriptionDuration,
		PlanAmount:           &planAmount,
		IDDocumentURL:        base.IDDocumentURL,
		TermsAccepted:        true,
		Status:               models.StatusPending,
		TotalMonths:          pricing.Months(base.SubscriptionDuration),
	}

	if err := h.db.WithContext(r.Context()).Create(&subscription).Error; err != nil {
		log.WithError(err).WithFields(log.Fields{
			"operation":       "create_program_subscription",
			"name":            base.Name,
			"email":           base.Email,
			"plan_amount":     planAmount,
			"id_document_url": base.IDDocumentURL,
		}).Error("failed to persist subscription")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to create subscription")
		return
	}

	h.notifier.Dispatch(notify.Confirmation{
		Name:       subscription.Name,
		Email:      subscription.Email,
		Program:    notify.ProgramProfitPlan,
		PlanAmount: planAmount,
	})

	utils.RespondJSON(w, http.StatusCreated, subscription)
}

func trimRegistration(req *RegistrationRequest) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.TelegramUsername = strings.TrimSpace(req.TelegramUsername)
	req.ChannelType = strings.ToLower(strings.TrimSpace(req.ChannelType))
	req.SubscriptionDuration = strings.ToLower(strings.TrimSpace(req.SubscriptionDuration))
	req.IDDocumentURL = strings.TrimSpace(req.IDDocumentURL)
}

// validateRegistration returns a field-specific message, or "" when valid.
func validateRegistration(req RegistrationRequest) string {
	switch {
	case req.Name == "":
		return "name is required"
	case req.Email == "":
		return "email is required"
	case !utils.IsValidEmail(req.Email):
		return "email is invalid"
	case req.TelegramUsername == "":
		return "telegram_username is required"
	case req.ChannelType == "":
		return "channel_type is required"
	case !models.IsChannelType(req.ChannelType):
		return "channel_type must be one of gold, forex, analysis, education"
	case req.SubscriptionDuration == "":
		return "subscription_duration is required"
	case !models.IsDuration(req.SubscriptionDuration):
		return "subscription_duration must be one of monthly, three_months, annual, program"
	case !soldFor(req.ChannelType, req.SubscriptionDuration):
		ch, _ := pricing.LookupChannel(req.ChannelType)
		return "subscription_duration for " + req.ChannelType + " must be one of " + strings.Join(ch.Durations(), ", ")
	case req.IDDocumentURL == "":
		return "id_document_url is required"
	case !req.TermsAccepted:
		return "terms_accepted must be true"
	}
	return ""
}

func soldFor(channelType, duration string) bool {
	ch, ok := pricing.LookupChannel(channelType)
	return ok && ch.SellsFor(duration)
}

// GetSubscriptions handles retrieving subscriptions with various filters
func (h *SubscriptionHandler) GetSubscriptions(w http.ResponseWriter, r *http.Request) {
	queryParams := r.URL.Query()

	filter := SubscriptionFilter{
		Status:      queryParams.Get("status"),
		ChannelType: queryParams.Get("channel_type"),
		Email:       queryParams.Get("email"),
	}

	query := h.db.WithContext(r.Context()).Model(&models.Subscription{})
	query = h.applySubscriptionFilters(query, filter)

	// Setup pagination
	page := 1
	if pageVal, err := strconv.Atoi(queryParams.Get("page")); err == nil && pageVal > 0 {
		page = pageVal
	}

	pageSize := 10
	if pageSizeVal, err := strconv.Atoi(queryParams.Get("page_size")); err == nil && pageSizeVal > 0 && pageSizeVal <= 100 {
		pageSize = pageSizeVal
	}

	offset := (page - 1) * pageSize

	var total int64
	if err := query.Count(&total).Error; err != nil {
		log.WithError(err).WithField("operation", "count_subscriptions").Error("failed to count subscriptions")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to retrieve subscriptions")
		return
	}

	subscriptions := []models.Subscription{}
	result := query.Order("created_at DESC, id DESC").Limit(pageSize).Offset(offset).Find(&subscriptions)
	if result.Error != nil {
		log.WithError(result.Error).WithField("operation", "list_subscriptions").Error("failed to list subscriptions")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to retrieve subscriptions")
		return
	}

	meta := map[string]interface{}{
		"total":     total,
		"page":      page,
		"page_size": pageSize,
		"pages":     (total + int64(pageSize) - 1) / int64(pageSize),
	}

	utils.RespondJSON(w, http.StatusOK, Response{
		Data: subscriptions,
		Meta: meta,
	})
}

// GetSubscription retrieves a single subscription by ID
func (h *SubscriptionHandler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid subscription ID")
		return
	}

	var subscription models.Subscription
	if err := h.db.WithContext(r.Context()).First(&subscription, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(w, http.StatusNotFound, "Subscription not found")
			return
		}
		log.WithError(err).WithFields(log.Fields{"operation": "get_subscription", "id": id}).Error("failed to load subscription")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to retrieve subscription")
		return
	}

	utils.RespondJSON(w, http.StatusOK, Response{Data: subscription})
}

// applySubscriptionFilters applies filters to a subscription query
func (h *SubscriptionHandler) applySubscriptionFilters(query *gorm.DB, filter SubscriptionFilter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if filter.ChannelType != "" {
		query = query.Where("channel_type = ?", filter.ChannelType)
	}

	if filter.Email != "" {
		query = query.Where("email = ?", filter.Email)
	}

	return query
}
