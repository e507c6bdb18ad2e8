package profitplan

import (
	"bytes"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/KAsare1/Kodefx-channels/cmd/models"
	"github.com/KAsare1/Kodefx-channels/cmd/utils"
	"github.com/KAsare1/Kodefx-channels/storage"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DocumentIDHeader carries the ID of a generated document.
const DocumentIDHeader = "X-Document-ID"

type Handler struct {
	db    *gorm.DB
	store storage.Store
	now   func() time.Time
}

func NewHandler(db *gorm.DB, store storage.Store) *Handler {
	return &Handler{db: db, store: store, now: time.Now}
}

func (h *Handler) RegisterRoutes(router *mux.Router, requireAdmin utils.Middleware) {
	router.HandleFunc("/profit-plans/download-file", h.DownloadFile).Methods("GET")

	router.HandleFunc("/profit-plans/upload", requireAdmin(h.UploadFile)).Methods("POST")
	router.HandleFunc("/profit-plans", requireAdmin(h.ListFiles)).Methods("GET")
	router.HandleFunc("/profit-plans/{id:[0-9]+}", requireAdmin(h.DeleteFile)).Methods("DELETE")
}

// UploadFile stores a plan document for a plan amount.
func (h *Handler) UploadFile(w http.ResponseWriter, r *http.Request) {
	file, header, err := utils.ParseUpload(w, r, "file")
	if err != nil {
		utils.RespondError(w, utils.UploadErrorStatus(err), err.Error())
		return
	}
	defer file.Close()

	planAmount := strings.TrimSpace(r.FormValue("plan_amount"))
	if planAmount == "" {
		utils.RespondError(w, http.StatusBadRequest, "plan_amount is required")
		return
	}

	contentType, ok := utils.ContentTypeFor(header.Filename)
	if !ok {
		utils.RespondError(w, http.StatusUnsupportedMediaType, utils.ErrUnsupportedType.Error())
		return
	}

	logger := log.WithFields(log.Fields{
		"operation":   "upload_profit_plan",
		"plan_amount": planAmount,
		"file_name":   header.Filename,
	})

	url, err := h.store.Put(r.Context(), storage.NewKey(storage.PrefixProfitPlans, header.Filename), contentType, file, header.Size)
	if err != nil {
		logger.WithError(err).Error("failed to store profit plan file")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	record := models.ProfitPlanFile{
		PlanAmount:  planAmount,
		FileURL:     url,
		FileName:    filepath.Base(header.Filename),
		Description: strings.TrimSpace(r.FormValue("description")),
	}
	if err := h.db.WithContext(r.Context()).Create(&record).Error; err != nil {
		logger.WithError(err).Error("failed to persist profit plan file")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to save profit plan file")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, record)
}

// ListFiles returns every uploaded plan document, newest first.
func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	files := []models.ProfitPlanFile{}
	if err := h.db.WithContext(r.Context()).Order("created_at DESC, id DESC").Find(&files).Error; err != nil {
		log.WithError(err).WithField("operation", "list_profit_plans").Error("failed to list profit plan files")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to retrieve profit plan files")
		return
	}
	utils.RespondJSON(w, http.StatusOK, files)
}

// DeleteFile removes the record. The stored object is left in place.
func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid profit plan file ID")
		return
	}

	result := h.db.WithContext(r.Context()).Delete(&models.ProfitPlanFile{}, id)
	if result.Error != nil {
		log.WithError(result.Error).WithFields(log.Fields{"operation": "delete_profit_plan", "id": id}).Error("failed to delete profit plan file")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to delete profit plan file")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(w, http.StatusNotFound, "Profit plan file not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// DownloadFile redirects to the document uploaded for plan_amount, or
// generates a fresh plan document when no plan_amount is given.
func (h *Handler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	planAmount := strings.TrimSpace(r.URL.Query().Get("plan_amount"))
	if planAmount == "" {
		h.generate(w, r)
		return
	}

	var file models.ProfitPlanFile
	err := h.db.WithContext(r.Context()).
		Where("plan_amount = ?", planAmount).
		Order("id ASC").
		First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(w, http.StatusNotFound, "no file found for this plan amount")
			return
		}
		log.WithError(err).WithFields(log.Fields{"operation": "download_profit_plan", "plan_amount": planAmount}).Error("failed to look up profit plan file")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to retrieve profit plan file")
		return
	}

	http.Redirect(w, r, file.FileURL, http.StatusFound)
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	doc, err := NewDocument(h.now())
	if err != nil {
		log.WithError(err).WithField("operation", "generate_profit_plan").Error("failed to create document")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to generate document")
		return
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		log.WithError(err).WithFields(log.Fields{"operation": "generate_profit_plan", "document_id": doc.ID}).Error("failed to render document")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to generate document")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.FileName()+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set(DocumentIDHeader, doc.ID)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.WithError(err).WithField("document_id", doc.ID).Warn("failed to stream document")
	}
}
