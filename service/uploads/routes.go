package uploads

import (
	"net/http"
	"path/filepath"

	"github.com/KAsare1/Kodefx-channels/cmd/utils"
	"github.com/KAsare1/Kodefx-channels/storage"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// UploadResponse is returned for a stored document.
type UploadResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

type Handler struct {
	store storage.Store
}

func NewHandler(store storage.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/uploads/id-document", h.UploadIDDocument).Methods("POST")
}

// UploadIDDocument stores an identity document sent in the "file" field.
func (h *Handler) UploadIDDocument(w http.ResponseWriter, r *http.Request) {
	file, header, err := utils.ParseUpload(w, r, "file")
	if err != nil {
		utils.RespondError(w, utils.UploadErrorStatus(err), err.Error())
		return
	}
	defer file.Close()

	contentType, ok := utils.ContentTypeFor(header.Filename)
	if !ok {
		utils.RespondError(w, http.StatusUnsupportedMediaType, utils.ErrUnsupportedType.Error())
		return
	}

	key := storage.NewKey(storage.PrefixIDDocuments, header.Filename)
	url, err := h.store.Put(r.Context(), key, contentType, file, header.Size)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"operation": "upload_id_document",
			"file_name": header.Filename,
			"size":      header.Size,
		}).Error("failed to store id document")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, UploadResponse{
		URL:      url,
		FileName: filepath.Base(header.Filename),
	})
}
