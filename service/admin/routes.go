package admin

import (
	"net/http"
	"time"

	"github.com/KAsare1/Kodefx-channels/cmd/utils"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type Handler struct {
	auth   Authenticator
	secret []byte
	ttl    time.Duration
}

func NewHandler(auth Authenticator, secret []byte, ttl time.Duration) *Handler {
	return &Handler{auth: auth, secret: secret, ttl: ttl}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/admin/login", h.Login).Methods("POST")
}

// Login exchanges the admin password for a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "password is required")
		return
	}

	if !h.auth.Authenticate(req.Password) {
		log.WithFields(log.Fields{"operation": "admin_login", "remote_addr": r.RemoteAddr}).Warn("rejected admin login")
		utils.RespondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, expiresAt, err := utils.IssueAdminToken(h.secret, h.ttl)
	if err != nil {
		log.WithError(err).WithField("operation", "admin_login").Error("failed to issue admin token")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	utils.RespondJSON(w, http.StatusOK, LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	})
}
