package channels

import (
	"net/http"
	"strings"

	"github.com/KAsare1/Kodefx-channels/cmd/utils"
	"github.com/KAsare1/Kodefx-channels/pricing"
	"github.com/gorilla/mux"
)

// PriceResponse is one quote with its display string.
type PriceResponse struct {
	pricing.Quote
	Months  int    `json:"months"`
	Display string `json:"display"`
}

type ChannelResponse struct {
	Type   string          `json:"type"`
	Title  string          `json:"title"`
	Prices []PriceResponse `json:"prices"`
}

type CatalogueResponse struct {
	Currency   pricing.Currency   `json:"currency"`
	Currencies []pricing.Currency `json:"currencies"`
	Channels   []ChannelResponse  `json:"channels"`
}

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/channels", h.ListChannels).Methods("GET")
	router.HandleFunc("/channels/{channel}/price", h.GetPrice).Methods("GET")
}

// ListChannels returns the catalogue priced in ?currency= (USD by default).
func (h *Handler) ListChannels(w http.ResponseWriter, r *http.Request) {
	currency := pricing.LookupCurrency(r.URL.Query().Get("currency"))

	resp := CatalogueResponse{
		Currency:   currency,
		Currencies: pricing.Currencies(),
		Channels:   make([]ChannelResponse, 0, len(pricing.Channels())),
	}
	for _, ch := range pricing.Channels() {
		item := ChannelResponse{Type: ch.Type, Title: ch.Title}
		for _, duration := range ch.Durations() {
			quote, err := pricing.Price(ch.Type, duration, currency.Code)
			if err != nil {
				continue
			}
			item.Prices = append(item.Prices, priceResponse(quote))
		}
		resp.Channels = append(resp.Channels, item)
	}

	utils.RespondJSON(w, http.StatusOK, resp)
}

// GetPrice quotes one channel for ?duration= in ?currency=.
func (h *Handler) GetPrice(w http.ResponseWriter, r *http.Request) {
	channel := strings.ToLower(mux.Vars(r)["channel"])
	query := r.URL.Query()

	quote, err := pricing.Price(channel, strings.ToLower(query.Get("duration")), query.Get("currency"))
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "Channel not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, priceResponse(quote))
}

func priceResponse(q pricing.Quote) PriceResponse {
	return PriceResponse{Quote: q, Months: pricing.Months(q.Duration), Display: q.Display()}
}
