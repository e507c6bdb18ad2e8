package client

import (
	"github.com/KAsare1/Kodefx-channels/pricing"
)

// PriceLine is one duration option on a channel card.
type PriceLine struct {
	Duration string `json:"duration"`
	Months   int    `json:"months"`
	Display  string `json:"display"`
}

// Card is a rendered storefront channel card.
type Card struct {
	Channel    string      `json:"channel"`
	Title      string      `json:"title"`
	Prices     []PriceLine `json:"prices"`
	Background string      `json:"background"`
	Text       string      `json:"text"`
	Accent     string      `json:"accent"`
	Border     string      `json:"border"`
}

// Storefront renders channel cards priced in one currency.
type Storefront struct {
	theme    Theme
	currency pricing.Currency
}

func NewStorefront(theme Theme, currency string) *Storefront {
	return &Storefront{theme: theme, currency: pricing.LookupCurrency(currency)}
}

func (s *Storefront) Theme() Theme {
	return s.theme
}

func (s *Storefront) Currency() pricing.Currency {
	return s.currency
}

// WithCurrency returns a storefront priced in another currency.
func (s *Storefront) WithCurrency(code string) *Storefront {
	return NewStorefront(s.theme, code)
}

// WithTheme returns a storefront rendered with another theme.
func (s *Storefront) WithTheme(theme Theme) *Storefront {
	return &Storefront{theme: theme, currency: s.currency}
}

// Cards prices every channel for each duration it is sold for.
func (s *Storefront) Cards() []Card {
	channels := pricing.Channels()
	cards := make([]Card, 0, len(channels))
	for _, ch := range channels {
		card := Card{
			Channel:    ch.Type,
			Title:      ch.Title,
			Background: s.theme.Surface,
			Text:       s.theme.Text,
			Accent:     s.theme.Primary,
			Border:     s.theme.Border,
		}
		for _, duration := range ch.Durations() {
			quote, err := pricing.Price(ch.Type, duration, s.currency.Code)
			if err != nil {
				continue
			}
			card.Prices = append(card.Prices, PriceLine{
				Duration: quote.Duration,
				Months:   pricing.Months(quote.Duration),
				Display:  quote.Display(),
			})
		}
		cards = append(cards, card)
	}
	return cards
}
