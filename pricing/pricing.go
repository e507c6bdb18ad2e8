// Package pricing computes the storefront price of a channel subscription
// in the currency the visitor selected.
package pricing

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/KAsare1/Kodefx-channels/cmd/models"
)

type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	// rateBP is the USD conversion rate in basis points (1 USD = rateBP/10000).
	rateBP int64
}

// Rate returns the conversion rate from USD.
func (c Currency) Rate() float64 {
	return float64(c.rateBP) / 10000
}

const DefaultCurrency = "USD"

var currencies = map[string]Currency{
	"USD": {Code: "USD", Symbol: "$", rateBP: 10000},
	"EUR": {Code: "EUR", Symbol: "€", rateBP: 9200},
	"GBP": {Code: "GBP", Symbol: "£", rateBP: 7900},
	"AED": {Code: "AED", Symbol: "د.إ", rateBP: 36700},
	"SAR": {Code: "SAR", Symbol: "ر.س", rateBP: 37500},
}

var currencyOrder = []string{"USD", "EUR", "GBP", "AED", "SAR"}

// Channel describes a storefront product and its USD base prices.
type Channel struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	// Prices is keyed by duration. A channel with a single flat fee
	// leaves it empty and sets FlatPrice.
	Prices    map[string]int64 `json:"prices,omitempty"`
	FlatPrice int64            `json:"flat_price,omitempty"`
}

func (c Channel) basePrice(duration string) int64 {
	if len(c.Prices) == 0 {
		return c.FlatPrice
	}
	if p, ok := c.Prices[duration]; ok {
		return p
	}
	return c.Prices[models.DurationMonthly]
}

// Durations returns the durations the channel is sold for.
func (c Channel) Durations() []string {
	if len(c.Prices) == 0 {
		return []string{models.DurationProgram}
	}
	return []string{models.DurationMonthly, models.DurationThreeMonths, models.DurationAnnual}
}

// SellsFor reports whether the channel is sold for duration.
func (c Channel) SellsFor(duration string) bool {
	if len(c.Prices) == 0 {
		return duration == models.DurationProgram
	}
	_, ok := c.Prices[duration]
	return ok
}

func (c Channel) clone() Channel {
	c.Prices = maps.Clone(c.Prices)
	return c
}

var channels = map[string]Channel{
	models.ChannelGold: {
		Type:  models.ChannelGold,
		Title: "Gold Channel",
		Prices: map[string]int64{
			models.DurationMonthly:     115,
			models.DurationThreeMonths: 300,
			models.DurationAnnual:      1100,
		},
	},
	models.ChannelForex: {
		Type:  models.ChannelForex,
		Title: "Forex Channel",
		Prices: map[string]int64{
			models.DurationMonthly:     95,
			models.DurationThreeMonths: 250,
			models.DurationAnnual:      900,
		},
	},
	models.ChannelAnalysis: {
		Type:  models.ChannelAnalysis,
		Title: "Analysis Channel",
		Prices: map[string]int64{
			models.DurationMonthly:     75,
			models.DurationThreeMonths: 200,
			models.DurationAnnual:      700,
		},
	},
	models.ChannelEducation: {
		Type:      models.ChannelEducation,
		Title:     "Education Program",
		FlatPrice: 500,
	},
}

var channelOrder = []string{models.ChannelGold, models.ChannelForex, models.ChannelAnalysis, models.ChannelEducation}

// Quote is a computed price ready for display.
type Quote struct {
	Channel  string `json:"channel"`
	Duration string `json:"duration"`
	Currency string `json:"currency"`
	Symbol   string `json:"symbol"`
	BaseUSD  int64  `json:"base_usd"`
	Amount   int64  `json:"amount"`
}

// Display formats the quote as symbol followed by the rounded amount.
func (q Quote) Display() string {
	return q.Symbol + strconv.FormatInt(q.Amount, 10)
}

// LookupCurrency resolves a currency code, falling back to USD.
func LookupCurrency(code string) Currency {
	if c, ok := currencies[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return c
	}
	return currencies[DefaultCurrency]
}

// Currencies returns the supported currencies in display order.
func Currencies() []Currency {
	out := make([]Currency, 0, len(currencyOrder))
	for _, code := range currencyOrder {
		out = append(out, currencies[code])
	}
	return out
}

// LookupChannel returns a copy of the channel with the given type.
func LookupChannel(channelType string) (Channel, bool) {
	c, ok := channels[channelType]
	if !ok {
		return Channel{}, false
	}
	return c.clone(), true
}

// Channels returns the storefront catalogue in display order.
func Channels() []Channel {
	out := make([]Channel, 0, len(channelOrder))
	for _, t := range channelOrder {
		out = append(out, channels[t].clone())
	}
	return out
}

// Price quotes channelType for duration in currency. Unknown durations use
// the monthly price (or the flat fee) and unknown currencies use USD.
func Price(channelType, duration, currency string) (Quote, error) {
	ch, ok := channels[channelType]
	if !ok {
		return Quote{}, fmt.Errorf("unknown channel %q", channelType)
	}
	cur := LookupCurrency(currency)

	resolved := duration
	if len(ch.Prices) == 0 {
		resolved = models.DurationProgram
	} else if _, ok := ch.Prices[duration]; !ok {
		resolved = models.DurationMonthly
	}

	base := ch.basePrice(resolved)
	return Quote{
		Channel:  ch.Type,
		Duration: resolved,
		Currency: cur.Code,
		Symbol:   cur.Symbol,
		BaseUSD:  base,
		Amount:   convert(base, cur),
	}, nil
}

// convert applies the rate with round-half-up on integer basis points.
func convert(base int64, cur Currency) int64 {
	return (base*cur.rateBP + 5000) / 10000
}

// Months returns how many months a duration covers.
func Months(duration string) int {
	switch duration {
	case models.DurationThreeMonths:
		return 3
	case models.DurationAnnual:
		return 12
	default:
		return 1
	}
}
