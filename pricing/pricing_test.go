package pricing

import (
	"math"
	"strconv"
	"testing"

	"github.com/KAsare1/Kodefx-channels/cmd/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice_GoldMonthlyAED(t *testing.T) {
	q, err := Price(models.ChannelGold, models.DurationMonthly, "AED")
	require.NoError(t, err)

	assert.Equal(t, int64(115), q.BaseUSD)
	assert.Equal(t, int64(422), q.Amount)
	assert.Equal(t, "د.إ422", q.Display())
}

func TestPrice_AllPairsMatchRoundedRate(t *testing.T) {
	for _, ch := range Channels() {
		for _, d := range ch.Durations() {
			for _, cur := range Currencies() {
				q, err := Price(ch.Type, d, cur.Code)
				require.NoError(t, err)

				want := int64(math.Round(float64(ch.basePrice(d)) * cur.Rate()))
				assert.Equal(t, want, q.Amount, "%s/%s/%s", ch.Type, d, cur.Code)
				assert.Equal(t, cur.Symbol+strconv.FormatInt(want, 10), q.Display())
			}
		}
	}
}

func TestPrice_Examples(t *testing.T) {
	tests := []struct {
		name     string
		channel  string
		duration string
		currency string
		want     string
	}{
		{"gold annual usd", models.ChannelGold, models.DurationAnnual, "USD", "$1100"},
		{"gold three months eur", models.ChannelGold, models.DurationThreeMonths, "EUR", "€276"},
		{"forex three months gbp rounds half up", models.ChannelForex, models.DurationThreeMonths, "GBP", "£198"},
		{"forex three months aed rounds half up", models.ChannelForex, models.DurationThreeMonths, "AED", "د.إ918"},
		{"analysis monthly sar", models.ChannelAnalysis, models.DurationMonthly, "SAR", "ر.س281"},
		{"lowercase currency code", models.ChannelGold, models.DurationMonthly, "gbp", "£91"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := Price(tt.channel, tt.duration, tt.currency)
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Display())
		})
	}
}

func TestPrice_Fallbacks(t *testing.T) {
	t.Run("unknown duration uses monthly", func(t *testing.T) {
		q, err := Price(models.ChannelGold, "weekly", "USD")
		require.NoError(t, err)
		assert.Equal(t, models.DurationMonthly, q.Duration)
		assert.Equal(t, "$115", q.Display())
	})

	t.Run("missing duration uses monthly", func(t *testing.T) {
		q, err := Price(models.ChannelForex, "", "")
		require.NoError(t, err)
		assert.Equal(t, "$95", q.Display())
	})

	t.Run("unknown currency uses USD", func(t *testing.T) {
		q, err := Price(models.ChannelGold, models.DurationMonthly, "JPY")
		require.NoError(t, err)
		assert.Equal(t, "USD", q.Currency)
		assert.Equal(t, "$115", q.Display())
	})

	t.Run("flat fee channel ignores duration", func(t *testing.T) {
		q, err := Price(models.ChannelEducation, models.DurationAnnual, "EUR")
		require.NoError(t, err)
		assert.Equal(t, models.DurationProgram, q.Duration)
		assert.Equal(t, "€460", q.Display())
	})

	t.Run("unknown channel", func(t *testing.T) {
		_, err := Price("crypto", models.DurationMonthly, "USD")
		assert.Error(t, err)
	})
}

func TestMonths(t *testing.T) {
	assert.Equal(t, 1, Months(models.DurationMonthly))
	assert.Equal(t, 3, Months(models.DurationThreeMonths))
	assert.Equal(t, 12, Months(models.DurationAnnual))
	assert.Equal(t, 1, Months(models.DurationProgram))
	assert.Equal(t, 1, Months(""))
}

func TestChannelSellsFor(t *testing.T) {
	gold, ok := LookupChannel(models.ChannelGold)
	require.True(t, ok)
	assert.True(t, gold.SellsFor(models.DurationAnnual))
	assert.False(t, gold.SellsFor(models.DurationProgram))

	education, ok := LookupChannel(models.ChannelEducation)
	require.True(t, ok)
	assert.True(t, education.SellsFor(models.DurationProgram))
	assert.False(t, education.SellsFor(models.DurationAnnual))
}

func TestCatalogueIsNotShared(t *testing.T) {
	gold, ok := LookupChannel(models.ChannelGold)
	require.True(t, ok)
	gold.Prices[models.DurationMonthly] = 1

	cards := Channels()
	cards[0].Prices[models.DurationThreeMonths] = 1

	q, err := Price(models.ChannelGold, models.DurationMonthly, "USD")
	require.NoError(t, err)
	assert.Equal(t, int64(115), q.Amount)

	q, err = Price(models.ChannelGold, models.DurationThreeMonths, "USD")
	require.NoError(t, err)
	assert.Equal(t, int64(300), q.Amount)
}
