package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorefrontCards(t *testing.T) {
	s := NewStorefront(DarkTheme(), "aed")
	cards := s.Cards()
	require.Len(t, cards, 4)

	gold := cards[0]
	assert.Equal(t, "gold", gold.Channel)
	assert.Equal(t, DarkTheme().Surface, gold.Background)
	assert.Equal(t, DarkTheme().Primary, gold.Accent)
	require.Len(t, gold.Prices, 3)
	assert.Equal(t, "د.إ422", gold.Prices[0].Display)
	assert.Equal(t, 3, gold.Prices[1].Months)

	education := cards[3]
	require.Len(t, education.Prices, 1)
	assert.Equal(t, "program", education.Prices[0].Duration)
}

func TestStorefrontIsImmutable(t *testing.T) {
	s := NewStorefront(LightTheme(), "USD")
	eur := s.WithCurrency("EUR")
	dark := s.WithTheme(s.Theme().Toggled())

	assert.Equal(t, "USD", s.Currency().Code)
	assert.Equal(t, "EUR", eur.Currency().Code)
	assert.Equal(t, ThemeLight, s.Theme().Name)
	assert.Equal(t, ThemeDark, dark.Theme().Name)
	assert.Equal(t, "$115", s.Cards()[0].Prices[0].Display)
	assert.Equal(t, "€106", eur.Cards()[0].Prices[0].Display)
}

func TestThemes(t *testing.T) {
	assert.Equal(t, ThemeDark, LightTheme().Toggled().Name)
	assert.Equal(t, ThemeLight, DarkTheme().Toggled().Name)
	assert.Equal(t, LightTheme(), ThemeByName("unknown"))
	assert.Equal(t, DarkTheme(), ThemeByName(ThemeDark))

	theme := LightTheme()
	theme.Primary = "#000000"
	assert.NotEqual(t, theme.Primary, LightTheme().Primary)
}
