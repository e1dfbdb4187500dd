package share

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patience/engine"
)

func TestDealURL(t *testing.T) {
	b := NewBuilder("https://patience.example.com")
	raw := b.DealURL(12345, engine.VariantKlondike)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/play", u.Path)
	assert.Equal(t, "12345", u.Query().Get("seed"))
	assert.Equal(t, "klondike", u.Query().Get("variant"))
}

func TestStateURLEscapesEncoded(t *testing.T) {
	b := NewBuilder("https://patience.example.com")
	raw := b.StateURL("AQAA-_12")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "AQAA-_12", u.Query().Get("s"))
}

func TestDailySeedStableWithinDay(t *testing.T) {
	morning := time.Date(2025, 6, 1, 3, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 6, 1, 22, 30, 0, 0, time.UTC)
	nextDay := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, DailySeed(morning), DailySeed(evening))
	assert.NotEqual(t, DailySeed(morning), DailySeed(nextDay))
}

func TestDailySeedIsPlayable(t *testing.T) {
	day := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	seed := DailySeed(day)
	_, err := engine.NewGame(seed, engine.VariantFreeCell)
	require.NoError(t, err)
}

func TestQRCode(t *testing.T) {
	png, err := QRCode("https://patience.example.com/play?seed=1", 256)
	require.NoError(t, err)
	// PNG magic prefix.
	require.Greater(t, len(png), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
