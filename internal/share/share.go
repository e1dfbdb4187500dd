// Package share builds shareable deal links and the rotating daily seed.
package share

import (
	"fmt"
	"hash/fnv"
	"net/url"
	"time"

	qrcode "github.com/skip2/go-qrcode"

	"patience/engine"
)

// safeSeedMask keeps derived seeds inside the range the engine accepts.
const safeSeedMask = int64(1)<<53 - 1

// Builder renders share URLs against a fixed base.
type Builder struct {
	baseURL string
}

// NewBuilder returns a Builder. baseURL should carry scheme and host, e.g.
// "https://patience.example.com".
func NewBuilder(baseURL string) *Builder {
	return &Builder{baseURL: baseURL}
}

// DealURL returns a link that re-deals the same game: seed plus variant.
func (b *Builder) DealURL(seed int64, v engine.Variant) string {
	q := url.Values{}
	q.Set("seed", fmt.Sprintf("%d", seed))
	q.Set("variant", v.String())
	return b.baseURL + "/play?" + q.Encode()
}

// StateURL returns a link that restores an exact mid-game position from its
// encoded form.
func (b *Builder) StateURL(encoded string) string {
	q := url.Values{}
	q.Set("s", encoded)
	return b.baseURL + "/play?" + q.Encode()
}

// QRCode renders a share URL as a PNG.
func QRCode(shareURL string, size int) ([]byte, error) {
	png, err := qrcode.Encode(shareURL, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("share: qr encode: %w", err)
	}
	return png, nil
}

// DailySeed derives the seed for a calendar day. Every player who asks for
// the daily deal on the same UTC date gets the same game.
func DailySeed(day time.Time) int64 {
	h := fnv.New64a()
	fmt.Fprint(h, day.UTC().Format("2006-01-02"))
	seed := int64(h.Sum64()) & safeSeedMask
	if seed == 0 {
		seed = 1
	}
	return seed
}
