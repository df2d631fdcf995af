// Package tracking mints the short numeric codes patients use to look up
// their booking without authenticating.
package tracking

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
)

// Code spaces. Codes are sampled uniformly from the primary 4-digit space;
// when that space is too contended the generator widens to 5 digits instead
// of spinning forever.
const (
	primaryMin = 1000
	primaryMax = 9999

	widenedMin = 10000
	widenedMax = 99999

	maxAttemptsPerSpace = 30
)

// ErrSpaceExhausted is returned when no free code was found in either space.
// With ~9000 primary and ~90000 widened codes this only happens when the
// collection has grown far beyond what the short-code scheme was sized for.
var ErrSpaceExhausted = errors.New("tracking code space exhausted")

// ExistsFunc reports whether a candidate code is already assigned to a booking.
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// Generator produces booking tracking codes that are unique at the moment of
// assignment. The caller persists the code together with the booking under a
// unique constraint; on a write conflict it simply generates again.
type Generator struct {
	exists ExistsFunc
}

func NewGenerator(exists ExistsFunc) *Generator {
	return &Generator{exists: exists}
}

// Generate returns a free code, resampling on collision. Attempts per space
// are bounded to avoid livelock as the space saturates.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	code, err := g.sampleSpace(ctx, primaryMin, primaryMax)
	if err == nil || !errors.Is(err, ErrSpaceExhausted) {
		return code, err
	}

	return g.sampleSpace(ctx, widenedMin, widenedMax)
}

func (g *Generator) sampleSpace(ctx context.Context, min, max int64) (string, error) {
	span := big.NewInt(max - min + 1)

	for attempt := 0; attempt < maxAttemptsPerSpace; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		n, err := rand.Int(rand.Reader, span)
		if err != nil {
			return "", fmt.Errorf("failed to sample tracking code: %w", err)
		}
		code := fmt.Sprintf("%d", n.Int64()+min)

		taken, err := g.exists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check tracking code: %w", err)
		}
		if !taken {
			return code, nil
		}
	}

	return "", ErrSpaceExhausted
}
