package features

import (
	"hash/fnv"
	"math/rand"
)

// Synthetic derives a plausible, deterministic Vector from a track ID.
// Useful for demos and tests where no catalog is reachable.
func Synthetic(trackID string) Vector {
	hasher := fnv.New32a()
	_, _ = hasher.Write([]byte(trackID))
	// #nosec G404 -- deterministic fixture data, not security-sensitive
	rng := rand.New(rand.NewSource(int64(hasher.Sum32())))

	between := func(min, max float64) float64 {
		return min + rng.Float64()*(max-min)
	}

	return AudioFeatures{
		Acousticness:     between(0, 1),
		Danceability:     between(0.1, 0.9),
		DurationMs:       between(120000, 360000),
		Energy:           between(0.1, 0.9),
		Instrumentalness: between(0, 1),
		Key:              float64(rng.Intn(12)),
		Liveness:         between(0, 0.8),
		Loudness:         between(-30, 0),
		Speechiness:      between(0, 0.6),
		Tempo:            between(60, 180),
		TimeSignature:    float64(3 + rng.Intn(3)),
		Valence:          between(0.1, 0.9),
	}.Vector()
}
