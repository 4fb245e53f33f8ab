package features

// Dim is the fixed dimensionality of a feature Vector.
const Dim = 12

// Names lists the Vector dimensions in order.
var Names = [Dim]string{
	"acousticness",
	"danceability",
	"duration_ms",
	"energy",
	"instrumentalness",
	"key",
	"liveness",
	"loudness",
	"speechiness",
	"tempo",
	"time_signature",
	"valence",
}

// Vector is the ordered 12-dimension audio-feature vector of one track.
type Vector [Dim]float64

// Slice returns a fresh []float64 copy of v.
func (v Vector) Slice() []float64 {
	out := make([]float64, Dim)
	copy(out, v[:])
	return out
}

// Track is the catalog record of one track. The pipeline only moves Tracks
// around; it never reads or alters their fields.
type Track struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Artists    []string `json:"artists,omitempty"`
	Album      string   `json:"album,omitempty"`
	DurationMs int      `json:"duration_ms,omitempty"`
}

// AudioFeatures is the named-field shape of the catalog's audio-features
// resource.
type AudioFeatures struct {
	ID               string  `json:"id,omitempty"`
	Acousticness     float64 `json:"acousticness"`
	Danceability     float64 `json:"danceability"`
	DurationMs       float64 `json:"duration_ms"`
	Energy           float64 `json:"energy"`
	Instrumentalness float64 `json:"instrumentalness"`
	Key              float64 `json:"key"`
	Liveness         float64 `json:"liveness"`
	Loudness         float64 `json:"loudness"`
	Speechiness      float64 `json:"speechiness"`
	Tempo            float64 `json:"tempo"`
	TimeSignature    float64 `json:"time_signature"`
	Valence          float64 `json:"valence"`
}

// Vector converts f into the canonical dimension order.
func (f AudioFeatures) Vector() Vector {
	return Vector{
		f.Acousticness,
		f.Danceability,
		f.DurationMs,
		f.Energy,
		f.Instrumentalness,
		f.Key,
		f.Liveness,
		f.Loudness,
		f.Speechiness,
		f.Tempo,
		f.TimeSignature,
		f.Valence,
	}
}

// FromVector is the inverse of AudioFeatures.Vector.
func FromVector(id string, v Vector) AudioFeatures {
	return AudioFeatures{
		ID:               id,
		Acousticness:     v[0],
		Danceability:     v[1],
		DurationMs:       v[2],
		Energy:           v[3],
		Instrumentalness: v[4],
		Key:              v[5],
		Liveness:         v[6],
		Loudness:         v[7],
		Speechiness:      v[8],
		Tempo:            v[9],
		TimeSignature:    v[10],
		Valence:          v[11],
	}
}
