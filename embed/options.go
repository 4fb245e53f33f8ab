package embed

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/sonicpath/distance"
	"github.com/katalvlaran/sonicpath/features"
)

// ErrInvalidInput is the shared input sentinel of the pipeline.
var ErrInvalidInput = features.ErrInvalidInput

// ErrReducer is returned when a layout cannot be produced.
var ErrReducer = errors.New("embed: reducer failure")

// Init selects the initial layout strategy.
type Init int

const (
	// InitSpectral seeds the layout from the graph Laplacian and falls back
	// to InitRandom for large or disconnected graphs.
	InitSpectral Init = iota
	// InitRandom draws coordinates uniformly from [−10, 10].
	InitRandom
)

func (i Init) String() string {
	switch i {
	case InitSpectral:
		return "spectral"
	case InitRandom:
		return "random"
	default:
		return fmt.Sprintf("unknown(%d)", int(i))
	}
}

// ParseInit maps "spectral" (or "") and "random" onto an Init.
func ParseInit(s string) (Init, error) {
	switch s {
	case "", "spectral":
		return InitSpectral, nil
	case "random":
		return InitRandom, nil
	default:
		return 0, fmt.Errorf("%w: unknown init %q", ErrInvalidInput, s)
	}
}

// Defaults.
const (
	DefaultComponents         = 2
	DefaultNeighbors          = 15
	DefaultMinDist            = 0.1
	DefaultSpread             = 1.0
	DefaultLearningRate       = 1.0
	DefaultNegativeSampleRate = 5

	// largeDataset switches the automatic epoch count from 500 to 200.
	largeDataset = 10000
)

// Options configures the reducer.
type Options struct {
	// Components is the output dimensionality.
	Components int
	// Neighbors is the kNN size; it is clamped to N−1.
	Neighbors int
	// MinDist is the minimum distance between embedded points.
	MinDist float64
	// Spread is the effective scale of the embedded points.
	Spread float64
	// Epochs is the number of SGD epochs (0 ⇒ 500, or 200 above 10000 points).
	Epochs int
	// LearningRate is the initial SGD step size, decayed linearly to 0.
	LearningRate float64
	// NegativeSampleRate is the number of repulsive samples per positive one.
	NegativeSampleRate int
	// Metric is the input-space distance.
	Metric distance.Metric
	// Init is the initial layout strategy.
	Init Init
	// Seed drives every random draw (0 ⇒ fixed default seed).
	Seed int64
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		Components:         DefaultComponents,
		Neighbors:          DefaultNeighbors,
		MinDist:            DefaultMinDist,
		Spread:             DefaultSpread,
		LearningRate:       DefaultLearningRate,
		NegativeSampleRate: DefaultNegativeSampleRate,
		Metric:             distance.MetricEuclidean,
		Init:               InitSpectral,
	}
}

// Axis-sort defaults: a tighter neighbourhood and looser packing, compared
// under correlation distance.
const (
	AxisNeighbors = 5
	AxisMinDist   = 0.3
)

// AxisOptions returns DefaultOptions tuned for ordering tracks along the
// first embedding coordinate.
func AxisOptions() Options {
	o := DefaultOptions()
	o.Neighbors = AxisNeighbors
	o.MinDist = AxisMinDist
	o.Metric = distance.MetricCorrelation
	return o
}

// Validate reports every out-of-range option at once.
func (o Options) Validate() error {
	var errs []error
	if o.Components < 1 {
		errs = append(errs, fmt.Errorf("components must be ≥ 1, got %d", o.Components))
	}
	if o.Neighbors < 2 {
		errs = append(errs, fmt.Errorf("neighbors must be ≥ 2, got %d", o.Neighbors))
	}
	if o.Spread <= 0 {
		errs = append(errs, fmt.Errorf("spread must be > 0, got %v", o.Spread))
	}
	if o.MinDist < 0 || o.MinDist > o.Spread {
		errs = append(errs, fmt.Errorf("min dist must be in [0, spread], got %v", o.MinDist))
	}
	if o.Epochs < 0 {
		errs = append(errs, fmt.Errorf("epochs must be ≥ 0, got %d", o.Epochs))
	}
	if o.LearningRate <= 0 {
		errs = append(errs, fmt.Errorf("learning rate must be > 0, got %v", o.LearningRate))
	}
	if o.NegativeSampleRate < 0 {
		errs = append(errs, fmt.Errorf("negative sample rate must be ≥ 0, got %d", o.NegativeSampleRate))
	}
	if o.Init != InitSpectral && o.Init != InitRandom {
		errs = append(errs, fmt.Errorf("unknown init %v", o.Init))
	}
	if _, err := distance.Provider(o.Metric); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrInvalidInput, errors.Join(errs...))
}

// epochs resolves the automatic epoch count for n points.
func (o Options) epochs(n int) int {
	if o.Epochs > 0 {
		return o.Epochs
	}
	if n <= largeDataset {
		return 500
	}

	return 200
}
