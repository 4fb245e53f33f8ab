package playlist

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/sonicpath/embed"
)

// Strategy selects how an order is derived from the embedding.
type Strategy int

const (
	// StrategyRoute solves a short open path over the embedded points.
	StrategyRoute Strategy = iota
	// StrategyAxis sorts tracks by their first embedding coordinate.
	StrategyAxis
)

func (s Strategy) String() string {
	switch s {
	case StrategyRoute:
		return "route"
	case StrategyAxis:
		return "axis"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// EmbedOptions returns the reducer settings s uses when none are configured:
// embed.AxisOptions for StrategyAxis, embed.DefaultOptions otherwise.
func (s Strategy) EmbedOptions() embed.Options {
	if s == StrategyAxis {
		return embed.AxisOptions()
	}
	return embed.DefaultOptions()
}

// ParseStrategy maps "route" (or "") and "axis" onto a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "route":
		return StrategyRoute, nil
	case "axis":
		return StrategyAxis, nil
	default:
		return 0, fmt.Errorf("%w: unknown strategy %q", ErrInvalidInput, s)
	}
}
