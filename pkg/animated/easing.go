package animated

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tanema/gween/ease"
)

// ErrUnknownEasing is returned by Easing for names outside the catalogue.
var ErrUnknownEasing = errors.New("unknown easing")

// DefaultEasing is applied when a Progress is built without WithEasing.
const DefaultEasing = "outSine"

var easings = map[string]ease.TweenFunc{
	"linear":       ease.Linear,
	"inQuad":       ease.InQuad,
	"outQuad":      ease.OutQuad,
	"inOutQuad":    ease.InOutQuad,
	"inCubic":      ease.InCubic,
	"outCubic":     ease.OutCubic,
	"inOutCubic":   ease.InOutCubic,
	"inQuart":      ease.InQuart,
	"outQuart":     ease.OutQuart,
	"inOutQuart":   ease.InOutQuart,
	"inQuint":      ease.InQuint,
	"outQuint":     ease.OutQuint,
	"inOutQuint":   ease.InOutQuint,
	"inSine":       ease.InSine,
	"outSine":      ease.OutSine,
	"inOutSine":    ease.InOutSine,
	"inExpo":       ease.InExpo,
	"outExpo":      ease.OutExpo,
	"inOutExpo":    ease.InOutExpo,
	"inCirc":       ease.InCirc,
	"outCirc":      ease.OutCirc,
	"inOutCirc":    ease.InOutCirc,
	"inElastic":    ease.InElastic,
	"outElastic":   ease.OutElastic,
	"inOutElastic": ease.InOutElastic,
	"inBack":       ease.InBack,
	"outBack":      ease.OutBack,
	"inOutBack":    ease.InOutBack,
	"inBounce":     ease.InBounce,
	"outBounce":    ease.OutBounce,
	"inOutBounce":  ease.InOutBounce,
}

// Easing returns the easing function registered under name.
func Easing(name string) (ease.TweenFunc, error) {
	fn, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
	}
	return fn, nil
}

// EasingNames lists the available easing names, sorted.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Normalize adapts a gween easing to a function of progress in [0, 1].
func Normalize(fn ease.TweenFunc) func(progress float64) float64 {
	return func(p float64) float64 {
		return float64(fn(float32(p), 0, 1, 1))
	}
}

// EaseAmong returns an easing that walks linearly through the breakpoints,
// spending an equal share of the progress between each consecutive pair.
// A single breakpoint scales the progress; no breakpoints returns it unchanged.
func EaseAmong(breakpoints ...float64) func(progress float64) float64 {
	return func(p float64) float64 {
		switch len(breakpoints) {
		case 0:
			return p
		case 1:
			return p * breakpoints[0]
		}
		if p <= 0 {
			return breakpoints[0]
		}
		last := len(breakpoints) - 1
		if p >= 1 {
			return breakpoints[last]
		}

		scaled := p * float64(last)
		i := int(scaled)
		frac := scaled - float64(i)
		from, to := breakpoints[i], breakpoints[i+1]
		return from + (to-from)*frac
	}
}
