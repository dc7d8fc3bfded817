package state

import (
	"fmt"
	"strconv"
	"strings"
)

// Cost is a non-negative link or path cost.
type Cost uint32

const (
	// Infinite marks an unreachable destination.
	Infinite = ^(Cost)(0)
	// MaxFinite is the largest cost that is still considered reachable.
	MaxFinite = Infinite - 1
)

// AddCost combines two path costs. Infinite absorbs everything, and finite
// sums saturate at MaxFinite instead of wrapping.
func AddCost(a, b Cost) Cost {
	if a == Infinite || b == Infinite {
		return Infinite
	}
	return Cost(min(uint64(MaxFinite), uint64(a)+uint64(b)))
}

// MinCost treats Infinite as larger than any finite cost.
func MinCost(a, b Cost) Cost {
	if a < b {
		return a
	}
	return b
}

func (c Cost) String() string {
	if c == Infinite {
		return "INF"
	}
	return strconv.FormatUint(uint64(c), 10)
}

// ParseCost maps the textual scenario encoding to a Cost: "-1" means no link.
func ParseCost(tok string) (Cost, error) {
	if tok == "-1" {
		return Infinite, nil
	}
	v, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 || v > int64(MaxFinite) {
		return 0, fmt.Errorf("cost out of range: %d", v)
	}
	return Cost(v), nil
}

func (c Cost) MarshalYAML() ([]byte, error) {
	if c == Infinite {
		return []byte("-1"), nil
	}
	return []byte(strconv.FormatUint(uint64(c), 10)), nil
}

func (c *Cost) UnmarshalYAML(b []byte) error {
	parsed, err := ParseCost(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
