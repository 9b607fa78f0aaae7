package core

import (
	"fmt"
	"strings"
)

// Verbosity selects how much each collector reports. The three levels map
// one-to-one onto the light/balanced/deep run levels.
type Verbosity int

const (
	Basic Verbosity = iota + 1
	Detailed
	Full
)

func (v Verbosity) String() string {
	switch v {
	case Detailed:
		return "Detailed"
	case Full:
		return "Full"
	default:
		return "Basic"
	}
}

func (v Verbosity) RunLevel() string {
	switch v {
	case Detailed:
		return "balanced"
	case Full:
		return "deep"
	default:
		return "light"
	}
}

func (v Verbosity) AtLeast(o Verbosity) bool { return v >= o }

// VerbosityFromCount maps -v, -vv, -vvv onto a level; zero means Basic.
func VerbosityFromCount(n int) Verbosity {
	switch {
	case n >= 3:
		return Full
	case n == 2:
		return Detailed
	default:
		return Basic
	}
}

// ParseRunLevel accepts run level names, verbosity names and 1..3.
func ParseRunLevel(s string) (Verbosity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light", "basic", "1", "v":
		return Basic, nil
	case "balanced", "detailed", "2", "vv":
		return Detailed, nil
	case "deep", "full", "3", "vvv":
		return Full, nil
	}
	return Basic, fmt.Errorf("unknown run level %q (want light, balanced or deep)", s)
}
