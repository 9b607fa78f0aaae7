package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// FormatBytes renders n with binary (1024) steps and two decimals.
func FormatBytes(n float64) string {
	if n == 0 {
		return "0 B"
	}
	for _, unit := range byteUnits {
		if math.Abs(n) < 1024 {
			return fmt.Sprintf("%.2f %s", n, unit)
		}
		n /= 1024
	}
	return fmt.Sprintf("%.2f EB", n)
}

func FormatUint(n uint64) string { return FormatBytes(float64(n)) }

// FormatUptime renders seconds as "Xd Yh Zm".
func FormatUptime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	s := int64(seconds)
	days := s / 86400
	hours := (s % 86400) / 3600
	minutes := (s % 3600) / 60
	return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
}

// FormatSession drops leading zero units: "2d 3h 4m", "3h 4m" or "4m".
func FormatSession(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int64(d.Seconds())
	days := s / 86400
	hours := (s % 86400) / 3600
	minutes := (s % 3600) / 60
	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// UsagePercent is used/total*100 clamped to [0, 100]; zero when total is
// zero.
func UsagePercent(used, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return Clamp(used/total*100, 0, 100)
}

func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// FormatCount inserts thousands separators: 1234567 -> "1,234,567".
func FormatCount(n uint64) string {
	s := strconv.FormatUint(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// Truncate cuts s to max runes, marking the cut with "...".
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

// Clip keeps the first n runes of s and marks the cut with "...".
func Clip(s string, n int) string {
	r := []rune(s)
	if n < 0 || len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
