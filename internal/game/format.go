package game

import "fmt"

// FormatScore abbreviates large scores: 950 pts, 1.5k pts, 2.3M pts.
func FormatScore(score int) string {
	switch {
	case score >= 1_000_000:
		return fmt.Sprintf("%.1fM pts", float64(score)/1e6)
	case score >= 1_000:
		return fmt.Sprintf("%.1fk pts", float64(score)/1e3)
	default:
		return fmt.Sprintf("%d pts", score)
	}
}
