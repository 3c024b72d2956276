package cache

import "github.com/Luismorlan/dramachaser/utils"

// computeDelta returns the shows present in current but not in previous,
// preserving current's order. Membership is exact show-id equality.
func computeDelta(current []string, previous []string) []string {
	return utils.StringSetDiff(current, previous)
}
