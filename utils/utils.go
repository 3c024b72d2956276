package utils

import (
	"os"

	"github.com/Luismorlan/dramachaser/utils/dotenv"
)

// ContainsString returns true iff the provided string slice hay contains
// string needle.
func ContainsString(hay []string, needle string) bool {
	for _, str := range hay {
		if str == needle {
			return true
		}
	}
	return false
}

// StringSetDiff returns the elements of current that are absent from previous,
// preserving current's order.
func StringSetDiff(current []string, previous []string) []string {
	diff := []string{}
	for _, str := range current {
		if !ContainsString(previous, str) {
			diff = append(diff, str)
		}
	}
	return diff
}

func IsProdEnv() bool {
	return os.Getenv("DRAMACHASER_ENV") == dotenv.ProdEnv
}
