package utils

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestContainsString(t *testing.T) {
	assert.True(t, ContainsString([]string{"a", "b"}, "a"))
	assert.False(t, ContainsString([]string{"a", "b"}, "c"))
	assert.False(t, ContainsString([]string{}, "a"))
}

func TestStringSetDiff(t *testing.T) {
	assert.Empty(t, cmp.Diff([]string{"c", "d"}, StringSetDiff([]string{"a", "b", "c", "d"}, []string{"a", "b"})))
	assert.Empty(t, cmp.Diff([]string{}, StringSetDiff([]string{"a"}, []string{"a", "b"})))
	assert.Empty(t, cmp.Diff([]string{"a"}, StringSetDiff([]string{"a"}, []string{})))
	// Order follows the first argument, not discovery order.
	assert.Empty(t, cmp.Diff([]string{"d", "c"}, StringSetDiff([]string{"d", "a", "c"}, []string{"a"})))
}
