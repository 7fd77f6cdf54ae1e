package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUUIDBase32IsUnique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := UUIDBase32()
		assert.NotEmpty(t, id)
		_, dup := seen[id]
		assert.False(t, dup, id)
		seen[id] = struct{}{}
	}
}

func TestDedupeTrimmed(t *testing.T) {
	got := DedupeTrimmed([]string{" Lead", "Parabens", "", "Lead ", "  ", "lead"})
	assert.Equal(t, []string{"Lead", "Parabens", "lead"}, got)
	assert.Empty(t, DedupeTrimmed(nil))
}
