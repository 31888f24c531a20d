package sortedset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario lifted directly from spec.md §8's literal end-to-end example:
// ZADD Z 1 a 1 aa 2 b 0.5 c -> 4 added; ZRANGE Z 0 -1 -> c, a, aa, b;
// ZRANK Z aa -> 2; ZREM Z aa -> removed; ZRANK Z aa -> not found.
func TestSortedSetSpecScenario(t *testing.T) {
	z := New()

	added := 0
	for _, m := range []struct {
		score  float64
		member string
	}{
		{1, "a"}, {1, "aa"}, {2, "b"}, {0.5, "c"},
	} {
		if z.Add(m.score, m.member) {
			added++
		}
	}
	assert.Equal(t, 4, added)
	assert.Equal(t, 4, z.Len())

	assert.Equal(t, []string{"c", "a", "aa", "b"}, z.RangeByRank(0, z.Len()-1))

	rank, ok := z.Rank("aa")
	require.True(t, ok)
	assert.Equal(t, 2, rank)

	assert.True(t, z.Remove("aa"))
	assert.Equal(t, 3, z.Len())

	_, ok = z.Rank("aa")
	assert.False(t, ok)
	assert.Equal(t, []string{"c", "a", "b"}, z.RangeByRank(0, z.Len()-1))
}

func TestSortedSetAddIsIdempotentForSameScore(t *testing.T) {
	z := New()
	assert.True(t, z.Add(1, "a"))
	assert.False(t, z.Add(1, "a"))
	assert.Equal(t, 1, z.Len())
}

func TestSortedSetAddScoreUpdateNotCountedAsNew(t *testing.T) {
	z := New()
	assert.True(t, z.Add(1, "a"))
	assert.False(t, z.Add(5, "a"))
	score, ok := z.Score("a")
	require.True(t, ok)
	assert.Equal(t, float64(5), score)
	assert.Equal(t, 1, z.Len())

	rank, ok := z.Rank("a")
	require.True(t, ok)
	assert.Equal(t, 0, rank)
}

func TestSortedSetMembersAtSameScoreSortLexicographically(t *testing.T) {
	z := New()
	z.Add(1, "zebra")
	z.Add(1, "apple")
	z.Add(1, "mango")
	assert.Equal(t, []string{"apple", "mango", "zebra"}, z.RangeByRank(0, 2))
}

func TestSortedSetRangeByRankWindow(t *testing.T) {
	z := New()
	for i, m := range []string{"a", "b", "c", "d", "e"} {
		z.Add(float64(i), m)
	}
	assert.Equal(t, []string{"b", "c"}, z.RangeByRank(1, 2))
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, z.RangeByRank(0, 4))
	assert.Nil(t, z.RangeByRank(3, 1))
}

func TestSortedSetRangeByScore(t *testing.T) {
	z := New()
	z.Add(1, "a")
	z.Add(2, "b")
	z.Add(3, "c")
	assert.Equal(t, []string{"b", "c"}, z.RangeByScore(2, 10))
	assert.Equal(t, []string{"a", "b", "c"}, z.RangeByScore(math.Inf(-1), math.Inf(1)))
}

func TestSortedSetRemoveOnMissingMember(t *testing.T) {
	z := New()
	assert.False(t, z.Remove("ghost"))
}

func TestSortedSetRemoveDeletesEmptyNode(t *testing.T) {
	z := New()
	z.Add(1, "only")
	assert.True(t, z.Remove("only"))
	assert.Equal(t, 0, z.Len())
	assert.Nil(t, z.RangeByRank(0, 0))
}

func TestSortedSetManyInsertsPreserveOrdering(t *testing.T) {
	z := New()
	members := []string{"m1", "m2", "m3", "m4", "m5", "m6", "m7", "m8", "m9", "m10"}
	for i, m := range members {
		z.Add(float64(len(members)-i), m)
	}
	got := z.RangeByRank(0, z.Len()-1)
	require.Len(t, got, len(members))
	// scores were assigned in reverse order, so ascending-score order reverses input.
	for i, m := range got {
		assert.Equal(t, members[len(members)-1-i], m)
	}
}
