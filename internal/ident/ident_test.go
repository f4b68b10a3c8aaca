// ABOUTME: Tests for deterministic id derivation
// ABOUTME: Covers stability, chunking sensitivity and id space separation

package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserID_Deterministic(t *testing.T) {
	a := UserID("Alice Arkham", "alice")
	b := UserID("Alice Arkham", "alice")
	assert.Equal(t, a, b, "same names must map to the same id")
	assert.NotZero(t, a)
}

func TestUserID_DistinguishesFields(t *testing.T) {
	// The field boundary is part of the hash: moving a character across it
	// must change the id.
	a := UserID("ab", "c")
	b := UserID("a", "bc")
	assert.NotEqual(t, a, b)

	assert.NotEqual(t, UserID("Alice", "alice"), UserID("Alice", "al"))
	assert.NotEqual(t, UserID("Alice", "alice"), UserID("Bob", "alice"))
}

func TestChatID_FromDescription(t *testing.T) {
	a := ChatID("lobby", nil)
	b := ChatID("lobby", []uint64{1, 2, 3})
	assert.Equal(t, a, b, "description wins over members")
	assert.NotEqual(t, a, ChatID("other", nil))
}

func TestChatID_FromMembers(t *testing.T) {
	a := ChatID("", []uint64{100, 200})
	b := ChatID("", []uint64{100, 200})
	assert.Equal(t, a, b)

	assert.NotEqual(t, a, ChatID("", []uint64{100, 300}))
	assert.NotEqual(t, a, ChatID("", []uint64{100}))
}

func TestChatID_EmptyIsRandom(t *testing.T) {
	seen := make(map[uint64]struct{})
	for i := 0; i < 16; i++ {
		id := ChatID("", nil)
		require.NotZero(t, id)
		seen[id] = struct{}{}
	}
	assert.Greater(t, len(seen), 1, "ids without inputs must not collapse to one value")
}

func TestNewPostID_Nonzero(t *testing.T) {
	for i := 0; i < 64; i++ {
		require.NotZero(t, NewPostID())
	}
}

func TestFxHasher_ChunkBoundaries(t *testing.T) {
	// One 8-byte write differs from two 4-byte writes of the same bytes.
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	var whole fxHasher
	whole.Write(data)

	var split fxHasher
	split.Write(data[:4])
	split.Write(data[4:])

	assert.NotEqual(t, whole.Sum64(), split.Sum64())
}
