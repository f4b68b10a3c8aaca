// ABOUTME: Deterministic id derivation for users, chats and posts
// ABOUTME: fx 64-bit hashing; zero is reserved in every id space

package ident

import (
	"encoding/binary"
	"math/bits"
	"math/rand"
)

// fxSeed is the multiplier of the fx hash (the Firefox hasher). The constant
// and the chunking below must not change: stored ids depend on them.
const fxSeed uint64 = 0x517cc1b727220a95

// fxHasher is a streaming fx 64-bit hasher. Each Write call consumes its
// input in 8/4/2/1-byte little-endian chunks, so the chunk boundaries of
// separate Write calls are part of the hash.
type fxHasher struct {
	hash uint64
}

func (h *fxHasher) word(w uint64) {
	h.hash = (bits.RotateLeft64(h.hash, 5) ^ w) * fxSeed
}

func (h *fxHasher) Write(p []byte) {
	for len(p) >= 8 {
		h.word(binary.LittleEndian.Uint64(p))
		p = p[8:]
	}
	if len(p) >= 4 {
		h.word(uint64(binary.LittleEndian.Uint32(p)))
		p = p[4:]
	}
	if len(p) >= 2 {
		h.word(uint64(binary.LittleEndian.Uint16(p)))
		p = p[2:]
	}
	if len(p) >= 1 {
		h.word(uint64(p[0]))
	}
}

func (h *fxHasher) Sum64() uint64 { return h.hash }

// UserID derives the stable id for a (name, short name) pair. The same pair
// always maps to the same id, which is what makes registration idempotent.
func UserID(name, shortName string) uint64 {
	var h fxHasher
	h.Write([]byte(name))
	h.Write([]byte(shortName))
	return h.Sum64()
}

// ChatID derives a chat id. A chat must be discoverable by any member
// instead of being created again and again, so the id is a function of the
// description when one is given, or of the member set otherwise. Callers
// must pass users sorted ascending; {A,B} and {B,A} have to converge on one
// chat. A chat with neither description nor members gets a random id.
func ChatID(description string, users []uint64) uint64 {
	var h fxHasher
	if description != "" {
		h.Write([]byte(description))
		return h.Sum64()
	}
	if len(users) > 0 {
		var buf [8]byte
		for _, id := range users {
			binary.LittleEndian.PutUint64(buf[:], id)
			h.Write(buf[:])
		}
		return h.Sum64()
	}
	return NewChatID()
}

// NewPostID draws a random nonzero post id.
func NewPostID() uint64 {
	return nonzero()
}

// NewChatID draws a random nonzero chat id. Fallback for chats with neither
// description nor members.
func NewChatID() uint64 {
	return nonzero()
}

func nonzero() uint64 {
	v := rand.Uint64()
	for v == 0 {
		v = rand.Uint64()
	}
	return v
}
