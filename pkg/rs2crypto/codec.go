// Package rs2crypto packs NUL-terminated ASCII strings into 32-bit words and
// obfuscates them with the game's fixed XXTEA key, matching the layout stored
// in package metadata (file names, MD5 hashes, URLs).
package rs2crypto

import (
	"errors"
	"fmt"
	"strings"
)

const wordBytes = 4

var (
	ErrEmbeddedNUL    = errors.New("rs2crypto: string contains a NUL byte")
	ErrBufferTooSmall = errors.New("rs2crypto: word buffer too small for string")
	ErrEmptyString    = errors.New("rs2crypto: empty string")
)

// Sizing selects how many words a string of a given length occupies.
type Sizing uint8

const (
	// SizeTerminated always reserves room for the terminating NUL.
	SizeTerminated Sizing = iota
	// SizeCompact uses ceil(len/4) words, so a string that fills its last
	// word carries no terminator. Stored asset records use this layout.
	SizeCompact
)

func (s Sizing) String() string {
	switch s {
	case SizeTerminated:
		return "terminated"
	case SizeCompact:
		return "compact"
	default:
		return fmt.Sprintf("Sizing(%d)", uint8(s))
	}
}

// ParseSizing maps a configuration name to a Sizing. The empty string selects
// SizeTerminated.
func ParseSizing(name string) (Sizing, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "terminated":
		return SizeTerminated, nil
	case "compact":
		return SizeCompact, nil
	default:
		return 0, fmt.Errorf("rs2crypto: unknown sizing %q (want terminated or compact)", name)
	}
}

// BufferSizeU32 returns the number of words needed to hold s.
func BufferSizeU32(s string, sz Sizing) int {
	n := len(s)
	if sz != SizeCompact {
		n++
	}
	return (n + wordBytes - 1) / wordBytes
}

// Pack places s into ceil((len(s)+1)/4) zeroed words, little-endian, leaving
// the terminator implicit in the zero padding.
func Pack(s string) ([]uint32, error) {
	return PackN(s, BufferSizeU32(s, SizeTerminated))
}

// PackN places s into exactly n words. Words past the end of s stay zero.
func PackN(s string, n int) ([]uint32, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, ErrEmbeddedNUL
	}
	if need := BufferSizeU32(s, SizeCompact); n < need {
		return nil, fmt.Errorf("%w: %d bytes need %d words, have %d", ErrBufferTooSmall, len(s), need, n)
	}

	words := make([]uint32, n)
	for i := 0; i < len(s); i++ {
		words[i/wordBytes] |= uint32(s[i]) << (8 * (i % wordBytes))
	}
	return words, nil
}

// Unpack reads bytes out of words in order and stops at the first zero byte.
// If no zero byte is found, all 4*len(words) bytes are returned.
func Unpack(words []uint32) string {
	var sb strings.Builder
	sb.Grow(len(words) * wordBytes)
	for _, w := range words {
		for shift := 0; shift < 32; shift += 8 {
			b := byte(w >> shift)
			if b == 0 {
				return sb.String()
			}
			sb.WriteByte(b)
		}
	}
	return sb.String()
}
