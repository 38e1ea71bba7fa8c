// Package xxtea implements the fixed-round XXTEA (Corrected Block TEA) variant
// used to obfuscate strings in game asset metadata. Blocks are slices of
// 32-bit words transformed in place; there is no padding or length framing.
package xxtea

import "errors"

const (
	// Delta is the key schedule constant, derived from the golden ratio.
	Delta = uint32(0x9E3779B9)

	// MinWords is the smallest block the round schedule is defined for.
	MinWords = 2
)

// ErrShortBlock is returned when a block has fewer than MinWords words.
var ErrShortBlock = errors.New("xxtea: block must hold at least 2 words")

// Key is a 128-bit key as four words.
type Key [4]uint32

// Rounds returns the number of full passes made over a block of n words.
func Rounds(n int) int {
	return 6 + 52/n
}

func mx(sum, y, z uint32, p int, e uint32, k *Key) uint32 {
	return ((z>>5 ^ y<<2) + (y>>3 ^ z<<4)) ^ ((sum ^ y) + (k[uint32(p&3)^e] ^ z))
}

// Encrypt encrypts v in place under k.
func Encrypt(v []uint32, k *Key) error {
	n := len(v)
	if n < MinWords {
		return ErrShortBlock
	}

	var sum uint32
	z := v[n-1]
	for rounds := Rounds(n); rounds > 0; rounds-- {
		sum += Delta
		e := sum >> 2 & 3
		for p := 0; p < n-1; p++ {
			y := v[p+1]
			v[p] += mx(sum, y, z, p, e, k)
			z = v[p]
		}
		y := v[0]
		v[n-1] += mx(sum, y, z, n-1, e, k)
		z = v[n-1]
	}
	return nil
}

// Decrypt reverses Encrypt for a block of the same length under the same key.
func Decrypt(v []uint32, k *Key) error {
	n := len(v)
	if n < MinWords {
		return ErrShortBlock
	}

	rounds := Rounds(n)
	sum := uint32(rounds) * Delta
	y := v[0]
	for ; rounds > 0; rounds-- {
		e := sum >> 2 & 3
		for p := n - 1; p > 0; p-- {
			z := v[p-1]
			v[p] -= mx(sum, y, z, p, e, k)
			y = v[p]
		}
		z := v[n-1]
		v[0] -= mx(sum, y, z, 0, e, k)
		y = v[0]
		sum -= Delta
	}
	return nil
}
