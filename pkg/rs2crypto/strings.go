package rs2crypto

import (
	"fmt"
	"slices"

	"rs2tools/pkg/xxtea"
)

// GameKey returns the key baked into the game's tooling. It is returned by
// value; callers cannot alter the key seen by anyone else.
func GameKey() xxtea.Key {
	return xxtea.Key{0xea2e0f, 0x953, 0xde19d3a7, 0x8281d}
}

// EncryptString packs and encrypts s with the game key.
func EncryptString(s string, sz Sizing) ([]uint32, error) {
	k := GameKey()
	return EncryptStringWithKey(s, sz, &k)
}

// EncryptStringWithKey packs s using sz, pads the block to the cipher's
// minimum length, and encrypts it under k.
func EncryptStringWithKey(s string, sz Sizing, k *xxtea.Key) ([]uint32, error) {
	if s == "" {
		return nil, ErrEmptyString
	}
	words, err := PackN(s, max(BufferSizeU32(s, sz), xxtea.MinWords))
	if err != nil {
		return nil, err
	}
	if err := xxtea.Encrypt(words, k); err != nil {
		return nil, fmt.Errorf("rs2crypto: encrypt %q: %w", s, err)
	}
	return words, nil
}

// DecryptString decrypts a copy of words with the game key and unpacks it.
// The input slice is left untouched.
func DecryptString(words []uint32) (string, error) {
	k := GameKey()
	return DecryptStringWithKey(words, &k)
}

func DecryptStringWithKey(words []uint32, k *xxtea.Key) (string, error) {
	buf := slices.Clone(words)
	if err := xxtea.Decrypt(buf, k); err != nil {
		return "", fmt.Errorf("rs2crypto: decrypt %d words: %w", len(words), err)
	}
	return Unpack(buf), nil
}
