package rs2crypto

import (
	"errors"
	"slices"
	"testing"

	"rs2tools/pkg/xxtea"
)

func TestDecryptStringKnownRecords(t *testing.T) {
	tests := []struct {
		name  string
		words []uint32
		want  string
	}{
		{"gom3name", []uint32{1040990352, 2495382815}, "GOM3.U"},
		{"gom3md5", []uint32{
			3029409044, 1812751812, 2284506666, 3317781048,
			309846119, 4155870121, 239163896, 3563961329,
		}, "ced0ebe54a5f0771059251601fc92069"},
		{"addr0", []uint32{
			667268793, 572063549, 2821723169, 1079833058,
			57665466, 315357024, 3557871184,
		}, "www.tripwireinteractive.com"},
		{"addr1", []uint32{
			515829103, 73578521, 2980778981, 1850491108, 2735934040,
			460470580, 3106607331, 1148387282, 3310707735, 3965381053,
		}, "http://www.tripwireinteractive.com/rs2/"},
		{"tklMutatorName", []uint32{2000924894, 277274360, 4140362311}, "TKLMutator.u"},
		{"tklMutatorMd5", []uint32{
			2504114439, 3344273490, 953332573, 3691125115,
			1687282814, 1065781761, 902691679, 934229910,
		}, "f2b3d8a799a9300634ff067ac612745d"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := slices.Clone(tt.words)
			got, err := DecryptString(in)
			if err != nil {
				t.Fatalf("DecryptString failed: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Expected %q, got %q", tt.want, got)
			}
			if !slices.Equal(in, tt.words) {
				t.Fatalf("DecryptString modified its input")
			}
		})
	}
}

func TestDecryptStringLengthSensitive(t *testing.T) {
	padded := []uint32{2000924894, 277274360, 4140362311, 0, 0, 0, 0, 0}
	got, err := DecryptString(padded)
	if err != nil {
		t.Fatalf("DecryptString failed: %v", err)
	}
	if got == "TKLMutator.u" {
		t.Fatal("Expected zero padding to change the decryption")
	}
}

func TestEncryptStringReproducesRecords(t *testing.T) {
	tests := []struct {
		s    string
		sz   Sizing
		want []uint32
	}{
		{"GOM3.U", SizeTerminated, []uint32{1040990352, 2495382815}},
		{"GOM3.U", SizeCompact, []uint32{1040990352, 2495382815}},
		{"TKLMutator.u", SizeCompact, []uint32{2000924894, 277274360, 4140362311}},
		{"TKLMutator.u", SizeTerminated, []uint32{144562899, 4072558809, 2374941624, 3408467695}},
		{"www.tripwireinteractive.com", SizeTerminated, []uint32{
			667268793, 572063549, 2821723169, 1079833058,
			57665466, 315357024, 3557871184,
		}},
		{"ced0ebe54a5f0771059251601fc92069", SizeCompact, []uint32{
			3029409044, 1812751812, 2284506666, 3317781048,
			309846119, 4155870121, 239163896, 3563961329,
		}},
		{"abc", SizeTerminated, []uint32{2056171913, 1832949710}},
	}
	for _, tt := range tests {
		t.Run(tt.s+"/"+tt.sz.String(), func(t *testing.T) {
			got, err := EncryptString(tt.s, tt.sz)
			if err != nil {
				t.Fatalf("EncryptString failed: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	strs := []string{
		"GOM3.U",
		"     x",
		"      5",
		"      55",
		"     ####",
		"      6asd",
		"TKLMutator.U",
		"f2b3d8a799a9300634ff067ac612745d",
		"AAAAAAAAAAAAAAAAAABBBBBBBBBBBBBBBCCCCCCCCCCCCDDDDDDDDDDXXXX",
		"AAAAAAAAAAAAAAAAAABBBBBBBBBBBBBBBCCCCCCCCCCCXDDDDDDDDDDDXXXX",
		"AAAAAAAAAAAAAAAAAABBBBBBBBBBBBBBBCCCCCCCCCCCCDDDDDDDDDDDDDDDXXX",
		"AAAAAAAAAAAAAAAAAABBBBBBBBBBBBBBBCCCCCCCCCCCCDDDDDDDDDDDDDDDDDXXXX1",
		"AAAAAAAAAAAAAAAAAABBBBBBBBBBBBBBBCCCCCCCCCCCCDDDDDDDDDDDDDDDDDXXXX444",
		"a",
	}
	for _, sz := range []Sizing{SizeTerminated, SizeCompact} {
		for _, s := range strs {
			words, err := EncryptString(s, sz)
			if err != nil {
				t.Fatalf("EncryptString(%q, %v) failed: %v", s, sz, err)
			}
			if len(words) < xxtea.MinWords {
				t.Fatalf("EncryptString(%q, %v) produced %d words", s, sz, len(words))
			}
			got, err := DecryptString(words)
			if err != nil {
				t.Fatalf("DecryptString failed: %v", err)
			}
			if got != s {
				t.Fatalf("round trip (%v): expected %q, got %q", sz, s, got)
			}
		}
	}
}

func TestAlternateKey(t *testing.T) {
	k := xxtea.Key{1, 2, 3, 4}
	words, err := EncryptStringWithKey("TKLMutator.u", SizeTerminated, &k)
	if err != nil {
		t.Fatalf("EncryptStringWithKey failed: %v", err)
	}
	got, err := DecryptStringWithKey(words, &k)
	if err != nil {
		t.Fatalf("DecryptStringWithKey failed: %v", err)
	}
	if got != "TKLMutator.u" {
		t.Fatalf("Expected round trip under alternate key, got %q", got)
	}
	if s, _ := DecryptString(words); s == "TKLMutator.u" {
		t.Fatal("Expected the game key to fail on data encrypted under another key")
	}
}

func TestPreconditions(t *testing.T) {
	if _, err := EncryptString("", SizeTerminated); !errors.Is(err, ErrEmptyString) {
		t.Errorf("Expected ErrEmptyString, got %v", err)
	}
	if _, err := EncryptString("a\x00b", SizeTerminated); !errors.Is(err, ErrEmbeddedNUL) {
		t.Errorf("Expected ErrEmbeddedNUL, got %v", err)
	}
	if _, err := DecryptString([]uint32{1}); !errors.Is(err, xxtea.ErrShortBlock) {
		t.Errorf("Expected ErrShortBlock, got %v", err)
	}
}

func TestGameKeyIsACopy(t *testing.T) {
	k := GameKey()
	k[0] = 0
	if GameKey()[0] != 0xea2e0f {
		t.Fatal("GameKey returned shared state")
	}
}
