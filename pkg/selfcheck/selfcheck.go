// Package selfcheck verifies the cipher and codec against records taken from
// shipped game packages.
package selfcheck

import (
	"rs2tools/pkg/rs2crypto"
)

// Vector is a stored record and the string it must decode to.
type Vector struct {
	Name  string
	Words []uint32
	Want  string
}

// Vectors are records lifted from GOM3.u and TKLMutator.u package metadata
// and the engine's default URLs.
var Vectors = []Vector{
	{"gom3name", []uint32{1040990352, 2495382815}, "GOM3.U"},
	{"gom3md5", []uint32{
		3029409044, 1812751812, 2284506666, 3317781048,
		309846119, 4155870121, 239163896, 3563961329,
	}, "ced0ebe54a5f0771059251601fc92069"},
	{"tklMutatorName", []uint32{2000924894, 277274360, 4140362311}, "TKLMutator.u"},
	{"tklMutatorMd5", []uint32{
		2504114439, 3344273490, 953332573, 3691125115,
		1687282814, 1065781761, 902691679, 934229910,
	}, "f2b3d8a799a9300634ff067ac612745d"},
	{"addr0", []uint32{
		667268793, 572063549, 2821723169, 1079833058,
		57665466, 315357024, 3557871184,
	}, "www.tripwireinteractive.com"},
	{"addr1", []uint32{
		515829103, 73578521, 2980778981, 1850491108, 2735934040,
		460470580, 3106607331, 1148387282, 3310707735, 3965381053,
	}, "http://www.tripwireinteractive.com/rs2/"},
}

// RoundTripStrings exercise every terminator position and several block
// lengths.
var RoundTripStrings = []string{
	"GOM3.U",
	"     x",
	"      5",
	"      55",
	"     ####",
	"      6asd",
	"TKLMutator.U",
	"AAAAAAAAAAAAAAAAAABBBBBBBBBBBBBBBCCCCCCCCCCCCDDDDDDDDDDXXXX",
	"AAAAAAAAAAAAAAAAAABBBBBBBBBBBBBBBCCCCCCCCCCCXDDDDDDDDDDDXXXX",
	"AAAAAAAAAAAAAAAAAABBBBBBBBBBBBBBBCCCCCCCCCCCCDDDDDDDDDDDDXXXX",
	"AAAAAAAAAAAAAAAAAABBBBBBBBBBBBBBBCCCCCCCCCCCCDDDDDDDDDDDDDXXXX",
	"AAAAAAAAAAAAAAAAAABBBBBBBBBBBBBBBCCCCCCCCCCCCDDDDDDDDDDDDDDDXXX",
	"AAAAAAAAAAAAAAAAAABBBBBBBBBBBBBBBCCCCCCCCCCCCDDDDDDDDDDDDDDDDDXX",
	"AAAAAAAAAAAAAAAAAABBBBBBBBBBBBBBBCCCCCCCCCCCCDDDDDDDDDDDDDDDDDXXX",
	"AAAAAAAAAAAAAAAAAABBBBBBBBBBBBBBBCCCCCCCCCCCCDDDDDDDDDDDDDDDDDXXXX1",
	"AAAAAAAAAAAAAAAAAABBBBBBBBBBBBBBBCCCCCCCCCCCCDDDDDDDDDDDDDDDDDXXXX23",
	"AAAAAAAAAAAAAAAAAABBBBBBBBBBBBBBBCCCCCCCCCCCCDDDDDDDDDDDDDDDDDXXXX444",
}

type Kind string

const (
	KindDecrypt   Kind = "decrypt"
	KindRoundTrip Kind = "roundtrip"
)

type Result struct {
	Kind   Kind     `json:"kind"`
	Name   string   `json:"name"`
	Sizing string   `json:"sizing,omitempty"`
	Words  []uint32 `json:"words"`
	Want   string   `json:"want"`
	Got    string   `json:"got"`
	Err    string   `json:"error,omitempty"`
	OK     bool     `json:"ok"`
}

type Report struct {
	Results []Result `json:"results"`
	Passed  int      `json:"passed"`
	Failed  int      `json:"failed"`
}

func (r *Report) OK() bool { return r.Failed == 0 }

func (r *Report) add(res Result) {
	res.OK = res.Err == "" && res.Got == res.Want
	if res.OK {
		r.Passed++
	} else {
		r.Failed++
	}
	r.Results = append(r.Results, res)
}

// Run decodes every vector and round-trips every string under both sizings.
func Run() *Report {
	r := &Report{}
	for _, v := range Vectors {
		res := Result{Kind: KindDecrypt, Name: v.Name, Words: v.Words, Want: v.Want}
		got, err := rs2crypto.DecryptString(v.Words)
		if err != nil {
			res.Err = err.Error()
		}
		res.Got = got
		r.add(res)
	}

	for _, sz := range []rs2crypto.Sizing{rs2crypto.SizeTerminated, rs2crypto.SizeCompact} {
		for _, s := range RoundTripStrings {
			res := Result{Kind: KindRoundTrip, Name: s, Sizing: sz.String(), Want: s}
			words, err := rs2crypto.EncryptString(s, sz)
			if err == nil {
				res.Words = words
				res.Got, err = rs2crypto.DecryptString(words)
			}
			if err != nil {
				res.Err = err.Error()
			}
			r.add(res)
		}
	}
	return r
}
