// Package record reads and writes word records in the text form printed by
// the asset tools: an optional "name:" label followed by 32-bit words, e.g.
//
//	gom3name: {1040990352, 2495382815}
//
// Words may be decimal or 0x-prefixed hex, separated by commas or spaces.
package record

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrNoWords = errors.New("record: no words")

// Record is one labelled word array.
type Record struct {
	Name  string   `json:"name,omitempty"`
	Words []uint32 `json:"words"`
	Line  int      `json:"line,omitempty"`
}

// Parse parses a single record.
func Parse(s string) (Record, error) {
	var rec Record
	body := strings.TrimSpace(s)
	if i := strings.IndexByte(body, ':'); i >= 0 {
		rec.Name = strings.TrimSpace(body[:i])
		body = body[i+1:]
	}
	body = strings.TrimSpace(body)
	body = strings.TrimPrefix(body, "{")
	body = strings.TrimSuffix(body, "}")

	fields := strings.FieldsFunc(body, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return rec, ErrNoWords
	}
	rec.Words = make([]uint32, 0, len(fields))
	for _, f := range fields {
		w, err := ParseWord(f)
		if err != nil {
			return rec, err
		}
		rec.Words = append(rec.Words, w)
	}
	return rec, nil
}

// ParseWord parses one word. A trailing U suffix, as in C++ literals, is
// accepted.
func ParseWord(s string) (uint32, error) {
	s = strings.TrimRight(strings.TrimSpace(s), "uU")
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("record: bad word %q: %w", s, err)
	}
	return uint32(v), nil
}

// Format renders words the way Parse reads them back.
func Format(words []uint32) string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, w := range words {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatUint(uint64(w), 10))
	}
	sb.WriteByte('}')
	return sb.String()
}

// String formats the record with its label, if any.
func (r Record) String() string {
	if r.Name == "" {
		return Format(r.Words)
	}
	return r.Name + ": " + Format(r.Words)
}

// ReadAll reads one record per line. Blank lines and lines starting with '#'
// are skipped. Errors carry the 1-based line number.
func ReadAll(r io.Reader) ([]Record, error) {
	var recs []Record
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		rec, err := Parse(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rec.Line = line
		recs = append(recs, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("record: read: %w", err)
	}
	return recs, nil
}
