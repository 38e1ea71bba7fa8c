package batch

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rs2tools/pkg/record"
	"rs2tools/pkg/transform"
)

const gom3Records = `# GOM3.u
gom3name: {1040990352, 2495382815}
gom3md5: {3029409044, 1812751812, 2284506666, 3317781048, 309846119, 4155870121, 239163896, 3563961329}
`

const tklRecords = `tklMutatorName: {2000924894U, 277274360U, 4140362311U}
broken: {42}
`

func writeRecords(t *testing.T, dir, name, body, compression string) string {
	t.Helper()
	tr, err := transform.ForName(compression)
	require.NoError(t, err)
	data, err := tr.Apply([]byte(body))
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestDecodeFiles(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeRecords(t, dir, "gom3.txt.zst", gom3Records, "zstd"),
		writeRecords(t, dir, "tkl.txt.gz", tklRecords, "gzip"),
		writeRecords(t, dir, "addr.txt", "addr0: {667268793, 572063549, 2821723169, 1079833058, 57665466, 315357024, 3557871184}\n", "none"),
	}

	results, err := DecodeFiles(context.Background(), paths, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, paths[0], results[0].Path)
	require.Len(t, results[0].Records, 2)
	assert.Equal(t, "GOM3.U", results[0].Records[0].Text)
	assert.Equal(t, 2, results[0].Records[0].Line)
	assert.Equal(t, "ced0ebe54a5f0771059251601fc92069", results[0].Records[1].Text)

	require.Len(t, results[1].Records, 2)
	assert.Equal(t, "TKLMutator.u", results[1].Records[0].Text)
	assert.Equal(t, "broken", results[1].Records[1].Name)
	assert.NotEmpty(t, results[1].Records[1].Err)
	assert.Equal(t, 1, results[1].Failed())

	assert.Equal(t, "www.tripwireinteractive.com", results[2].Records[0].Text)
}

func TestDecodeFilesParseError(t *testing.T) {
	dir := t.TempDir()
	good := writeRecords(t, dir, "good.txt", gom3Records, "none")
	bad := writeRecords(t, dir, "bad.txt", "{1, 2}\n{nope}\n", "none")

	_, err := DecodeFiles(context.Background(), []string{good, bad}, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.txt")
	assert.Contains(t, err.Error(), "line 2")
}

func TestDecodeFilesMissing(t *testing.T) {
	_, err := DecodeFiles(context.Background(), []string{filepath.Join(t.TempDir(), "missing.txt")}, 0)
	require.Error(t, err)
}

func TestDecodeRecordsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	recs := []record.Record{{Words: []uint32{1040990352, 2495382815}}}
	out, err := DecodeRecords(ctx, "x", recs)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out)
}

func TestWriteReport(t *testing.T) {
	results := []*FileResult{{
		Path: "a.txt",
		Records: []Decoded{
			{File: "a.txt", Line: 1, Name: "gom3name", Words: []uint32{1040990352, 2495382815}, Text: "GOM3.U"},
			{File: "a.txt", Line: 2, Name: "broken", Words: []uint32{42}, Err: "too short"},
		},
	}}

	var text bytes.Buffer
	require.NoError(t, WriteReport(&text, results, "text"))
	assert.Equal(t, "a.txt:1\tgom3name\tGOM3.U\na.txt:2\tbroken\terror: too short\n", text.String())

	var js bytes.Buffer
	require.NoError(t, WriteReport(&js, results, "json"))
	sc := bufio.NewScanner(&js)
	var lines []Decoded
	for sc.Scan() {
		var d Decoded
		require.NoError(t, json.Unmarshal(sc.Bytes(), &d))
		lines = append(lines, d)
	}
	require.Len(t, lines, 2)
	assert.Equal(t, results[0].Records[0], lines[0])

	assert.Error(t, WriteReport(&text, results, "xml"))
}

func TestSaveReportCompressed(t *testing.T) {
	results := []*FileResult{{Path: "a.txt", Records: []Decoded{{File: "a.txt", Line: 1, Text: "GOM3.U"}}}}
	path := filepath.Join(t.TempDir(), "report.txt.zst")
	require.NoError(t, SaveReport(path, results, "text", "zstd"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	tr, err := transform.ForPath(path)
	require.NoError(t, err)
	data, err := tr.Reverse(raw)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "GOM3.U\n"))
}
