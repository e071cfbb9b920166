package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/DrSkyle/linkpath/pkg/storage"
)

func sampleResults() []Result {
	return []Result{
		{
			ID: "a1", Label: "pets", From: "Cat", To: "Dog",
			Found: true, Length: 2, Path: []string{"Cat", "Mammal", "Dog"},
			Visited: 5, DurationMS: 1.25,
		},
		{
			ID: "b2", From: "Y", Through: "X", To: "Z",
			Found: false, Length: -1, Visited: 1,
			Error: `graph: unknown name: "Y, the \"first\""`,
		},
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"json": FormatJSON, "CSV": FormatCSV, "yml": FormatYAML, "yaml": FormatYAML} {
		got, err := ParseFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)

	assert.Equal(t, FormatCSV, FormatFor("out/results.csv"))
	assert.Equal(t, FormatYAML, FormatFor("results.YML"))
	assert.Equal(t, FormatJSON, FormatFor("results"))
	assert.Equal(t, FormatJSON, FormatFor("results.txt"))
}

func TestEncode_JSON(t *testing.T) {
	data, err := Encode(sampleResults(), FormatJSON)
	require.NoError(t, err)

	var back []Result
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, sampleResults(), back)
}

func TestEncode_YAML(t *testing.T) {
	data, err := Encode(sampleResults(), FormatYAML)
	require.NoError(t, err)

	var back []Result
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, sampleResults(), back)
}

func TestEncode_CSV(t *testing.T) {
	data, err := Encode(sampleResults(), FormatCSV)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, "Cat --> Mammal --> Dog", rows[1][7])
	assert.Equal(t, "1.250", rows[1][9])
	assert.Equal(t, "-1", rows[2][6])
	assert.Equal(t, sampleResults()[1].Error, rows[2][10])
}

func TestWrite_LocalStore(t *testing.T) {
	ctx := context.Background()
	blobs := storage.NewLocalStore(t.TempDir())

	require.NoError(t, Write(ctx, blobs, "out/report.csv", FormatCSV, sampleResults()))

	rc, err := blobs.Open(ctx, "out/report.csv")
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Cat --> Mammal --> Dog")

	assert.Error(t, Write(ctx, blobs, "x", Format("xml"), nil))
}
