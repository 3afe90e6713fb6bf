package output

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/cwbudde/algo-neuro/internal/pipeline"
)

func sampleResult() pipeline.Result {
	return pipeline.Result{
		Session:  "A2929 200711",
		Analysis: "place",
		Kind:     pipeline.KindTuningCurve,
		Data: &pipeline.TuningData{
			Centers:   pipeline.Series{0.25, 0.75},
			Occupancy: pipeline.Series{10, 0},
			Units:     []int{3},
			Curves:    []pipeline.Series{{4, math.NaN()}},
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("msgpack")
	require.NoError(t, err)
	assert.Equal(t, FormatMsgpack, f)
	assert.Equal(t, ".msgpack", f.Ext())

	_, err = ParseFormat("csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestEncodeJSONWritesNaNAsNull(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatJSON, sampleResult()))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "place", got["analysis"])
	data := got["data"].(map[string]any)
	assert.Equal(t, []any{[]any{float64(4), nil}}, data["curves"])
}

func TestEncodeMsgpackUsesJSONNames(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, FormatMsgpack, sampleResult()))

	var got map[string]any
	require.NoError(t, msgpack.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "tuning_curve", got["kind"])
	data := got["data"].(map[string]any)
	curves := data["curves"].([]any)
	first := curves[0].([]any)
	assert.Equal(t, 4.0, first[0])
	assert.True(t, math.IsNaN(first[1].(float64)))
}

func TestEncodeUnknown(t *testing.T) {
	assert.ErrorIs(t, Encode(&bytes.Buffer{}, "xml", 1), ErrUnknownFormat)
}

func TestWriteDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	r := sampleResult()

	paths, err := WriteDir(dir, FormatJSON, []pipeline.Result{r, r})
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.NotEqual(t, paths[0], paths[1])
	assert.Equal(t, FileName(r, FormatJSON), filepath.Base(paths[0]))

	for _, p := range paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"session": "A2929 200711"`)
	}
}

func TestFileName(t *testing.T) {
	name := FileName(sampleResult(), FormatJSON)
	assert.Equal(t, ".json", filepath.Ext(name))
	assert.NotContains(t, name, " ")
}
