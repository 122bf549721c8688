package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Zuo-Peng/epoch-converter/internal/timestamp"
)

func sampleItems(t *testing.T) []timestamp.BatchItem {
	t.Helper()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	res := timestamp.ConvertBatchAt([]string{"0", "abc", "1640995200"}, timestamp.Seconds, "UTC", now)
	require.Equal(t, 3, res.Total)
	return res.Items
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, sampleItems(t)))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, Header, rows[0])

	assert.Equal(t, "0", rows[1][0])
	assert.Equal(t, "0", rows[1][1])
	assert.Equal(t, "seconds", rows[1][2])
	assert.Equal(t, "1970-01-01T00:00:00.000Z", rows[1][5])
	assert.Empty(t, rows[1][6])

	assert.Equal(t, "abc", rows[2][0])
	assert.Empty(t, rows[2][1])
	assert.Equal(t, timestamp.ReasonInvalidTimestamp, rows[2][6])

	assert.Equal(t, "2022-01-01T00:00:00.000Z", rows[3][5])
}

func TestCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, nil))
	assert.Equal(t, "input,timestamp,unit,utc,local,iso8601,error\n", buf.String())
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sampleItems(t)))
	assert.Contains(t, buf.String(), "\n  {")

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Contains(t, got[0], "result")
	assert.NotContains(t, got[1], "result")
	assert.Equal(t, "invalid timestamp", got[1]["error"])

	buf.Reset()
	require.NoError(t, JSON(&buf, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, YAML(&buf, sampleItems(t)))

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "abc", got[1]["input"])
	res, ok := got[2]["result"].(map[string]any)
	require.True(t, ok)
	hr := res["humanReadable"].(map[string]any)
	assert.Equal(t, "2022-01-01T00:00:00.000Z", hr["iso8601"])
}

func TestParseFormatAndWrite(t *testing.T) {
	f, err := ParseFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, nil))
	assert.ErrorIs(t, Write(&buf, Format("xml"), nil), ErrUnknownFormat)
}
