package codegen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuo-Peng/epoch-converter/internal/timestamp"
)

func TestExamples_AllLanguages(t *testing.T) {
	exs, err := Examples(1703556234, timestamp.Seconds)
	require.NoError(t, err)
	require.Len(t, exs, len(Languages))

	for i, ex := range exs {
		assert.Equal(t, Languages[i], ex.Language)
		assert.Contains(t, ex.Code, "1703556234", ex.ID)
	}

	js := exs[0].Code
	assert.Contains(t, js, "new Date(timestamp * 1000)")
	assert.Contains(t, js, `// Output: "2023-12-26T02:03:54.000Z"`)
	assert.Contains(t, js, "Math.floor(Date.now() / 1000)")
}

func TestForLanguage_UnitScaling(t *testing.T) {
	tests := []struct {
		lang string
		unit timestamp.Unit
		want []string
	}{
		{"javascript", timestamp.Milliseconds, []string{"new Date(timestamp)", "Math.floor(Date.now())"}},
		{"js", timestamp.Microseconds, []string{"new Date(timestamp / 1000)", "Date.now() * 1000"}},
		{"python", timestamp.Milliseconds, []string{"fromtimestamp(timestamp / 1000,", "int(now.timestamp() * 1000)"}},
		{"PHP", timestamp.Seconds, []string{"(int) ($timestamp)", "(int) (microtime(true))"}},
		{"java", timestamp.Microseconds, []string{"Instant.ofEpochMilli(timestamp / 1000)", "System.currentTimeMillis() * 1000"}},
		{"golang", timestamp.Milliseconds, []string{"time.UnixMilli(ts).UTC()", "time.Now().UnixMilli()"}},
		{"go", timestamp.Seconds, []string{"time.Unix(ts, 0).UTC()", "time.Now().Unix()"}},
	}
	for _, tt := range tests {
		ex, err := ForLanguage(tt.lang, 1640995200, tt.unit)
		require.NoError(t, err, tt.lang)
		for _, w := range tt.want {
			assert.Contains(t, ex.Code, w, "%s/%s", tt.lang, tt.unit)
		}
	}
}

func TestForLanguage_FractionalInput(t *testing.T) {
	ex, err := ForLanguage("python", 1.5, timestamp.Seconds)
	require.NoError(t, err)
	assert.Contains(t, ex.Code, "timestamp = 1.5")

	ex, err = ForLanguage("java", 1.5, timestamp.Seconds)
	require.NoError(t, err)
	assert.Contains(t, ex.Code, "long timestamp = 1L;")
}

func TestExamples_OutOfRangeOmitsOutput(t *testing.T) {
	ex, err := ForLanguage("javascript", 9e15, timestamp.Seconds)
	require.NoError(t, err)
	assert.NotContains(t, ex.Code, "// Output:")
}

func TestExamples_Errors(t *testing.T) {
	_, err := ForLanguage("cobol", 0, timestamp.Seconds)
	assert.ErrorIs(t, err, ErrUnknownLanguage)

	_, err = Examples(0, timestamp.Unit("minutes"))
	assert.ErrorIs(t, err, timestamp.ErrUnknownUnit)

	_, err = Examples(math.NaN(), timestamp.Seconds)
	assert.ErrorIs(t, err, timestamp.ErrInvalidTimestamp)
}

func TestLookup(t *testing.T) {
	lang, ok := Lookup(" JavaScript ")
	assert.True(t, ok)
	assert.Equal(t, "javascript", lang.ID)

	_, ok = Lookup("rust")
	assert.False(t, ok)
}
