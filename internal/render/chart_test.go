package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcary/tide-tracker/internal/models"
)

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WritePNG(sinusoidSeries(models.SourceLive), 400, 300, &buf))

	// PNG signature.
	require.Greater(t, buf.Len(), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, buf.Bytes()[:4])
}

func TestWritePNGRejectsInvalidSeries(t *testing.T) {
	var buf bytes.Buffer
	series := sinusoidSeries(models.SourceLive)
	series.Samples = series.Samples[1:]

	require.Error(t, WritePNG(series, 400, 300, &buf))
	assert.Zero(t, buf.Len())
}
