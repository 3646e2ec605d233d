package intake

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/skinlab/skinanalyzer/pkg/errors"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func TestProcessAcceptsPNG(t *testing.T) {
	data := pngBytes(t, 4, 3)

	preview, err := Process(context.Background(), data, 0)
	require.NoError(t, err)
	require.Equal(t, "image/png", preview.MIME)
	require.Equal(t, int64(len(data)), preview.Size)
	require.Equal(t, 4, preview.Width)
	require.Equal(t, 3, preview.Height)
	require.True(t, strings.HasPrefix(preview.DataURL, "data:image/png;base64,"))
}

func TestProcessRejectsUnsupportedType(t *testing.T) {
	_, err := Process(context.Background(), []byte("%PDF-1.7 not an image"), 0)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
	require.Contains(t, err.Error(), "JPG, PNG и WebP")
}

func TestProcessRejectsOversize(t *testing.T) {
	data := pngBytes(t, 2, 2)

	_, err := Process(context.Background(), data, int64(len(data))-1)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
	require.Contains(t, err.Error(), "10 МБ")
}

func TestProcessRejectsEmptyPayload(t *testing.T) {
	_, err := Process(context.Background(), nil, 0)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestProcessRejectsCorruptImage(t *testing.T) {
	// Valid PNG magic bytes, garbage after: sniffing passes, decoding must
	// surface an error instead of hanging.
	data := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0xAB}, 64)...)

	_, err := Process(context.Background(), data, 0)
	require.Error(t, err)
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestProcessHonorsContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := Process(ctx, pngBytes(t, 2, 2), 0)
	require.Error(t, err)
}
