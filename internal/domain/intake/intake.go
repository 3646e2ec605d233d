package intake

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"net/http"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	apperrors "github.com/skinlab/skinanalyzer/pkg/errors"
)

// DefaultMaxUploadBytes caps uploaded photos at 10 MiB.
const DefaultMaxUploadBytes = 10 << 20

var allowedMIMEs = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/webp": {},
}

// Preview is the in-memory representation of an accepted photo. DataURL is
// what the vision gateway receives.
type Preview struct {
	MIME    string
	Size    int64
	Width   int
	Height  int
	DataURL string
}

// Process validates an uploaded photo and produces its preview. Rejections
// carry the invalid_input code and a user-displayable reason; the declared
// MIME type is ignored in favor of sniffing the payload.
func Process(ctx context.Context, data []byte, maxBytes int64) (Preview, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}
	if len(data) == 0 {
		return Preview{}, apperrors.Wrap("invalid_input", "Изображение не предоставлено", nil)
	}
	if int64(len(data)) > maxBytes {
		return Preview{}, apperrors.Wrap("invalid_input", "Размер файла не должен превышать 10 МБ", nil)
	}

	mime := http.DetectContentType(data)
	if _, ok := allowedMIMEs[mime]; !ok {
		return Preview{}, apperrors.Wrap("invalid_input", "Поддерживаются только JPG, PNG и WebP форматы", nil)
	}

	cfg, err := decodeConfig(ctx, data)
	if err != nil {
		return Preview{}, apperrors.Wrap("invalid_input", "Не удалось обработать изображение, попробуйте другой файл", err)
	}

	return Preview{
		MIME:    mime,
		Size:    int64(len(data)),
		Width:   cfg.Width,
		Height:  cfg.Height,
		DataURL: fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data)),
	}, nil
}

// decodeConfig proves the payload is a real image. The decode runs as a
// single-shot operation bounded by ctx so a pathological file can never hang
// the caller.
func decodeConfig(ctx context.Context, data []byte) (image.Config, error) {
	if err := ctx.Err(); err != nil {
		return image.Config{}, err
	}
	type outcome struct {
		cfg image.Config
		err error
	}
	ch := make(chan outcome, 1)
	go func() {
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		ch <- outcome{cfg: cfg, err: err}
	}()

	select {
	case <-ctx.Done():
		return image.Config{}, ctx.Err()
	case out := <-ch:
		return out.cfg, out.err
	}
}
