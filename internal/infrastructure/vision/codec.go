package vision

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // регистрация декодера PNG

	_ "golang.org/x/image/webp" // снимки из мессенджеров часто в webp
)

// Decode превращает байты изображения в image.Image.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, errors.New("empty image")
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// EncodeJPEG кодирует снимок для отправки.
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JPEGCodec кодек снимков для отправки.
type JPEGCodec struct {
	Quality int
}

// Decode декодирует JPEG, PNG или WebP.
func (c JPEGCodec) Decode(data []byte) (image.Image, error) {
	return Decode(data)
}

// Encode кодирует кадр в JPEG.
func (c JPEGCodec) Encode(img image.Image) ([]byte, error) {
	q := c.Quality
	if q <= 0 {
		q = 90
	}
	return EncodeJPEG(img, q)
}
