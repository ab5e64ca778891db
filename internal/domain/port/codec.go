package port

import "image"

// ImageCodec кодирует и декодирует снимки
type ImageCodec interface {
	Decode(data []byte) (image.Image, error)
	Encode(img image.Image) ([]byte, error)
}
