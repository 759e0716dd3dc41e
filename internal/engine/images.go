package engine

import (
	"fmt"
	"image"
	_ "image/png" // Sprite sheets are PNG
	"io"
	"io/fs"
)

// DecodeFunc turns encoded image bytes into an image handle.
type DecodeFunc func(r io.Reader) (image.Image, error)

// DecodeImage decodes any registered image format into a plain image.Image.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	return img, err
}

// FSImageLoader loads images from a file system on a background goroutine,
// reporting through the ImageLoader callbacks.
type FSImageLoader struct {
	FS     fs.FS
	Decode DecodeFunc // Defaults to DecodeImage
}

// Load implements ImageLoader.
func (l FSImageLoader) Load(source string, onLoad func(image.Image), onError func(error)) {
	decode := l.Decode
	if decode == nil {
		decode = DecodeImage
	}

	go func() {
		f, err := l.FS.Open(source)
		if err != nil {
			onError(err)
			return
		}
		defer f.Close()

		img, err := decode(f)
		if err != nil {
			onError(fmt.Errorf("decode image: %w", err))
			return
		}
		onLoad(img)
	}()
}
