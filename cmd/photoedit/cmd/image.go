package cmd

import (
	"image"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"

	"github.com/go-drift/photoedit/pkg/errors"
)

// loadImage decodes the image at path, applying EXIF orientation, into a
// premultiplied RGBA buffer with its origin at (0, 0).
func loadImage(path string) (*image.RGBA, error) {
	src, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &errors.EditError{Op: "cmd.loadImage", Kind: errors.KindIO, Path: path, Err: err}
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst, nil
}

// saveImage encodes img in the format implied by the extension of path.
func saveImage(path string, img image.Image) error {
	if err := imaging.Save(img, path, imaging.JPEGQuality(95)); err != nil {
		return &errors.EditError{Op: "cmd.saveImage", Kind: errors.KindIO, Path: path, Err: err}
	}
	return nil
}
