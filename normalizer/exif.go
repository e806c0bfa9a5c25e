package normalizer

import (
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// maximum distance into image to look for EXIF tags
const maxExifSize = 1 << 20

// reorient applies the rotation/flip encoded in the EXIF Orientation tag so
// the normalized output matches what the uploader saw.
// http://sylvana.net/jpegcrop/exif_orientation.html
func reorient(r io.Reader, img image.Image) image.Image {
	exf, err := exif.Decode(io.LimitReader(r, maxExifSize))
	if err != nil {
		return img
	}

	tag, err := exf.Get(exif.Orientation)
	if err != nil {
		return img
	}

	orient, err := tag.Int(0)
	if err != nil {
		return img
	}

	switch orient {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	}

	return img
}
