package normalizer

import (
	"bytes"
	"image"
	_ "image/jpeg" // decoder registration
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	_ "golang.org/x/image/webp" // decoder registration

	"suzurigw/media"
)

// ErrBadImage marks an upload that passed the declared shape checks but whose
// bytes could not be decoded or re-encoded.
var ErrBadImage = errors.New("normalizer cannot process image")

const (
	// MaxBytes is the upload ceiling, checked before any decoding work.
	MaxBytes = 10 << 20

	// Bound is the box every image must fit into. Larger images are scaled
	// down, smaller ones are left untouched.
	Bound = 2000
)

// Side tells the normalizer which print side an upload belongs to, so that
// rejection messages name the right form field.
type Side string

const (
	FrontSide Side = "front"
	BackSide  Side = "back"
)

func (s Side) field() string {
	if s == BackSide {
		return "fileBack"
	}

	return "file"
}

func (s Side) formatMessage() string {
	if s == BackSide {
		return "Invalid back file format. Allowed formats: JPEG, PNG, WebP"
	}

	return "Invalid file format. Allowed formats: JPEG, PNG, WebP"
}

func (s Side) sizeMessage() string {
	if s == BackSide {
		return "Back file size exceeds maximum limit of 10MB"
	}

	return "File size exceeds maximum limit of 10MB"
}

type Config struct {
	MaxBytes int64
	Bound    int
}

type Normalizer struct {
	cfg Config
}

func New(cfg Config) *Normalizer {
	if cfg.MaxBytes == 0 {
		cfg.MaxBytes = MaxBytes
	}

	if cfg.Bound == 0 {
		cfg.Bound = Bound
	}

	return &Normalizer{cfg: cfg}
}

// Normalize validates an upload and transcodes it into the canonical PNG form
// the marketplace consumes. Declared MIME type and byte size are rejected with
// a ValidationError before any decoding happens; bytes that cannot be decoded
// surface as ErrBadImage.
func (n *Normalizer) Normalize(asset media.ImageAsset, side Side) (*media.NormalizedImage, error) {
	if !media.MimeAllowed(asset.Mime) {
		return nil, media.FieldError(side.field(), side.formatMessage())
	}

	if asset.ByteLen() > n.cfg.MaxBytes {
		return nil, media.FieldError(side.field(), side.sizeMessage())
	}

	img, format, err := image.Decode(bytes.NewReader(asset.Bytes))
	if err != nil {
		return nil, errors.Wrapf(ErrBadImage, "could not decode %s image: %v", side, err)
	}

	if format == "jpeg" {
		img = reorient(bytes.NewReader(asset.Bytes), img)
	}

	if b := img.Bounds(); b.Dx() > n.cfg.Bound || b.Dy() > n.cfg.Bound {
		img = imaging.Fit(img, n.cfg.Bound, n.cfg.Bound, imaging.Lanczos)
	}

	buf := &bytes.Buffer{}
	if err := png.Encode(buf, img); err != nil {
		return nil, errors.Wrapf(ErrBadImage, "could not encode %s image to png: %v", side, err)
	}

	b := img.Bounds()

	return &media.NormalizedImage{
		Bytes:  buf.Bytes(),
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}
