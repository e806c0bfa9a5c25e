package product

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"suzurigw/media"
	"suzurigw/normalizer"
)

// UploadedFile describes a normalized image persisted for later pickup.
type UploadedFile struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Size   int    `json:"size"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
}

// SaveUpload normalizes a single image and writes it to the temp storage.
// Nothing is sent to the marketplace.
func (s *Service) SaveUpload(ctx context.Context, asset media.ImageAsset) (*UploadedFile, error) {
	if asset.None() {
		return nil, media.FieldError("file", "No file uploaded")
	}

	img, err := s.normalizer.Normalize(asset, normalizer.FrontSide)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("upload_%s.png", uuid.NewString())

	item, err := s.storage.Put(ctx, name, bytes.NewReader(img.Bytes))
	if err != nil {
		return nil, errors.Wrapf(err, "could not persist upload %s", name)
	}

	return &UploadedFile{
		Name:   name,
		Path:   item.Path,
		Size:   len(img.Bytes),
		Width:  img.Width,
		Height: img.Height,
		Format: "png",
	}, nil
}
