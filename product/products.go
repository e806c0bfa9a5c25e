package product

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"suzurigw/media"
	"suzurigw/normalizer"
	"suzurigw/storage"
	"suzurigw/suzuri"
)

// DefaultItemID is the t-shirt, used when the caller does not pick an item type.
const DefaultItemID = 1

// dualSidedItemIDs are the catalog items printed on both sides (full graphic
// t-shirt and clear file); they require a back image.
var dualSidedItemIDs = map[int]struct{}{8: {}, 101: {}}

// RequiresBackImage reports whether the item type prints a front and a back side.
func RequiresBackImage(itemID int) bool {
	_, ok := dualSidedItemIDs[itemID]
	return ok
}

// Marketplace is the slice of the SUZURI client the product use cases need.
type Marketplace interface {
	CreateMaterial(ctx context.Context, images suzuri.MaterialImages, req suzuri.CreateMaterialRequest) (*suzuri.CreateMaterialResponse, error)
	Items(ctx context.Context) ([]suzuri.Item, error)
	UserProducts(ctx context.Context, q suzuri.ProductQuery) (*suzuri.ProductPage, error)
}

// Service is a collection of use cases around marketplace products: creation,
// catalog listing, user product listing and temp uploads.
type Service struct {
	marketplace Marketplace
	normalizer  *normalizer.Normalizer
	storage     storage.Storage
	logger      *logrus.Logger
}

func NewService(m Marketplace, n *normalizer.Normalizer, s storage.Storage, logger *logrus.Logger) *Service {
	return &Service{
		marketplace: m,
		normalizer:  n,
		storage:     s,
		logger:      logger,
	}
}

type CreateParams struct {
	Front       media.ImageAsset
	Back        *media.ImageAsset
	Title       string
	Description string
	Published   bool
	ResizeMode  string // empty means the caller did not choose one
	ItemID      int
}

type CreatedProduct struct {
	ID             int    `json:"id"`
	Title          string `json:"title"`
	URL            string `json:"url"`
	SampleImageURL string `json:"sampleImageUrl"`
	SampleURL      string `json:"sampleUrl"`
	Published      bool   `json:"published"`
}

type MaterialRef struct {
	ID int `json:"id"`
}

type ItemSummary struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Variants []Variant `json:"variants"`
}

type Variant struct {
	Size  string `json:"size"`
	Color string `json:"color"`
	URL   string `json:"url"`
}

type CreationResult struct {
	Success  bool           `json:"success"`
	Product  CreatedProduct `json:"product"`
	Material MaterialRef    `json:"material"`
	Item     ItemSummary    `json:"item"`
}

// Create runs the whole creation pipeline: validate, normalize, call the
// marketplace, reshape. Any failure aborts the operation. A material that was
// registered upstream before a later stage failed is still reported as failure;
// there is no compensating delete.
func (s *Service) Create(ctx context.Context, params CreateParams) (*CreationResult, error) {
	itemID := params.ItemID
	if itemID == 0 {
		itemID = DefaultItemID
	}

	if err := validateCreate(params, itemID); err != nil {
		return nil, err
	}

	images, err := s.normalizeImages(params, itemID)
	if err != nil {
		return nil, err
	}

	frontMode := params.ResizeMode
	if frontMode == "" {
		frontMode = suzuri.ResizeContain
	}

	// an unset mode lets the client default the back side to cover
	images.BackResizeMode = params.ResizeMode

	req := suzuri.CreateMaterialRequest{
		Title:       params.Title,
		Description: params.Description,
		Products: []suzuri.ProductSpec{{
			ItemID:     itemID,
			Published:  params.Published,
			ResizeMode: frontMode,
		}},
	}

	resp, err := s.marketplace.CreateMaterial(ctx, images, req)
	if err != nil {
		upstreamFailures.Inc()
		return nil, err
	}

	result, err := reshapeCreation(resp, itemID)
	if err != nil {
		upstreamFailures.Inc()
		return nil, err
	}

	productsCreated.Inc()

	return result, nil
}

// validateCreate short-circuits on the first failure; nothing is normalized and
// no network call happens for invalid input.
func validateCreate(params CreateParams, itemID int) error {
	if params.Front.None() {
		return media.FieldError("file", "No file uploaded")
	}

	if RequiresBackImage(itemID) && (params.Back == nil || params.Back.None()) {
		return media.FieldError("fileBack", "Back image is required for Full Graphic T-shirt and Clear File")
	}

	if strings.TrimSpace(params.Title) == "" {
		return media.FieldError("title", "Title is required")
	}

	return nil
}

// normalizeImages transcodes the front image, and the back one for dual sided
// items. The two transforms are independent, so they run side by side.
func (s *Service) normalizeImages(params CreateParams, itemID int) (suzuri.MaterialImages, error) {
	var (
		images   suzuri.MaterialImages
		frontErr error
		backErr  error
		wg       sync.WaitGroup
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		images.Front, frontErr = s.normalizer.Normalize(params.Front, normalizer.FrontSide)
	}()

	if RequiresBackImage(itemID) && params.Back != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			images.Back, backErr = s.normalizer.Normalize(*params.Back, normalizer.BackSide)
		}()
	}

	wg.Wait()

	if frontErr != nil {
		return images, frontErr
	}

	if backErr != nil {
		return images, backErr
	}

	return images, nil
}

func reshapeCreation(resp *suzuri.CreateMaterialResponse, requestedItemID int) (*CreationResult, error) {
	if len(resp.Products) == 0 {
		// the HTTP call succeeded but the marketplace did not create anything
		return nil, &suzuri.UpstreamError{Message: "no product was created"}
	}

	p := resp.Products[0]

	var username string
	var materialID int
	if resp.Material != nil {
		materialID = resp.Material.ID
		if resp.Material.User != nil {
			username = resp.Material.User.Name
		}
	}

	completeURL := p.SampleURL
	if completeURL == "" {
		var itemName, size, color string
		if p.Item != nil {
			itemName = p.Item.Name
		}
		if v := p.SampleItemVariant; v != nil {
			if v.Size != nil {
				size = v.Size.Name
			}
			if v.Color != nil {
				color = v.Color.Name
			}
		}

		completeURL = BuildURL(username, materialID, itemName, size, color)
	}

	item := ItemSummary{ID: requestedItemID, Name: "Product", Variants: []Variant{}}
	if p.Item != nil {
		item.ID = p.Item.ID

		switch {
		case p.Item.HumanizeName != "":
			item.Name = p.Item.HumanizeName
		case p.Item.Name != "":
			item.Name = p.Item.Name
		}

		item.Variants = EnumerateVariants(username, materialID, p.Item.Name, p.URL)
	}

	return &CreationResult{
		Success: true,
		Product: CreatedProduct{
			ID:             p.ID,
			Title:          p.Title,
			URL:            completeURL,
			SampleImageURL: p.SampleImageURL,
			SampleURL:      p.SampleURL,
			Published:      p.Published,
		},
		Material: MaterialRef{ID: materialID},
		Item:     item,
	}, nil
}
