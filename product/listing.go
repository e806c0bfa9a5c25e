package product

import (
	"context"

	"suzurigw/media"
	"suzurigw/suzuri"
)

// CatalogItem is the simplified item type shape exposed to the frontend.
type CatalogItem struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	ExemplaryAngle string `json:"exemplaryAngle"`
	Published      bool   `json:"published"`
	VariantCount   int    `json:"variantCount"`
}

// CatalogItems lists the purchasable item types.
func (s *Service) CatalogItems(ctx context.Context) ([]CatalogItem, error) {
	items, err := s.marketplace.Items(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]CatalogItem, 0, len(items))
	for _, item := range items {
		name := item.HumanizeName
		if name == "" {
			name = item.Name
		}

		out = append(out, CatalogItem{
			ID:             item.ID,
			Name:           name,
			ExemplaryAngle: item.ExemplaryAngle,
			Published:      item.Published,
			VariantCount:   len(item.Variants),
		})
	}

	return out, nil
}

type ListParams struct {
	UserID     int
	UserName   string
	MaterialID int
	media.Pagination
}

type ListedItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type ListedMaterial struct {
	ID           int    `json:"id"`
	Title        string `json:"title,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

type ListedProduct struct {
	ID             int             `json:"id"`
	Title          string          `json:"title"`
	URL            string          `json:"url"`
	SampleImageURL string          `json:"sampleImageUrl,omitempty"`
	Published      bool            `json:"published"`
	CreatedAt      string          `json:"createdAt,omitempty"`
	UpdatedAt      string          `json:"updatedAt,omitempty"`
	Price          *int            `json:"price,omitempty"`
	PriceWithTax   *int            `json:"priceWithTax,omitempty"`
	Item           *ListedItem     `json:"item,omitempty"`
	Material       *ListedMaterial `json:"material,omitempty"`
}

type ListingPagination struct {
	Limit    int  `json:"limit"`
	Offset   int  `json:"offset"`
	Count    int  `json:"count"`
	Filtered bool `json:"filtered"`
}

type ProductListing struct {
	Success    bool              `json:"success"`
	Products   []ListedProduct   `json:"products"`
	Pagination ListingPagination `json:"pagination"`
}

// UserProducts lists a user's products with completed browsable URLs. The
// material filter is passed upstream and applied again on the result set,
// which is what drives the filtered/count fields of the pagination block.
func (s *Service) UserProducts(ctx context.Context, params ListParams) (*ProductListing, error) {
	if params.UserID == 0 && params.UserName == "" {
		return nil, media.FieldError("userId", "Either userId or userName parameter is required")
	}

	page, err := s.marketplace.UserProducts(ctx, suzuri.ProductQuery{
		UserID:     params.UserID,
		UserName:   params.UserName,
		MaterialID: params.MaterialID,
		Pagination: params.Pagination,
	})
	if err != nil {
		return nil, err
	}

	listed := make([]ListedProduct, 0, len(page.Products))
	for _, p := range page.Products {
		if params.MaterialID != 0 && (p.Material == nil || p.Material.ID != params.MaterialID) {
			continue
		}

		listed = append(listed, reshapeListed(p, params.UserName))
	}

	pagination := ListingPagination{
		Limit:  page.Limit,
		Offset: page.Offset,
		Count:  page.Count,
	}
	if params.MaterialID != 0 {
		pagination.Count = len(listed)
		pagination.Filtered = true
	}

	return &ProductListing{Success: true, Products: listed, Pagination: pagination}, nil
}

func reshapeListed(p suzuri.Product, fallbackUsername string) ListedProduct {
	username := fallbackUsername
	var materialID int
	if p.Material != nil {
		materialID = p.Material.ID
		if p.Material.User != nil && p.Material.User.Name != "" {
			username = p.Material.User.Name
		}
	}

	completeURL := p.SampleURL
	if completeURL == "" {
		if materialID != 0 && p.Item != nil && p.SampleItemVariant != nil {
			var size, color string
			if p.SampleItemVariant.Size != nil {
				size = p.SampleItemVariant.Size.Name
			}
			if p.SampleItemVariant.Color != nil {
				color = p.SampleItemVariant.Color.Name
			}

			completeURL = BuildURL(username, materialID, p.Item.Name, size, color)
		} else {
			completeURL = p.URL
		}
	}

	listed := ListedProduct{
		ID:             p.ID,
		Title:          p.Title,
		URL:            completeURL,
		SampleImageURL: p.SampleImageURL,
		Published:      p.Published,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		Price:          p.Price,
		PriceWithTax:   p.PriceWithTax,
	}

	if p.Item != nil {
		name := p.Item.HumanizeName
		if name == "" {
			name = p.Item.Name
		}

		listed.Item = &ListedItem{ID: p.Item.ID, Name: name}
	}

	if p.Material != nil {
		listed.Material = &ListedMaterial{
			ID:           materialID,
			Title:        p.Material.Title,
			ThumbnailURL: p.Material.ThumbnailURL,
		}
	}

	return listed
}
