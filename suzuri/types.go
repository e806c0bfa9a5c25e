package suzuri

// The SUZURI API returns deeply partial objects: any nested field may be
// absent, so every nested object is a pointer and must be nil-checked by
// consumers.

type User struct {
	Name string `json:"name"`
}

type Material struct {
	ID           int    `json:"id"`
	Title        string `json:"title,omitempty"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	User         *User  `json:"user,omitempty"`
}

type VariantAttribute struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
}

type ItemVariant struct {
	ID    int               `json:"id"`
	Price int               `json:"price,omitempty"`
	Size  *VariantAttribute `json:"size,omitempty"`
	Color *VariantAttribute `json:"color,omitempty"`
}

// ItemVariantOption is the flat variant shape the item catalog endpoint uses.
type ItemVariantOption struct {
	ID    int    `json:"id"`
	Color string `json:"color"`
	Size  string `json:"size"`
	Price int    `json:"price"`
}

type Item struct {
	ID             int                 `json:"id"`
	Name           string              `json:"name"`
	HumanizeName   string              `json:"humanizeName,omitempty"`
	ExemplaryAngle string              `json:"exemplaryAngle,omitempty"`
	Published      bool                `json:"published"`
	Variants       []ItemVariantOption `json:"variants,omitempty"`
}

type Product struct {
	ID                int          `json:"id"`
	Title             string       `json:"title"`
	URL               string       `json:"url,omitempty"`
	SampleURL         string       `json:"sampleUrl,omitempty"`
	SampleImageURL    string       `json:"sampleImageUrl,omitempty"`
	Published         bool         `json:"published"`
	ResizeMode        string       `json:"resizeMode,omitempty"`
	CreatedAt         string       `json:"createdAt,omitempty"`
	UpdatedAt         string       `json:"updatedAt,omitempty"`
	Price             *int         `json:"price,omitempty"`
	PriceWithTax      *int         `json:"priceWithTax,omitempty"`
	Item              *Item        `json:"item,omitempty"`
	Material          *Material    `json:"material,omitempty"`
	SampleItemVariant *ItemVariant `json:"sampleItemVariant,omitempty"`
}

// Payload shapes for POST /materials. The API mixes camelCase fields with the
// snake_case sub_materials key; the inconsistency is theirs, keep it.

type SubMaterial struct {
	Texture    string `json:"texture"`
	PrintSide  string `json:"printSide"`
	Enabled    bool   `json:"enabled"`
	ResizeMode string `json:"resizeMode,omitempty"`
}

type ProductSpec struct {
	ItemID       int           `json:"itemId"`
	Published    bool          `json:"published"`
	ResizeMode   string        `json:"resizeMode,omitempty"`
	SubMaterials []SubMaterial `json:"sub_materials,omitempty"`
}

type CreateMaterialRequest struct {
	Texture     string        `json:"texture"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Products    []ProductSpec `json:"products"`
}

type CreateMaterialResponse struct {
	Material *Material `json:"material,omitempty"`
	Products []Product `json:"products,omitempty"`
}
