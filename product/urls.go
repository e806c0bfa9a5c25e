package product

import (
	"fmt"

	"github.com/gosimple/slug"
)

const marketplaceBaseURL = "https://suzuri.jp"

// Literal fallbacks for URL segments the upstream response may not contain.
// Substituting them keeps every generated URL well formed.
const (
	defaultUsername    = "suzuri"
	defaultItemSegment = "product"
	defaultSize        = "s"
	defaultColor       = "white"
)

// The marketplace does not enumerate purchasable variants in its creation
// response, so the gateway synthesizes the standard matrix itself.
var (
	variantSizes  = []string{"s", "m", "l", "xl"}
	variantColors = []string{"white", "gray", "black", "navy", "red"}
)

// BuildURL renders the canonical browsable product page URL. Every call site
// that needs such a URL goes through here; the template must not drift.
func BuildURL(username string, materialID int, itemName, size, color string) string {
	if username == "" {
		username = defaultUsername
	}

	segment := defaultItemSegment
	if itemName != "" {
		segment = slug.Make(itemName)
	}

	if size == "" {
		size = defaultSize
	}

	if color == "" {
		color = defaultColor
	}

	return fmt.Sprintf("%s/%s/%d/%s/%s/%s", marketplaceBaseURL, username, materialID, segment, size, color)
}

// EnumerateVariants produces the full size by color matrix with a browsable
// URL per combination. It refuses to guess when the upstream result lacks the
// product page URL; a missing item name falls back to the builder's default
// segment.
func EnumerateVariants(username string, materialID int, itemName, productURL string) []Variant {
	variants := make([]Variant, 0, len(variantSizes)*len(variantColors))

	if productURL == "" {
		return variants
	}

	for _, size := range variantSizes {
		for _, color := range variantColors {
			variants = append(variants, Variant{
				Size:  size,
				Color: color,
				URL:   BuildURL(username, materialID, itemName, size, color),
			})
		}
	}

	return variants
}
