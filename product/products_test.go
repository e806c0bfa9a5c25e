package product

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suzurigw/media"
	"suzurigw/normalizer"
	"suzurigw/suzuri"
)

type fakeMarketplace struct {
	createCalls int
	lastImages  suzuri.MaterialImages
	lastRequest suzuri.CreateMaterialRequest
	createResp  *suzuri.CreateMaterialResponse
	createErr   error

	items    []suzuri.Item
	itemsErr error

	page      *suzuri.ProductPage
	pageErr   error
	lastQuery suzuri.ProductQuery
}

func (f *fakeMarketplace) CreateMaterial(_ context.Context, images suzuri.MaterialImages, req suzuri.CreateMaterialRequest) (*suzuri.CreateMaterialResponse, error) {
	f.createCalls++
	f.lastImages = images
	f.lastRequest = req

	if f.createErr != nil {
		return nil, f.createErr
	}

	return f.createResp, nil
}

func (f *fakeMarketplace) Items(_ context.Context) ([]suzuri.Item, error) {
	if f.itemsErr != nil {
		return nil, f.itemsErr
	}

	return f.items, nil
}

func (f *fakeMarketplace) UserProducts(_ context.Context, q suzuri.ProductQuery) (*suzuri.ProductPage, error) {
	f.lastQuery = q

	if f.pageErr != nil {
		return nil, f.pageErr
	}

	return f.page, nil
}

func validPNG(t *testing.T, width, height int) media.ImageAsset {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	buf := &bytes.Buffer{}
	require.NoError(t, png.Encode(buf, img))

	return media.ImageAsset{Bytes: buf.Bytes(), Mime: media.MimePNG}
}

func fullCreateResponse() *suzuri.CreateMaterialResponse {
	return &suzuri.CreateMaterialResponse{
		Material: &suzuri.Material{ID: 42, User: &suzuri.User{Name: "alice"}},
		Products: []suzuri.Product{{
			ID:    7,
			Title: "Test",
			URL:   "https://suzuri.jp/alice/42/tshirt",
			Item:  &suzuri.Item{ID: 1, Name: "tshirt", HumanizeName: "T-Shirt"},
			SampleItemVariant: &suzuri.ItemVariant{
				Size:  &suzuri.VariantAttribute{Name: "m"},
				Color: &suzuri.VariantAttribute{Name: "black"},
			},
		}},
	}
}

func newTestService(m Marketplace) *Service {
	return NewService(m, normalizer.New(normalizer.Config{}), nil, nil)
}

func TestService_Create_Validation(t *testing.T) {
	t.Run("a missing front image fails before anything else runs", func(t *testing.T) {
		m := &fakeMarketplace{}
		s := newTestService(m)

		result, err := s.Create(context.Background(), CreateParams{Title: "Test"})
		assert.Nil(t, result)

		var vErr *media.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "No file uploaded", vErr.Errors()["file"])
		assert.Equal(t, 0, m.createCalls)
	})

	t.Run("dual sided items require a back image before any network call", func(t *testing.T) {
		for _, itemID := range []int{8, 101} {
			m := &fakeMarketplace{}
			s := newTestService(m)

			_, err := s.Create(context.Background(), CreateParams{
				Front:  validPNG(t, 50, 50),
				Title:  "Test",
				ItemID: itemID,
			})

			var vErr *media.ValidationError
			require.True(t, errors.As(err, &vErr), "itemId %d", itemID)
			assert.Equal(t, "Back image is required for Full Graphic T-shirt and Clear File", vErr.Errors()["fileBack"])
			assert.Equal(t, 0, m.createCalls)
		}
	})

	t.Run("single sided items do not require a back image", func(t *testing.T) {
		for _, itemID := range []int{0, 1, 2, 100} {
			m := &fakeMarketplace{createResp: fullCreateResponse()}
			s := newTestService(m)

			result, err := s.Create(context.Background(), CreateParams{
				Front:  validPNG(t, 50, 50),
				Title:  "Test",
				ItemID: itemID,
			})
			require.NoError(t, err, "itemId %d", itemID)
			assert.True(t, result.Success)
		}
	})

	t.Run("a blank title is rejected", func(t *testing.T) {
		m := &fakeMarketplace{}
		s := newTestService(m)

		_, err := s.Create(context.Background(), CreateParams{
			Front: validPNG(t, 50, 50),
			Title: "   ",
		})

		var vErr *media.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "Title is required", vErr.Errors()["title"])
		assert.Equal(t, 0, m.createCalls)
	})

	t.Run("the back image check precedes the title check", func(t *testing.T) {
		m := &fakeMarketplace{}
		s := newTestService(m)

		_, err := s.Create(context.Background(), CreateParams{
			Front:  validPNG(t, 50, 50),
			ItemID: 8,
		})

		var vErr *media.ValidationError
		require.True(t, errors.As(err, &vErr))
		_, hasBack := vErr.Errors()["fileBack"]
		assert.True(t, hasBack)
	})
}

func TestService_Create_Normalization(t *testing.T) {
	t.Run("a corrupt front image aborts the pipeline", func(t *testing.T) {
		m := &fakeMarketplace{createResp: fullCreateResponse()}
		s := newTestService(m)

		_, err := s.Create(context.Background(), CreateParams{
			Front: media.ImageAsset{Bytes: []byte("garbage"), Mime: media.MimePNG},
			Title: "Test",
		})

		assert.True(t, errors.Is(err, normalizer.ErrBadImage))
		assert.Equal(t, 0, m.createCalls)
	})

	t.Run("a bad back image is reported as the back image", func(t *testing.T) {
		m := &fakeMarketplace{createResp: fullCreateResponse()}
		s := newTestService(m)

		back := media.ImageAsset{Bytes: []byte{0x01}, Mime: "image/gif"}

		_, err := s.Create(context.Background(), CreateParams{
			Front:  validPNG(t, 50, 50),
			Back:   &back,
			Title:  "Test",
			ItemID: 8,
		})

		var vErr *media.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "Invalid back file format. Allowed formats: JPEG, PNG, WebP", vErr.Errors()["fileBack"])
		assert.Equal(t, 0, m.createCalls)
	})

	t.Run("both sides are normalized for dual sided items", func(t *testing.T) {
		m := &fakeMarketplace{createResp: fullCreateResponse()}
		s := newTestService(m)

		back := validPNG(t, 60, 60)

		_, err := s.Create(context.Background(), CreateParams{
			Front:  validPNG(t, 50, 50),
			Back:   &back,
			Title:  "Test",
			ItemID: 101,
		})
		require.NoError(t, err)

		require.NotNil(t, m.lastImages.Front)
		require.NotNil(t, m.lastImages.Back)
		assert.Equal(t, 50, m.lastImages.Front.Width)
		assert.Equal(t, 60, m.lastImages.Back.Width)
	})

	t.Run("a back image on a single sided item is ignored", func(t *testing.T) {
		m := &fakeMarketplace{createResp: fullCreateResponse()}
		s := newTestService(m)

		back := validPNG(t, 60, 60)

		_, err := s.Create(context.Background(), CreateParams{
			Front:  validPNG(t, 50, 50),
			Back:   &back,
			Title:  "Test",
			ItemID: 1,
		})
		require.NoError(t, err)

		assert.Nil(t, m.lastImages.Back)
	})
}

func TestService_Create_Payload(t *testing.T) {
	t.Run("defaults: item 1, contain front, unset back mode", func(t *testing.T) {
		m := &fakeMarketplace{createResp: fullCreateResponse()}
		s := newTestService(m)

		_, err := s.Create(context.Background(), CreateParams{
			Front:     validPNG(t, 50, 50),
			Title:     "Test",
			Published: true,
		})
		require.NoError(t, err)

		require.Len(t, m.lastRequest.Products, 1)
		spec := m.lastRequest.Products[0]
		assert.Equal(t, DefaultItemID, spec.ItemID)
		assert.True(t, spec.Published)
		assert.Equal(t, suzuri.ResizeContain, spec.ResizeMode)
		assert.Equal(t, "", m.lastImages.BackResizeMode)
	})

	t.Run("an explicit resize mode applies to both sides", func(t *testing.T) {
		m := &fakeMarketplace{createResp: fullCreateResponse()}
		s := newTestService(m)

		back := validPNG(t, 60, 60)

		_, err := s.Create(context.Background(), CreateParams{
			Front:      validPNG(t, 50, 50),
			Back:       &back,
			Title:      "Test",
			ItemID:     8,
			ResizeMode: suzuri.ResizeCover,
		})
		require.NoError(t, err)

		assert.Equal(t, suzuri.ResizeCover, m.lastRequest.Products[0].ResizeMode)
		assert.Equal(t, suzuri.ResizeCover, m.lastImages.BackResizeMode)
	})

	t.Run("title and description are forwarded", func(t *testing.T) {
		m := &fakeMarketplace{createResp: fullCreateResponse()}
		s := newTestService(m)

		_, err := s.Create(context.Background(), CreateParams{
			Front:       validPNG(t, 50, 50),
			Title:       "My design",
			Description: "hand drawn",
		})
		require.NoError(t, err)

		assert.Equal(t, "My design", m.lastRequest.Title)
		assert.Equal(t, "hand drawn", m.lastRequest.Description)
	})
}

func TestService_Create_Reshaping(t *testing.T) {
	t.Run("synthesizes the canonical URL when sampleUrl is missing", func(t *testing.T) {
		m := &fakeMarketplace{createResp: fullCreateResponse()}
		s := newTestService(m)

		result, err := s.Create(context.Background(), CreateParams{
			Front: validPNG(t, 500, 500),
			Title: "Test",
		})
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.Equal(t, 7, result.Product.ID)
		assert.Equal(t, "https://suzuri.jp/alice/42/tshirt/m/black", result.Product.URL)
		assert.Equal(t, 42, result.Material.ID)
		assert.Equal(t, "T-Shirt", result.Item.Name)
		assert.Len(t, result.Item.Variants, 20)
	})

	t.Run("prefers the upstream sampleUrl verbatim", func(t *testing.T) {
		resp := fullCreateResponse()
		resp.Products[0].SampleURL = "https://suzuri.jp/alice/42/tshirt/l/navy"

		m := &fakeMarketplace{createResp: resp}
		s := newTestService(m)

		result, err := s.Create(context.Background(), CreateParams{
			Front: validPNG(t, 50, 50),
			Title: "Test",
		})
		require.NoError(t, err)

		assert.Equal(t, "https://suzuri.jp/alice/42/tshirt/l/navy", result.Product.URL)
		assert.Equal(t, "https://suzuri.jp/alice/42/tshirt/l/navy", result.Product.SampleURL)
	})

	t.Run("variant URLs follow the shared template", func(t *testing.T) {
		m := &fakeMarketplace{createResp: fullCreateResponse()}
		s := newTestService(m)

		result, err := s.Create(context.Background(), CreateParams{
			Front: validPNG(t, 50, 50),
			Title: "Test",
		})
		require.NoError(t, err)

		assert.Equal(t, Variant{
			Size:  "s",
			Color: "white",
			URL:   "https://suzuri.jp/alice/42/tshirt/s/white",
		}, result.Item.Variants[0])
	})

	t.Run("no variants when the upstream item is missing", func(t *testing.T) {
		resp := fullCreateResponse()
		resp.Products[0].Item = nil

		m := &fakeMarketplace{createResp: resp}
		s := newTestService(m)

		result, err := s.Create(context.Background(), CreateParams{
			Front:  validPNG(t, 50, 50),
			Title:  "Test",
			ItemID: 5,
		})
		require.NoError(t, err)

		assert.Empty(t, result.Item.Variants)
		assert.Equal(t, 5, result.Item.ID, "falls back to the requested item id")
		assert.Equal(t, "Product", result.Item.Name)
	})

	t.Run("no variants when the product page URL is missing", func(t *testing.T) {
		resp := fullCreateResponse()
		resp.Products[0].URL = ""

		m := &fakeMarketplace{createResp: resp}
		s := newTestService(m)

		result, err := s.Create(context.Background(), CreateParams{
			Front: validPNG(t, 50, 50),
			Title: "Test",
		})
		require.NoError(t, err)

		assert.Empty(t, result.Item.Variants)
	})

	t.Run("a fully absent response shape still yields a well formed URL", func(t *testing.T) {
		m := &fakeMarketplace{createResp: &suzuri.CreateMaterialResponse{
			Products: []suzuri.Product{{ID: 3, Title: "Bare"}},
		}}
		s := newTestService(m)

		result, err := s.Create(context.Background(), CreateParams{
			Front: validPNG(t, 50, 50),
			Title: "Test",
		})
		require.NoError(t, err)

		assert.Equal(t, "https://suzuri.jp/suzuri/0/product/s/white", result.Product.URL)
		assert.Equal(t, 0, result.Material.ID)
	})
}

func TestService_Create_UpstreamFailures(t *testing.T) {
	t.Run("an empty product list is an upstream failure", func(t *testing.T) {
		m := &fakeMarketplace{createResp: &suzuri.CreateMaterialResponse{
			Material: &suzuri.Material{ID: 42},
			Products: []suzuri.Product{},
		}}
		s := newTestService(m)

		result, err := s.Create(context.Background(), CreateParams{
			Front: validPNG(t, 50, 50),
			Title: "Test",
		})

		assert.Nil(t, result)

		var uErr *suzuri.UpstreamError
		require.True(t, errors.As(err, &uErr))
		assert.Contains(t, uErr.Error(), "no product was created")
	})

	t.Run("client errors are passed through untouched", func(t *testing.T) {
		wantErr := &suzuri.UpstreamError{Status: 503, Body: "unavailable"}
		m := &fakeMarketplace{createErr: wantErr}
		s := newTestService(m)

		result, err := s.Create(context.Background(), CreateParams{
			Front: validPNG(t, 50, 50),
			Title: "Test",
		})

		assert.Nil(t, result)
		assert.Equal(t, wantErr, err)
	})
}

func TestRequiresBackImage(t *testing.T) {
	assert.True(t, RequiresBackImage(8))
	assert.True(t, RequiresBackImage(101))
	assert.False(t, RequiresBackImage(1))
	assert.False(t, RequiresBackImage(0))
	assert.False(t, RequiresBackImage(100))
}
