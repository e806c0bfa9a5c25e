package suzuri

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"suzurigw/media"
)

const DefaultBaseURL = "https://suzuri.jp/api/v1"

const (
	ResizeContain = "contain"
	ResizeCover   = "cover"
)

const printSideBack = "back"

type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client is a stateless typed wrapper around the SUZURI REST API, safe for
// concurrent use. One instance is created at startup and shared between
// requests.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *logrus.Logger
}

func New(cfg Config, logger *logrus.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}

	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// MaterialImages carries the normalized textures for one material. Back is nil
// for single sided items.
type MaterialImages struct {
	Front *media.NormalizedImage
	Back  *media.NormalizedImage

	// BackResizeMode applies to the back print side only. Back prints are
	// usually full bleed, so an empty value falls back to cover.
	BackResizeMode string
}

// DataURI encodes a normalized image the way the SUZURI API expects textures:
// base64 embedded in the JSON payload. There is no binary upload path.
func DataURI(img *media.NormalizedImage) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(img.Bytes)
}

// CreateMaterial registers the texture(s) as a material and creates the
// products listed in req. The call is attempted exactly once: the API does not
// advertise idempotent creation, so a retry could duplicate materials.
func (c *Client) CreateMaterial(ctx context.Context, images MaterialImages, req CreateMaterialRequest) (*CreateMaterialResponse, error) {
	if images.Front == nil {
		return nil, errors.New("suzuri: material requires a front texture")
	}

	req.Texture = DataURI(images.Front)

	if images.Back != nil {
		mode := images.BackResizeMode
		if mode == "" {
			mode = ResizeCover
		}

		sub := SubMaterial{
			Texture:    DataURI(images.Back),
			PrintSide:  printSideBack,
			Enabled:    true,
			ResizeMode: mode,
		}

		for i := range req.Products {
			req.Products[i].SubMaterials = []SubMaterial{sub}
		}
	}

	var out CreateMaterialResponse
	if err := c.call(ctx, http.MethodPost, "/materials", nil, req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Items fetches the item type catalog.
func (c *Client) Items(ctx context.Context) ([]Item, error) {
	var out struct {
		Items []Item `json:"items"`
	}

	if err := c.call(ctx, http.MethodGet, "/items", nil, nil, &out); err != nil {
		return nil, err
	}

	return out.Items, nil
}

// ProductQuery filters the user product listing. UserID wins over UserName
// when both are set; values are passed through to the API as-is.
type ProductQuery struct {
	UserID     int
	UserName   string
	MaterialID int
	media.Pagination
}

type ProductPage struct {
	Products []Product
	Limit    int
	Offset   int
	Count    int
}

// UserProducts lists a user's existing products, paginated.
func (c *Client) UserProducts(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	p := q.Pagination.Normalized()

	params := url.Values{}
	params.Set("limit", strconv.Itoa(p.Limit))
	params.Set("offset", strconv.Itoa(p.Offset))

	if q.UserID != 0 {
		params.Set("userId", strconv.Itoa(q.UserID))
	} else if q.UserName != "" {
		params.Set("userName", q.UserName)
	}

	if q.MaterialID != 0 {
		params.Set("materialId", strconv.Itoa(q.MaterialID))
	}

	var out struct {
		Products []Product `json:"products"`
		Limit    *int      `json:"limit"`
		Offset   *int      `json:"offset"`
		Count    *int      `json:"count"`
	}

	if err := c.call(ctx, http.MethodGet, "/products", params, nil, &out); err != nil {
		return nil, err
	}

	page := &ProductPage{Products: out.Products, Limit: p.Limit, Offset: p.Offset}
	if out.Limit != nil {
		page.Limit = *out.Limit
	}
	if out.Offset != nil {
		page.Offset = *out.Offset
	}
	if out.Count != nil {
		page.Count = *out.Count
	}

	return page, nil
}

func (c *Client) call(ctx context.Context, method, path string, params url.Values, body, out interface{}) error {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "suzuri: could not encode %s %s request", method, path)
		}

		payload = bytes.NewReader(encoded)
	}

	target := c.cfg.BaseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, payload)
	if err != nil {
		return errors.Wrapf(err, "suzuri: could not build %s %s request", method, path)
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &UpstreamError{Message: fmt.Sprintf("%s %s: %v", method, path, err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &UpstreamError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("%s %s: could not read response body", method, path),
		}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{
				"status": resp.StatusCode,
				"path":   path,
			}).Errorf("suzuri api call failed: %s", raw)
		}

		return &UpstreamError{Status: resp.StatusCode, Body: string(raw)}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return &UpstreamError{
				Status:  resp.StatusCode,
				Message: fmt.Sprintf("%s %s: could not decode response: %v", method, path, err),
			}
		}
	}

	return nil
}
