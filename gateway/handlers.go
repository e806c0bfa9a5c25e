package gateway

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"suzurigw/media"
	"suzurigw/product"
)

func (s *Server) createProduct(c echo.Context) error {
	front, err := formImage(c, "file")
	if err != nil {
		return s.fail(c, err, "Failed to create product")
	}

	back, err := formImage(c, "fileBack")
	if err != nil {
		return s.fail(c, err, "Failed to create product")
	}

	params := product.CreateParams{
		Back:        back,
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Published:   c.FormValue("published") != "false",
		ResizeMode:  c.FormValue("resizeMode"),
		ItemID:      intFromFormOrDefault(c, "itemId", 0),
	}
	if front != nil {
		params.Front = *front
	}

	result, err := s.products.Create(c.Request().Context(), params)
	if err != nil {
		return s.fail(c, err, "Failed to create product")
	}

	return c.JSON(http.StatusOK, result)
}

func (s *Server) listItems(c echo.Context) error {
	items, err := s.products.CatalogItems(c.Request().Context())
	if err != nil {
		return s.fail(c, err, "Failed to fetch available items")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"items":   items,
	})
}

func (s *Server) listUserProducts(c echo.Context) error {
	params := product.ListParams{
		UserID:     intFromQueryOrDefault(c, "userId", 0),
		UserName:   c.QueryParam("userName"),
		MaterialID: intFromQueryOrDefault(c, "materialId", 0),
		Pagination: media.Pagination{
			Limit:  intFromQueryOrDefault(c, "limit", 0),
			Offset: intFromQueryOrDefault(c, "offset", 0),
		}.Normalized(),
	}

	listing, err := s.products.UserProducts(c.Request().Context(), params)
	if err != nil {
		return s.fail(c, err, "Failed to fetch user products")
	}

	return c.JSON(http.StatusOK, listing)
}

func (s *Server) saveUpload(c echo.Context) error {
	asset, err := formImage(c, "file")
	if err != nil {
		return s.fail(c, err, "Failed to process upload")
	}
	if asset == nil {
		asset = &media.ImageAsset{}
	}

	file, err := s.products.SaveUpload(c.Request().Context(), *asset)
	if err != nil {
		return s.fail(c, err, "Failed to process upload")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"file":    file,
	})
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// fail renders validation failures as 400 with the field messages and
// everything else as 500 behind a stable summary message.
func (s *Server) fail(c echo.Context, err error, summary string) error {
	var vErr *media.ValidationError
	if errors.As(err, &vErr) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: vErr.Error()})
	}

	if s.logger != nil {
		s.logger.Errorf("%s: %v", summary, err)
	}

	return c.JSON(http.StatusInternalServerError, errorResponse{
		Error:   summary,
		Details: err.Error(),
	})
}

// formImage reads a multipart file part into memory. A missing part is not an
// error here; presence rules belong to the use case layer.
func formImage(c echo.Context, field string) (*media.ImageAsset, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}

	src, err := header.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "could not open uploaded file %s", field)
	}
	defer src.Close()

	b, err := io.ReadAll(src)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read uploaded file %s", field)
	}

	return &media.ImageAsset{
		Bytes: b,
		Mime:  header.Header.Get("Content-Type"),
		Size:  header.Size,
	}, nil
}

func intFromFormOrDefault(c echo.Context, field string, def int) int {
	v, err := strconv.Atoi(c.FormValue(field))
	if err != nil {
		return def
	}

	return v
}

func intFromQueryOrDefault(c echo.Context, param string, def int) int {
	v, err := strconv.Atoi(c.QueryParam(param))
	if err != nil {
		return def
	}

	return v
}
