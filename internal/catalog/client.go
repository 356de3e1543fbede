package catalog

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

const (
	productsPath   = "/V1/products"
	stockItemsPath = "/V1/stockItems/"
	categoriesPath = "/V1/categories/"
	cmsPagePath    = "/V1/cmsPage/"

	productMediaPath = "catalog/product"

	attrSpecialPrice = "special_price"
	imageRoleMain    = "image"

	defaultTimeout = 10 * time.Second
)

// ClientConfig configures the REST catalog client.
type ClientConfig struct {
	BaseURL  string // e.g. https://shop.example/rest/default
	Token    string
	Timeout  time.Duration
	MediaURL MediaURL
}

// Client talks to a Magento style REST catalog.
type Client struct {
	rest  *resty.Client
	media MediaURL
}

type (
	attributeDTO struct {
		AttributeCode string `json:"attribute_code"`
		Value         any    `json:"value"`
	}

	galleryDTO struct {
		File     string   `json:"file"`
		Label    *string  `json:"label"`
		Types    []string `json:"types"`
		Disabled bool     `json:"disabled"`
	}

	productDTO struct {
		ID                  int64          `json:"id"`
		SKU                 string         `json:"sku"`
		Name                string         `json:"name"`
		Price               float64        `json:"price"`
		CustomAttributes    []attributeDTO `json:"custom_attributes"`
		MediaGalleryEntries []galleryDTO   `json:"media_gallery_entries"`
	}

	productSearchDTO struct {
		Items      []productDTO `json:"items"`
		TotalCount int          `json:"total_count"`
	}

	stockDTO struct {
		IsInStock bool    `json:"is_in_stock"`
		Qty       float64 `json:"qty"`
	}
)

// NewClient creates a catalog client for cfg.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	rest := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	if cfg.Token != "" {
		rest.SetAuthToken(cfg.Token)
	}

	return &Client{rest: rest, media: cfg.MediaURL}
}

// ProductByID implements ProductRepo with an entity_id search.
func (c *Client) ProductByID(ctx context.Context, id int64, storeID int) (Product, error) {
	var out productSearchDTO

	prefix := "searchCriteria[filter_groups][0][filters][0]"
	query := url.Values{}
	query.Set(prefix+"[field]", "entity_id")
	query.Set(prefix+"[value]", strconv.FormatInt(id, 10))
	query.Set(prefix+"[condition_type]", "eq")
	query.Set("searchCriteria[pageSize]", "1")

	if storeID > 0 {
		query.Set("storeId", strconv.Itoa(storeID))
	}

	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParamsFromValues(query).
		SetResult(&out).
		Get(productsPath)
	if err = checkResponse(resp, err, "product search"); err != nil {
		return Product{}, err
	}

	if len(out.Items) == 0 {
		return Product{}, ErrNotFound
	}

	return out.Items[0].toProduct(), nil
}

// Stock implements StockRepo.
func (c *Client) Stock(ctx context.Context, p Product) (StockInfo, error) {
	var out stockDTO

	if p.SKU == "" {
		return StockInfo{}, ErrNotFound
	}

	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&out).
		Get(stockItemsPath + url.PathEscape(p.SKU))
	if err = checkResponse(resp, err, "stock item"); err != nil {
		return StockInfo{}, err
	}

	return StockInfo{InStock: out.IsInStock, Qty: out.Qty}, nil
}

// Price implements PriceRepo. A special price only applies when it undercuts the regular price.
func (c *Client) Price(_ context.Context, p Product) (PriceInfo, error) {
	info := PriceInfo{Final: p.Price, Regular: p.Price}

	if p.SpecialPrice != nil && *p.SpecialPrice > 0 && *p.SpecialPrice < p.Price {
		info.Final = *p.SpecialPrice
	}

	return info, nil
}

// PrimaryImage implements ImageRepo: the gallery entry with the main image role,
// else the first enabled entry.
func (c *Client) PrimaryImage(_ context.Context, p Product) (string, error) {
	var first *GalleryEntry

	for i := range p.Gallery {
		g := &p.Gallery[i]
		if g.Disabled || g.File == "" {
			continue
		}

		for _, t := range g.Types {
			if t == imageRoleMain {
				return c.productMediaURL(g.File), nil
			}
		}

		if first == nil {
			first = g
		}
	}

	if first == nil {
		return "", ErrNoImage
	}

	return c.productMediaURL(first.File), nil
}

// Gallery implements ImageRepo and returns every enabled gallery image.
func (c *Client) Gallery(_ context.Context, p Product) ([]Image, error) {
	images := make([]Image, 0, len(p.Gallery))

	for _, g := range p.Gallery {
		if g.Disabled || g.File == "" {
			continue
		}

		images = append(images, Image{URL: c.productMediaURL(g.File), Label: g.Label})
	}

	return images, nil
}

// CategoryByID implements CategoryRepo.
func (c *Client) CategoryByID(ctx context.Context, id int64) (Category, error) {
	var out Category

	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&out).
		Get(categoriesPath + strconv.FormatInt(id, 10))
	if err = checkResponse(resp, err, "category"); err != nil {
		return Category{}, err
	}

	return out, nil
}

// CMSPageByID implements CMSRepo.
func (c *Client) CMSPageByID(ctx context.Context, id int64) (CMSPage, error) {
	var out CMSPage

	resp, err := c.rest.R().
		SetContext(ctx).
		SetResult(&out).
		Get(cmsPagePath + strconv.FormatInt(id, 10))
	if err = checkResponse(resp, err, "cms page"); err != nil {
		return CMSPage{}, err
	}

	if out.ID == 0 {
		return CMSPage{}, ErrNotFound
	}

	return out, nil
}

func (c *Client) productMediaURL(file string) string {
	return c.media.Join(productMediaPath + "/" + strings.TrimLeft(file, "/"))
}

func checkResponse(resp *resty.Response, err error, what string) error {
	if err != nil {
		return errors.Wrap(err, what+" request")
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return ErrNotFound
	case resp.IsError():
		return errors.Wrapf(ErrUnavailable, "%s: status %d", what, resp.StatusCode())
	}

	return nil
}

func (d productDTO) toProduct() Product {
	p := Product{
		ID:               d.ID,
		SKU:              d.SKU,
		Name:             d.Name,
		Price:            d.Price,
		CustomAttributes: make(map[string]any, len(d.CustomAttributes)),
		Gallery:          make([]GalleryEntry, 0, len(d.MediaGalleryEntries)),
	}

	for _, a := range d.CustomAttributes {
		p.CustomAttributes[a.AttributeCode] = a.Value
	}

	if special, ok := toFloat(p.CustomAttributes[attrSpecialPrice]); ok {
		p.SpecialPrice = &special
	}

	for _, g := range d.MediaGalleryEntries {
		entry := GalleryEntry{File: g.File, Types: g.Types, Disabled: g.Disabled}
		if g.Label != nil {
			entry.Label = *g.Label
		}

		p.Gallery = append(p.Gallery, entry)
	}

	return p
}

// toFloat accepts the string and number encodings magento uses for decimal attributes.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
