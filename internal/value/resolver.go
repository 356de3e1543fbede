package value

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/orkank/AppConfig/internal/catalog"
)

// MediaURL provides the public media base url.
type MediaURL interface {
	Base() string
}

// Currency provides the currency code prices are reported in.
type Currency interface {
	Code() string
}

// Collaborators are the lookups a Resolver enriches references with.
// Nil repos behave like catalog.Disabled.
type Collaborators struct {
	Products catalog.ProductRepo
	Stock    catalog.StockRepo
	Prices   catalog.PriceRepo
	Images   catalog.ImageRepo
	CMS      catalog.CMSRepo
	Media    MediaURL
	Currency Currency
	StoreID  int
}

// Resolver materializes stored payloads.
type Resolver struct {
	c Collaborators
}

// NewResolver creates a Resolver using c.
func NewResolver(c Collaborators) *Resolver {
	var disabled catalog.Disabled

	if c.Products == nil {
		c.Products = disabled
	}

	if c.Stock == nil {
		c.Stock = disabled
	}

	if c.Prices == nil {
		c.Prices = disabled
	}

	if c.Images == nil {
		c.Images = disabled
	}

	if c.CMS == nil {
		c.CMS = disabled
	}

	if c.Media == nil {
		c.Media = catalog.MediaURL("")
	}

	if c.Currency == nil {
		c.Currency = catalog.Currency("")
	}

	return &Resolver{c: c}
}

// Resolve materializes the authoritative payload of s.
func (r *Resolver) Resolve(ctx context.Context, s Stored) Resolved {
	res := Resolved{Type: ParseType(string(s.Type))}

	switch p := s.Decode().(type) {
	case Text:
		res.Text = string(p)
	case File:
		res.File = r.fileURL(string(p))
	case JSON:
		res.JSON = decodeJSON(string(p))
	case Products:
		res.Products = r.products(ctx, p)
	case Categories:
		res.Categories = categories(p)
	case CMS:
		res.CMSPages = r.cmsPages(ctx, p)
	}

	return res
}

func (r *Resolver) fileURL(path string) string {
	if path == "" {
		return ""
	}

	return strings.TrimRight(r.c.Media.Base(), "/") + "/" + strings.TrimLeft(path, "/")
}

// decodeJSON returns the decoded document, raw itself if it is not valid json and nil if empty.
func decodeJSON(raw string) any {
	if raw == "" {
		return nil
	}

	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}

	return v
}

func (r *Resolver) products(ctx context.Context, refs Products) []Product {
	if len(refs) == 0 {
		return nil
	}

	out := make([]Product, 0, len(refs))

	for _, ref := range refs {
		out = append(out, r.product(ctx, ref))
	}

	return out
}

// product enriches ref. Every lookup falls back to its default on its own, a missing
// product keeps the stored sku and name only.
func (r *Resolver) product(ctx context.Context, ref Ref) Product {
	p := Product{
		ID:           ref.ID,
		SKU:          ref.SKU,
		Name:         ref.Name,
		MediaGallery: []catalog.Image{},
		Currency:     r.c.Currency.Code(),
	}

	live := attempt(ctx, stepProduct, ref.ID, (*catalog.Product)(nil), func(ctx context.Context) (*catalog.Product, error) {
		found, err := r.c.Products.ProductByID(ctx, ref.ID, r.c.StoreID)
		if err != nil {
			return nil, err
		}

		return &found, nil
	})
	if live == nil {
		return p
	}

	if p.SKU == "" {
		p.SKU = live.SKU
	}

	if p.Name == "" {
		p.Name = live.Name
	}

	price := attempt(ctx, stepPrice, ref.ID, catalog.PriceInfo{}, func(ctx context.Context) (catalog.PriceInfo, error) {
		return r.c.Prices.Price(ctx, *live)
	})
	p.FinalPrice, p.RegularPrice = price.Final, price.Regular

	stock := attempt(ctx, stepStock, ref.ID, catalog.StockInfo{}, func(ctx context.Context) (catalog.StockInfo, error) {
		return r.c.Stock.Stock(ctx, *live)
	})
	p.IsInStock, p.Qty = stock.InStock, stock.Qty

	p.Image = attempt(ctx, stepImage, ref.ID, (*string)(nil), func(ctx context.Context) (*string, error) {
		url, err := r.c.Images.PrimaryImage(ctx, *live)
		if err != nil || url == "" {
			return nil, err
		}

		return &url, nil
	})

	p.MediaGallery = attempt(ctx, stepGallery, ref.ID, p.MediaGallery, func(ctx context.Context) ([]catalog.Image, error) {
		images, err := r.c.Images.Gallery(ctx, *live)
		if err != nil {
			return nil, err
		}

		gallery := make([]catalog.Image, 0, len(images))
		for _, img := range images {
			if img.URL != "" {
				gallery = append(gallery, img)
			}
		}

		return gallery, nil
	})

	return p
}

func categories(refs Categories) []Category {
	if len(refs) == 0 {
		return nil
	}

	out := make([]Category, 0, len(refs))
	for _, ref := range refs {
		out = append(out, Category{ID: ref.ID, Name: ref.Name})
	}

	return out
}

func (r *Resolver) cmsPages(ctx context.Context, p CMS) []CMSPage {
	var out []CMSPage

	for _, ref := range p.Refs {
		page := attempt(ctx, stepCMS, ref.ID, (*catalog.CMSPage)(nil), func(ctx context.Context) (*catalog.CMSPage, error) {
			found, err := r.c.CMS.CMSPageByID(ctx, ref.ID)
			if err != nil {
				return nil, err
			}

			return &found, nil
		})
		if page == nil {
			continue
		}

		resolved := CMSPage{
			ID:         page.ID,
			Permalink:  page.Identifier,
			Title:      page.Title,
			UpdateTime: page.UpdateTime,
		}

		if p.IncludeContent {
			content := page.Content
			resolved.Content = &content
		}

		out = append(out, resolved)
	}

	return out
}
