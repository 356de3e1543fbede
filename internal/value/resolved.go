package value

import "github.com/orkank/AppConfig/internal/catalog"

// Product is an enriched product reference.
type Product struct {
	ID           int64           `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Image        *string         `json:"image"`
	MediaGallery []catalog.Image `json:"media_gallery"`
	FinalPrice   float64         `json:"final_price"`
	RegularPrice float64         `json:"regular_price"`
	Currency     string          `json:"currency"`
	IsInStock    bool            `json:"is_in_stock"`
	Qty          float64         `json:"qty"`
}

// Category is a normalized category reference.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CMSPage is a resolved cms page reference. Content is only set when requested.
type CMSPage struct {
	ID         int64   `json:"id"`
	Permalink  string  `json:"permalink"`
	Title      string  `json:"title"`
	UpdateTime string  `json:"update_time"`
	Content    *string `json:"content,omitempty"`
}

// Resolved is the materialized value of an entry. Only the field of the declared type is
// populated; the list fields are nil when nothing could be resolved.
type Resolved struct {
	Type       Type
	Text       string
	File       string
	JSON       any
	Products   []Product
	Categories []Category
	CMSPages   []CMSPage
}

// Value returns the value of the declared type only.
func (r Resolved) Value() any {
	switch r.Type {
	case TypeFile:
		return r.File
	case TypeJSON:
		return r.JSON
	case TypeProducts:
		if r.Products == nil {
			return nil
		}

		return r.Products
	case TypeCategory, TypeCategories:
		if r.Categories == nil {
			return nil
		}

		return r.Categories
	case TypeCMS:
		if r.CMSPages == nil {
			return nil
		}

		return r.CMSPages
	default:
		return r.Text
	}
}
