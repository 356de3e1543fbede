// Package catalog provides the product, stock, price, image, category and cms page
// lookups used to enrich configuration values, and a REST client implementing them.
package catalog

import (
	"context"
	"strings"
)

// Product is a catalog product as returned by ProductRepo.
type Product struct {
	ID               int64
	SKU              string
	Name             string
	Price            float64
	SpecialPrice     *float64
	Gallery          []GalleryEntry
	CustomAttributes map[string]any
}

// GalleryEntry is a raw media gallery record of a product.
type GalleryEntry struct {
	File     string
	Label    string
	Types    []string
	Disabled bool
}

// StockInfo is the stock state of a product.
type StockInfo struct {
	InStock bool
	Qty     float64
}

// PriceInfo holds final and regular price of a product.
type PriceInfo struct {
	Final   float64
	Regular float64
}

// Image is a resolved gallery image.
type Image struct {
	URL   string `json:"url"`
	Label string `json:"label"`
}

// Category is a catalog category.
type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// CMSPage is a cms page.
type CMSPage struct {
	ID         int64  `json:"id"`
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	UpdateTime string `json:"update_time"`
}

// ProductRepo loads products by id.
type ProductRepo interface {
	ProductByID(ctx context.Context, id int64, storeID int) (Product, error)
}

// StockRepo loads the stock state of a product.
type StockRepo interface {
	Stock(ctx context.Context, p Product) (StockInfo, error)
}

// PriceRepo computes the prices of a product.
type PriceRepo interface {
	Price(ctx context.Context, p Product) (PriceInfo, error)
}

// ImageRepo resolves product images.
type ImageRepo interface {
	PrimaryImage(ctx context.Context, p Product) (string, error)
	Gallery(ctx context.Context, p Product) ([]Image, error)
}

// CategoryRepo loads categories by id.
type CategoryRepo interface {
	CategoryByID(ctx context.Context, id int64) (Category, error)
}

// CMSRepo loads cms pages by id.
type CMSRepo interface {
	CMSPageByID(ctx context.Context, id int64) (CMSPage, error)
}

// MediaURL joins media relative paths onto the public media base url.
type MediaURL string

// Base returns the media base url.
func (m MediaURL) Base() string {
	return string(m)
}

// Join returns base + "/" + path with exactly one slash between both.
func (m MediaURL) Join(path string) string {
	return strings.TrimRight(string(m), "/") + "/" + strings.TrimLeft(path, "/")
}

// Currency is the ISO code prices are reported in.
type Currency string

// Code returns the currency code.
func (c Currency) Code() string {
	return string(c)
}
