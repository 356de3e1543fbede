package catalog

import "context"

// Disabled implements every repo and fails each lookup with ErrDisabled.
// It is used when no catalog is configured so stored references pass through unenriched.
type Disabled struct{}

// ProductByID implements ProductRepo.
func (Disabled) ProductByID(context.Context, int64, int) (Product, error) {
	return Product{}, ErrDisabled
}

// Stock implements StockRepo.
func (Disabled) Stock(context.Context, Product) (StockInfo, error) {
	return StockInfo{}, ErrDisabled
}

// Price implements PriceRepo.
func (Disabled) Price(context.Context, Product) (PriceInfo, error) {
	return PriceInfo{}, ErrDisabled
}

// PrimaryImage implements ImageRepo.
func (Disabled) PrimaryImage(context.Context, Product) (string, error) {
	return "", ErrDisabled
}

// Gallery implements ImageRepo.
func (Disabled) Gallery(context.Context, Product) ([]Image, error) {
	return nil, ErrDisabled
}

// CategoryByID implements CategoryRepo.
func (Disabled) CategoryByID(context.Context, int64) (Category, error) {
	return Category{}, ErrDisabled
}

// CMSPageByID implements CMSRepo.
func (Disabled) CMSPageByID(context.Context, int64) (CMSPage, error) {
	return CMSPage{}, ErrDisabled
}
