package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tair/storefront/internal/catalog/domain"
)

// GormSource serves the catalog from a Postgres products table
type GormSource struct {
	db *gorm.DB
}

func NewGormSource(db *gorm.DB) *GormSource {
	return &GormSource{db: db}
}

func (r *GormSource) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{})
}

// Seed inserts products, replacing rows with the same id
func (r *GormSource) Seed(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(&products).Error
}

// SeedFrom copies src into the table when it is empty and reports how many
// products were written
func (r *GormSource) SeedFrom(ctx context.Context, src domain.ProductSource) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	products, err := src.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load seed catalog: %w", err)
	}
	if err := r.Seed(ctx, products); err != nil {
		return 0, fmt.Errorf("failed to seed products: %w", err)
	}
	return len(products), nil
}

// FindAll returns every product in insertion order
func (r *GormSource) FindAll(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	err := r.db.WithContext(ctx).Order("ctid").Find(&products).Error
	return products, err
}

func (r *GormSource) FindByID(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Categories returns distinct category names in alphabetical order
func (r *GormSource) Categories(ctx context.Context) ([]string, error) {
	categories := []string{}
	err := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Distinct("category").
		Where("category <> ''").
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}
