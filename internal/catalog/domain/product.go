package domain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrProductNotFound is returned by a ProductSource when no product has the id
var ErrProductNotFound = errors.New("product not found")

// Rating holds the aggregated customer rating of a product
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product represents a catalog entry as served by the catalog source.
// The storefront never mutates it.
type Product struct {
	ID          ProductID `json:"id" gorm:"primaryKey;type:text"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Price       float64   `json:"price" gorm:"not null"`
	Category    string    `json:"category" gorm:"index"`
	Image       string    `json:"image"`
	Rating      *Rating   `json:"rating,omitempty" gorm:"embedded;embeddedPrefix:rating_"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// ProductID is a stable product identifier. The remote catalog sends numbers,
// the database stores text, so it accepts both on the wire.
type ProductID string

// UnmarshalJSON accepts a JSON string or number
func (id *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ProductID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid product id %s: %w", data, err)
	}
	if _, err := strconv.ParseFloat(n.String(), 64); err != nil {
		return fmt.Errorf("invalid product id %s: %w", data, err)
	}
	*id = ProductID(n.String())
	return nil
}

func (id ProductID) String() string {
	return string(id)
}

// ProductSource is the catalog collaborator: it returns a finite product list or fails
type ProductSource interface {
	FindAll(ctx context.Context) ([]Product, error)
	FindByID(ctx context.Context, id ProductID) (*Product, error)
	Categories(ctx context.Context) ([]string, error)
}
