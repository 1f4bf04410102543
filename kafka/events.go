package kafka

import (
	"time"

	"github.com/tair/storefront/internal/catalog/domain"
)

// CatalogChangedEvent announces that products or categories changed upstream
type CatalogChangedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	ProductIDs []string  `json:"product_ids,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// CatalogSearchedEvent records one executed catalog query
type CatalogSearchedEvent struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	SessionID     string          `json:"session_id,omitempty"`
	Criteria      domain.Criteria `json:"criteria"`
	ActiveFilters int             `json:"active_filters"`
	Total         int             `json:"total"`
	Timestamp     time.Time       `json:"timestamp"`
}

// Event types
const (
	EventTypeCatalogChanged  = "catalog.changed"
	EventTypeCatalogSearched = "catalog.searched"
)

// Kafka topics
const (
	TopicCatalogChanged  = "catalog-changed"
	TopicCatalogSearched = "catalog-searched"
)
