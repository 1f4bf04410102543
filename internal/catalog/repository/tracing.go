package repository

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/storefront/internal/catalog/domain"
)

var tracer = otel.Tracer("catalog-repository")

// TracingSource wraps a ProductSource with spans
type TracingSource struct {
	next   domain.ProductSource
	source string
	tracer trace.Tracer
}

// NewTracingSource creates a traced source; name labels the backing store
func NewTracingSource(next domain.ProductSource, name string) *TracingSource {
	return &TracingSource{next: next, source: name, tracer: tracer}
}

// FindAll with tracing
func (r *TracingSource) FindAll(ctx context.Context) ([]domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "repository.FindAll",
		trace.WithAttributes(attribute.String("catalog.source", r.source)),
	)
	defer span.End()

	products, err := r.next.FindAll(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(products)))
	return products, nil
}

// FindByID with tracing
func (r *TracingSource) FindByID(ctx context.Context, id domain.ProductID) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(
			attribute.String("catalog.source", r.source),
			attribute.String("product.id", id.String()),
		),
	)
	defer span.End()

	product, err := r.next.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			span.SetAttributes(attribute.Bool("product.found", false))
			return nil, err
		}
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Bool("product.found", true),
		attribute.String("product.category", product.Category),
		attribute.Float64("product.price", product.Price),
	)
	return product, nil
}

// Categories with tracing
func (r *TracingSource) Categories(ctx context.Context) ([]string, error) {
	ctx, span := r.tracer.Start(ctx, "repository.Categories",
		trace.WithAttributes(attribute.String("catalog.source", r.source)),
	)
	defer span.End()

	categories, err := r.next.Categories(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(categories)))
	return categories, nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
