// Package cars is the catalog record layer: field coercion and defaults on
// top of the document store. Persistence, id assignment and list ordering
// belong to the store.
package cars

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/smlmotors/showroom/internal/server/docstore"
)

const (
	// Collection is the document store collection holding car records.
	Collection = "cars"

	// ListLimit caps one catalog page.
	ListLimit = 100
)

var ErrNotFound = errors.New("car not found")

// requiredFields must be present and non-blank on create.
var requiredFields = []string{"brand", "model", "year", "price", "fuelType"}

type CarService struct {
	docs *docstore.Store
}

func NewCarService(docs *docstore.Store) *CarService {
	return &CarService{docs: docs}
}

// MissingFieldsError lists required fields absent from a create payload.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing fields: %s", strings.Join(e.Fields, ", "))
}

// Create coerces the payload into a full record, applying fixed defaults for
// absent optional fields, and delegates persistence to the document store.
// Unknown payload fields are dropped.
func (s *CarService) Create(ctx context.Context, payload map[string]any) (*Car, error) {
	var missing []string
	for _, f := range requiredFields {
		v, ok := payload[f]
		if isBlank(v, ok) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	year, _ := coerceInt(payload["year"])
	price, _ := coerceFloat(payload["price"])
	images := coerceStringSlice(payload["images"], capURL)

	body := map[string]any{
		"brand":    coerceString(payload["brand"], capName),
		"model":    coerceString(payload["model"], capName),
		"year":     year,
		"price":    price,
		"fuelType": coerceString(payload["fuelType"], capShort),
		"images":   images,
		"features": coerceStringSlice(payload["features"], capName),
	}

	// imageUrl falls back to the first gallery image
	switch {
	case !isBlank(payload["imageUrl"], true):
		body["imageUrl"] = coerceString(payload["imageUrl"], capURL)
	case len(images) > 0:
		body["imageUrl"] = images[0]
	default:
		body["imageUrl"] = ""
	}

	body["mileage"] = coerceIntDefault(payload, "mileage", 0)
	body["color"] = coerceStringDefault(payload, "color", "White", capName)
	body["transmission"] = coerceStringDefault(payload, "transmission", "Manual", capShort)
	body["owners"] = coerceStringDefault(payload, "owners", "1st Owner", capShort)
	body["type"] = coerceStringDefault(payload, "type", "Sedan", capShort)
	body["seatingCapacity"] = coerceIntDefault(payload, "seatingCapacity", 5)
	body["location"] = coerceStringDefault(payload, "location", "Main Branch", capPlace)

	if v, ok := payload["available"]; ok {
		if b, bok := coerceBool(v); bok {
			body["available"] = b
		} else {
			body["available"] = true
		}
	} else {
		body["available"] = true
	}

	doc, err := s.docs.Create(ctx, Collection, body)
	if err != nil {
		return nil, fmt.Errorf("create car: %w", err)
	}
	return carFromDocument(doc)
}

// Update applies partial-update semantics: only supplied fields are coerced
// and modified, everything else is left untouched.
func (s *CarService) Update(ctx context.Context, id string, payload map[string]any) (*Car, error) {
	doc, err := s.docs.Get(ctx, Collection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load car %s: %w", id, err)
	}

	body, err := doc.Fields()
	if err != nil {
		return nil, err
	}

	if v, ok := payload["brand"]; ok {
		body["brand"] = coerceString(v, capName)
	}
	if v, ok := payload["model"]; ok {
		body["model"] = coerceString(v, capName)
	}
	if v, ok := payload["year"]; ok {
		if n, nok := coerceInt(v); nok {
			body["year"] = n
		}
	}
	if v, ok := payload["price"]; ok {
		if f, fok := coerceFloat(v); fok {
			body["price"] = f
		}
	}
	if v, ok := payload["fuelType"]; ok {
		body["fuelType"] = coerceString(v, capShort)
	}
	if v, ok := payload["imageUrl"]; ok {
		body["imageUrl"] = coerceString(v, capURL)
	}
	if v, ok := payload["mileage"]; ok {
		if n, nok := coerceInt(v); nok {
			body["mileage"] = n
		}
	}
	if v, ok := payload["color"]; ok {
		body["color"] = coerceString(v, capName)
	}
	if v, ok := payload["transmission"]; ok {
		body["transmission"] = coerceString(v, capShort)
	}
	if v, ok := payload["owners"]; ok {
		body["owners"] = coerceString(v, capShort)
	}
	if v, ok := payload["type"]; ok {
		body["type"] = coerceString(v, capShort)
	}
	if v, ok := payload["seatingCapacity"]; ok {
		if n, nok := coerceInt(v); nok {
			body["seatingCapacity"] = n
		}
	}
	if v, ok := payload["location"]; ok {
		body["location"] = coerceString(v, capPlace)
	}
	if v, ok := payload["available"]; ok {
		if b, bok := coerceBool(v); bok {
			body["available"] = b
		}
	}
	if v, ok := payload["images"]; ok {
		images := coerceStringSlice(v, capURL)
		body["images"] = images
		if len(images) > 0 {
			body["imageUrl"] = images[0]
		}
	}
	if v, ok := payload["features"]; ok {
		body["features"] = coerceStringSlice(v, capName)
	}

	updated, err := s.docs.Update(ctx, Collection, id, body)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update car %s: %w", id, err)
	}
	return carFromDocument(updated)
}

func (s *CarService) Get(ctx context.Context, id string) (*Car, error) {
	doc, err := s.docs.Get(ctx, Collection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get car %s: %w", id, err)
	}
	return carFromDocument(doc)
}

func (s *CarService) Delete(ctx context.Context, id string) error {
	err := s.docs.Delete(ctx, Collection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// List returns up to ListLimit records, newest first.
func (s *CarService) List(ctx context.Context) ([]*Car, int64, error) {
	docs, err := s.docs.List(ctx, Collection, ListLimit)
	if err != nil {
		return nil, 0, fmt.Errorf("list cars: %w", err)
	}

	total, err := s.docs.Count(ctx, Collection)
	if err != nil {
		return nil, 0, fmt.Errorf("count cars: %w", err)
	}

	out := make([]*Car, 0, len(docs))
	for _, doc := range docs {
		car, err := carFromDocument(doc)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, car)
	}
	return out, total, nil
}

func coerceStringDefault(payload map[string]any, field, fallback string, maxLen int) string {
	if v, ok := payload[field]; ok && !isBlank(v, true) {
		return coerceString(v, maxLen)
	}
	return fallback
}

func coerceIntDefault(payload map[string]any, field string, fallback int) int {
	if v, ok := payload[field]; ok {
		if n, nok := coerceInt(v); nok {
			return n
		}
	}
	return fallback
}
