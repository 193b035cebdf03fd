package cars

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/smlmotors/showroom/internal/server/docstore"
)

// Car is one catalog record. The document store owns the id and timestamps.
type Car struct {
	ID              string   `json:"id"`
	Brand           string   `json:"brand"`
	Model           string   `json:"model"`
	Year            int      `json:"year"`
	Price           float64  `json:"price"`
	FuelType        string   `json:"fuelType"`
	ImageURL        string   `json:"imageUrl"`
	Images          []string `json:"images"`
	Mileage         int      `json:"mileage"`
	Color           string   `json:"color"`
	Transmission    string   `json:"transmission"`
	Owners          string   `json:"owners"`
	Type            string   `json:"type"`
	SeatingCapacity int      `json:"seatingCapacity"`
	Location        string   `json:"location"`
	Available       bool     `json:"available"`
	Features        []string `json:"features"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func carFromDocument(doc *docstore.Document) (*Car, error) {
	var car Car
	if err := json.Unmarshal(doc.Body, &car); err != nil {
		return nil, fmt.Errorf("decode car %s: %w", doc.ID, err)
	}
	car.ID = doc.ID
	car.CreatedAt = doc.CreatedAt
	car.UpdatedAt = doc.UpdatedAt
	if car.Images == nil {
		car.Images = []string{}
	}
	if car.Features == nil {
		car.Features = []string{}
	}
	return &car, nil
}

// String length caps per field, matching the catalog schema.
const (
	capShort = 32  // fuelType, transmission, owners, type
	capName  = 64  // brand, model, color, feature items
	capPlace = 128 // location
	capURL   = 512 // imageUrl, image items
)

// coerceString casts any scalar to a capped string.
func coerceString(v any, maxLen int) string {
	var s string
	switch val := v.(type) {
	case string:
		s = val
	case float64:
		s = strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		s = strconv.FormatBool(val)
	case json.Number:
		s = val.String()
	default:
		s = fmt.Sprint(val)
	}
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}

// coerceInt casts a JSON number or numeric string to an int.
func coerceInt(v any) (int, bool) {
	switch val := v.(type) {
	case float64:
		return int(val), true
	case int:
		return val, true
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func coerceFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func coerceBool(v any) (bool, bool) {
	switch val := v.(type) {
	case bool:
		return val, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(val))
		if err != nil {
			return false, false
		}
		return b, true
	}
	return false, false
}

// coerceStringSlice accepts an array of scalars or a comma-separated string.
// Anything else coerces to an empty slice.
func coerceStringSlice(v any, maxItemLen int) []string {
	switch val := v.(type) {
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, coerceString(item, maxItemLen))
		}
		return out
	case []string:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, coerceString(item, maxItemLen))
		}
		return out
	case string:
		parts := strings.Split(val, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			out = append(out, coerceString(p, maxItemLen))
		}
		return out
	}
	return []string{}
}

// isBlank reports whether a required field value is missing for create
// purposes (absent, empty string, or null).
func isBlank(v any, ok bool) bool {
	if !ok || v == nil {
		return true
	}
	if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
		return true
	}
	return false
}
