package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"MiniCatalog/pkg/kit"
)

const (
	maxNameLen = 200

	// Prices follow the 96-bit decimal range: at most 28 fractional digits
	// and a magnitude below 2^96.
	maxPriceScale = 28
)

var maxPrice = decimal.RequireFromString("79228162514264337593543950335")

type Item struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// MarshalJSON writes the price as a JSON number rather than a string.
func (it Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID    uuid.UUID   `json:"id"`
		Name  string      `json:"name"`
		Price json.Number `json:"price"`
	}{it.ID, it.Name, json.Number(it.Price.String())})
}

type CreateItemRequest struct {
	Name  string
	Price decimal.Decimal
}

// ParsePrice converts a raw JSON price token. Only bare numbers inside the
// decimal range are accepted; an absent price is zero.
func ParsePrice(raw json.RawMessage) (decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return decimal.Zero, nil
	}
	if raw[0] == '"' || bytes.Equal(raw, []byte("null")) {
		return decimal.Decimal{}, errors.New("price must be a JSON number")
	}

	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("price: %w", err)
	}
	// Bound the exponent before any comparison; Cmp rescales to a common exponent.
	if exp := d.Exponent(); exp > maxPriceScale || exp < -maxPriceScale {
		return decimal.Decimal{}, errors.New("price out of range")
	}
	if d.Abs().GreaterThan(maxPrice) {
		return decimal.Decimal{}, errors.New("price out of range")
	}
	return d, nil
}

// Normalize validates req and returns the name to store.
func (req CreateItemRequest) Normalize() (string, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", kit.Validation("name must not be empty")
	}
	if req.Price.IsNegative() {
		return "", kit.Validation("price must not be negative")
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "", kit.Validation("name must not exceed 200 characters")
	}
	return name, nil
}
