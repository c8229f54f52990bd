// Package catalogdata serves the storefront catalog from YAML, either the
// embedded default catalog or a file supplied by the operator.
package catalogdata

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type document struct {
	Items []entry `yaml:"items"`
}

type entry struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name"`
	Price     string   `yaml:"price"`
	Image     string   `yaml:"image"`
	Category  string   `yaml:"category"`
	Featured  bool     `yaml:"featured"`
	Available *bool    `yaml:"available"`
	Variants  []string `yaml:"variants"`
}

// Parse decodes a YAML catalog. Items default to available and to the
// placeholder image. Duplicate IDs are rejected.
func Parse(r io.Reader) ([]catalog.Item, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []catalog.Item{}, nil
		}
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	seen := make(map[string]bool, len(doc.Items))
	items := make([]catalog.Item, 0, len(doc.Items))
	for i, e := range doc.Items {
		item, err := e.toItem()
		if err != nil {
			return nil, fmt.Errorf("catalog entry %d: %w", i+1, err)
		}
		if seen[item.ID] {
			return nil, fmt.Errorf("catalog entry %d: duplicate id %q", i+1, item.ID)
		}
		seen[item.ID] = true
		items = append(items, item)
	}
	return items, nil
}

func (e entry) toItem() (catalog.Item, error) {
	price := decimal.Zero
	if e.Price != "" {
		p, err := decimal.NewFromString(e.Price)
		if err != nil {
			return catalog.Item{}, fmt.Errorf("invalid price %q: %w", e.Price, err)
		}
		price = p
	}
	image := e.Image
	if image == "" {
		image = catalog.PlaceholderImage
	}
	available := true
	if e.Available != nil {
		available = *e.Available
	}
	item := catalog.Item{
		ID:         e.ID,
		Name:       e.Name,
		Price:      price,
		ImageRef:   image,
		CategoryID: e.Category,
		Featured:   e.Featured,
		Available:  available,
		Variants:   e.Variants,
	}
	if err := item.Validate(); err != nil {
		return catalog.Item{}, err
	}
	return item, nil
}

// Default returns the embedded storefront catalog
func Default() ([]catalog.Item, error) {
	return Parse(bytes.NewReader(defaultCatalog))
}

// LoadFile parses the catalog at path
func LoadFile(path string) ([]catalog.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// StaticRepository implements catalog.ItemRepository over an in-memory list
type StaticRepository struct {
	items []catalog.Item
}

// NewStaticRepository serves items in the given order
func NewStaticRepository(items []catalog.Item) *StaticRepository {
	return &StaticRepository{items: items}
}

// NewDefaultRepository serves the embedded catalog
func NewDefaultRepository() (*StaticRepository, error) {
	items, err := Default()
	if err != nil {
		return nil, err
	}
	return NewStaticRepository(items), nil
}

// FindAll returns a copy of every item in catalog order
func (r *StaticRepository) FindAll(ctx context.Context) ([]catalog.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]catalog.Item, len(r.items))
	copy(out, r.items)
	return out, nil
}

// FindByID returns the item or shared.ErrNotFound
func (r *StaticRepository) FindByID(ctx context.Context, id string) (*catalog.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, item := range r.items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, shared.ErrNotFound
}

// FindByCategory returns the items of one category in catalog order
func (r *StaticRepository) FindByCategory(ctx context.Context, categoryID string) ([]catalog.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return catalog.FilterByCategory(r.items, categoryID), nil
}

var _ catalog.ItemRepository = (*StaticRepository)(nil)
