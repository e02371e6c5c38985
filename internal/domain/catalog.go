package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Database is the catalog root: the nested category tree plus the flat
// material and accessory lists. It is persisted wholesale as a single JSON
// document under KeyDatabase.
//
// All mutators are pure: they take the receiver by value, deep-copy it and
// return the modified copy. A failed mutation returns the input unchanged
// together with a typed error.
type Database struct {
	Categories  []Category  `json:"categories"`
	Materials   []Material  `json:"materials"`
	Accessories []Accessory `json:"accessories"`
}

type Category struct {
	Name          string        `json:"name"`
	Subcategories []Subcategory `json:"subcategories"`
}

type Subcategory struct {
	Name     string      `json:"name"`
	Fields   []FieldSpec `json:"fields"`
	Products []Product   `json:"products"`
}

type FieldType string

const (
	FieldSelect  FieldType = "select"
	FieldText    FieldType = "text"
	FieldNumber  FieldType = "number"
	FieldBoolean FieldType = "boolean"
)

// FieldSpec declares one dynamic column of a subcategory schema. Options is
// required for select fields and ignored otherwise.
type FieldSpec struct {
	Name    string    `json:"name"`
	Type    FieldType `json:"type"`
	Options []string  `json:"options,omitempty"`
}

// Validate checks a dynamic product value against the field type. JSON
// decoding yields float64 for numbers, so both int and float64 are accepted
// as number values.
func (f FieldSpec) Validate(v any) error {
	switch f.Type {
	case FieldSelect:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("%w: field %q expects one of %v", ErrInvalidProduct, f.Name, f.Options)
		}
		for _, opt := range f.Options {
			if opt == s {
				return nil
			}
		}
		return fmt.Errorf("%w: field %q value %q is not an option", ErrInvalidProduct, f.Name, s)
	case FieldText:
		if _, ok := v.(string); !ok {
			return fmt.Errorf("%w: field %q expects text", ErrInvalidProduct, f.Name)
		}
	case FieldNumber:
		switch v.(type) {
		case float64, int, int64:
		default:
			return fmt.Errorf("%w: field %q expects a number", ErrInvalidProduct, f.Name)
		}
	case FieldBoolean:
		if _, ok := v.(bool); !ok {
			return fmt.Errorf("%w: field %q expects a boolean", ErrInvalidProduct, f.Name)
		}
	}
	return nil
}

// Product is one catalog row. Cod is the SKU and Pret the unit price (RON).
// Fields holds the dynamic payload declared by the parent subcategory schema;
// it is flattened into the product object on the wire so the persisted JSON
// matches the legacy document shape.
type Product struct {
	ID       string
	Cod      string
	Pret     float64
	ImageURL string
	Fields   map[string]any
}

func (p Product) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(p.Fields)+4)
	for k, v := range p.Fields {
		m[k] = v
	}
	m["id"] = p.ID
	m["cod"] = p.Cod
	m["pret"] = p.Pret
	if p.ImageURL != "" {
		m["imageUrl"] = p.ImageURL
	}
	return json.Marshal(m)
}

func (p *Product) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if v, ok := m["id"].(string); ok {
		p.ID = v
	}
	if v, ok := m["cod"].(string); ok {
		p.Cod = v
	}
	if v, ok := m["pret"].(float64); ok {
		p.Pret = v
	}
	if v, ok := m["imageUrl"].(string); ok {
		p.ImageURL = v
	}
	delete(m, "id")
	delete(m, "cod")
	delete(m, "pret")
	delete(m, "imageUrl")
	if len(m) > 0 {
		p.Fields = m
	} else {
		p.Fields = nil
	}
	return nil
}

// NewProductID derives a product id from the creation timestamp, the same
// scheme the legacy documents use.
func NewProductID(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10)
}

// Normalize heals older persisted shapes: nil materials/accessories arrays
// and nil nested slices become empty so every load yields the full shape.
func (db Database) Normalize() Database {
	if db.Categories == nil {
		db.Categories = []Category{}
	}
	if db.Materials == nil {
		db.Materials = []Material{}
	}
	if db.Accessories == nil {
		db.Accessories = []Accessory{}
	}
	for i := range db.Categories {
		if db.Categories[i].Subcategories == nil {
			db.Categories[i].Subcategories = []Subcategory{}
		}
		for j := range db.Categories[i].Subcategories {
			sub := &db.Categories[i].Subcategories[j]
			if sub.Fields == nil {
				sub.Fields = []FieldSpec{}
			}
			if sub.Products == nil {
				sub.Products = []Product{}
			}
		}
	}
	return db
}

// Clone returns a deep copy. Mutators clone before touching anything so a
// returned Database never aliases the input.
func (db Database) Clone() Database {
	out := Database{
		Categories:  make([]Category, len(db.Categories)),
		Materials:   append([]Material(nil), db.Materials...),
		Accessories: append([]Accessory(nil), db.Accessories...),
	}
	for i, c := range db.Categories {
		nc := Category{Name: c.Name, Subcategories: make([]Subcategory, len(c.Subcategories))}
		for j, s := range c.Subcategories {
			ns := Subcategory{
				Name:     s.Name,
				Fields:   make([]FieldSpec, len(s.Fields)),
				Products: make([]Product, len(s.Products)),
			}
			for k, f := range s.Fields {
				ns.Fields[k] = FieldSpec{Name: f.Name, Type: f.Type, Options: append([]string(nil), f.Options...)}
			}
			for k, p := range s.Products {
				ns.Products[k] = p.clone()
			}
			nc.Subcategories[j] = ns
		}
		out.Categories[i] = nc
	}
	return out
}

func (p Product) clone() Product {
	if p.Fields != nil {
		fields := make(map[string]any, len(p.Fields))
		for k, v := range p.Fields {
			fields[k] = v
		}
		p.Fields = fields
	}
	return p
}

func (db Database) findCategory(name string) int {
	for i := range db.Categories {
		if db.Categories[i].Name == name {
			return i
		}
	}
	return -1
}

func (c Category) findSubcategory(name string) int {
	for i := range c.Subcategories {
		if c.Subcategories[i].Name == name {
			return i
		}
	}
	return -1
}

// AddCategory appends an empty category. Category names are unique across the
// catalog.
func (db Database) AddCategory(name string) (Database, error) {
	if db.findCategory(name) >= 0 {
		return db, fmt.Errorf("%w: category %q", ErrDuplicateName, name)
	}
	out := db.Clone()
	out.Categories = append(out.Categories, Category{Name: name, Subcategories: []Subcategory{}})
	return out, nil
}

// DeleteCategory removes a category and its whole subtree.
func (db Database) DeleteCategory(name string) (Database, error) {
	idx := db.findCategory(name)
	if idx < 0 {
		return db, fmt.Errorf("%w: category %q", ErrNotFound, name)
	}
	out := db.Clone()
	out.Categories = append(out.Categories[:idx], out.Categories[idx+1:]...)
	return out, nil
}

// AddSubcategory appends a subcategory to an existing category. Subcategory
// names are unique within their category.
func (db Database) AddSubcategory(categoryName string, sub Subcategory) (Database, error) {
	ci := db.findCategory(categoryName)
	if ci < 0 {
		return db, fmt.Errorf("%w: category %q", ErrNotFound, categoryName)
	}
	if db.Categories[ci].findSubcategory(sub.Name) >= 0 {
		return db, fmt.Errorf("%w: subcategory %q in %q", ErrDuplicateName, sub.Name, categoryName)
	}
	out := db.Clone()
	if sub.Fields == nil {
		sub.Fields = []FieldSpec{}
	}
	if sub.Products == nil {
		sub.Products = []Product{}
	}
	out.Categories[ci].Subcategories = append(out.Categories[ci].Subcategories, sub)
	return out, nil
}

// UpdateSubcategory replaces the subcategory named oldName wholesale, fields
// and products array included. Callers that only change the schema must carry
// the existing products over themselves. A rename that collides with a
// different existing subcategory fails.
func (db Database) UpdateSubcategory(categoryName, oldName string, updated Subcategory) (Database, error) {
	ci := db.findCategory(categoryName)
	if ci < 0 {
		return db, fmt.Errorf("%w: category %q", ErrNotFound, categoryName)
	}
	si := db.Categories[ci].findSubcategory(oldName)
	if si < 0 {
		return db, fmt.Errorf("%w: subcategory %q in %q", ErrNotFound, oldName, categoryName)
	}
	if updated.Name != oldName && db.Categories[ci].findSubcategory(updated.Name) >= 0 {
		return db, fmt.Errorf("%w: subcategory %q in %q", ErrDuplicateName, updated.Name, categoryName)
	}
	out := db.Clone()
	if updated.Fields == nil {
		updated.Fields = []FieldSpec{}
	}
	if updated.Products == nil {
		updated.Products = []Product{}
	}
	out.Categories[ci].Subcategories[si] = updated
	return out, nil
}

// DeleteSubcategory removes a subcategory and its products.
func (db Database) DeleteSubcategory(categoryName, name string) (Database, error) {
	ci := db.findCategory(categoryName)
	if ci < 0 {
		return db, fmt.Errorf("%w: category %q", ErrNotFound, categoryName)
	}
	si := db.Categories[ci].findSubcategory(name)
	if si < 0 {
		return db, fmt.Errorf("%w: subcategory %q in %q", ErrNotFound, name, categoryName)
	}
	out := db.Clone()
	subs := out.Categories[ci].Subcategories
	out.Categories[ci].Subcategories = append(subs[:si], subs[si+1:]...)
	return out, nil
}

func (db Database) validateProduct(sub Subcategory, p Product) error {
	if p.Cod == "" {
		return fmt.Errorf("%w: missing cod", ErrInvalidProduct)
	}
	if p.Pret < 0 {
		return fmt.Errorf("%w: negative pret", ErrInvalidProduct)
	}
	for _, f := range sub.Fields {
		v, ok := p.Fields[f.Name]
		if !ok {
			continue
		}
		if err := f.Validate(v); err != nil {
			return err
		}
	}
	return nil
}

// AddProduct validates the product against the subcategory schema, assigns a
// timestamp id when missing and appends it. Cod uniqueness within the
// subcategory is expected but not enforced here; importers dedupe instead.
func (db Database) AddProduct(categoryName, subName string, p Product) (Database, error) {
	ci := db.findCategory(categoryName)
	if ci < 0 {
		return db, fmt.Errorf("%w: category %q", ErrNotFound, categoryName)
	}
	si := db.Categories[ci].findSubcategory(subName)
	if si < 0 {
		return db, fmt.Errorf("%w: subcategory %q in %q", ErrNotFound, subName, categoryName)
	}
	if err := db.validateProduct(db.Categories[ci].Subcategories[si], p); err != nil {
		return db, err
	}
	out := db.Clone()
	if p.ID == "" {
		p.ID = NewProductID(time.Now())
	}
	sub := &out.Categories[ci].Subcategories[si]
	sub.Products = append(sub.Products, p.clone())
	return out, nil
}

// UpdateProduct replaces the product with the given id, keeping the id stable.
func (db Database) UpdateProduct(categoryName, subName, productID string, p Product) (Database, error) {
	ci := db.findCategory(categoryName)
	if ci < 0 {
		return db, fmt.Errorf("%w: category %q", ErrNotFound, categoryName)
	}
	si := db.Categories[ci].findSubcategory(subName)
	if si < 0 {
		return db, fmt.Errorf("%w: subcategory %q in %q", ErrNotFound, subName, categoryName)
	}
	sub := db.Categories[ci].Subcategories[si]
	pi := -1
	for i := range sub.Products {
		if sub.Products[i].ID == productID {
			pi = i
			break
		}
	}
	if pi < 0 {
		return db, fmt.Errorf("%w: product %q", ErrNotFound, productID)
	}
	if err := db.validateProduct(sub, p); err != nil {
		return db, err
	}
	out := db.Clone()
	p.ID = productID
	out.Categories[ci].Subcategories[si].Products[pi] = p.clone()
	return out, nil
}

// DeleteProduct removes the product with the given id.
func (db Database) DeleteProduct(categoryName, subName, productID string) (Database, error) {
	ci := db.findCategory(categoryName)
	if ci < 0 {
		return db, fmt.Errorf("%w: category %q", ErrNotFound, categoryName)
	}
	si := db.Categories[ci].findSubcategory(subName)
	if si < 0 {
		return db, fmt.Errorf("%w: subcategory %q in %q", ErrNotFound, subName, categoryName)
	}
	sub := db.Categories[ci].Subcategories[si]
	for i := range sub.Products {
		if sub.Products[i].ID == productID {
			out := db.Clone()
			prods := out.Categories[ci].Subcategories[si].Products
			out.Categories[ci].Subcategories[si].Products = append(prods[:i], prods[i+1:]...)
			return out, nil
		}
	}
	return db, fmt.Errorf("%w: product %q", ErrNotFound, productID)
}
