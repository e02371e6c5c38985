package domain

import "errors"

var (
	// ErrNotFound reports a missing category, subcategory, product, material,
	// design, set or storage key.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName reports a name collision on create or rename within the
	// owning scope (category names across the catalog, subcategory names
	// within a category).
	ErrDuplicateName = errors.New("duplicate name")

	// ErrInvalidFormat reports a malformed import payload, e.g. a catalog JSON
	// document without a categories array.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrInvalidProduct reports a product payload that is missing cod or pret,
	// or whose dynamic fields do not satisfy the subcategory schema.
	ErrInvalidProduct = errors.New("invalid product")

	// ErrUnknownDesignType reports a furniture design whose type has no base
	// price. There is deliberately no fallback price for unknown types.
	ErrUnknownDesignType = errors.New("unknown furniture type")
)
