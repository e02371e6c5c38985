package domain

import (
	"github.com/google/uuid"
)

// Quote is the priced cart: line items plus a labor markup percentage and the
// three derived totals. Subtotal, LaborCost and Total are never written
// directly; every mutator routes through Recalculate so a stale total is not
// representable.
type Quote struct {
	Items           []QuoteItem `json:"items"`
	LaborPercentage float64     `json:"laborPercentage"`
	Subtotal        float64     `json:"subtotal"`
	LaborCost       float64     `json:"laborCost"`
	Total           float64     `json:"total"`
	Beneficiary     string      `json:"beneficiary"`
	Title           string      `json:"title"`
}

// QuoteItem is one line. ProductDetails is a denormalized snapshot of the
// product at add-time: later catalog edits must not change totals on quotes
// already issued.
type QuoteItem struct {
	ID              string         `json:"id"`
	CategoryName    string         `json:"categoryName"`
	SubcategoryName string         `json:"subcategoryName"`
	ProductID       string         `json:"productId"`
	Quantity        float64        `json:"quantity"`
	PricePerUnit    float64        `json:"pricePerUnit"`
	Total           float64        `json:"total"`
	ProductDetails  map[string]any `json:"productDetails"`
}

// QuoteItemPatch is a partial line update. Nil fields are left untouched;
// the line total is always rederived from the post-merge quantity and price.
type QuoteItemPatch struct {
	CategoryName    *string
	SubcategoryName *string
	Quantity        *float64
	PricePerUnit    *float64
	ProductDetails  map[string]any
}

// QuoteMetadata is a partial update of the display metadata.
type QuoteMetadata struct {
	Beneficiary *string
	Title       *string
}

// NewQuote returns the zero-value quote.
func NewQuote() Quote {
	return Quote{Items: []QuoteItem{}}
}

func (q Quote) clone() Quote {
	items := make([]QuoteItem, len(q.Items))
	for i, it := range q.Items {
		items[i] = it.clone()
	}
	q.Items = items
	return q
}

func (it QuoteItem) clone() QuoteItem {
	if it.ProductDetails != nil {
		details := make(map[string]any, len(it.ProductDetails))
		for k, v := range it.ProductDetails {
			details[k] = v
		}
		it.ProductDetails = details
	}
	return it
}

// Recalculate rederives the three quote totals from the line totals. It is
// the single source of truth for the totals invariant and is idempotent.
func (q Quote) Recalculate() Quote {
	out := q.clone()
	var subtotal float64
	for _, it := range out.Items {
		subtotal += it.Total
	}
	out.Subtotal = subtotal
	out.LaborCost = subtotal * out.LaborPercentage / 100
	out.Total = subtotal + out.LaborCost
	return out
}

// AddItem assigns a fresh id, computes the line total and appends. Duplicate
// product lines are not merged: adding the same product twice yields two
// lines.
func (q Quote) AddItem(it QuoteItem) Quote {
	out := q.clone()
	it = it.clone()
	it.ID = uuid.NewString()
	it.Total = it.PricePerUnit * it.Quantity
	out.Items = append(out.Items, it)
	return out.Recalculate()
}

// UpdateItem merges the patch into the line with the given id and rederives
// its total from the post-merge values. An unknown id is a no-op and returns
// the input unchanged.
func (q Quote) UpdateItem(itemID string, patch QuoteItemPatch) Quote {
	idx := -1
	for i := range q.Items {
		if q.Items[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return q
	}
	out := q.clone()
	it := &out.Items[idx]
	if patch.CategoryName != nil {
		it.CategoryName = *patch.CategoryName
	}
	if patch.SubcategoryName != nil {
		it.SubcategoryName = *patch.SubcategoryName
	}
	if patch.Quantity != nil {
		it.Quantity = *patch.Quantity
	}
	if patch.PricePerUnit != nil {
		it.PricePerUnit = *patch.PricePerUnit
	}
	if patch.ProductDetails != nil {
		details := make(map[string]any, len(patch.ProductDetails))
		for k, v := range patch.ProductDetails {
			details[k] = v
		}
		it.ProductDetails = details
	}
	it.Total = it.PricePerUnit * it.Quantity
	return out.Recalculate()
}

// RemoveItem filters the line out. Removing an absent id is a no-op.
func (q Quote) RemoveItem(itemID string) Quote {
	out := q.clone()
	kept := out.Items[:0]
	for _, it := range out.Items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	out.Items = kept
	return out.Recalculate()
}

// SetLaborPercentage sets the markup and recalculates. The value is taken
// as-is; negative percentages act as a discount.
func (q Quote) SetLaborPercentage(pct float64) Quote {
	out := q.clone()
	out.LaborPercentage = pct
	return out.Recalculate()
}

// UpdateMetadata patches the display metadata. Totals are untouched.
func (q Quote) UpdateMetadata(meta QuoteMetadata) Quote {
	out := q.clone()
	if meta.Beneficiary != nil {
		out.Beneficiary = *meta.Beneficiary
	}
	if meta.Title != nil {
		out.Title = *meta.Title
	}
	return out
}

// AddManualItem appends a synthetic line not backed by any catalog product,
// used for raw sheet-material entries priced by sheet count. An empty
// category defaults to "PAL".
func (q Quote) AddManualItem(description string, quantity, pricePerUnit float64, categoryName string) Quote {
	if categoryName == "" {
		categoryName = "PAL"
	}
	cod := "MAN-" + uuid.NewString()[:8]
	return q.AddItem(QuoteItem{
		CategoryName:    categoryName,
		SubcategoryName: "Manual",
		ProductID:       cod,
		Quantity:        quantity,
		PricePerUnit:    pricePerUnit,
		ProductDetails: map[string]any{
			"cod":       cod,
			"descriere": description,
		},
	})
}

// AddFurnitureDesign wraps a priced design as a single quantity-1 line under
// the "Mobilier" category, embedding the design's descriptive attributes for
// display and printing.
func (q Quote) AddFurnitureDesign(d FurnitureDesign, calculatedCost float64) Quote {
	details := map[string]any{
		"name":       d.Name,
		"type":       d.Type,
		"material":   d.Material,
		"color":      d.Color,
		"room":       d.Room,
		"width":      d.Width,
		"height":     d.Height,
		"depth":      d.Depth,
		"hasDoors":   d.HasDoors,
		"hasDrawers": d.HasDrawers,
	}
	if d.DoorMaterial != "" {
		details["doorMaterial"] = d.DoorMaterial
	}
	if d.DoorColor != "" {
		details["doorColor"] = d.DoorColor
	}
	if len(d.Accessories) > 0 {
		acc := make([]map[string]any, len(d.Accessories))
		for i, a := range d.Accessories {
			acc[i] = map[string]any{"name": a.Name, "price": a.Price, "quantity": a.Quantity}
		}
		details["accessories"] = acc
	}
	return q.AddItem(QuoteItem{
		CategoryName:    "Mobilier",
		SubcategoryName: d.Type,
		ProductID:       d.ID,
		Quantity:        1,
		PricePerUnit:    calculatedCost,
		ProductDetails:  details,
	})
}
