package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ofertare/mobila/internal/adapters/importer"
	"github.com/ofertare/mobila/internal/domain"
	"github.com/ofertare/mobila/internal/pricing"
)

func (s *Server) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	q, err := s.quotes.Current(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleResetQuote(w http.ResponseWriter, r *http.Request) {
	q, err := s.quotes.Reset(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleAddQuoteItem(w http.ResponseWriter, r *http.Request) {
	var it domain.QuoteItem
	if !decodeBody(w, r, &it) {
		return
	}
	q, err := s.quotes.AddItem(r.Context(), it)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

func (s *Server) handleUpdateQuoteItem(w http.ResponseWriter, r *http.Request) {
	var patch domain.QuoteItemPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	q, err := s.quotes.UpdateItem(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleRemoveQuoteItem(w http.ResponseWriter, r *http.Request) {
	q, err := s.quotes.RemoveItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleSetLabor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Percentage float64 `json:"percentage"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	q, err := s.quotes.SetLaborPercentage(r.Context(), req.Percentage)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleQuoteMetadata(w http.ResponseWriter, r *http.Request) {
	var meta domain.QuoteMetadata
	if !decodeBody(w, r, &meta) {
		return
	}
	q, err := s.quotes.UpdateMetadata(r.Context(), meta)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleAddManualItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description  string  `json:"description"`
		Quantity     float64 `json:"quantity"`
		PricePerUnit float64 `json:"pricePerUnit"`
		CategoryName string  `json:"categoryName"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	q, err := s.quotes.AddManualItem(r.Context(), req.Description, req.Quantity, req.PricePerUnit, req.CategoryName)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

func (s *Server) handleAddDesignToQuote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Design domain.FurnitureDesign `json:"design"`
		Cost   *float64               `json:"cost"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	q, err := s.quotes.AddDesign(r.Context(), req.Design, req.Cost)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

func (s *Server) handleAddSetToQuote(w http.ResponseWriter, r *http.Request) {
	set, designs, err := s.designs.SetDesigns(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	var req struct {
		Costs map[string]float64 `json:"costs"`
	}
	// an empty body is fine, every cost falls back to the parametric rule
	_ = decodeQuiet(r, &req)

	q, err := s.quotes.AddSet(r.Context(), set.Name, designs, req.Costs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

func (s *Server) handlePriceDesign(w http.ResponseWriter, r *http.Request) {
	var d domain.FurnitureDesign
	if !decodeBody(w, r, &d) {
		return
	}
	cost, err := pricing.DesignCost(d)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"cost": cost})
}

func (s *Server) handlePriceCutList(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Parts             []pricing.Part     `json:"parts"`
		MaterialPrices    map[string]float64 `json:"materialPrices"`
		EdgePricePerMeter float64            `json:"edgePricePerMeter"`
		PaintPricePerM2   float64            `json:"paintPricePerM2"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	material := pricing.MaterialCost(req.Parts, req.MaterialPrices)
	edges := pricing.EdgeBandingCost(req.Parts, req.EdgePricePerMeter)
	painting := pricing.PaintingCost(req.Parts, req.PaintPricePerM2)
	writeJSON(w, http.StatusOK, map[string]float64{
		"material": material,
		"edges":    edges,
		"painting": painting,
		"total":    material + edges + painting,
	})
}

func (s *Server) handleExportQuoteXLSX(w http.ResponseWriter, r *http.Request) {
	q, err := s.quotes.Current(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	data, err := importer.ExportQuoteXLSX(q)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="oferta.xlsx"`)
	_, _ = w.Write(data)
}

func (s *Server) handleEmailQuote(w http.ResponseWriter, r *http.Request) {
	if !s.mail.Enabled() {
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "email is not configured"})
		return
	}
	var req struct {
		To string `json:"to"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.To == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing recipient"})
		return
	}

	q, err := s.quotes.Current(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	data, err := importer.ExportQuoteXLSX(q)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := s.mail.SendQuote(req.To, q, data); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
