package carttransform

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/cart-transform/internal/common"
	"github.com/noah-isme/cart-transform/internal/pricing"
)

// Handler wires the transform service to HTTP.
type Handler struct {
	Svc *Service
}

// PercentageResponse is returned by the percentage preview endpoint.
type PercentageResponse struct {
	Original   decimal.Decimal `json:"original"`
	Target     decimal.Decimal `json:"target"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Run decodes a cart snapshot and responds with the operations to apply.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, common.CodeInternal, "transform service not configured", nil)
		return
	}
	in, err := DecodeInput(r.Body)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, h.Svc.Transform(r.Context(), in))
}

// Percentage previews the discount for ?original=&target= without a cart.
func (h *Handler) Percentage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	original, err := pricing.ParseAmount(strings.TrimSpace(q.Get("original")))
	if err != nil {
		common.WriteError(w, common.BadRequest("original must be a decimal number within the supported range", err))
		return
	}
	target, err := pricing.ParseAmount(strings.TrimSpace(q.Get("target")))
	if err != nil {
		common.WriteError(w, common.BadRequest("target must be a decimal number within the supported range", err))
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": PercentageResponse{
			Original:   original,
			Target:     target,
			Percentage: pricing.DiscountPercentage(original, target),
		},
	})
}

// DecodeInput reads and validates a cart snapshot. Structural problems in the snapshot
// are reported as AppErrors; attribute contents are never inspected here.
func DecodeInput(r io.Reader) (Input, error) {
	var in Input
	if r == nil {
		return in, common.BadRequest("request body is required", nil)
	}
	dec := json.NewDecoder(r)
	if err := dec.Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return in, common.BadRequest("request body is required", err)
		}
		return in, common.BadRequest("invalid json payload", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return in, common.BadRequest("unexpected data after json payload", err)
	}
	if err := common.Validate(in); err != nil {
		return in, err
	}
	return in, nil
}
