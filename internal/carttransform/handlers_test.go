package carttransform_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/cart-transform/internal/carttransform"
	"github.com/noah-isme/cart-transform/internal/common"
)

type percentageResponse struct {
	Data carttransform.PercentageResponse `json:"data"`
}

func TestHandlerRun(t *testing.T) {
	handler := &carttransform.Handler{Svc: &carttransform.Service{}}

	t.Run("emits operations", func(t *testing.T) {
		body := `{"cart":{"lines":[
			{"id":"gid://shopify/CartLine/1","cost":{"amountPerQuantity":{"amount":"1000.0","currencyCode":"USD"}},"attributes":[{"key":"_Price","value":"$600"}]},
			{"id":"gid://shopify/CartLine/2","cost":{"amountPerQuantity":{"amount":"25.00","currencyCode":"USD"}}}
		]}}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart-transform/run", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Run(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"operations":[{"update":{"cartLineId":"gid://shopify/CartLine/1","price":{"adjustment":{"percentageDecrease":{"value":"40"}}}}}]}`, rec.Body.String())
	})

	t.Run("empty cart", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart-transform/run", strings.NewReader(`{"cart":{"lines":[]}}`))
		rec := httptest.NewRecorder()
		handler.Run(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"operations":[]}`, rec.Body.String())
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart-transform/run", strings.NewReader(`{"cart":`))
		rec := httptest.NewRecorder()
		handler.Run(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		var env common.ErrorEnvelope
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		require.Equal(t, common.CodeBadRequest, env.Error.Code)
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart-transform/run", strings.NewReader(""))
		rec := httptest.NewRecorder()
		handler.Run(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("trailing data", func(t *testing.T) {
		for _, body := range []string{`{"cart":{"lines":[]}} trailing`, `{"cart":{"lines":[]}}{}`, `{"cart":{"lines":[]}}]`} {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/cart-transform/run", strings.NewReader(body))
			rec := httptest.NewRecorder()
			handler.Run(rec, req)
			require.Equalf(t, http.StatusBadRequest, rec.Code, "body %q", body)
		}

		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart-transform/run", strings.NewReader("{\"cart\":{\"lines\":[]}}\n"))
		rec := httptest.NewRecorder()
		handler.Run(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("out of range amount", func(t *testing.T) {
		body := `{"cart":{"lines":[{"id":"a","cost":{"amountPerQuantity":{"amount":"1e-2000000000"}},"attributes":[{"key":"_Price","value":"$1"}]}]}}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart-transform/run", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Run(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing cart", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart-transform/run", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		handler.Run(rec, req)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("missing line id", func(t *testing.T) {
		body := `{"cart":{"lines":[{"cost":{"amountPerQuantity":{"amount":"10"}}}]}}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cart-transform/run", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Run(rec, req)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		var env struct {
			Error struct {
				Code    string              `json:"code"`
				Details []common.FieldError `json:"details"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
		require.Equal(t, common.CodeValidation, env.Error.Code)
		require.Len(t, env.Error.Details, 1)
		require.Equal(t, "Input.Cart.Lines[0].ID", env.Error.Details[0].Field)
		require.Equal(t, "required", env.Error.Details[0].Rule)
	})

	t.Run("unconfigured", func(t *testing.T) {
		rec := httptest.NewRecorder()
		(&carttransform.Handler{}).Run(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`)))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHandlerPercentage(t *testing.T) {
	handler := &carttransform.Handler{}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/discounts/percentage?original=1000&target=600", nil)
	rec := httptest.NewRecorder()
	handler.Percentage(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp percentageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Data.Percentage.Equal(decimal.NewFromInt(40)))

	bad := httptest.NewRequest(http.MethodGet, "/api/v1/discounts/percentage?original=abc&target=600", nil)
	badRec := httptest.NewRecorder()
	handler.Percentage(badRec, bad)
	require.Equal(t, http.StatusBadRequest, badRec.Code)

	for _, query := range []string{"original=1e-2000000000&target=1", "original=1000&target=1e2000000000"} {
		extreme := httptest.NewRequest(http.MethodGet, "/api/v1/discounts/percentage?"+query, nil)
		extremeRec := httptest.NewRecorder()
		handler.Percentage(extremeRec, extreme)
		require.Equalf(t, http.StatusBadRequest, extremeRec.Code, "query %q", query)
	}

	missing := httptest.NewRequest(http.MethodGet, "/api/v1/discounts/percentage?original=10", nil)
	missingRec := httptest.NewRecorder()
	handler.Percentage(missingRec, missing)
	require.Equal(t, http.StatusBadRequest, missingRec.Code)
}
