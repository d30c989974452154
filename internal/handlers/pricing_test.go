package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newPricingRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/pricing/info", PricingInfo())
	r.POST("/api/pricing/calculate", CalculatePricing())
	return r
}

func TestPricingInfoExposesRateCard(t *testing.T) {
	r := newPricingRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/pricing/info", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if body["currency"] != "NOK" {
		t.Fatalf("expected currency NOK, got %v", body["currency"])
	}
	if body["vatRate"] != 0.25 {
		t.Fatalf("expected vatRate 0.25, got %v", body["vatRate"])
	}
	if _, ok := body["quantityBands"]; !ok {
		t.Fatal("expected quantityBands in response")
	}
}

func TestCalculatePricingEmbroideryScenario(t *testing.T) {
	r := newPricingRouter()

	payload := `{"printMethod":"embroidery","widthCm":8,"heightCm":8,"complexity":"normal","quantity":1}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/pricing/calculate", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	// 8x8cm * 2.5 * 1.0 + 200 setup at qty 1
	if body["unitDesignPrice"] != 360.0 {
		t.Fatalf("expected unitDesignPrice 360, got %v", body["unitDesignPrice"])
	}
	if body["quantityMultiplier"] != 1.0 {
		t.Fatalf("expected quantityMultiplier 1, got %v", body["quantityMultiplier"])
	}
}

func TestCalculatePricingIncludesBasePriceInTotals(t *testing.T) {
	r := newPricingRouter()

	payload := `{"printMethod":"print","widthCm":10,"heightCm":8,"colors":["#000","#FFF"],"quantity":25,"basePrice":119}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/pricing/calculate", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	// (10*8*1.2*2 + 150/25) * 0.8 = 158.4 per unit
	if body["unitDesignPrice"] != 158.4 {
		t.Fatalf("expected unitDesignPrice 158.4, got %v", body["unitDesignPrice"])
	}
	if body["unitTotal"] != 277.4 {
		t.Fatalf("expected unitTotal 277.4, got %v", body["unitTotal"])
	}
	if body["lineTotal"] != 6935.0 {
		t.Fatalf("expected lineTotal 6935, got %v", body["lineTotal"])
	}
}

func TestCalculatePricingRejectsUnknownMethod(t *testing.T) {
	r := newPricingRouter()

	payload := `{"printMethod":"laser","widthCm":5,"heightCm":5,"quantity":1}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/pricing/calculate", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestCalculatePricingRejectsMissingFields(t *testing.T) {
	r := newPricingRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/pricing/calculate", strings.NewReader(`{"printMethod":"print"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "validation failed") {
		t.Fatalf("expected validation error body, got %s", w.Body.String())
	}
}
