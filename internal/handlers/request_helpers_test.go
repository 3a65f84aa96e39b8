package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"techub/internal/commerce"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, recorder
}

func TestRespondCommerceErrorNilReturnsFalse(t *testing.T) {
	c, _ := newTestContext(t)
	if respondCommerceError(c, "test", nil) {
		t.Fatal("expected false for nil error")
	}
}

func TestRespondCommerceErrorInsufficientStock(t *testing.T) {
	c, recorder := newTestContext(t)

	handled := respondCommerceError(c, "test", &commerce.InsufficientStockError{
		ProductID: 7, Requested: 5, Available: 2,
	})
	if !handled {
		t.Fatal("expected error to be handled")
	}
	if recorder.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", recorder.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not json: %v", err)
	}
	if body["product_id"].(float64) != 7 || body["available"].(float64) != 2 {
		t.Fatalf("expected product and availability in body, got %v", body)
	}
}

func TestRespondCommerceErrorStatusMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{commerce.ErrEmptyCart, http.StatusBadRequest},
		{commerce.ErrInvalidQuantity, http.StatusBadRequest},
		{commerce.ErrUnknownCategory, http.StatusBadRequest},
		{commerce.ErrUnknownBrand, http.StatusBadRequest},
		{commerce.ErrProductNotFound, http.StatusNotFound},
		{commerce.ErrOrderNotFound, http.StatusNotFound},
		{commerce.ErrAddressNotFound, http.StatusNotFound},
		{commerce.ErrCategoryNotFound, http.StatusNotFound},
		{commerce.ErrBrandNotFound, http.StatusNotFound},
		{commerce.ErrCategoryExists, http.StatusConflict},
		{commerce.ErrBrandExists, http.StatusConflict},
		{commerce.ErrCategoryInUse, http.StatusConflict},
		{commerce.ErrBrandInUse, http.StatusConflict},
		{&commerce.InvalidTransitionError{Entity: "order", From: "delivered", To: "pending"}, http.StatusConflict},
		{fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		c, recorder := newTestContext(t)
		respondCommerceError(c, "test", tc.err)
		if recorder.Code != tc.want {
			t.Fatalf("error %v: expected status %d, got %d", tc.err, tc.want, recorder.Code)
		}
	}
}

func TestParsePaginationParamsDefaults(t *testing.T) {
	limit, offset, err := parsePaginationParams("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limit != 20 || offset != 0 {
		t.Fatalf("expected defaults 20/0, got %d/%d", limit, offset)
	}
}

func TestParsePaginationParamsRejectsBadValues(t *testing.T) {
	for _, pair := range [][2]string{{"0", ""}, {"-5", ""}, {"abc", ""}, {"", "-1"}, {"", "x"}} {
		if _, _, err := parsePaginationParams(pair[0], pair[1]); err == nil {
			t.Fatalf("expected error for limit=%q offset=%q", pair[0], pair[1])
		}
	}
}

func TestStrongPassword(t *testing.T) {
	valid := []string{"Abcdef1!", "Sup3r-Secret", "P@ssw0rdX"}
	for _, p := range valid {
		if !strongPassword(p) {
			t.Fatalf("expected %q to pass", p)
		}
	}
	invalid := []string{"short1!", "alllowercase1!", "ALLUPPER1!", "NoDigits!!", "NoSpecial123a", ""}
	for _, p := range invalid {
		if strongPassword(p) {
			t.Fatalf("expected %q to fail", p)
		}
	}
}
