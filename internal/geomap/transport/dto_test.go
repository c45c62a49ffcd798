package transport

import (
	"net/http/httptest"
	"testing"

	"village_rides_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

func bindQuery(t *testing.T, url string) (ReverseGeocodeRequest, error) {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", url, nil)
	var req ReverseGeocodeRequest
	err := c.ShouldBindQuery(&req)
	return req, err
}

func TestReverseGeocodeRequestAcceptsZeroCoordinates(t *testing.T) {
	req, err := bindQuery(t, "/reverse-geocode?lat=0&lng=0")
	if err != nil {
		t.Fatalf("bind: %v", err)
	}
	if req.Lat == nil || *req.Lat != 0 || req.Lng == nil || *req.Lng != 0 {
		t.Fatalf("coordinates = %v, %v", req.Lat, req.Lng)
	}
}

func TestReverseGeocodeRequestRejectsMissingAndOutOfRange(t *testing.T) {
	if _, err := bindQuery(t, "/reverse-geocode?lat=42.8"); err == nil {
		t.Fatal("expected error for missing lng")
	}
	if _, err := bindQuery(t, "/reverse-geocode?lat=91&lng=0"); err == nil {
		t.Fatal("expected error for latitude out of range")
	}
}

func TestClickRequestAcceptsZeroCoordinates(t *testing.T) {
	val := validator.New()
	zero := 0.0
	if err := val.Struct(ClickRequest{Lat: &zero, Lng: &zero}); err != nil {
		t.Fatalf("zero coordinates rejected: %v", err)
	}
	if err := val.Struct(ClickRequest{Lng: &zero}); err == nil {
		t.Fatal("expected error for missing lat")
	}
	bad := 181.0
	if err := val.Struct(ClickRequest{Lat: &zero, Lng: &bad}); err == nil {
		t.Fatal("expected error for longitude out of range")
	}
}
