package service

import (
	"testing"
	"time"

	"village_rides_backend/internal/rides/transport"
)

func validOffer() transport.CreateRideRequest {
	return transport.CreateRideRequest{
		Driver:       "Иван Петров",
		Phone:        "0888123456",
		FromLocation: "Осойца",
		ToLocation:   "Ботевград",
		Date:         time.Now().AddDate(0, 0, 1).Format(dateLayout),
		Time:         "07:30",
		Seats:        3,
		RideType:     transport.RideTypeWork,
	}
}

func TestValidateOfferAccepts(t *testing.T) {
	if errs := validateOffer(validOffer()); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestValidateOfferMissingFields(t *testing.T) {
	errs := validateOffer(transport.CreateRideRequest{Seats: 1})

	want := map[string]string{
		"driver":        "Моля, въведете име на шофьора.",
		"phone":         "Моля, въведете телефон.",
		"from_location": "Моля, въведете място на тръгване.",
		"to_location":   "Моля, въведете място на пристигане.",
		"date":          "Моля, изберете дата.",
		"time":          "Моля, изберете час.",
	}
	for field, msg := range want {
		if errs[field] != msg {
			t.Errorf("%s: got %q, want %q", field, errs[field], msg)
		}
	}
}

func TestValidateOfferDate(t *testing.T) {
	cases := []struct {
		name string
		date string
		want string
	}{
		{"malformed", "01.09.2026", "Невалиден формат на дата."},
		{"past", "2020-01-01", "Датата не може да е в миналото."},
		{"today", time.Now().Format(dateLayout), ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validOffer()
			req.Date = tc.date
			errs := validateOffer(req)
			if errs["date"] != tc.want {
				t.Fatalf("date error = %q, want %q", errs["date"], tc.want)
			}
		})
	}
}

func TestValidateOfferSeatsRange(t *testing.T) {
	for _, seats := range []int{0, 9} {
		req := validOffer()
		req.Seats = seats
		errs := validateOffer(req)
		if errs["seats"] != "Броят места трябва да е между 1 и 8." {
			t.Fatalf("seats=%d: %v", seats, errs)
		}
	}
}

func TestValidateOfferRideType(t *testing.T) {
	req := validOffer()
	req.RideType = "cargo"
	if errs := validateOffer(req); errs["ride_type"] == "" {
		t.Fatal("expected error for unknown ride type")
	}

	for _, rt := range []string{transport.RideTypeWork, transport.RideTypeSchool, transport.RideTypeHealthcare, transport.RideTypeOther} {
		req.RideType = rt
		if errs := validateOffer(req); errs["ride_type"] != "" {
			t.Fatalf("ride type %q rejected: %v", rt, errs)
		}
	}
}

func TestRideTypeLabelFallsBack(t *testing.T) {
	if got := transport.RideTypeLabel(transport.RideTypeSchool); got != "За училище" {
		t.Fatalf("school label = %q", got)
	}
	if got := transport.RideTypeLabel("unknown"); got != "Друг превоз" {
		t.Fatalf("fallback label = %q", got)
	}
}
