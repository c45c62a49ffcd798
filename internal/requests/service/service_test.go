package service

import (
	"testing"
	"time"

	"village_rides_backend/internal/requests/transport"
)

func validRequest() transport.CreateRequestRequest {
	return transport.CreateRequestRequest{
		Passenger:    "Мария Георгиева",
		Phone:        "0888123456",
		FromLocation: "Осойца",
		ToLocation:   "София",
		Date:         time.Now().AddDate(0, 0, 2).Format(dateLayout),
		Time:         "08:00",
		TimeFlex:     transport.TimeFlex30m,
		PeopleCount:  2,
	}
}

func TestValidateRequestAccepts(t *testing.T) {
	if errs := validateRequest(validRequest()); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestValidateRequestMissingFields(t *testing.T) {
	errs := validateRequest(transport.CreateRequestRequest{PeopleCount: 1, TimeFlex: transport.TimeFlex1h})

	want := map[string]string{
		"passenger":     "Моля, въведете име на пътника.",
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

func TestValidateRequestTimeFlex(t *testing.T) {
	req := validRequest()
	req.TimeFlex = "whenever"
	if errs := validateRequest(req); errs["time_flex"] != "Моля, изберете валидна гъвкавост на времето." {
		t.Fatalf("time_flex errors: %v", errs)
	}

	for _, tf := range []string{transport.TimeFlex30m, transport.TimeFlex1h, transport.TimeFlexMorning, transport.TimeFlexAfternoon} {
		req.TimeFlex = tf
		if errs := validateRequest(req); errs["time_flex"] != "" {
			t.Fatalf("time flex %q rejected: %v", tf, errs)
		}
	}
}

func TestValidateRequestPeopleCount(t *testing.T) {
	for _, count := range []int{0, 5} {
		req := validRequest()
		req.PeopleCount = count
		errs := validateRequest(req)
		if errs["people_count"] != "Броят хора трябва да е между 1 и 4." {
			t.Fatalf("people_count=%d: %v", count, errs)
		}
	}
}

func TestValidateRequestPastDate(t *testing.T) {
	req := validRequest()
	req.Date = "2020-01-01"
	if errs := validateRequest(req); errs["date"] != "Датата не може да е в миналото." {
		t.Fatalf("date errors: %v", errs)
	}
}

func TestTimeFlexLabels(t *testing.T) {
	if got := transport.TimeFlexLabel(transport.TimeFlexMorning); got != "По-скоро сутрин" {
		t.Fatalf("morning label = %q", got)
	}
	if got := transport.TimeFlexLabel("whenever"); got != "" {
		t.Fatalf("unknown label = %q", got)
	}
}
