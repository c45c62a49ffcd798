package engine

import "testing"

func fullDoc() *fakeDoc {
	return newFakeDoc(
		"offer_from_location", "offer_from_lat", "offer_from_lng",
		"offer_to_location", "offer_to_lat", "offer_to_lng",
		"request_from_location", "request_from_lat", "request_from_lng",
		"request_to_location", "request_to_lat", "request_to_lng",
	)
}

func TestBinderWritesCoordinatesToBothForms(t *testing.T) {
	doc := fullDoc()
	binder := NewFormBinder(doc)

	binder.SetCoordinates(42.8038, 23.8097, ModeFrom)

	for _, name := range []string{"offer_from_lat", "request_from_lat"} {
		if got, _ := doc.Get(name); got != "42.8038" {
			t.Fatalf("%s = %q, want %q", name, got, "42.8038")
		}
	}
	for _, name := range []string{"offer_from_lng", "request_from_lng"} {
		if got, _ := doc.Get(name); got != "23.8097" {
			t.Fatalf("%s = %q, want %q", name, got, "23.8097")
		}
	}
	if got, _ := doc.Get("offer_to_lat"); got != "" {
		t.Fatalf("to fields written on a from click: %q", got)
	}
}

func TestBinderWritesLabelToBothForms(t *testing.T) {
	doc := fullDoc()
	binder := NewFormBinder(doc)

	binder.SetLabel("Осойца", ModeTo)

	for _, name := range []string{"offer_to_location", "request_to_location"} {
		if got, _ := doc.Get(name); got != "Осойца" {
			t.Fatalf("%s = %q, want %q", name, got, "Осойца")
		}
	}
	if got, _ := doc.Get("offer_from_location"); got != "" {
		t.Fatalf("from label written on a to click: %q", got)
	}
}

func TestBinderSilentlySkipsMissingFields(t *testing.T) {
	// The request form has no destination coordinate fields on the page.
	doc := newFakeDoc(
		"offer_to_location", "offer_to_lat", "offer_to_lng",
		"request_to_location",
	)
	binder := NewFormBinder(doc)

	binder.SetCoordinates(42.9, 23.7, ModeTo)
	binder.SetLabel("Ботевград", ModeTo)

	if got, _ := doc.Get("offer_to_lat"); got != "42.9" {
		t.Fatalf("offer_to_lat = %q, want %q", got, "42.9")
	}
	if got, _ := doc.Get("request_to_location"); got != "Ботевград" {
		t.Fatalf("request_to_location = %q, want %q", got, "Ботевград")
	}
}
