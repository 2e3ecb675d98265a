package handlers

import (
	"testing"

	"github.com/Tyagi221B/Ecommerce-backend/internal/models"
)

func sampleAddress() models.Address {
	return models.Address{
		Street:      "12 Park Lane",
		City:        "Mumbai",
		State:       "Maharashtra",
		ZipCode:     "400001",
		Country:     "India",
		PhoneNumber: "9999999999",
		AddressType: "home",
	}
}

func TestMergeAddressFieldsOverlaysOnlyProvidedValues(t *testing.T) {
	merged := mergeAddressFields(sampleAddress(), addressUpdateRequest{
		City:    "Pune",
		ZipCode: "411001",
	})

	if merged.City != "Pune" || merged.ZipCode != "411001" {
		t.Fatalf("expected patched city and zip, got %q %q", merged.City, merged.ZipCode)
	}
	if merged.Street != "12 Park Lane" || merged.Country != "India" {
		t.Fatalf("expected untouched fields preserved, got %q %q", merged.Street, merged.Country)
	}
	if merged.AddressType != "home" {
		t.Fatalf("expected address type preserved, got %q", merged.AddressType)
	}
}

func TestMergeAddressFieldsIgnoresWhitespaceOnlyValues(t *testing.T) {
	merged := mergeAddressFields(sampleAddress(), addressUpdateRequest{
		Street: "   ",
		City:   "\t",
	})

	if merged.Street != "12 Park Lane" || merged.City != "Mumbai" {
		t.Fatalf("expected whitespace-only fields ignored, got %q %q", merged.Street, merged.City)
	}
}

func TestMergeAddressFieldsTrimsPatchValues(t *testing.T) {
	merged := mergeAddressFields(sampleAddress(), addressUpdateRequest{
		Street: "  45 Hill Road  ",
	})
	if merged.Street != "45 Hill Road" {
		t.Fatalf("expected trimmed street, got %q", merged.Street)
	}
}

func TestAddressNeedsClone(t *testing.T) {
	if addressNeedsClone(1) {
		t.Fatal("a single referrer should update in place")
	}
	if !addressNeedsClone(2) {
		t.Fatal("two referrers should force a clone")
	}
	if !addressNeedsClone(5) {
		t.Fatal("many referrers should force a clone")
	}
	if !addressNeedsClone(0) {
		t.Fatal("an orphaned record should force a clone, not an in-place edit")
	}
}

func TestValidAddressType(t *testing.T) {
	for _, valid := range []string{"home", "work", "billing", "shipping"} {
		if !models.ValidAddressType(valid) {
			t.Fatalf("expected %q to be a valid address type", valid)
		}
	}
	if models.ValidAddressType("office") {
		t.Fatal("expected unknown address type to be rejected")
	}
}
