package models

import "testing"

func TestStringListScanArray(t *testing.T) {
	var list StringList
	if err := list.Scan([]byte(`["a.jpg","b.jpg"]`)); err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(list) != 2 || list[0] != "a.jpg" || list[1] != "b.jpg" {
		t.Fatalf("unexpected list contents: %v", list)
	}
}

func TestStringListScanLegacyBareString(t *testing.T) {
	var list StringList
	if err := list.Scan([]byte(`" a.jpg "`)); err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(list) != 1 || list[0] != "a.jpg" {
		t.Fatalf("expected single trimmed element, got %v", list)
	}
}

func TestStringListScanNull(t *testing.T) {
	var list StringList
	if err := list.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) returned error: %v", err)
	}
	if list != nil {
		t.Fatalf("expected nil list, got %v", list)
	}
	if err := list.Scan([]byte("null")); err != nil {
		t.Fatalf("Scan(null) returned error: %v", err)
	}
	if list != nil {
		t.Fatalf("expected nil list for json null, got %v", list)
	}
}

func TestStringListValueNilBecomesEmptyArray(t *testing.T) {
	var list StringList
	value, err := list.Value()
	if err != nil {
		t.Fatalf("Value returned error: %v", err)
	}
	if string(value.([]byte)) != "[]" {
		t.Fatalf("expected empty array, got %s", value)
	}
}

func TestSpecMapRoundTrip(t *testing.T) {
	var specs SpecMap
	if err := specs.Scan([]byte(`{"ram":"16GB","cores":8}`)); err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if specs["ram"] != "16GB" {
		t.Fatalf("expected ram=16GB, got %v", specs["ram"])
	}
	if _, err := specs.Value(); err != nil {
		t.Fatalf("Value returned error: %v", err)
	}
}

func TestSpecMapScanNil(t *testing.T) {
	var specs SpecMap
	if err := specs.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) returned error: %v", err)
	}
	if specs != nil {
		t.Fatalf("expected nil map, got %v", specs)
	}
	value, err := specs.Value()
	if err != nil {
		t.Fatalf("Value returned error: %v", err)
	}
	if value != nil {
		t.Fatalf("expected nil driver value, got %v", value)
	}
}
