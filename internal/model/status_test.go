package model

import (
	"strings"
	"testing"
)

func TestStatusScanValidValues(t *testing.T) {
	var s Status
	if err := s.Scan(int64(0)); err != nil {
		t.Fatalf("scan 0: %v", err)
	}
	if s != StatusBanned {
		t.Fatalf("expected BANNED, got %v", s)
	}

	if err := s.Scan(int64(1)); err != nil {
		t.Fatalf("scan 1: %v", err)
	}
	if s != StatusNotBanned {
		t.Fatalf("expected NOT_BANNED, got %v", s)
	}
}

func TestStatusScanInvalidValueFlagged(t *testing.T) {
	var s Status
	err := s.Scan(int64(7))
	if err == nil {
		t.Fatalf("expected error for stored value 7")
	}
	if !strings.Contains(err.Error(), "7") {
		t.Fatalf("error should name the bad value, got %q", err.Error())
	}
}

func TestStatusScanNull(t *testing.T) {
	var s Status
	if err := s.Scan(nil); err == nil {
		t.Fatalf("expected error for NULL status")
	}
}

func TestStatusValueRefusesInvalid(t *testing.T) {
	if _, err := Status(42).Value(); err == nil {
		t.Fatalf("expected error storing invalid status")
	}
	v, err := StatusNotBanned.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if v.(int64) != 1 {
		t.Fatalf("expected 1, got %v", v)
	}
}
