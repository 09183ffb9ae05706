package cert

import (
	"errors"
	"testing"
	"time"
)

func TestParseDates(t *testing.T) {
	w := parseDates([]byte("notBefore=Jan  1 00:00:00 2020 GMT\nnotAfter=Jan  1 00:00:00 2030 GMT\n"))

	if !w.NotBefore.OK() || !w.NotBefore.Time.Equal(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("notBefore: %+v", w.NotBefore)
	}
	if !w.NotAfter.OK() || !w.NotAfter.Time.Equal(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("notAfter: %+v", w.NotAfter)
	}
	if w.NotAfter.Raw != "Jan  1 00:00:00 2030 GMT" {
		t.Fatalf("raw: %q", w.NotAfter.Raw)
	}
}

func TestParseDates_ISO8601(t *testing.T) {
	w := parseDates([]byte("notBefore=2020-01-01 00:00:00Z\nnotAfter=2030-06-01 12:30:00Z\n"))
	if !w.NotAfter.OK() || !w.NotAfter.Time.Equal(time.Date(2030, 6, 1, 12, 30, 0, 0, time.UTC)) {
		t.Fatalf("notAfter: %+v", w.NotAfter)
	}
}

func TestParseDates_FieldsIndependent(t *testing.T) {
	w := parseDates([]byte("notBefore=yesterday-ish\n"))

	if w.NotBefore.OK() {
		t.Fatalf("expected notBefore parse failure")
	}
	if w.NotBefore.Raw != "yesterday-ish" {
		t.Fatalf("expected raw text to be kept, got %q", w.NotBefore.Raw)
	}
	if !errors.Is(w.NotAfter.Err, ErrFieldMissing) {
		t.Fatalf("expected missing notAfter, got %v", w.NotAfter.Err)
	}
}
