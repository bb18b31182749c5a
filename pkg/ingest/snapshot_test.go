package ingest

import (
	"errors"
	"testing"
	"time"

	"rfm-segment/pkg/models"
)

func TestResolveSnapshot_Override(t *testing.T) {
	got, err := ResolveSnapshot(nil, "2025-09-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestResolveSnapshot_InvalidOverride(t *testing.T) {
	if _, err := ResolveSnapshot(nil, "09/01/2025"); err == nil {
		t.Fatal("expected error for invalid snapshot date, got nil")
	}
}

func TestResolveSnapshot_Inferred(t *testing.T) {
	txs := []models.Transaction{
		{OrderDate: time.Date(2025, 8, 30, 9, 0, 0, 0, time.UTC)},
		{OrderDate: time.Date(2025, 8, 31, 13, 45, 0, 0, time.UTC)},
	}
	got, err := ResolveSnapshot(txs, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Day after the latest order, at midnight.
	want := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestResolveSnapshot_NoDates(t *testing.T) {
	if _, err := ResolveSnapshot(nil, ""); !errors.Is(err, ErrNoValidDates) {
		t.Fatalf("expected ErrNoValidDates, got %v", err)
	}
}
