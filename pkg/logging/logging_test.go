package logging

import "testing"

func TestInit_BadLevel(t *testing.T) {
	if err := Init("loud", "console"); err == nil {
		t.Fatal("expected error for unknown level, got nil")
	}
}

func TestInit_SetsSugar(t *testing.T) {
	if err := Init("debug", "json"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Sugar == nil {
		t.Fatal("Sugar not replaced after Init")
	}
}
