package history

import (
	"fmt"
	"path/filepath"
	"reflect"
	"testing"
)

func TestAddAndAll(t *testing.T) {
	h, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.Add("echo one")
	h.Add("echo two")

	got := h.All()
	want := []string{"echo one", "echo two"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
}

func TestSaveAndReload(t *testing.T) {
	file := filepath.Join(t.TempDir(), "history")

	h, err := New(file)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.Add("jobs")
	h.Add("fg %1")
	if err := h.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	h2, err := New(file)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reflect.DeepEqual(h2.All(), h.All()) {
		t.Errorf("reloaded history = %v, want %v", h2.All(), h.All())
	}
}

func TestRetentionLimit(t *testing.T) {
	h, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	h.maxItems = 3
	for i := 0; i < 10; i++ {
		h.Add(fmt.Sprintf("cmd %d", i))
	}
	got := h.All()
	want := []string{"cmd 7", "cmd 8", "cmd 9"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
}
