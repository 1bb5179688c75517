package session

import (
	"testing"

	"ctqa/pkg/analysis"
	"ctqa/pkg/presentation"
)

// TestRegisterAndRemove verifies the dataset list lifecycle.
func TestRegisterAndRemove(t *testing.T) {
	s := New()

	a := s.Register("/scans/a.zip")
	b := s.Register("/scans/b.zip")

	if a.ID == b.ID {
		t.Error("Expected distinct IDs for distinct registrations")
	}

	datasets := s.Datasets()
	if len(datasets) != 2 {
		t.Fatalf("Expected 2 datasets, got %d", len(datasets))
	}
	if datasets[0].Path != "/scans/a.zip" || datasets[1].Path != "/scans/b.zip" {
		t.Error("Expected registration order to be preserved")
	}

	if !s.Remove(a.ID) {
		t.Error("Expected Remove to succeed for registered ID")
	}
	if s.Remove(a.ID) {
		t.Error("Expected Remove to fail for already-removed ID")
	}
	if len(s.Datasets()) != 1 {
		t.Errorf("Expected 1 dataset after removal, got %d", len(s.Datasets()))
	}

	if s.Find(b.ID) == nil {
		t.Error("Expected Find to locate remaining dataset")
	}
	if s.Find("nope") != nil {
		t.Error("Expected Find to return nil for unknown ID")
	}
}

// TestAttachResultReplacesWholesale verifies the single-cached-result
// invariant: a new result replaces the previous one entirely.
func TestAttachResultReplacesWholesale(t *testing.T) {
	s := New()
	ref := s.Register("/scans/a.zip")

	if ref.HasResult() {
		t.Error("Expected no result before any run")
	}

	first := &analysis.Result{Rows: []presentation.Row{{Label: "Phantom Type:", Value: "CatPhan 504"}}}
	if !s.AttachResult(ref.ID, first) {
		t.Fatal("Expected AttachResult to succeed")
	}
	if ref.Result() != first {
		t.Error("Expected first result to be attached")
	}

	second := &analysis.Result{Rows: []presentation.Row{{Label: "Phantom Type:", Value: "CatPhan 600"}}}
	s.AttachResult(ref.ID, second)
	if ref.Result() != second {
		t.Error("Expected second result to replace the first")
	}

	if s.AttachResult("nope", second) {
		t.Error("Expected AttachResult to fail for unknown ID")
	}
}
