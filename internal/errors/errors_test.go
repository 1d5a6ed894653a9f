package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_FormatsCategoryAndSeverity(t *testing.T) {
	err := New(CategorySource, SeverityFatal, "source tree unavailable")
	want := "source (fatal): source tree unavailable"
	if err.Error() != want {
		t.Fatalf("expected %q, got %q", want, err.Error())
	}
}

func TestError_IncludesCause(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := Wrap(cause, CategoryDestination, SeverityFatal, "destination write failed")
	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
}

func TestWithContext(t *testing.T) {
	err := SourceUnavailable("/docs", fmt.Errorf("no such file"))
	if err.Context["path"] != "/docs" {
		t.Fatalf("expected path context, got %v", err.Context)
	}
	if err.Category != CategorySource {
		t.Fatalf("expected source category, got %s", err.Category)
	}
}

func TestIsCategory(t *testing.T) {
	err := DestinationWriteFailure("/site", fmt.Errorf("disk full"))
	if !IsCategory(err, CategoryDestination) {
		t.Fatal("expected destination category match")
	}
	if IsCategory(err, CategorySource) {
		t.Fatal("unexpected source category match")
	}
	if IsCategory(fmt.Errorf("plain"), CategoryDestination) {
		t.Fatal("plain errors have no category")
	}
}

func TestGetCategory_DefaultsToInternal(t *testing.T) {
	if got := GetCategory(fmt.Errorf("plain")); got != CategoryInternal {
		t.Fatalf("expected internal, got %s", got)
	}
	if got := GetCategory(PartialTreeFailure("en", "replicate", fmt.Errorf("x"))); got != CategoryFileSystem {
		t.Fatalf("expected filesystem, got %s", got)
	}
}
