package naija

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileProviderAllJSON(t *testing.T) {
	p := NewFileProvider(filepath.Join("testdata", "banks.json"))
	banks, err := p.All(context.Background())
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}

	if len(banks) != 3 {
		t.Fatalf("All() returned %d banks, want 3", len(banks))
	}
	if banks[0].Code != "044" {
		t.Errorf("code = %q, want 044", banks[0].Code)
	}

	// "Kano" holds a string, not a list, and is dropped.
	states := banks[0].State
	if len(states) != 2 || states[0].Name != "Lagos" || states[1].Name != "Abuja" {
		t.Errorf("states = %+v, want Lagos then Abuja", states)
	}
	if got := len(states[0].Branches); got != 2 {
		t.Errorf("Lagos branches = %d, want 2", got)
	}
	if banks[2].State != nil {
		t.Errorf("missing state mapping should decode to nil, got %+v", banks[2].State)
	}
}

func TestFileProviderAllYAMLUnquotedCodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banks.yaml")
	content := `---
- bank: Access Bank
  code: 044
  state:
    Lagos:
      - branch: Lagos Main
        branchaddress: Broad Street
        branchcode: 044150149
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	banks, err := NewFileProvider(path).All(context.Background())
	if err != nil {
		t.Fatalf("All() error = %v", err)
	}
	if banks[0].Code != "044" {
		t.Errorf("code = %q, want the literal 044", banks[0].Code)
	}
	if got := banks[0].State[0].Branches[0].BranchCode; got != "044150149" {
		t.Errorf("branchcode = %q, want 044150149", got)
	}
}

func TestFileProviderFileNotFound(t *testing.T) {
	_, err := NewFileProvider("/nonexistent/path/banks.json").All(context.Background())
	if err == nil {
		t.Error("All() with non-existent file should return error")
	}
}

func TestFileProviderInvalidDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banks.json")
	if err := os.WriteFile(path, []byte(`{"bank": "not a list"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileProvider(path).All(context.Background()); err == nil {
		t.Error("All() should fail when the document is not a list")
	}
}

func TestFileProviderCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewFileProvider(filepath.Join("testdata", "banks.json")).All(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("All() error = %v, want context.Canceled", err)
	}
}

func TestSampleDatasetParses(t *testing.T) {
	banks, err := NewFileProvider(filepath.Join("..", "..", "..", "data", "banks.yaml")).All(context.Background())
	if err != nil {
		t.Fatalf("sample dataset: %v", err)
	}
	if len(banks) == 0 {
		t.Fatal("sample dataset is empty")
	}
}

func TestStaticProvider(t *testing.T) {
	boom := errors.New("boom")
	if _, err := (StaticProvider{Err: boom}).All(context.Background()); !errors.Is(err, boom) {
		t.Errorf("StaticProvider error = %v, want boom", err)
	}
	banks, err := StaticProvider{Banks: []RawBank{{Bank: "X"}}}.All(context.Background())
	if err != nil || len(banks) != 1 {
		t.Errorf("StaticProvider = %v, %v", banks, err)
	}
}
