package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("BANKFINDER_DATA_FILE", "../../../data/banks.yaml")
	t.Setenv("BANKFINDER_STORAGE", "sqlite")
	t.Setenv("BANKFINDER_SQLITE_PATH", filepath.Join(dir, "bankfinder.db"))
	t.Setenv("BANKFINDER_LOG_LEVEL", "error")
	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append(args, "--log-level", "error"))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBanksCommand(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "banks", "acc")
	if err != nil {
		t.Fatalf("banks: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Access Bank") || strings.Contains(out, "Zenith") {
		t.Errorf("banks acc output:\n%s", out)
	}
	if !strings.Contains(out, "1 bank(s)") {
		t.Errorf("missing count line:\n%s", out)
	}
}

func TestBranchesCommand(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "branches", "--state", "Lagos", "--bank", "044", "--json")
	if err != nil {
		t.Fatalf("branches: %v", err)
	}
	if !strings.Contains(out, `"branchCode": "044150149"`) {
		t.Errorf("branches output:\n%s", out)
	}
	if strings.Contains(out, `"state": "FCT"`) {
		t.Errorf("state filter leaked FCT branches:\n%s", out)
	}
}

func TestFavoritesRoundTrip(t *testing.T) {
	setupEnv(t)

	if out, err := run(t, "favorites", "add", "bank", "044"); err != nil {
		t.Fatalf("add: %v\n%s", err, out)
	}
	out, err := run(t, "favorites", "list", "--type", "bank")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Access Bank") {
		t.Errorf("list after add:\n%s", out)
	}

	if _, err := run(t, "favorites", "remove", "bank", "044"); err != nil {
		t.Fatal(err)
	}
	out, _ = run(t, "favorites", "list")
	if strings.Contains(out, "Access Bank") {
		t.Errorf("list after remove:\n%s", out)
	}
}

func TestFavoritesAddUnknown(t *testing.T) {
	setupEnv(t)

	if _, err := run(t, "favorites", "add", "bank", "999"); err == nil {
		t.Error("adding an unknown bank should fail")
	}
	if _, err := run(t, "favorites", "add", "atm", "1"); err == nil {
		t.Error("adding an unknown type should fail")
	}
}

func TestThemeToggleCommand(t *testing.T) {
	setupEnv(t)

	out, _ := run(t, "theme")
	if strings.TrimSpace(out) != "light" {
		t.Fatalf("theme = %q", out)
	}
	if out, _ = run(t, "theme", "toggle"); strings.TrimSpace(out) != "dark" {
		t.Errorf("toggle = %q", out)
	}
	if out, _ = run(t, "theme"); strings.TrimSpace(out) != "dark" {
		t.Errorf("theme after toggle = %q, want it persisted", out)
	}
}

func TestExportCommand(t *testing.T) {
	dir := setupEnv(t)

	out, err := run(t, "export", "044", "--state", "Lagos")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "Branch Name,Address,State,Branch Code\n") {
		t.Errorf("csv output:\n%s", out)
	}

	target := filepath.Join(dir, "access.xlsx")
	if _, err := run(t, "export", "044", "-f", "xlsx", "-o", target); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(target); err != nil || info.Size() == 0 {
		t.Errorf("xlsx file not written: %v", err)
	}

	if _, err := run(t, "export", "044", "-f", "xlsx"); err == nil {
		t.Error("xlsx to stdout should be refused")
	}
	if _, err := run(t, "export", "044", "-f", "pdf"); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestExportShare(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "export", "058", "--share")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "mailto:?subject=Guaranty%20Trust%20Bank%20-%20Branch%20List&body=") {
		t.Errorf("share output = %q", out)
	}
}
