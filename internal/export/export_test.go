package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/MrSnakeDoc/bankfinder/internal/domain"
)

var testBranches = []domain.Branch{
	{ID: "044150149", BranchName: "Lagos Main", BranchCode: "044150149", Address: "999c Danmole Street", State: "Lagos"},
	{ID: "044-Lagos-1", BranchName: `The "New" Marina`, Address: "35 Marina, Lagos Island", State: "Lagos"},
}

func TestCSV(t *testing.T) {
	want := "Branch Name,Address,State,Branch Code\n" +
		`"Lagos Main","999c Danmole Street","Lagos","044150149"` + "\n" +
		`"The ""New"" Marina","35 Marina, Lagos Island","Lagos","N/A"`
	if diff := cmp.Diff(want, CSV(testBranches)); diff != "" {
		t.Errorf("CSV() mismatch (-want +got):\n%s", diff)
	}
}

func TestCSVEmpty(t *testing.T) {
	if got := CSV(nil); got != "Branch Name,Address,State,Branch Code\n" {
		t.Errorf("CSV(nil) = %q, want header only", got)
	}
}

func TestText(t *testing.T) {
	now := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	got := Text("Access Bank", testBranches, now)

	want := "Access Bank - Branch List\n" +
		"Generated: 3/5/2024\n" +
		"Total Branches: 2\n" +
		"\n" + strings.Repeat("=", 60) + "\n\n" +
		"1. Lagos Main\n" +
		"   Address: 999c Danmole Street\n" +
		"   State: Lagos\n" +
		"   Code: 044150149\n" +
		"\n" +
		"2. The \"New\" Marina\n" +
		"   Address: 35 Marina, Lagos Island\n" +
		"   State: Lagos\n" +
		"\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Text() mismatch (-want +got):\n%s", diff)
	}
}

func TestMailtoURL(t *testing.T) {
	got := MailtoURL("Access Bank", "1. Lagos (Main)!\nA&B = 'x' *y* ~z+")
	want := "mailto:?subject=Access%20Bank%20-%20Branch%20List" +
		"&body=1.%20Lagos%20(Main)!%0AA%26B%20%3D%20'x'%20*y*%20~z%2B"
	if got != want {
		t.Errorf("MailtoURL() =\n%s\nwant\n%s", got, want)
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatCSV},
		{in: "CSV", want: FormatCSV},
		{in: "txt", want: FormatText},
		{in: "text", want: FormatText},
		{in: "xlsx", want: FormatXLSX},
		{in: "pdf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	if got := FormatText.Filename(domain.Bank{ID: "044", Slug: "access"}); got != "access-branches.txt" {
		t.Errorf("Filename() = %q", got)
	}
	if got := FormatXLSX.Filename(domain.Bank{ID: "044"}); got != "044-branches.xlsx" {
		t.Errorf("Filename() without slug = %q", got)
	}
}

func TestXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatXLSX, domain.Bank{Name: "Access Bank"}, testBranches, time.Now()); err != nil {
		t.Fatalf("Write(xlsx) error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	want := [][]string{
		{"Branch Name", "Address", "State", "Branch Code"},
		{"Lagos Main", "999c Danmole Street", "Lagos", "044150149"},
		{`The "New" Marina`, "35 Marina, Lagos Island", "Lagos", "N/A"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("sheet rows mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatText, domain.Bank{Name: "GTBank"}, nil, time.Now()); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "GTBank - Branch List\n") {
		t.Errorf("Write(text) = %q", buf.String())
	}
	if !strings.Contains(buf.String(), "Total Branches: 0\n") {
		t.Error("Write(text) should report zero branches")
	}
}
