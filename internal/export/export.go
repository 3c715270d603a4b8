// Package export renders a filtered branch list for download or sharing.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MrSnakeDoc/bankfinder/internal/domain"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatText Format = "text"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts csv, text (or txt) and xlsx, case-insensitively.
// An empty string means csv.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return FormatCSV, nil
	case "text", "txt":
		return FormatText, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatText:
		return "text/plain; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

func (f Format) Extension() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// Filename is the attachment name offered for bank in format f.
func (f Format) Filename(bank domain.Bank) string {
	name := bank.Slug
	if name == "" {
		name = bank.ID
	}
	return fmt.Sprintf("%s-branches.%s", name, f.Extension())
}

// Write renders branches of bank in format f to w.
func Write(w io.Writer, f Format, bank domain.Bank, branches []domain.Branch, now time.Time) error {
	switch f {
	case FormatCSV:
		_, err := io.WriteString(w, CSV(branches))
		return err
	case FormatText:
		_, err := io.WriteString(w, Text(bank.Name, branches, now))
		return err
	case FormatXLSX:
		return XLSX(w, bank.Name, branches)
	default:
		return fmt.Errorf("unsupported export format %q", f)
	}
}
