package export

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/MrSnakeDoc/bankfinder/internal/domain"
)

const (
	csvHeader   = "Branch Name,Address,State,Branch Code\n"
	missingCode = "N/A"
	ruleWidth   = 60
	dateLayout  = "1/2/2006"
)

// CSV renders one quoted row per branch under a fixed header. Rows are
// separated by "\n" with no trailing newline.
func CSV(branches []domain.Branch) string {
	rows := make([]string, 0, len(branches))
	for _, b := range branches {
		code := b.BranchCode
		if code == "" {
			code = missingCode
		}
		rows = append(rows, strings.Join([]string{
			quote(b.BranchName), quote(b.Address), quote(b.State), quote(code),
		}, ","))
	}
	return csvHeader + strings.Join(rows, "\n")
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Text renders a numbered, human readable branch list.
func Text(bankName string, branches []domain.Branch, now time.Time) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s - Branch List\n", bankName)
	fmt.Fprintf(&sb, "Generated: %s\n", now.Format(dateLayout))
	fmt.Fprintf(&sb, "Total Branches: %d\n", len(branches))
	sb.WriteString("\n" + strings.Repeat("=", ruleWidth) + "\n\n")

	for i, b := range branches {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, b.BranchName)
		fmt.Fprintf(&sb, "   Address: %s\n", b.Address)
		fmt.Fprintf(&sb, "   State: %s\n", b.State)
		if b.BranchCode != "" {
			fmt.Fprintf(&sb, "   Code: %s\n", b.BranchCode)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// MailtoURL builds a mail draft link with the list as body.
func MailtoURL(bankName, body string) string {
	subject := encodeURIComponent(bankName + " - Branch List")
	return "mailto:?subject=" + subject + "&body=" + encodeURIComponent(body)
}

// uriComponentUnescape turns url.QueryEscape output into URI component
// encoding: spaces as %20, and !'()* left literal.
var uriComponentUnescape = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeURIComponent(s string) string {
	return uriComponentUnescape.Replace(url.QueryEscape(s))
}
