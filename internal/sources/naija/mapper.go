package naija

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/bankfinder/internal/domain"
)

var whitespace = regexp.MustCompile(`\s+`)

// MapBanks converts raw records to banks, one per record, in file order.
func MapBanks(raw []RawBank) ([]domain.Bank, error) {
	banks := make([]domain.Bank, 0, len(raw))

	for i, r := range raw {
		if r.Bank == "" {
			return nil, fmt.Errorf("bank record %d has no name", i)
		}

		code := r.Code.String()
		id := code
		if id == "" {
			id = strconv.Itoa(i)
		}

		banks = append(banks, domain.Bank{
			ID:       id,
			Name:     r.Bank,
			Code:     code,
			SortCode: code,
			Slug:     slug(r),
		})
	}

	return banks, nil
}

// MapBranches flattens bank -> state -> branch into one list. Each branch
// carries its enclosing bank code, bank name and state name.
func MapBranches(raw []RawBank) []domain.Branch {
	branches := make([]domain.Branch, 0)

	for _, r := range raw {
		bankCode := r.Code.String()
		for _, state := range r.State {
			for i, b := range state.Branches {
				code := b.BranchCode.String()
				id := code
				if id == "" {
					id = fmt.Sprintf("%s-%s-%d", bankCode, state.Name, i)
				}

				branches = append(branches, domain.Branch{
					ID:         id,
					BranchName: b.Branch,
					BranchCode: code,
					Address:    b.BranchAddress,
					State:      state.Name,
					SortCode:   code,
					BankCode:   bankCode,
					BankName:   r.Bank,
				})
			}
		}
	}

	return branches
}

func slug(r RawBank) string {
	if abb := r.Abb.String(); abb != "" {
		return strings.ToLower(abb)
	}
	return whitespace.ReplaceAllString(strings.ToLower(r.Bank), "-")
}
