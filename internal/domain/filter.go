package domain

import (
	"sort"
	"strings"
)

// FilterBanks returns the banks whose name or code contains query,
// case-insensitively. A blank query returns every bank.
func FilterBanks(banks []Bank, query string) []Bank {
	if strings.TrimSpace(query) == "" {
		return append([]Bank(nil), banks...)
	}

	q := strings.ToLower(query)
	out := make([]Bank, 0, len(banks))
	for _, b := range banks {
		if contains(b.Name, q) || contains(b.Code, q) {
			out = append(out, b)
		}
	}
	return out
}

// BranchFilter narrows a branch list. Zero fields do not filter.
type BranchFilter struct {
	Query    string
	State    string
	BankCode string
}

func (f BranchFilter) match(b Branch) bool {
	if f.State != "" && b.State != f.State {
		return false
	}
	if f.BankCode != "" && b.BankCode != f.BankCode {
		return false
	}
	if strings.TrimSpace(f.Query) == "" {
		return true
	}
	q := strings.ToLower(f.Query)
	return contains(b.BranchName, q) ||
		contains(b.Address, q) ||
		contains(b.City, q) ||
		contains(b.BankName, q)
}

// FilterBranches keeps the branches matching f, in input order.
func FilterBranches(branches []Branch, f BranchFilter) []Branch {
	out := make([]Branch, 0, len(branches))
	for _, b := range branches {
		if f.match(b) {
			out = append(out, b)
		}
	}
	return out
}

// AvailableStates lists the distinct non-empty states of branches, sorted.
func AvailableStates(branches []Branch) []string {
	seen := make(map[string]struct{}, len(branches))
	states := make([]string, 0)
	for _, b := range branches {
		if b.State == "" {
			continue
		}
		if _, ok := seen[b.State]; ok {
			continue
		}
		seen[b.State] = struct{}{}
		states = append(states, b.State)
	}
	sort.Strings(states)
	return states
}

// FilterFavorites keeps items of the given type. An empty type keeps all.
func FilterFavorites(items []FavoriteItem, typ FavoriteType) []FavoriteItem {
	out := make([]FavoriteItem, 0, len(items))
	for _, it := range items {
		if typ == "" || it.Type == typ {
			out = append(out, it)
		}
	}
	return out
}

// contains expects q already lower-cased.
func contains(field, q string) bool {
	return field != "" && strings.Contains(strings.ToLower(field), q)
}
