package handlers

import (
	"github.com/MrSnakeDoc/bankfinder/internal/domain"
	"github.com/MrSnakeDoc/bankfinder/internal/httpserver/deps"
	"github.com/MrSnakeDoc/bankfinder/internal/httpserver/response"
)

func lookupBank(d deps.Deps, id string) (domain.Bank, error) {
	if bank, ok := d.Directory.Bank(id); ok {
		return bank, nil
	}
	if d.Directory.Loading() {
		return domain.Bank{}, response.NewUnavailableError("banks are still loading")
	}
	return domain.Bank{}, response.NewNotFoundError("bank not found")
}

func lookupBranch(d deps.Deps, id string) (domain.Branch, error) {
	if branch, ok := d.Directory.Branch(id); ok {
		return branch, nil
	}
	if d.Directory.Loading() {
		return domain.Branch{}, response.NewUnavailableError("branches are still loading")
	}
	return domain.Branch{}, response.NewNotFoundError("branch not found")
}

// bankBranches is the branch list of the bank details view.
func bankBranches(d deps.Deps, bank domain.Bank, query, state string) (all, filtered []domain.Branch) {
	all = d.Directory.BranchesForBank(bank.Code)
	filtered = domain.FilterBranches(all, domain.BranchFilter{Query: query, State: state})
	return all, filtered
}
