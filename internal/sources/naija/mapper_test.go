package naija

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/MrSnakeDoc/bankfinder/internal/domain"
)

func TestMapBanks(t *testing.T) {
	raw := []RawBank{
		{Bank: "Access Bank", Code: "044", Abb: "ACCESS"},
		{Bank: "First City  Monument Bank"},
		{Bank: "Guaranty Trust Bank", Code: "058"},
	}

	got, err := MapBanks(raw)
	if err != nil {
		t.Fatalf("MapBanks() error = %v", err)
	}

	want := []domain.Bank{
		{ID: "044", Name: "Access Bank", Code: "044", SortCode: "044", Slug: "access"},
		{ID: "1", Name: "First City  Monument Bank", Slug: "first-city-monument-bank"},
		{ID: "058", Name: "Guaranty Trust Bank", Code: "058", SortCode: "058", Slug: "guaranty-trust-bank"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MapBanks() mismatch (-want +got):\n%s", diff)
	}
}

func TestMapBanksUniqueIDs(t *testing.T) {
	raw := []RawBank{{Bank: "A", Code: "011"}, {Bank: "B"}, {Bank: "C"}, {Bank: "D", Code: "033"}}
	banks, err := MapBanks(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(banks) != len(raw) {
		t.Fatalf("MapBanks() = %d banks, want one per record (%d)", len(banks), len(raw))
	}
	seen := map[string]bool{}
	for _, b := range banks {
		if seen[b.ID] {
			t.Errorf("duplicate id %q", b.ID)
		}
		seen[b.ID] = true
	}
}

func TestMapBanksRejectsNameless(t *testing.T) {
	if _, err := MapBanks([]RawBank{{Code: "044"}}); err == nil {
		t.Error("MapBanks() should fail for a record without a bank name")
	}
}

func TestMapBranches(t *testing.T) {
	raw := []RawBank{
		{
			Bank: "Access Bank",
			Code: "044",
			State: StateList{
				{Name: "Lagos", Branches: []RawBranch{
					{Branch: "Lagos Main", BranchAddress: "Broad St", BranchCode: "044150149"},
					{Branch: "Marina", BranchAddress: "35 Marina"},
				}},
				{Name: "Abuja", Branches: []RawBranch{
					{Branch: "Abuja Central", BranchAddress: "Garki"},
				}},
			},
		},
		{Bank: "Empty Bank", Code: "999"},
	}

	got := MapBranches(raw)
	want := []domain.Branch{
		{
			ID: "044150149", BranchName: "Lagos Main", BranchCode: "044150149", Address: "Broad St",
			State: "Lagos", SortCode: "044150149", BankCode: "044", BankName: "Access Bank",
		},
		{
			ID: "044-Lagos-1", BranchName: "Marina", Address: "35 Marina",
			State: "Lagos", BankCode: "044", BankName: "Access Bank",
		},
		{
			ID: "044-Abuja-0", BranchName: "Abuja Central", Address: "Garki",
			State: "Abuja", BankCode: "044", BankName: "Access Bank",
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MapBranches() mismatch (-want +got):\n%s", diff)
	}
}

func TestMapBranchesFromFile(t *testing.T) {
	raw, err := Parse([]byte(`[{"bank":"B","code":"1","state":{"Kano":[{"branch":"x","branchaddress":"y"}],"Oyo":null}}]`))
	if err != nil {
		t.Fatal(err)
	}
	got := MapBranches(raw)
	if len(got) != 1 || got[0].ID != "1-Kano-0" || got[0].City != "" {
		t.Errorf("MapBranches() = %+v, want one synthesized Kano branch", got)
	}
}
