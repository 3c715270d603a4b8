package domain

// Bank is a financial institution as delivered by the data provider.
// Banks are immutable for the lifetime of a directory load.
type Bank struct {
	// ID is the stable identifier: the bank code, or the positional index of the
	// provider record when the provider omits a code.
	ID string `json:"id"`

	Name string `json:"name"`
	Code string `json:"code"`

	SortCode string `json:"sortCode,omitempty"`
	Logo     string `json:"logo,omitempty"`

	// Slug is the lower-cased abbreviation, or a hyphenated lower-cased name.
	Slug string `json:"slug,omitempty"`
}

// Branch is a physical location belonging to exactly one Bank.
type Branch struct {
	// ID is the provider branch code, or "<bankCode>-<state>-<index>" when the
	// provider has none.
	ID string `json:"id"`

	BranchName string `json:"branchName"`
	BranchCode string `json:"branchCode"`
	Address    string `json:"address"`
	State      string `json:"state"`
	City       string `json:"city,omitempty"`
	SortCode   string `json:"sortCode,omitempty"`

	// BankCode references Bank.Code. BankName is a denormalized copy.
	BankCode string `json:"bankCode"`
	BankName string `json:"bankName,omitempty"`
}
