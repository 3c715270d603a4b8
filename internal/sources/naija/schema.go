package naija

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// RawBank is one record of the naija-banks-branches-sortcode dataset.
type RawBank struct {
	Bank  string    `yaml:"bank"`
	Code  Scalar    `yaml:"code"`
	Abb   Scalar    `yaml:"abb"`
	State StateList `yaml:"state"`
}

// RawBranch is one branch nested under a bank and a state.
type RawBranch struct {
	Branch        string `yaml:"branch"`
	BranchAddress string `yaml:"branchaddress"`
	BranchCode    Scalar `yaml:"branchcode"`
}

// StateBranches is the branch list of one state, in file order.
type StateBranches struct {
	Name     string
	Branches []RawBranch
}

// StateList keeps the state mapping in file order. Values that are not
// lists are skipped.
type StateList []StateBranches

func (s *StateList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		*s = nil
		return nil
	}

	states := make(StateList, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if val.Kind != yaml.SequenceNode {
			continue
		}

		var branches []RawBranch
		if err := val.Decode(&branches); err != nil {
			return fmt.Errorf("state %q: %w", key.Value, err)
		}
		states = append(states, StateBranches{Name: key.Value, Branches: branches})
	}
	*s = states
	return nil
}

// Scalar holds the literal text of a scalar so codes such as 044 keep their
// leading zeros whether or not the file quotes them.
type Scalar string

func (c *Scalar) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar", node.Line)
	}
	if node.ShortTag() == "!!null" {
		*c = ""
		return nil
	}
	*c = Scalar(node.Value)
	return nil
}

func (c Scalar) String() string { return string(c) }
