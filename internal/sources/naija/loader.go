package naija

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Provider returns the full nested dataset.
type Provider interface {
	All(ctx context.Context) ([]RawBank, error)
}

// FileProvider reads the dataset from a JSON or YAML file on every call.
type FileProvider struct {
	filePath string
}

// NewFileProvider creates a provider for filePath
func NewFileProvider(filePath string) *FileProvider {
	return &FileProvider{
		filePath: filePath,
	}
}

// All reads and parses the dataset file
func (p *FileProvider) All(ctx context.Context) ([]RawBank, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	return Parse(data)
}

// Path returns the dataset location.
func (p *FileProvider) Path() string { return p.filePath }

// Parse decodes a dataset document. JSON input is accepted as YAML.
func Parse(data []byte) ([]RawBank, error) {
	var banks []RawBank
	if err := yaml.Unmarshal(data, &banks); err != nil {
		return nil, fmt.Errorf("failed to parse dataset: %w", err)
	}
	return banks, nil
}

// StaticProvider serves a dataset held in memory.
type StaticProvider struct {
	Banks []RawBank
	Err   error
}

func (p StaticProvider) All(ctx context.Context) ([]RawBank, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Banks, nil
}
