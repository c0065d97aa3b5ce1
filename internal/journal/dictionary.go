package journal

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed dictionary.yaml
var defaultDictionary []byte

// Dictionary is the ordered bucket -> subject -> keywords table. Slice order is match priority.
type Dictionary struct {
	Buckets []Bucket `yaml:"buckets"`
}

type Bucket struct {
	Name     string    `yaml:"name"`
	Subjects []Subject `yaml:"subjects"`
}

type Subject struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// DefaultDictionary returns the built-in dictionary.
func DefaultDictionary() Dictionary {
	d, err := ParseDictionary(defaultDictionary)
	if err != nil {
		panic(fmt.Sprintf("journal: embedded dictionary: %v", err))
	}
	return d
}

// ParseDictionary decodes a YAML dictionary.
func ParseDictionary(data []byte) (Dictionary, error) {
	var d Dictionary
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Dictionary{}, fmt.Errorf("parse dictionary: %w", err)
	}
	if len(d.Buckets) == 0 {
		return Dictionary{}, fmt.Errorf("parse dictionary: no buckets")
	}
	return d, nil
}

// LoadDictionary reads a YAML dictionary from path.
func LoadDictionary(path string) (Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dictionary{}, fmt.Errorf("read dictionary: %w", err)
	}
	return ParseDictionary(data)
}
