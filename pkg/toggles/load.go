package toggles

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed feature-toggles.json
var defaultConfig []byte

// Parse decodes a JSON toggle configuration into a Tree.
func Parse(data []byte) (Tree, error) {
	var tree Tree
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}
	if tree == nil {
		tree = Tree{}
	}
	return tree, nil
}

// ParseYAML decodes a YAML toggle configuration into a Tree.
func ParseYAML(data []byte) (Tree, error) {
	var tree Tree
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}
	if tree == nil {
		tree = Tree{}
	}
	return tree, nil
}

// LoadFile reads a toggle configuration file, dispatching on the extension:
// .yaml and .yml files are decoded as YAML, everything else as JSON.
func LoadFile(path string) (Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadingConfig, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return Parse(data)
	}
}

var loadDefault = sync.OnceValue(func() Tree {
	tree, err := Parse(defaultConfig)
	if err != nil {
		panic(fmt.Sprintf("toggles: embedded configuration is invalid: %v", err))
	}
	return tree
})

// Default returns the tree built from the embedded feature-toggles.json.
// The embedded configuration is parsed once per process.
func Default() Tree {
	return loadDefault()
}
