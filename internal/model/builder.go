package model

import (
	"errors"
	"fmt"

	"orm-generator/internal/analyze"
)

// OptionGenerateToString is the directive argument enabling String.
const OptionGenerateToString = "GenerateToString"

// ErrNotMarked is returned when building a declaration without a marker.
var ErrNotMarked = errors.New("declaration is not marked")

// Build assembles the descriptor of a marked declaration.
func Build(decl *analyze.Declaration) (*Descriptor, error) {
	if !decl.Marker.Marked() {
		return nil, fmt.Errorf("%s: %w", decl.ID, ErrNotMarked)
	}

	genString, err := decl.BoolOption(OptionGenerateToString)
	if err != nil {
		return nil, err
	}

	props, err := Extract(decl)
	if err != nil {
		return nil, err
	}

	return &Descriptor{
		ID:             decl.ID,
		Package:        decl.PkgName,
		Marker:         decl.Marker,
		GenerateString: genString,
		Properties:     props,
	}, nil
}
