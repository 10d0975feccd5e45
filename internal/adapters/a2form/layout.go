// Package a2form renders the A2 outward remittance form by overlaying text onto a PDF template.
package a2form

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

//go:embed a2_layout.yaml
var defaultLayoutYAML []byte

// Layout maps field names to positions on the template pages.
type Layout struct {
	Version string          `mapstructure:"version" validate:"required"`
	Pages   int             `mapstructure:"pages" validate:"required,min=1"`
	Font    Font            `mapstructure:"font"`
	Fields  []FieldPosition `mapstructure:"fields" validate:"required,min=1,dive"`
}

type Font struct {
	Family string  `mapstructure:"family" validate:"required"`
	Size   float64 `mapstructure:"size" validate:"gt=0,lte=72"`
}

// FieldPosition places one field. A non-zero Width wraps the text inside that width.
type FieldPosition struct {
	Name  string  `mapstructure:"name" validate:"required"`
	Page  int     `mapstructure:"page" validate:"min=1"`
	X     float64 `mapstructure:"x" validate:"gte=0"`
	Y     float64 `mapstructure:"y" validate:"gte=0"`
	Width float64 `mapstructure:"width" validate:"gte=0"`
}

// LoadLayout reads the layout at path, or the embedded default when path is empty.
func LoadLayout(path string) (Layout, error) {
	raw := defaultLayoutYAML
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Layout{}, fmt.Errorf("failed to read A2 layout %s: %w", path, err)
		}
		raw = b
	}
	return ParseLayout(raw)
}

// ParseLayout decodes and validates a YAML layout.
func ParseLayout(raw []byte) (Layout, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(raw)); err != nil {
		return Layout{}, fmt.Errorf("failed to parse A2 layout: %w", err)
	}

	var layout Layout
	if err := v.Unmarshal(&layout); err != nil {
		return Layout{}, fmt.Errorf("failed to decode A2 layout: %w", err)
	}
	if err := layout.Validate(); err != nil {
		return Layout{}, err
	}
	return layout, nil
}

// Validate checks field constraints and that every field lands on an existing page exactly once.
func (l Layout) Validate() error {
	if err := validator.New().Struct(l); err != nil {
		return fmt.Errorf("invalid A2 layout: %w", err)
	}
	seen := make(map[string]struct{}, len(l.Fields))
	for _, f := range l.Fields {
		if f.Page > l.Pages {
			return fmt.Errorf("invalid A2 layout: field %q is on page %d of %d", f.Name, f.Page, l.Pages)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("invalid A2 layout: field %q is positioned twice", f.Name)
		}
		seen[f.Name] = struct{}{}
	}
	return nil
}
