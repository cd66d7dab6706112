package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"go-lens-inspector/internal/analyzer"
	apperrors "go-lens-inspector/internal/errors"
	"go-lens-inspector/pkg/models"
)

// AnalysisSettings are the validated parameters of one analysis run. Crop
// margins are held as decimal fractions; percentage conversion happens
// exactly once, at construction. The zero value is not usable: build
// instances through NewAnalysisSettings or LoadSettingsFile.
type AnalysisSettings struct {
	CropTop            float64
	CropBottom         float64
	CropLeft           float64
	CropRight          float64
	HorizontalSections int
	Methods            []analyzer.Method
}

// settingsFile is the YAML shape of a settings file. Crop values are
// percentages 0-100, as entered by a user.
type settingsFile struct {
	CropTop            float64  `yaml:"crop_top"`
	CropBottom         float64  `yaml:"crop_bottom"`
	CropLeft           float64  `yaml:"crop_left"`
	CropRight          float64  `yaml:"crop_right"`
	HorizontalSections int      `yaml:"horizontal_sections"`
	AnalysisMethods    []string `yaml:"analysis_methods"`
}

// NewAnalysisSettings validates user-facing values (crop percentages in
// [0,100], sections in [1,20], a non-empty set of known methods) and returns
// settings with margins converted to decimals. Out-of-range values fail here,
// before any image is touched; nothing is silently clamped.
func NewAnalysisSettings(cropTop, cropBottom, cropLeft, cropRight float64, sections int, methodNames []string) (AnalysisSettings, error) {
	if sections < 1 || sections > 20 {
		return AnalysisSettings{}, apperrors.NewValidationError(
			fmt.Sprintf("horizontal sections must be between 1 and 20, got %d", sections), nil)
	}

	crops := map[string]float64{
		"top": cropTop, "bottom": cropBottom, "left": cropLeft, "right": cropRight,
	}
	for side, v := range crops {
		if v < 0 || v > 100 {
			return AnalysisSettings{}, apperrors.NewValidationError(
				fmt.Sprintf("%s crop percentage must be between 0 and 100, got %g", side, v), nil)
		}
	}

	if len(methodNames) == 0 {
		return AnalysisSettings{}, apperrors.NewValidationError("at least one analysis method is required", nil)
	}
	methods := make([]analyzer.Method, 0, len(methodNames))
	seen := make(map[analyzer.Method]bool, len(methodNames))
	for _, name := range methodNames {
		m, err := analyzer.ParseMethod(name)
		if err != nil {
			return AnalysisSettings{}, apperrors.NewValidationError("invalid analysis method", err)
		}
		if seen[m] {
			return AnalysisSettings{}, apperrors.NewValidationError(
				fmt.Sprintf("analysis method %q listed twice", name), nil)
		}
		seen[m] = true
		methods = append(methods, m)
	}

	return AnalysisSettings{
		CropTop:            cropTop / 100,
		CropBottom:         cropBottom / 100,
		CropLeft:           cropLeft / 100,
		CropRight:          cropRight / 100,
		HorizontalSections: sections,
		Methods:            methods,
	}, nil
}

// DefaultAnalysisSettings mirrors the defaults of the settings file: no
// cropping, five sections, all methods.
func DefaultAnalysisSettings() AnalysisSettings {
	names := make([]string, 0, 3)
	for _, m := range analyzer.AllMethods() {
		names = append(names, string(m))
	}
	s, _ := NewAnalysisSettings(0, 0, 0, 0, 5, names)
	return s
}

// LoadSettingsFile reads and validates a YAML settings file. Unknown keys are
// rejected so typos fail loudly instead of falling back to defaults.
func LoadSettingsFile(path string) (AnalysisSettings, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return AnalysisSettings{}, apperrors.NewValidationError(
			fmt.Sprintf("cannot read settings file %s", path), err)
	}

	var f settingsFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return AnalysisSettings{}, apperrors.NewValidationError(
			fmt.Sprintf("malformed settings file %s", path), err)
	}

	if f.HorizontalSections == 0 {
		f.HorizontalSections = 5
	}
	if len(f.AnalysisMethods) == 0 {
		f.AnalysisMethods = []string{string(analyzer.MethodLaplacian)}
	}

	return NewAnalysisSettings(f.CropTop, f.CropBottom, f.CropLeft, f.CropRight,
		f.HorizontalSections, f.AnalysisMethods)
}

// MethodNames returns the configured methods in order, as strings for
// serialization.
func (s AnalysisSettings) MethodNames() []string {
	names := make([]string, len(s.Methods))
	for i, m := range s.Methods {
		names[i] = string(m)
	}
	return names
}

// Snapshot converts the settings into the report's configuration block.
func (s AnalysisSettings) Snapshot() models.Configuration {
	return models.Configuration{
		CropTop:            s.CropTop,
		CropBottom:         s.CropBottom,
		CropLeft:           s.CropLeft,
		CropRight:          s.CropRight,
		HorizontalSections: s.HorizontalSections,
		AnalysisMethods:    s.MethodNames(),
	}
}

// FromConfiguration builds settings from an HTTP request configuration,
// where crop values are percentages like the settings file.
func FromConfiguration(c models.Configuration) (AnalysisSettings, error) {
	return NewAnalysisSettings(c.CropTop, c.CropBottom, c.CropLeft, c.CropRight,
		c.HorizontalSections, c.AnalysisMethods)
}
