package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/hed-standard/hedviz/pkg/errors"
)

// Decoding is strict everywhere: a key that does not correspond to a
// config field is a configuration error. Decoded documents overlay the
// documented defaults, so absent keys keep their defaults while explicit
// zero values (contour_width = 0) survive.

// UnmarshalJSON decodes a word-cloud configuration over the defaults,
// rejecting unknown keys.
func (c *WordCloudConfig) UnmarshalJSON(data []byte) error {
	*c = DefaultWordCloud()
	type plain WordCloudConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode((*plain)(c))
}

// UnmarshalJSON decodes a visualization configuration over the defaults,
// rejecting unknown keys.
func (v *VisualizationConfig) UnmarshalJSON(data []byte) error {
	*v = VisualizationConfig{OutputFormats: []string{FormatSVG}}
	type plain VisualizationConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode((*plain)(v))
}

// Validate checks the aggregate constraints without mutating the config.
func (v *VisualizationConfig) Validate() error {
	if err := ValidateFormats(v.OutputFormats); err != nil {
		return err
	}
	if v.WordCloud != nil {
		return v.WordCloud.Validate()
	}
	return nil
}

// WordCloudFromJSON decodes and validates a word-cloud configuration.
func WordCloudFromJSON(r io.Reader) (WordCloudConfig, error) {
	var c WordCloudConfig
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return WordCloudConfig{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode word-cloud config")
	}
	if err := c.Validate(); err != nil {
		return WordCloudConfig{}, err
	}
	return c, nil
}

// VisualizationFromJSON decodes and validates a visualization configuration.
func VisualizationFromJSON(r io.Reader) (VisualizationConfig, error) {
	var v VisualizationConfig
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return VisualizationConfig{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode visualization config")
	}
	if err := v.Validate(); err != nil {
		return VisualizationConfig{}, err
	}
	return v, nil
}

// VisualizationFromTOML decodes and validates a visualization configuration
// from TOML. Undecoded keys are a configuration error.
func VisualizationFromTOML(r io.Reader) (VisualizationConfig, error) {
	wc := DefaultWordCloud()
	v := VisualizationConfig{
		WordCloud:     &wc,
		OutputFormats: []string{FormatSVG},
	}

	md, err := toml.NewDecoder(r).Decode(&v)
	if err != nil {
		return VisualizationConfig{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode visualization config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return VisualizationConfig{}, errors.New(errors.ErrCodeInvalidConfig,
			"unknown config key: %q", undecoded[0].String())
	}
	if err := v.Validate(); err != nil {
		return VisualizationConfig{}, err
	}
	return v, nil
}

// VisualizationFromTOMLFile reads path and decodes it as TOML.
func VisualizationFromTOMLFile(path string) (VisualizationConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return VisualizationConfig{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return VisualizationConfig{}, errors.Wrap(errors.ErrCodeFileUnreadable, err, "config file %s", path)
	}
	defer f.Close()
	return VisualizationFromTOML(f)
}

// VisualizationFromYAML decodes and validates a visualization configuration
// from YAML. Unknown keys are a configuration error.
func VisualizationFromYAML(r io.Reader) (VisualizationConfig, error) {
	wc := DefaultWordCloud()
	v := VisualizationConfig{
		WordCloud:     &wc,
		OutputFormats: []string{FormatSVG},
	}

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&v); err != nil {
		return VisualizationConfig{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode visualization config")
	}
	if err := v.Validate(); err != nil {
		return VisualizationConfig{}, err
	}
	return v, nil
}
