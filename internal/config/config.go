package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"tc-batch/internal/ir"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrUnknownPlatform = errors.New("unknown platform")
	ErrUnknownModel    = errors.New("unknown model")
)

// File is the static model configuration: a list of batch configs per
// platform (wgs_csbd, gbdf).
type File struct {
	Platforms map[string][]ir.ModelConfig `yaml:"platforms"`
}

// Parse decodes and validates a YAML config. Unknown fields are rejected.
func Parse(b []byte) (*File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := validate(&f); err != nil {
		return nil, err
	}

	for platform, models := range f.Platforms {
		for i := range models {
			f.Platforms[platform][i].TSNumber = ir.NormalizeTS(models[i].TSNumber)
		}
	}
	return &f, nil
}

// Load reads a config file from disk.
func Load(path string) (*File, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	f, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Models returns the batch configs for one platform.
func (f *File) Models(platform string) ([]ir.ModelConfig, error) {
	models, ok := f.Platforms[platform]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlatform, platform)
	}
	return models, nil
}

// ModelByTS returns the batch config for one TS number within a platform.
// The input is normalized, so "7" and "07" select the same model.
func (f *File) ModelByTS(platform, ts string) (ir.ModelConfig, error) {
	models, err := f.Models(platform)
	if err != nil {
		return ir.ModelConfig{}, err
	}
	want := ir.NormalizeTS(ts)
	for _, m := range models {
		if m.TSNumber == want {
			return m, nil
		}
	}
	return ir.ModelConfig{}, fmt.Errorf("%w: TS%s on platform %s", ErrUnknownModel, want, platform)
}

// --- validation helpers ---

func validate(f *File) error {
	if len(f.Platforms) == 0 {
		return wrapValidation("platforms must not be empty")
	}
	for platform, models := range f.Platforms {
		if len(models) == 0 {
			return wrapValidation(fmt.Sprintf("platform %q has no models", platform))
		}
		for i := range models {
			if err := validateModel(&models[i], platform, i); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateModel(m *ir.ModelConfig, platform string, idx int) error {
	at := fmt.Sprintf("%s[%d]", platform, idx)
	if m.TSNumber == "" {
		return wrapValidation(at + ".ts_number must not be empty")
	}
	if m.EditID == "" {
		return wrapValidation(at + ".edit_id must not be empty")
	}
	if m.Code == "" {
		return wrapValidation(at + ".code must not be empty")
	}
	if m.SourceDir == "" {
		return wrapValidation(at + ".source_dir must not be empty")
	}
	if m.DestDir == "" {
		return wrapValidation(at + ".dest_dir must not be empty")
	}
	return nil
}

func wrapValidation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
