// Package sim runs the input engine on the host against scripted pin
// levels and encoder positions, with a virtual clock.
package sim

import (
	"fmt"
	"os"

	"github.com/ghodss/yaml"

	"macropad-go/errcode"
	"macropad-go/types"
)

// Script is an ordered list of hardware changes.
type Script struct {
	Steps  []Step `json:"steps"`
	// TailMs keeps ticking after the last step so deferred releases land.
	TailMs int64  `json:"tail_ms,omitempty"`
}

// Step applies Levels and Positions at AtMs, relative to the start.
// Positions are keyed by encoder label.
type Step struct {
	AtMs      int64          `json:"at_ms"`
	Levels    map[int]bool   `json:"levels,omitempty"`
	Positions map[string]int `json:"positions,omitempty"`
}

const defaultTailMs = 500

// ParseScript decodes YAML or JSON. Steps must not go back in time.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if s.TailMs < 0 {
		return nil, errcode.New(errcode.InvalidParams, "script", "negative tail_ms")
	}
	if s.TailMs == 0 {
		s.TailMs = defaultTailMs
	}
	var last int64
	for i, st := range s.Steps {
		if st.AtMs < last {
			return nil, errcode.New(errcode.InvalidParams, "script", fmt.Sprintf("step %d at %dms is before %dms", i, st.AtMs, last))
		}
		last = st.AtMs
	}
	return &s, nil
}

// LoadScript reads a script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", path, err)
	}
	return ParseScript(data)
}

// ParsePad decodes a YAML or JSON pad layout.
func ParsePad(data []byte) (types.PadConfig, error) {
	var p types.PadConfig
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse layout: %w", err)
	}
	return p, nil
}

// LoadPad reads a layout file.
func LoadPad(path string) (types.PadConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.PadConfig{}, fmt.Errorf("failed to read layout %s: %w", path, err)
	}
	return ParsePad(data)
}
