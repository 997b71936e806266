// SPDX-License-Identifier: Unlicense OR MIT

// Package trace replays scripted pointer input against drag and drop
// scenes described in TOML files.
package trace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Scenario describes a scene, its sources and targets, and the steps
// to replay.
type Scenario struct {
	Name    string       `toml:"name"`
	Width   float32      `toml:"width"`
	Height  float32      `toml:"height"`
	Nodes   []NodeSpec   `toml:"node"`
	Targets []TargetSpec `toml:"target"`
	Sources []SourceSpec `toml:"source"`
	Steps   []Step       `toml:"step"`
}

// NodeSpec is a plain scene node. An empty Parent means the scene
// root.
type NodeSpec struct {
	Name   string  `toml:"name"`
	Parent string  `toml:"parent"`
	X      float32 `toml:"x"`
	Y      float32 `toml:"y"`
	W      float32 `toml:"w"`
	H      float32 `toml:"h"`
	Scale  float32 `toml:"scale"`
	Z      int     `toml:"z"`
	Color  string  `toml:"color"`
	Hidden bool    `toml:"hidden"`
}

// TargetSpec makes a node a drop target.
type TargetSpec struct {
	Node string `toml:"node"`
	// NoHover disables the hover animation.
	NoHover bool `toml:"no_hover"`
	Cache   bool `toml:"cache"`
	// W and H fix the target size.
	W float32 `toml:"w"`
	H float32 `toml:"h"`
	// Content names a source hosted by the target.
	Content string `toml:"content"`
}

// SourceSpec is a drag source with a colored content node.
type SourceSpec struct {
	Name    string   `toml:"name"`
	Parent  string   `toml:"parent"`
	X       float32  `toml:"x"`
	Y       float32  `toml:"y"`
	W       float32  `toml:"w"`
	H       float32  `toml:"h"`
	Color   string   `toml:"color"`
	Mode    string   `toml:"mode"`
	Targets []string `toml:"targets"`
	All     bool     `toml:"all"`
	// Handle is the height of a handle bar along the top edge. Zero
	// makes the whole body draggable.
	Handle       float32  `toml:"handle"`
	Ghost        bool     `toml:"ghost"`
	Disabled     bool     `toml:"disabled"`
	NoReturnAnim bool     `toml:"no_return_animation"`
	NoSwitchAnim bool     `toml:"no_switch_animation"`
	Return       Duration `toml:"return"`
	Switch       Duration `toml:"switch"`
}

// Step is a pointer action or a clock advance.
type Step struct {
	// Do is one of press, move, release, cancel or tick.
	Do string  `toml:"do"`
	X  float32 `toml:"x"`
	Y  float32 `toml:"y"`
	// For is the clock advance of a tick.
	For Duration `toml:"for"`
}

// Duration is a time.Duration decoded from strings such as "200ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Drop modes accepted by SourceSpec.Mode.
const (
	ModeDrop          = "drop"
	ModeReturn        = "return"
	ModeReturnInstant = "return-instant"
)

var (
	// ErrInvalid is wrapped by every scenario validation error.
	ErrInvalid = errors.New("invalid scenario")
)

// Load reads the scenario file at path. The scenario name defaults to
// the file name without extension.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sc, nil
}

// Parse decodes a scenario and applies defaults. Unknown keys are
// errors.
func Parse(data []byte) (*Scenario, error) {
	sc := new(Scenario)
	md, err := toml.Decode(string(data), sc)
	if err != nil {
		return nil, err
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}
	sc.defaults()
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func (sc *Scenario) defaults() {
	if sc.Width == 0 {
		sc.Width = 800
	}
	if sc.Height == 0 {
		sc.Height = 600
	}
	for i := range sc.Sources {
		s := &sc.Sources[i]
		if s.W == 0 {
			s.W = 50
		}
		if s.H == 0 {
			s.H = 50
		}
		if s.Color == "" {
			s.Color = "steelblue"
		}
		if s.Mode == "" {
			s.Mode = ModeDrop
		}
		if s.Return.Duration == 0 {
			s.Return.Duration = 200 * time.Millisecond
		}
		if s.Switch.Duration == 0 {
			s.Switch.Duration = 200 * time.Millisecond
		}
	}
}

func (sc *Scenario) validate() error {
	for i, st := range sc.Steps {
		switch st.Do {
		case "press", "move", "release", "cancel":
		case "tick":
			if st.For.Duration <= 0 {
				return fmt.Errorf("%w: step %d: tick needs a positive duration", ErrInvalid, i+1)
			}
		default:
			return fmt.Errorf("%w: step %d: unknown action %q", ErrInvalid, i+1, st.Do)
		}
	}
	for _, s := range sc.Sources {
		switch s.Mode {
		case ModeDrop, ModeReturn, ModeReturnInstant:
		default:
			return fmt.Errorf("%w: source %s: unknown mode %q", ErrInvalid, s.Name, s.Mode)
		}
		if s.Name == "" {
			return fmt.Errorf("%w: source without name", ErrInvalid)
		}
	}
	for _, n := range sc.Nodes {
		if n.Name == "" {
			return fmt.Errorf("%w: node without name", ErrInvalid)
		}
	}
	return nil
}
