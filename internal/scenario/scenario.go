// SPDX-License-Identifier: Unlicense OR MIT

// Package scenario loads grid scenarios from YAML and replays them
// against a layout.Grid.
//
// A scenario describes the initial grid and a list of steps. Each step
// performs exactly one operation:
//
//	metric: {px_per_dp: 2}
//	geometry: hgrid(24dp, 24dp, 2dp, 1dp, 50dp)
//	elements:
//	  - name: terminal
//	  - name: browser
//	    hidden: true
//	steps:
//	  - allocate: {width: 70, height: 26}
//	  - show: browser
//	  - reorder: {name: browser, position: 0}
//	  - allocate: {width: 200, height: 26}
package scenario

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"gioui.org/icongrid/layout"
	"gioui.org/icongrid/unit"
)

// Scenario is the YAML document.
type Scenario struct {
	Metric           Metric        `yaml:"metric"`
	Geometry         string        `yaml:"geometry"`
	Direction        string        `yaml:"direction"`
	ConstrainWidth   bool          `yaml:"constrain_width"`
	FollowAllocation bool          `yaml:"follow_allocation"`
	Windowed         bool          `yaml:"windowed"`
	Elements         []ElementSpec `yaml:"elements"`
	Steps            []Step        `yaml:"steps"`
}

type Metric struct {
	PxPerDp float32 `yaml:"px_per_dp"`
	PxPerSp float32 `yaml:"px_per_sp"`
}

type ElementSpec struct {
	Name   string `yaml:"name"`
	Hidden bool   `yaml:"hidden"`
}

// Step is a single operation on the grid.
type Step struct {
	Requisition    bool         `yaml:"requisition"`
	Allocate       *Allocation  `yaml:"allocate"`
	Add            *ElementSpec `yaml:"add"`
	Remove         string       `yaml:"remove"`
	Reorder        *Reorder     `yaml:"reorder"`
	Show           string       `yaml:"show"`
	Hide           string       `yaml:"hide"`
	Geometry       string       `yaml:"geometry"`
	Direction      string       `yaml:"direction"`
	ConstrainWidth *bool        `yaml:"constrain_width"`
}

// Allocation is the area granted to the grid.
type Allocation struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type Reorder struct {
	Name     string `yaml:"name"`
	Position int    `yaml:"position"`
}

// Load reads and validates the scenario at path.
func Load(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	s, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a scenario document. Unknown keys are
// errors.
func Parse(b []byte) (*Scenario, error) {
	s := new(Scenario)
	if err := yaml.UnmarshalStrict(b, s); err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scenario) validate() error {
	if s.Geometry == "" {
		return fmt.Errorf("scenario: missing geometry")
	}
	if _, err := ParseDirection(s.Direction); err != nil {
		return err
	}
	names := make(map[string]bool)
	for i, e := range s.Elements {
		if e.Name == "" {
			return fmt.Errorf("scenario: element %d: missing name", i)
		}
		if names[e.Name] {
			return fmt.Errorf("scenario: duplicate element %q", e.Name)
		}
		names[e.Name] = true
	}
	for i, st := range s.Steps {
		if n := st.ops(); n != 1 {
			return fmt.Errorf("scenario: step %d: want exactly one operation, got %d", i, n)
		}
		if _, err := ParseDirection(st.Direction); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if st.Add != nil && st.Add.Name == "" {
			return fmt.Errorf("scenario: step %d: add: missing name", i)
		}
	}
	return nil
}

func (st Step) ops() int {
	n := 0
	for _, set := range []bool{
		st.Requisition,
		st.Allocate != nil,
		st.Add != nil,
		st.Remove != "",
		st.Reorder != nil,
		st.Show != "",
		st.Hide != "",
		st.Geometry != "",
		st.Direction != "",
		st.ConstrainWidth != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

// Op returns the name of the operation performed by st.
func (st Step) Op() string {
	switch {
	case st.Requisition:
		return "requisition"
	case st.Allocate != nil:
		return "allocate"
	case st.Add != nil:
		return "add"
	case st.Remove != "":
		return "remove"
	case st.Reorder != nil:
		return "reorder"
	case st.Show != "":
		return "show"
	case st.Hide != "":
		return "hide"
	case st.Geometry != "":
		return "geometry"
	case st.Direction != "":
		return "direction"
	case st.ConstrainWidth != nil:
		return "constrain_width"
	default:
		return ""
	}
}

// UnitMetric returns the pixel converter of the scenario.
func (m Metric) UnitMetric() unit.Metric {
	return unit.Metric{PxPerDp: m.PxPerDp, PxPerSp: m.PxPerSp}
}

// ParseDirection parses "ltr" or "rtl". The empty string is LTR.
func ParseDirection(s string) (layout.TextDirection, error) {
	switch strings.ToLower(s) {
	case "", "ltr":
		return layout.LTR, nil
	case "rtl":
		return layout.RTL, nil
	default:
		return 0, fmt.Errorf("scenario: invalid direction %q", s)
	}
}
