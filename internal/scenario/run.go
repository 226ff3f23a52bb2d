// SPDX-License-Identifier: Unlicense OR MIT

package scenario

import (
	"fmt"
	"image"

	"github.com/rcrowley/go-metrics"
	"github.com/sirupsen/logrus"

	"gioui.org/icongrid/layout"
)

// Placement is the rectangle assigned to a named element.
type Placement struct {
	Name string
	Rect image.Rectangle
}

// StepResult is the grid state after a step.
type StepResult struct {
	Index int
	Op    string
	// Requisition is set by requisition and allocate steps.
	Requisition image.Point
	// Allocation and Placements are set by allocate steps.
	Allocation image.Rectangle
	Placements []Placement

	Rows, Columns int
	ElementSize   image.Point
	OwnerVisible  bool
	// Resizes counts the re-layout requests made during the step.
	Resizes int
}

// Runner replays scenarios.
type Runner struct {
	Log logrus.FieldLogger
	// Registry receives pass timings and counters. It may be nil.
	Registry metrics.Registry
}

// owner records the signals sent by the grid.
type owner struct {
	visible  bool
	resizes  int
	relayout metrics.Counter
}

func (o *owner) Visible() bool { return o.visible }

func (o *owner) QueueResize() {
	o.resizes++
	o.relayout.Inc(1)
}

func (o *owner) SetVisible(visible bool) { o.visible = visible }

type element struct {
	name   string
	hidden bool
	bounds image.Rectangle
}

func (e *element) Visible() bool { return !e.hidden }

func (e *element) SetBounds(r image.Rectangle) { e.bounds = r }

type run struct {
	log      logrus.FieldLogger
	grid     *layout.Grid
	owner    *owner
	elements map[string]*element
	s        *Scenario

	reqTimer   metrics.Timer
	allocTimer metrics.Timer
}

// Run builds the grid described by s and performs its steps in order.
func (r *Runner) Run(s *Scenario) ([]StepResult, error) {
	log := r.Log
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.WarnLevel)
		log = l
	}
	reg := r.Registry
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	geom, err := layout.ParseGeometry(s.Metric.UnitMetric(), s.Geometry)
	if err != nil {
		return nil, fmt.Errorf("scenario: %w", err)
	}
	dir, err := ParseDirection(s.Direction)
	if err != nil {
		return nil, err
	}
	o := &owner{
		visible:  true,
		relayout: metrics.GetOrRegisterCounter("icongrid.relayout", reg),
	}
	g := layout.NewGrid(o, geom)
	g.SetLogger(log)
	g.SetTextDirection(dir)
	g.SetConstrainWidth(s.ConstrainWidth)
	g.SetFollowAllocation(s.FollowAllocation)
	g.SetWindowed(s.Windowed)
	rn := &run{
		log:        log,
		grid:       g,
		owner:      o,
		elements:   make(map[string]*element),
		s:          s,
		reqTimer:   metrics.GetOrRegisterTimer("icongrid.requisition", reg),
		allocTimer: metrics.GetOrRegisterTimer("icongrid.allocate", reg),
	}
	for _, spec := range s.Elements {
		rn.add(spec)
	}

	results := make([]StepResult, 0, len(s.Steps))
	for i, st := range s.Steps {
		res, err := rn.step(st)
		if err != nil {
			return results, fmt.Errorf("scenario: step %d (%s): %w", i, st.Op(), err)
		}
		res.Index = i
		results = append(results, res)
	}
	return results, nil
}

func (rn *run) step(st Step) (StepResult, error) {
	res := StepResult{Op: st.Op()}
	resizes := rn.owner.resizes
	g := rn.grid
	switch {
	case st.Requisition:
		rn.reqTimer.Time(func() {
			res.Requisition = g.Requisition()
		})
	case st.Allocate != nil:
		a := st.Allocate
		res.Allocation = image.Rect(a.X, a.Y, a.X+a.Width, a.Y+a.Height)
		rn.reqTimer.Time(func() {
			res.Requisition = g.Requisition()
		})
		rn.allocTimer.Time(func() {
			g.Allocate(res.Allocation)
		})
		res.Placements = rn.placements()
	case st.Add != nil:
		if _, exists := rn.elements[st.Add.Name]; exists {
			return res, fmt.Errorf("duplicate element %q", st.Add.Name)
		}
		rn.add(*st.Add)
	case st.Remove != "":
		e, err := rn.lookup(st.Remove)
		if err != nil {
			return res, err
		}
		g.Remove(e)
		delete(rn.elements, e.name)
	case st.Reorder != nil:
		e, err := rn.lookup(st.Reorder.Name)
		if err != nil {
			return res, err
		}
		g.Reorder(e, st.Reorder.Position)
	case st.Show != "", st.Hide != "":
		name, hidden := st.Show, false
		if st.Hide != "" {
			name, hidden = st.Hide, true
		}
		e, err := rn.lookup(name)
		if err != nil {
			return res, err
		}
		if e.hidden != hidden {
			e.hidden = hidden
			// The host toolkit queues a resize on visibility changes.
			rn.owner.QueueResize()
		}
	case st.Geometry != "":
		geom, err := layout.ParseGeometry(rn.s.Metric.UnitMetric(), st.Geometry)
		if err != nil {
			return res, err
		}
		g.SetGeometry(geom)
	case st.Direction != "":
		dir, err := ParseDirection(st.Direction)
		if err != nil {
			return res, err
		}
		g.SetTextDirection(dir)
	case st.ConstrainWidth != nil:
		g.SetConstrainWidth(*st.ConstrainWidth)
	}
	res.Rows, res.Columns = g.Rows(), g.Columns()
	res.ElementSize = g.ElementSize()
	res.OwnerVisible = rn.owner.visible
	res.Resizes = rn.owner.resizes - resizes
	rn.log.WithFields(logrus.Fields{
		"op":      res.Op,
		"rows":    res.Rows,
		"columns": res.Columns,
		"resizes": res.Resizes,
	}).Debug("scenario step")
	return res, nil
}

func (rn *run) add(spec ElementSpec) {
	e := &element{name: spec.Name, hidden: spec.Hidden}
	rn.elements[spec.Name] = e
	rn.grid.Add(e)
}

func (rn *run) lookup(name string) (*element, error) {
	e, ok := rn.elements[name]
	if !ok {
		return nil, fmt.Errorf("no element %q", name)
	}
	return e, nil
}

// placements returns the bounds of the visible elements in grid
// order.
func (rn *run) placements() []Placement {
	var ps []Placement
	for _, e := range rn.grid.Elements() {
		if !e.Visible() {
			continue
		}
		el := e.(*element)
		ps = append(ps, Placement{Name: el.name, Rect: el.bounds})
	}
	return ps
}
