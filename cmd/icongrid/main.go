// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rcrowley/go-metrics"
	"github.com/sirupsen/logrus"

	"gioui.org/icongrid/internal/render"
	"gioui.org/icongrid/internal/scenario"
)

var (
	pngPath = flag.String("png", "", "write a PNG preview of an allocate step to the named file.")
	step    = flag.Int("step", -1, "index of the allocate step drawn by -png (default the last one).")
	stats   = flag.Bool("stats", false, "print pass timings to stderr.")
	verbose = flag.Bool("v", false, "enable debug logging.")
)

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, mainUsage)
	}
	flag.Parse()
	l := logrus.New()
	if *verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	if err := mainErr(l, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "icongrid: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

func mainErr(l *logrus.Logger, w io.Writer) error {
	path := flag.Arg(0)
	if path == "" {
		return errors.New("specify a scenario file")
	}
	s, err := scenario.Load(path)
	if err != nil {
		return err
	}
	reg := metrics.NewRegistry()
	r := &scenario.Runner{Log: l, Registry: reg}
	results, err := r.Run(s)
	// Print what ran before a failing step.
	printResults(w, results)
	if err != nil {
		return err
	}
	if *stats {
		metrics.WriteOnce(reg, os.Stderr)
	}
	if *pngPath != "" {
		if err := writePreview(l, *pngPath, results, *step); err != nil {
			return err
		}
	}
	return nil
}

func printResults(w io.Writer, results []scenario.StepResult) {
	for _, res := range results {
		fmt.Fprintf(w, "%d %s:", res.Index, res.Op)
		switch res.Op {
		case "requisition":
			fmt.Fprintf(w, " size %v", res.Requisition)
		case "allocate":
			fmt.Fprintf(w, " %v size %v", res.Allocation, res.Requisition)
		}
		fmt.Fprintf(w, " grid %dx%d element %v", res.Columns, res.Rows, res.ElementSize)
		if !res.OwnerVisible {
			fmt.Fprint(w, " hidden")
		}
		fmt.Fprintln(w)
		for _, p := range res.Placements {
			fmt.Fprintf(w, "\t%s %v\n", p.Name, p.Rect)
		}
	}
}

// writePreview draws the allocate step with the given index, or the
// last allocate step if index is negative.
func writePreview(l logrus.FieldLogger, path string, results []scenario.StepResult, index int) error {
	var res *scenario.StepResult
	for i := range results {
		r := &results[i]
		if r.Op != "allocate" {
			continue
		}
		if index < 0 || r.Index == index {
			res = r
		}
	}
	if res == nil {
		if index < 0 {
			return errors.New("no allocate step to draw")
		}
		return fmt.Errorf("step %d is not an allocate step", index)
	}
	boxes := make([]render.Box, len(res.Placements))
	for i, p := range res.Placements {
		boxes[i] = render.Box{Label: p.Name, Rect: p.Rect}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	start := time.Now()
	if err := render.WritePNG(f, res.Allocation, boxes); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	l.WithFields(logrus.Fields{
		"path":     path,
		"step":     res.Index,
		"duration": time.Since(start),
	}).Info("wrote preview")
	return nil
}
