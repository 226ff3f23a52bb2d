// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"fmt"
	"strconv"

	"gioui.org/icongrid/unit"
)

// geomScanner walks a geometry expression. rest is the unparsed
// suffix of src.
type geomScanner struct {
	src  string
	rest string
}

type syntaxError string

func (e syntaxError) Error() string {
	return string(e)
}

// ParseGeometry parses a grid geometry expression and converts its
// values to pixels with m.
//
// The expression has the form
//
//   hgrid(width, height, spacing, border, target)
//
// for a Horizontal grid, or vgrid(...) for a Vertical grid. Every
// value is a number followed by one of the units dp, sp or px. The
// border and target may be omitted and default to zero.
//
// For example,
//
//   layout.ParseGeometry(m, "hgrid(24dp, 24dp, 2dp, 1dp, 50dp)")
//
// If the expression is invalid, the error message marks the error
// position with a cross, ✗.
func ParseGeometry(m unit.Metric, format string) (geom Geometry, err error) {
	s := &geomScanner{src: format, rest: format}
	defer func() {
		if e := recover(); e != nil {
			serr, ok := e.(syntaxError)
			if !ok {
				panic(e)
			}
			pos := s.pos()
			err = fmt.Errorf("ParseGeometry: %s✗%s:%d: %w", s.src[:pos], s.src[pos:], pos, serr)
		}
	}()
	geom = s.grid(m)
	s.skipSpace()
	if s.rest != "" {
		s.fail("unexpected %q after geometry", s.rest)
	}
	return geom, nil
}

func (s *geomScanner) grid(m unit.Metric) Geometry {
	var geom Geometry
	switch kind := s.kind(); kind {
	case "hgrid":
		geom.Orientation = Horizontal
	case "vgrid":
		geom.Orientation = Vertical
	case "":
		s.fail("missing grid kind")
	default:
		s.fail("unknown grid kind %q", kind)
	}
	s.consume("(")
	required := []*int{&geom.ElementWidth, &geom.ElementHeight, &geom.Spacing}
	for i, f := range required {
		if i > 0 {
			s.consume(",")
		}
		*f = m.Px(s.value())
	}
	for _, f := range []*int{&geom.Border, &geom.TargetDimension} {
		if s.peek() == ')' {
			break
		}
		s.consume(",")
		*f = m.Px(s.value())
	}
	if s.peek() == ',' {
		s.fail("too many values")
	}
	s.consume(")")
	return geom
}

// kind scans the grid kind up to the opening parenthesis.
func (s *geomScanner) kind() string {
	s.skipSpace()
	for i := 0; i < len(s.rest); i++ {
		switch c := s.rest[i]; {
		case c == '(' || c == ',' || c == ')':
			kind := s.rest[:i]
			s.rest = s.rest[i:]
			return kind
		case c < 'a' || 'z' < c:
			s.fail("invalid character %q in grid kind", c)
		}
	}
	s.rest = ""
	s.fail("missing ( after grid kind")
	return ""
}

// value scans a number and its unit suffix.
func (s *geomScanner) value() unit.Value {
	s.skipSpace()
	n := 0
	for n < len(s.rest) && (s.rest[n] == '.' || '0' <= s.rest[n] && s.rest[n] <= '9') {
		n++
	}
	num := s.rest[:n]
	f, err := strconv.ParseFloat(num, 32)
	if err != nil {
		s.fail("invalid number %q", num)
	}
	s.rest = s.rest[n:]
	if len(s.rest) < 2 {
		s.fail("missing unit")
	}
	var v unit.Value
	switch u := s.rest[:2]; u {
	case "dp":
		v = unit.Dp(float32(f))
	case "sp":
		v = unit.Sp(float32(f))
	case "px":
		v = unit.Px(float32(f))
	default:
		s.fail("unknown unit %q", u)
	}
	s.rest = s.rest[2:]
	return v
}

func (s *geomScanner) peek() byte {
	s.skipSpace()
	if s.rest == "" {
		s.fail("geometry ends early")
	}
	return s.rest[0]
}

func (s *geomScanner) consume(tok string) {
	s.skipSpace()
	if len(s.rest) < len(tok) || s.rest[:len(tok)] != tok {
		s.fail("missing %q", tok)
	}
	s.rest = s.rest[len(tok):]
}

func (s *geomScanner) skipSpace() {
	for s.rest != "" && (s.rest[0] == ' ' || '\t' <= s.rest[0] && s.rest[0] <= '\r') {
		s.rest = s.rest[1:]
	}
}

func (s *geomScanner) pos() int {
	return len(s.src) - len(s.rest)
}

func (s *geomScanner) fail(f string, args ...interface{}) {
	panic(syntaxError(fmt.Sprintf(f, args...)))
}
