package control

import (
	"fmt"

	"github.com/san-kum/playground/internal/dynamo"
)

type Field int

const (
	FieldCount Field = iota
	FieldInfluence
	FieldLinks
	numFields
)

const (
	SliderStep    = 10
	SliderBigStep = 50
)

func (f Field) String() string {
	switch f {
	case FieldCount:
		return "particles"
	case FieldInfluence:
		return "influence"
	case FieldLinks:
		return "links"
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// Fields lists the panel rows in display order.
func Fields() []Field {
	return []Field{FieldCount, FieldInfluence, FieldLinks}
}

// Panel is the settings editor. The zero value selects the particle count.
type Panel struct {
	sel Field
}

func (p *Panel) Selected() Field { return p.sel }

func (p *Panel) Next() { p.sel = (p.sel + 1) % numFields }

func (p *Panel) Prev() { p.sel = (p.sel + numFields - 1) % numFields }

// Adjust moves the selected slider by one step in the direction of dir and
// returns the clamped result. The links row toggles regardless of dir.
func (p *Panel) Adjust(s dynamo.Settings, dir int, big bool) dynamo.Settings {
	step := SliderStep
	if big {
		step = SliderBigStep
	}
	switch {
	case dir > 0:
	case dir < 0:
		step = -step
	default:
		step = 0
	}

	switch p.sel {
	case FieldCount:
		s.Count += step
	case FieldInfluence:
		s.PointerRadius += float64(step)
	case FieldLinks:
		s.Links = !s.Links
	}
	return s.Clamp()
}

// Value formats the selected row's current value.
func Value(f Field, s dynamo.Settings) string {
	switch f {
	case FieldCount:
		return fmt.Sprintf("%d", s.Count)
	case FieldInfluence:
		return fmt.Sprintf("%.0fpx", s.PointerRadius)
	case FieldLinks:
		if s.Links {
			return "on"
		}
		return "off"
	}
	return ""
}
