// Package export writes frames of the particle field to vector formats.
package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	"github.com/san-kum/playground/internal/dynamo"
)

// SVG is a dynamo.Surface that records every shape as an SVG element.
// Radial gradients become <radialGradient> definitions.
type SVG struct {
	w, h       float64
	background color.NRGBA
	defs       strings.Builder
	body       strings.Builder
	gradients  int
	shapes     int
}

func NewSVG(width, height float64, background color.NRGBA) *SVG {
	return &SVG{w: width, h: height, background: background}
}

func (s *SVG) Size() (float64, float64) { return s.w, s.h }

// Shapes is the number of elements recorded so far.
func (s *SVG) Shapes() int { return s.shapes }

func (s *SVG) FillRect(x, y, w, h float64, c color.NRGBA) {
	s.shapes++
	fmt.Fprintf(&s.body, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" %s/>`+"\n",
		x, y, w, h, paint("fill", c))
}

func (s *SVG) FillCircle(cx, cy, r float64, c color.NRGBA) {
	s.shapes++
	fmt.Fprintf(&s.body, `<circle cx="%.2f" cy="%.2f" r="%.2f" %s/>`+"\n", cx, cy, r, paint("fill", c))
}

func (s *SVG) FillRadial(cx, cy, r float64, stops []dynamo.GradientStop) {
	if len(stops) == 0 {
		return
	}
	id := fmt.Sprintf("g%d", s.gradients)
	s.gradients++

	fmt.Fprintf(&s.defs, `<radialGradient id="%s">`, id)
	for _, st := range stops {
		fmt.Fprintf(&s.defs, `<stop offset="%.3f" stop-color="%s" stop-opacity="%.3f"/>`,
			st.Offset, hex(st.Color), float64(st.Color.A)/255)
	}
	s.defs.WriteString("</radialGradient>\n")

	s.shapes++
	fmt.Fprintf(&s.body, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="url(#%s)"/>`+"\n", cx, cy, r, id)
}

func (s *SVG) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	s.shapes++
	fmt.Fprintf(&s.body, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke-width="%.2f" %s/>`+"\n",
		x0, y0, x1, y1, width, paint("stroke", c))
}

func (s *SVG) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.w, s.h, s.w, s.h, hex(s.background))

	if s.defs.Len() > 0 {
		sb.WriteString("<defs>\n")
		sb.WriteString(s.defs.String())
		sb.WriteString("</defs>\n")
	}
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}

// WriteFile saves the document to path.
func (s *SVG) WriteFile(path string) error {
	return os.WriteFile(path, []byte(s.String()), 0o644)
}

func paint(attr string, c color.NRGBA) string {
	if c.A == 255 {
		return fmt.Sprintf(`%s="%s"`, attr, hex(c))
	}
	return fmt.Sprintf(`%s="%s" %s-opacity="%.3f"`, attr, hex(c), attr, float64(c.A)/255)
}

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
