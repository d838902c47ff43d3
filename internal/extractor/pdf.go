package extractor

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"rsc.io/pdf"
)

const (
	// runs whose baselines differ by less than this many points share a line
	baselineTolerance = 2.0
	// a gap wider than this fraction of the font size becomes a space
	spaceGapRatio = 0.2
	// advance per glyph, in font-size units, for runs that carry no width
	avgGlyphWidth = 0.5
)

// PDFSource extracts page text with rsc.io/pdf. Text runs are regrouped
// into lines by baseline; no further layout analysis is done.
type PDFSource struct {
	Log logrus.FieldLogger
}

func (s *PDFSource) Extract(path string) (*Document, error) {
	if err := checkExists(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	r, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF %s: %w", path, err)
	}

	doc := &Document{Path: path}
	for i := 1; i <= r.NumPage(); i++ {
		text, err := pageText(r, i)
		if err != nil {
			s.logger().WithFields(logrus.Fields{"path": path, "page": i}).
				Debugf("page text unreadable, treating as empty: %v", err)
		}
		doc.Pages = append(doc.Pages, Page{Number: i, Text: text})
	}
	return doc, nil
}

func (s *PDFSource) logger() logrus.FieldLogger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}

// pageText renders page num. rsc.io/pdf panics on page objects and content
// streams it cannot decode, so that is turned into an error.
func pageText(r *pdf.Reader, num int) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			text, err = "", fmt.Errorf("malformed page content: %v", p)
		}
	}()
	page := r.Page(num)
	if page.V.IsNull() {
		return "", nil
	}
	return joinLines(page.Content().Text), nil
}

type textLine struct {
	y    float64
	runs []pdf.Text
}

// joinLines groups text runs by baseline, top of the page first, and
// concatenates each line's runs left to right.
func joinLines(runs []pdf.Text) string {
	if len(runs) == 0 {
		return ""
	}

	sorted := make([]pdf.Text, len(runs))
	copy(sorted, runs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Y > sorted[j].Y
	})

	var lines []*textLine
	for _, t := range sorted {
		if n := len(lines); n > 0 && math.Abs(lines[n-1].y-t.Y) < baselineTolerance {
			lines[n-1].runs = append(lines[n-1].runs, t)
			continue
		}
		lines = append(lines, &textLine{y: t.Y, runs: []pdf.Text{t}})
	}

	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.render())
	}
	return strings.Join(out, "\n")
}

func (l *textLine) render() string {
	sort.SliceStable(l.runs, func(i, j int) bool {
		return l.runs[i].X < l.runs[j].X
	})

	var b strings.Builder
	end := math.Inf(-1)
	for _, t := range l.runs {
		if b.Len() > 0 && t.X-end > spaceGapRatio*t.FontSize &&
			!strings.HasSuffix(b.String(), " ") && !strings.HasPrefix(t.S, " ") {
			b.WriteByte(' ')
		}
		b.WriteString(t.S)
		end = t.X + runWidth(t)
	}
	return b.String()
}

// runWidth is the advance of a run. Fonts without a /Widths array (the
// standard 14) report zero, so the width is estimated from the glyph count.
func runWidth(t pdf.Text) float64 {
	if t.W > 0 {
		return t.W
	}
	return avgGlyphWidth * t.FontSize * float64(utf8.RuneCountInString(t.S))
}
