// Package classifier recovers question number to answer mappings from the
// line stream of a PDF-extracted answer sheet.
//
// Each document format has its own reducer. A reducer folds one trimmed line
// into a State holding the current question number (0 until the first
// question line) and the answers collected so far.
//
// The simple-numbered format only records an answer when the question line
// itself repeats "<N>." verbatim; when extraction reorders the text the
// recorded answer is whatever follows, or the whole line. That behavior is
// deliberate and matches the sheets it was written against.
package classifier

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// AnswerMap maps a question number to the raw answer text.
type AnswerMap map[int]string

// Questions returns the answered question numbers in increasing order.
func (m AnswerMap) Questions() []int {
	qs := make([]int, 0, len(m))
	for q := range m {
		qs = append(qs, q)
	}
	sort.Ints(qs)
	return qs
}

// Missing returns the questions in 1..n with no recorded answer.
func (m AnswerMap) Missing(n int) []int {
	var missing []int
	for q := 1; q <= n; q++ {
		if _, ok := m[q]; !ok {
			missing = append(missing, q)
		}
	}
	return missing
}

// State is the accumulator threaded through a fold.
type State struct {
	Current int
	Answers AnswerMap
}

// NewState returns the empty scan state.
func NewState() State {
	return State{Answers: make(AnswerMap)}
}

// Reducer folds one line into the scan state.
type Reducer func(State, string) State

// Variant names a document format.
type Variant string

const (
	VariantKey    Variant = "key"
	VariantDual   Variant = "dual"
	VariantSimple Variant = "simple"
)

// InlineLimit is the last question of the dual format written as
// "N: answer" on the question line itself.
const InlineLimit = 80

var (
	questionLine = regexp.MustCompile(`^(\d+)[.)]?\s*`)
	markedAnswer = regexp.MustCompile(`\((?:\s|\p{Z})*[*4](?:\s|\p{Z})*\)`)
	dashes       = regexp.MustCompile(`[-–—]`)
)

// ParseVariant validates a configured variant name.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case VariantKey, VariantDual, VariantSimple:
		return v, nil
	default:
		return "", fmt.Errorf("unknown classifier variant %q", s)
	}
}

// ReducerFor returns the reducer for a variant.
func ReducerFor(v Variant) (Reducer, error) {
	switch v {
	case VariantKey:
		return KeyReducer, nil
	case VariantDual:
		return DualReducer, nil
	case VariantSimple:
		return SimpleReducer, nil
	default:
		return nil, fmt.Errorf("unknown classifier variant %q", v)
	}
}

// Fold runs r over lines in order, trimming each line first.
func Fold(r Reducer, lines []string) AnswerMap {
	st := NewState()
	for _, line := range lines {
		st = r(st, strings.TrimSpace(line))
	}
	return st.Answers
}

// Parse folds lines with the reducer registered for v.
func Parse(v Variant, lines []string) (AnswerMap, error) {
	r, err := ReducerFor(v)
	if err != nil {
		return nil, err
	}
	return Fold(r, lines), nil
}

// questionNumber reports the leading question number of line, if any.
func questionNumber(line string) (int, bool) {
	m := questionLine.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		// too many digits for an int; not a question we can index
		return 0, false
	}
	return n, true
}

// KeyReducer reads the answer key: question lines set the current question
// and the line carrying a "(*)" or "(4)" marker holds its answer after the
// first dash.
func KeyReducer(st State, line string) State {
	if q, ok := questionNumber(line); ok {
		st.Current = q
		return st
	}
	if markedAnswer.MatchString(line) {
		parts := dashes.Split(line, 2)
		answer := parts[len(parts)-1]
		if i := strings.Index(answer, "("); i >= 0 {
			answer = answer[:i]
		}
		st.Answers[st.Current] = strings.TrimSpace(answer)
	}
	return st
}

// DualReducer reads sheets that answer questions up to InlineLimit inline
// after a colon and later questions on a separate "Answer:" line.
func DualReducer(st State, line string) State {
	if q, ok := questionNumber(line); ok {
		st.Current = q
		if q <= InlineLimit {
			if _, answer, found := strings.Cut(line, ":"); found {
				st.Answers[q] = strings.TrimSpace(answer)
			}
		}
		return st
	}
	if st.Current > InlineLimit {
		if _, answer, found := strings.Cut(line, "Answer:"); found {
			st.Answers[st.Current] = strings.TrimSpace(answer)
		}
	}
	return st
}

// SimpleReducer reads sheets where every line starts with "N." followed by
// the answer.
func SimpleReducer(st State, line string) State {
	q, ok := questionNumber(line)
	if !ok {
		return st
	}
	st.Current = q
	answer := line
	if _, rest, found := strings.Cut(line, strconv.Itoa(q)+"."); found {
		answer = rest
	}
	st.Answers[q] = strings.TrimSpace(answer)
	return st
}
