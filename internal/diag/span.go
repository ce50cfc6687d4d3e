package diag

// Span locates a stretch of source text for diagnostics. Offsets are byte
// positions into the original input; LineStart/LineEnd delimit the full
// line containing the label so the renderer can reproduce it.
type Span struct {
	LineNumber int
	LineStart  int
	LineEnd    int
	LabelStart int
	LabelEnd   int
}

// NewSpan builds a span from its raw offsets.
func NewSpan(lineNumber, lineStart, lineEnd, labelStart, labelEnd int) Span {
	return Span{
		LineNumber: lineNumber,
		LineStart:  lineStart,
		LineEnd:    lineEnd,
		LabelStart: labelStart,
		LabelEnd:   labelEnd,
	}
}

// Col returns the 0-based column of the label within its line.
func (s Span) Col() int {
	c := s.LabelStart - s.LineStart
	if c < 0 {
		return 0
	}
	return c
}
