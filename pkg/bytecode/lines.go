package bytecode

// LineRun is a stretch of consecutive code bytes produced by one source line.
type LineRun struct {
	Length int // Number of code bytes covered by the run
	Line   int // Source line number (1-based)
}

// LineTable maps code offsets to source lines using run-length encoding.
// Runs are only ever appended or extended at the end.
type LineTable struct {
	runs  []LineRun
	total int
}

// Append records width more code bytes for line. The last run is extended
// when it carries the same line, otherwise a new run is opened.
func (t *LineTable) Append(width, line int) {
	if width <= 0 {
		return
	}
	t.total += width
	if n := len(t.runs); n > 0 && t.runs[n-1].Line == line {
		t.runs[n-1].Length += width
		return
	}
	t.runs = append(t.runs, LineRun{Length: width, Line: line})
}

// LineAt returns the source line for a code offset.
// Offsets outside the recorded range return 0, meaning "unknown".
func (t *LineTable) LineAt(offset int) int {
	if offset < 0 || offset >= t.total {
		return 0
	}
	end := 0
	for _, run := range t.runs {
		end += run.Length
		if offset < end {
			return run.Line
		}
	}
	return 0
}

// Total returns the sum of all run lengths.
func (t *LineTable) Total() int {
	return t.total
}

// Runs returns a copy of the recorded runs in emission order.
func (t *LineTable) Runs() []LineRun {
	runs := make([]LineRun, len(t.runs))
	copy(runs, t.runs)
	return runs
}

// Len returns the number of runs.
func (t *LineTable) Len() int {
	return len(t.runs)
}
