// Package textbuf is the editing buffer behind live text strokes: a rune
// buffer with a caret and line/column arithmetic over '\n' separated lines.
package textbuf

import "strings"

// IndexToLineCol converts a rune index into a zero-based line and column.
// Indexes past the end map to the end of the text.
func IndexToLineCol(text string, idx int) (line, col int) {
	i := 0
	for _, r := range text {
		if i >= idx {
			break
		}
		if r == '\n' {
			line++
			col = 0
		} else {
			col++
		}
		i++
	}
	return line, col
}

// LineColToIndex converts a line and column into a rune index. The line is
// clamped to the text and the column to the length of that line.
func LineColToIndex(text string, line, col int) int {
	lines := strings.Split(text, "\n")
	line = max(0, min(line, len(lines)-1))
	idx := 0
	for i := 0; i < line; i++ {
		idx += len([]rune(lines[i])) + 1
	}
	return idx + max(0, min(col, len([]rune(lines[line]))))
}

// Buffer is an editable text with a caret. The caret is a rune index.
type Buffer struct {
	runes      []rune
	caret      int
	desiredCol int
}

// New returns a buffer holding text with the caret at the end.
func New(text string) *Buffer {
	r := []rune(text)
	return &Buffer{runes: r, caret: len(r), desiredCol: -1}
}

func (b *Buffer) String() string { return string(b.runes) }

// Len returns the number of runes.
func (b *Buffer) Len() int { return len(b.runes) }

// Caret returns the caret index.
func (b *Buffer) Caret() int { return b.caret }

// SetCaret moves the caret, clamped to the buffer.
func (b *Buffer) SetCaret(i int) {
	b.caret = max(0, min(i, len(b.runes)))
	b.desiredCol = -1
}

// Insert inserts s at the caret and moves the caret past it.
func (b *Buffer) Insert(s string) {
	ins := []rune(s)
	if len(ins) == 0 {
		return
	}
	out := make([]rune, 0, len(b.runes)+len(ins))
	out = append(out, b.runes[:b.caret]...)
	out = append(out, ins...)
	out = append(out, b.runes[b.caret:]...)
	b.runes = out
	b.caret += len(ins)
	b.desiredCol = -1
}

// Backspace removes the rune before the caret.
func (b *Buffer) Backspace() bool {
	if b.caret == 0 {
		return false
	}
	b.runes = append(b.runes[:b.caret-1], b.runes[b.caret:]...)
	b.caret--
	b.desiredCol = -1
	return true
}

// Delete removes the rune after the caret.
func (b *Buffer) Delete() bool {
	if b.caret >= len(b.runes) {
		return false
	}
	b.runes = append(b.runes[:b.caret], b.runes[b.caret+1:]...)
	b.desiredCol = -1
	return true
}

func (b *Buffer) Left()  { b.SetCaret(b.caret - 1) }
func (b *Buffer) Right() { b.SetCaret(b.caret + 1) }

// Home moves the caret to the start of its line.
func (b *Buffer) Home() {
	text := b.String()
	line, _ := IndexToLineCol(text, b.caret)
	b.SetCaret(LineColToIndex(text, line, 0))
}

// End moves the caret to the end of its line.
func (b *Buffer) End() {
	text := b.String()
	line, _ := IndexToLineCol(text, b.caret)
	b.SetCaret(LineColToIndex(text, line, len(b.runes)))
}

// Up moves the caret one line up, keeping the column it had before the
// first vertical move even across shorter lines.
func (b *Buffer) Up() { b.vertical(-1) }

// Down moves the caret one line down; see Up.
func (b *Buffer) Down() { b.vertical(1) }

func (b *Buffer) vertical(dir int) {
	text := b.String()
	line, col := IndexToLineCol(text, b.caret)
	target := line + dir
	if target < 0 || target > strings.Count(text, "\n") {
		return
	}
	if b.desiredCol < 0 {
		b.desiredCol = col
	}
	b.caret = LineColToIndex(text, target, b.desiredCol)
}
