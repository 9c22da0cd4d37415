package token

import "fmt"

type Pos struct {
	Filename     string
	Line, Column int
	Offset       int
}

func NewPosition(filename string, line, column int) Pos {
	return Pos{Filename: filename, Line: line, Column: column}
}

func (pos *Pos) Move(character byte) {
	if character == '\n' {
		pos.Column = 1
		pos.Line++
	} else {
		pos.Column++
	}
	pos.Offset++
}

func (pos *Pos) SetPosition(newPos Pos) {
	pos.Filename = newPos.Filename
	pos.Line = newPos.Line
	pos.Column = newPos.Column
	pos.Offset = newPos.Offset
}

func (pos Pos) String() string {
	return fmt.Sprintf("[%s:%d:%d]", pos.Filename, pos.Line, pos.Column)
}
