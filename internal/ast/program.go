package ast

import (
	"fmt"
	"path/filepath"
)

// Program is the root of a parsed source unit: the ordered top-level
// modules. An empty source yields a Program with no modules.
type Program struct {
	Loc     *Loc
	Modules []*Node
}

func (p *Program) String() string {
	return fmt.Sprintf("PROGRAM: %s | %d module(s)", p.Loc, len(p.Modules))
}

// Loc identifies the source unit a node came from.
type Loc struct {
	Name string
	Path string
}

func LocFromPath(fullPath string) *Loc {
	loc := new(Loc)
	loc.Path = fullPath
	loc.Name = filepath.Base(fullPath)
	return loc
}

func (l Loc) String() string {
	if l.Path == "" {
		return l.Name
	}
	return l.Path
}
