// Package font provides the symbol table and cell metrics the console
// buffer is sized and painted with. Symbols are interned runes; the
// factory fixes the pixel size of one character cell so row budgets can
// be derived from display heights.
package font

import (
	"errors"

	"github.com/mattn/go-runewidth"
)

// Symbol is an interned rune. The zero Symbol is the blank cell.
type Symbol uint32

// Blank is the symbol stored in untouched cells.
const Blank Symbol = 0

// Cell metrics in pixels. 8x16 is the classic doubled console glyph.
const (
	CellWidth  = 8
	CellHeight = 16
)

// SymbolTable interns runes to stable symbol ids.
type SymbolTable struct {
	runes []rune
	ids   map[rune]Symbol
}

// NewSymbolTable creates a table with the blank symbol pre-interned.
func NewSymbolTable() *SymbolTable {
	st := &SymbolTable{ids: make(map[rune]Symbol)}
	st.Symbol(' ')
	return st
}

// Symbol interns r and returns its id. Interning the same rune twice
// yields the same id.
func (st *SymbolTable) Symbol(r rune) Symbol {
	if id, ok := st.ids[r]; ok {
		return id
	}
	id := Symbol(len(st.runes))
	st.runes = append(st.runes, r)
	st.ids[r] = id
	return id
}

// Rune returns the rune behind s, or a space for unknown ids.
func (st *SymbolTable) Rune(s Symbol) rune {
	if int(s) < len(st.runes) {
		return st.runes[s]
	}
	return ' '
}

// Width returns how many cells s occupies, at least 1.
func (st *SymbolTable) Width(s Symbol) int {
	w := runewidth.RuneWidth(st.Rune(s))
	if w < 1 {
		w = 1
	}
	return w
}

// Factory hands out cell metrics for a symbol table. It fills the font
// acquisition stage of the harness; glyph bitmaps live in the display
// backends.
type Factory struct {
	st *SymbolTable
}

// NewFactory creates a factory over st.
func NewFactory(st *SymbolTable) (*Factory, error) {
	if st == nil {
		return nil, errors.New("font: nil symbol table")
	}
	return &Factory{st: st}, nil
}

// Cell returns the pixel size of one character cell.
func (f *Factory) Cell() (w, h int) {
	return CellWidth, CellHeight
}

// Table returns the symbol table the factory was built over.
func (f *Factory) Table() *SymbolTable {
	return f.st
}
