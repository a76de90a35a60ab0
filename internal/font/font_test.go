package font

import "testing"

func TestSymbolInterning(t *testing.T) {
	st := NewSymbolTable()
	a := st.Symbol('a')
	b := st.Symbol('b')
	if a == b {
		t.Fatalf("distinct runes got the same symbol: %d", a)
	}
	if again := st.Symbol('a'); again != a {
		t.Fatalf("re-interning changed the id: %d != %d", again, a)
	}
	if st.Rune(a) != 'a' || st.Rune(b) != 'b' {
		t.Fatalf("rune lookup broken: %q %q", st.Rune(a), st.Rune(b))
	}
}

func TestBlankIsZero(t *testing.T) {
	st := NewSymbolTable()
	if st.Symbol(' ') != Blank {
		t.Fatalf("space must intern to the blank symbol")
	}
	if st.Rune(Blank) != ' ' {
		t.Fatalf("blank symbol must render as space, got %q", st.Rune(Blank))
	}
}

func TestWidth(t *testing.T) {
	st := NewSymbolTable()
	if w := st.Width(st.Symbol('x')); w != 1 {
		t.Fatalf("ascii width = %d, want 1", w)
	}
	if w := st.Width(st.Symbol('世')); w != 2 {
		t.Fatalf("wide rune width = %d, want 2", w)
	}
	// control characters still advance the cursor
	if w := st.Width(st.Symbol('\x07')); w != 1 {
		t.Fatalf("control rune width = %d, want 1", w)
	}
}

func TestFactoryCell(t *testing.T) {
	if _, err := NewFactory(nil); err == nil {
		t.Fatalf("expected error for nil symbol table")
	}
	ff, err := NewFactory(NewSymbolTable())
	if err != nil {
		t.Fatalf("NewFactory error: %v", err)
	}
	w, h := ff.Cell()
	if w != CellWidth || h != CellHeight {
		t.Fatalf("cell = %dx%d, want %dx%d", w, h, CellWidth, CellHeight)
	}
}
