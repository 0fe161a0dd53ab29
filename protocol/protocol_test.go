// Copyright 2016 by Thorsten von Eicken, see LICENSE file

package protocol

import (
	"testing"

	"github.com/tve/rfcode/symbol"
)

func TestLoadRejectsBadCodeLenBounds(t *testing.T) {
	p := &Protocol{Name: "bad", MinCodeLen: 5, MaxCodeLen: 3, BaseTime: 100,
		Symbols: []symbol.Symbol{{Name: 'A', Role: symbol.RoleStart, Time: [8]uint8{1}}}}
	if err := p.Load(); err == nil {
		t.Fatalf("expected an error for minCodeLen > maxCodeLen")
	}
	if _, emitted := p.Advance(100); emitted {
		t.Fatalf("an unloaded protocol must never emit")
	}
}

func TestLoadRejectsZeroBaseTime(t *testing.T) {
	p := &Protocol{Name: "bad", MinCodeLen: 1, MaxCodeLen: 1,
		Symbols: []symbol.Symbol{{Name: 'A', Role: symbol.RoleStart, Time: [8]uint8{1}}}}
	if err := p.Load(); err == nil {
		t.Fatalf("expected an error for baseTime == 0")
	}
}

func TestLoadRejectsAlphabetSize(t *testing.T) {
	p := &Protocol{Name: "bad", MinCodeLen: 1, MaxCodeLen: 1, BaseTime: 100}
	if err := p.Load(); err == nil {
		t.Fatalf("expected an error for an empty alphabet")
	}

	syms := make([]symbol.Symbol, MaxSymbols+1)
	for i := range syms {
		syms[i] = symbol.Symbol{Name: byte('a' + i), Role: symbol.RoleStart, Time: [8]uint8{1}}
	}
	p2 := &Protocol{Name: "bad2", MinCodeLen: 1, MaxCodeLen: 1, BaseTime: 100, Symbols: syms}
	if err := p2.Load(); err == nil {
		t.Fatalf("expected an error for an alphabet exceeding MaxSymbols")
	}
}

func TestLoadDerivesWindows(t *testing.T) {
	p := mustLoad(t, &Protocol{
		Name: "w", MinCodeLen: 1, MaxCodeLen: 1, Tolerance: 25, BaseTime: 100,
		Symbols: []symbol.Symbol{{Name: 'A', Role: symbol.RoleStart | symbol.RoleEnd, Time: [8]uint8{4}}},
	})
	s := p.Symbols[0]
	if s.TimeLength != 1 {
		t.Fatalf("TimeLength = %d, want 1", s.TimeLength)
	}
	// t = 100*4 = 400, radius = 400*25/100 = 100.
	if s.MinTime[0] != 300 || s.MaxTime[0] != 500 {
		t.Fatalf("window = [%d,%d], want [300,500]", s.MinTime[0], s.MaxTime[0])
	}
}

func TestSymbolLookup(t *testing.T) {
	p := mustLoad(t, it1())
	if s := p.Symbol('B'); s == nil || s.Name != 'B' {
		t.Fatalf("Symbol('B') = %v, want the Start symbol", s)
	}
	if s := p.Symbol('?'); s != nil {
		t.Fatalf("Symbol('?') = %v, want nil", s)
	}
}

// TestCrossProtocolIsolation mirrors scenario 4: two independently loaded
// protocols never interfere with each other's matching state.
func TestCrossProtocolIsolation(t *testing.T) {
	it := mustLoad(t, it1())
	sc := mustLoad(t, &Protocol{
		Name: "sc5", MinCodeLen: 2, MaxCodeLen: 2, Tolerance: 25, BaseTime: 100,
		Symbols: []symbol.Symbol{
			{Name: '0', Role: symbol.RoleAnyData, Time: [8]uint8{4, 12}},
			{Name: 'S', Role: symbol.RoleEnd, Time: [8]uint8{4, 124}},
		},
	})

	// Feed an it1 packet's Start symbol only; sc5 must not be disturbed
	// into emitting from the exact same durations.
	it.Advance(380)
	sc.Advance(380)
	it.Advance(380 * 31)
	code, emitted := sc.Advance(380 * 31)
	if emitted {
		t.Fatalf("sc5 must not emit from it1-shaped durations, got %q", code)
	}
}
