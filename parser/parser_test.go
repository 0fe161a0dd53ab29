// Copyright 2016 by Thorsten von Eicken, see LICENSE file

package parser_test

import (
	"testing"

	"github.com/tve/rfcode/parser"
	"github.com/tve/rfcode/protocol"
	"github.com/tve/rfcode/rfcodes"
	"github.com/tve/rfcode/symbol"
)

func it1() *protocol.Protocol { return rfcodes.Intertechno1() }

func TestLoadReplacesInPlace(t *testing.T) {
	p := parser.New()
	if err := p.Load(it1()); err != nil {
		t.Fatalf("Load: %s", err)
	}
	if len(p.Protocols()) != 1 {
		t.Fatalf("Protocols() = %d entries, want 1", len(p.Protocols()))
	}

	// Loading a protocol with the same name again replaces it rather than
	// appending a second entry.
	if err := p.Load(it1()); err != nil {
		t.Fatalf("second Load: %s", err)
	}
	if len(p.Protocols()) != 1 {
		t.Fatalf("Protocols() = %d entries after reload, want 1", len(p.Protocols()))
	}
}

func TestGetSendRepeat(t *testing.T) {
	p := parser.New()
	if err := p.Load(it1()); err != nil {
		t.Fatalf("Load: %s", err)
	}
	if got := p.GetSendRepeat("it1"); got != 4 {
		t.Fatalf("GetSendRepeat(it1) = %d, want 4", got)
	}
	if got := p.GetSendRepeat("nosuch"); got != 0 {
		t.Fatalf("GetSendRepeat(nosuch) = %d, want 0", got)
	}
}

func TestParseFiresCallbackOnce(t *testing.T) {
	p := parser.New()
	if err := p.Load(it1()); err != nil {
		t.Fatalf("Load: %s", err)
	}

	var codes []string
	p.AttachCallback(func(code string) { codes = append(codes, code) })

	durs := []symbol.Duration{380 * 1, 380 * 31}
	for i := 0; i < 12; i++ {
		if i%2 == 0 {
			durs = append(durs, 380*1, 380*3, 380*3, 380*1)
		} else {
			durs = append(durs, 380*1, 380*3, 380*1, 380*3)
		}
	}
	for _, d := range durs {
		p.Parse(d)
	}

	if len(codes) != 1 {
		t.Fatalf("callback fired %d times, want 1 (codes=%v)", len(codes), codes)
	}
}

// TestComposeRoundTrip mirrors scenario 7: composing a code produces a
// timing vector that, fed back through Parse, reproduces the same code.
func TestComposeRoundTrip(t *testing.T) {
	p := parser.New()
	if err := p.Load(it1()); err != nil {
		t.Fatalf("Load: %s", err)
	}

	code := "it1 B010101010101"
	var buf [8 * protocol.MaxSeqLength]symbol.Duration
	n := p.Compose(code, buf[:])
	if n == 0 {
		t.Fatalf("Compose returned 0 entries for %q", code)
	}

	var got string
	p.AttachCallback(func(c string) { got = c })
	for i := 0; i < n; i++ {
		p.Parse(buf[i])
	}
	if got != code {
		t.Fatalf("round trip = %q, want %q", got, code)
	}
}

func TestComposeUnknownProtocol(t *testing.T) {
	p := parser.New()
	if err := p.Load(it1()); err != nil {
		t.Fatalf("Load: %s", err)
	}
	var buf [16]symbol.Duration
	if n := p.Compose("nosuch BBB", buf[:]); n != 0 {
		t.Fatalf("Compose for an unknown protocol returned %d entries, want 0", n)
	}
}
