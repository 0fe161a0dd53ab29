// Copyright 2016 by Thorsten von Eicken, see LICENSE file

package collector

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/tve/rfcode/internal/gpioshim"
	"github.com/tve/rfcode/parser"
	"github.com/tve/rfcode/rfcodes"
	"github.com/tve/rfcode/symbol"
)

// fakePin is a minimal in-memory gpioshim.GPIO for exercising Send without
// any real hardware or periph.io/embd backend.
type fakePin struct {
	level    gpioshim.Level
	outCalls int
	edge     gpioshim.Edge
}

func (p *fakePin) In(edge gpioshim.Edge) error { p.edge = edge; return nil }
func (p *fakePin) Read() gpioshim.Level        { return p.level }
func (p *fakePin) WaitForEdge(time.Duration) bool { return false }
func (p *fakePin) Out(level gpioshim.Level) {
	p.level = level
	p.outCalls++
}
func (p *fakePin) Number() int { return 0 }

func newTestParser(t *testing.T) *parser.Parser {
	t.Helper()
	p := parser.New()
	if err := p.Load(rfcodes.Intertechno1()); err != nil {
		t.Fatalf("Load: %s", err)
	}
	return p
}

// TestInjectTimingReplaysOffline feeds a captured it1 timing stream through
// InjectTiming and a synchronous drain loop, without any GPIO at all.
func TestInjectTimingReplaysOffline(t *testing.T) {
	p := newTestParser(t)
	var got string
	p.AttachCallback(func(code string) { got = code })

	c, err := Init(p, Options{})
	if err != nil {
		t.Fatalf("Init: %s", err)
	}

	durs := []symbol.Duration{380 * 1, 380 * 31}
	for i := 0; i < 12; i++ {
		if i%2 == 0 {
			durs = append(durs, 380*1, 380*3, 380*3, 380*1)
		} else {
			durs = append(durs, 380*1, 380*3, 380*1, 380*3)
		}
	}
	for _, d := range durs {
		c.InjectTiming(d)
	}

	deadline := time.After(time.Second)
	for got == "" {
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for a decoded packet")
		default:
		}
		d, ok := c.buf.Pop()
		if !ok {
			continue
		}
		c.parser.Parse(d)
	}
	if want := "it1 B010101010101"; got != want {
		t.Fatalf("got = %q, want %q", got, want)
	}
}

// TestSendComposesAndTogglesPin drives Send against a fake GPIO and checks
// that the pin toggled the expected number of times, per scenario 7: 3 *
// (2 + 12*4) = 150 edges for send("it1 B000000000000") with sendRepeat 3.
func TestSendComposesAndTogglesPin(t *testing.T) {
	p := parser.New()
	pr := rfcodes.Intertechno1()
	pr.SendRepeat = 3
	if err := p.Load(pr); err != nil {
		t.Fatalf("Load: %s", err)
	}

	sendPin := &fakePin{}
	c, err := Init(p, Options{SendPin: sendPin})
	if err != nil {
		t.Fatalf("Init: %s", err)
	}

	if err := c.Send("it1 B000000000000"); err != nil {
		t.Fatalf("Send: %s", err)
	}

	wantEdges := 3 * (2 + 12*4)
	if got := sendPin.outCalls; got != wantEdges {
		t.Fatalf("pin toggled %d times, want %d", got, wantEdges)
	}
	if sendPin.level != gpioshim.Low {
		t.Fatalf("pin left at %v, want Low", sendPin.level)
	}
}

func TestSendUnknownCode(t *testing.T) {
	p := newTestParser(t)
	sendPin := &fakePin{}
	c, err := Init(p, Options{SendPin: sendPin})
	if err != nil {
		t.Fatalf("Init: %s", err)
	}
	if err := c.Send("nosuch BBB"); err != nil || sendPin.outCalls != 0 {
		t.Fatalf("Send for an unknown protocol: err = %v, pin driven %d times; want no error and no output", err, sendPin.outCalls)
	}
}

func TestDumpTableIncludesLoadedProtocols(t *testing.T) {
	p := newTestParser(t)
	c, err := Init(p, Options{})
	if err != nil {
		t.Fatalf("Init: %s", err)
	}
	var buf bytes.Buffer
	c.DumpTable(&buf)
	if !strings.Contains(buf.String(), `"it1"`) {
		t.Fatalf("DumpTable output missing it1: %s", buf.String())
	}
}
