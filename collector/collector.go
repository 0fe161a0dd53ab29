// Copyright 2016 by Thorsten von Eicken, see LICENSE file

// Package collector implements the Signal Collector: the hardware adapter
// that bridges a GPIO edge interrupt and a parser.Parser through a
// lock-free ring.Buffer, and that converts a textual code back into a
// timing sequence and drives an output pin to transmit it.
//
// Collector owns exactly one receive pin and one send pin (either may be
// disabled) for the lifetime of the process; it does not release them. It
// follows the scheduling model of §5 of the design: one hardware-interrupt
// producer (onEdge) and one cooperative consumer (Loop), with Send being
// the only blocking, synchronous operation.
package collector

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/tve/rfcode/internal/gpioshim"
	"github.com/tve/rfcode/parser"
	"github.com/tve/rfcode/ring"
	"github.com/tve/rfcode/symbol"
)

// maxTimingBuffer bounds the composed timing vector: symbol-length (8) x
// max sequence length (120), per §6.
const maxTimingBuffer = 8 * 120

// LogPrintf is the logging function signature used throughout the module,
// matching github.com/tve/devices's LogPrintf convention.
type LogPrintf func(format string, v ...interface{})

// Clock returns a free-running microsecond counter, analogous to Arduino's
// micros(). The platform's monotonic time source is an external
// collaborator (§1); the default implementation measures time elapsed since
// package initialization with time.Since, which uses Go's monotonic clock.
type Clock func() symbol.Duration

var clockEpoch = time.Now()

func defaultClock() symbol.Duration {
	return symbol.Duration(time.Since(clockEpoch).Microseconds())
}

// Options configures a Collector.
type Options struct {
	RecvPin gpioshim.GPIO // receive pin, nil disables reception
	SendPin gpioshim.GPIO // send pin, nil disables transmission
	Trim    symbol.Duration // added to a measured edge delta when the line reads High after the edge, subtracted otherwise
	Clock   Clock           // microsecond time source, defaults to one derived from time.Now
	Logger  LogPrintf       // configuration-error / trace sink, nil disables it
	// Realtime, when true, asks Loop to pin its goroutine to an OS thread
	// and raise its scheduling priority before draining the ring, see
	// realtime_linux.go.
	Realtime bool
}

// Collector bridges a GPIO edge interrupt and a parser.Parser through a
// ring.Buffer, and composes+transmits outgoing codes.
type Collector struct {
	parser *parser.Parser
	buf    *ring.Buffer

	recvPin  gpioshim.GPIO
	sendPin  gpioshim.GPIO
	trim     symbol.Duration
	clock    Clock
	logf     LogPrintf
	realtime bool

	lastEdge symbol.Duration
}

func (c *Collector) log(format string, v ...interface{}) {
	if c.logf != nil {
		c.logf("collector: "+format, v...)
	}
}

// Init wires a Collector to a parser.Parser and configures its pins. A nil
// RecvPin or SendPin in opts disables that direction: the collector
// continues to operate on whichever direction remains (§7 configuration
// error handling — a bad pin degrades gracefully rather than aborting).
func Init(p *parser.Parser, opts Options) (*Collector, error) {
	clock := opts.Clock
	if clock == nil {
		clock = defaultClock
	}

	c := &Collector{
		parser:   p,
		buf:      ring.New(512),
		sendPin:  opts.SendPin,
		trim:     opts.Trim,
		clock:    clock,
		logf:     opts.Logger,
		realtime: opts.Realtime,
	}

	if opts.RecvPin != nil {
		if err := opts.RecvPin.In(gpioshim.BothEdges); err != nil {
			c.log("cannot configure recv pin: %s, receive disabled", err)
		} else {
			c.recvPin = opts.RecvPin
			c.lastEdge = clock()
			go c.watchEdges()
		}
	}

	// A freshly-configured output pin reads Low until first driven, on both
	// the periph.io and embd backends, so there is nothing to assert here:
	// Send leaves the pin Low when it returns (see below), which keeps that
	// invariant true for every call after the first too.

	return c, nil
}

// watchEdges blocks on the receive pin's edge notification and calls onEdge
// for each one. It is the ISR in spirit, even though on a Linux host it runs
// as an ordinary goroutine rather than a true interrupt context. Send masks
// reception during transmission by switching the pin to NoEdge; WaitForEdge
// then returns false immediately, so the loop keeps polling rather than
// exiting, and resumes blocking once Send re-arms BothEdges.
func (c *Collector) watchEdges() {
	for {
		if c.recvPin.WaitForEdge(24 * time.Hour) {
			c.onEdge()
			continue
		}
		time.Sleep(time.Millisecond)
	}
}

// onEdge is the interrupt handler: it samples the clock, computes the delta
// from the previous edge, and pushes it to the ring buffer. It performs no
// allocation, no floating point and no logging, and takes no lock, so that
// it is safe to call directly from a real edge interrupt.
func (c *Collector) onEdge() {
	now := c.clock()
	d := now - c.lastEdge
	c.lastEdge = now

	if c.trim != 0 {
		if c.recvPin != nil && c.recvPin.Read() == gpioshim.High {
			d += c.trim
		} else {
			d -= c.trim
		}
	}

	c.buf.Push(d)
}

// Loop drains the ring buffer, feeding every dequeued duration to the
// parser, until ctx is cancelled. It yields cooperatively after each sample
// so as not to starve other goroutines on the same OS thread.
func (c *Collector) Loop(ctx context.Context) {
	if c.realtime {
		if err := setRealtime(); err != nil {
			c.log("could not raise scheduling priority: %s", err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		d, ok := c.buf.Pop()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Millisecond):
			}
			continue
		}

		c.parser.Parse(d)
		runtime.Gosched()
	}
}

// InjectTiming enqueues d as if it had come from the edge interrupt. It is
// a test hook for offline replay of a captured timing stream.
func (c *Collector) InjectTiming(d symbol.Duration) {
	c.buf.Push(d)
}

// Send resolves the protocol's sendRepeat count, composes the full timing
// vector for code, and toggles the send pin, sleeping for each timing, that
// many times in a row. It does nothing if the protocol is unknown, its
// sendRepeat is 0, or the send pin is disabled. Send blocks until all
// repeats have been emitted and is not safe to call concurrently with
// itself.
func (c *Collector) Send(code string) error {
	if c.sendPin == nil {
		return nil
	}

	repeat := c.parser.GetSendRepeat(firstToken(code))
	if repeat <= 0 {
		return nil
	}

	var timings [maxTimingBuffer]symbol.Duration
	n := c.parser.Compose(code, timings[:])
	if n == 0 {
		return fmt.Errorf("collector: send: unknown code %q", code)
	}

	// Mask reception while transmitting: the transmitted edges would
	// otherwise pollute the ring with self-induced samples.
	if c.recvPin != nil {
		c.recvPin.In(gpioshim.NoEdge)
		defer c.recvPin.In(gpioshim.BothEdges)
	}

	// The pin is already Low here (see Init): every toggle below is a real
	// transmitted edge, none of them a re-assertion of the current level.
	level := gpioshim.Low
	for r := 0; r < repeat; r++ {
		for i := 0; i < n; i++ {
			level = toggle(level)
			c.sendPin.Out(level)
			time.Sleep(time.Duration(timings[i]) * time.Microsecond)
		}
	}
	// Most bundled symbols have an even sub-duration count and so return the
	// line to Low on their own, but some do not (Cresta's 'H' and 'l', the
	// NEC 'R' and 'X' repeat symbols): guard against leaving the line
	// asserted by only correcting when the composed sequence actually ended
	// high.
	if level != gpioshim.Low {
		c.sendPin.Out(gpioshim.Low)
	}
	return nil
}

func toggle(l gpioshim.Level) gpioshim.Level {
	if l == gpioshim.Low {
		return gpioshim.High
	}
	return gpioshim.Low
}

func firstToken(code string) string {
	for i := 0; i < len(code); i++ {
		if code[i] == ' ' {
			return code[:i]
		}
	}
	return code
}
