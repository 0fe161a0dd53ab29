// Copyright 2016 by Thorsten von Eicken, see LICENSE file

// Package protocol implements the table-driven description of a single
// pulse-timing protocol (its symbol alphabet, timing template, packet-length
// bounds and tolerance) together with the incremental matcher that advances
// the protocol's state by one duration at a time.
//
// A Protocol is pure data plus the mutable state of the packet currently
// being matched; it is owned exclusively by a single parser.Parser and is
// not safe for concurrent use.
package protocol

import (
	"fmt"

	"github.com/tve/rfcode/symbol"
)

// MaxSymbols is the maximum alphabet size of a single protocol.
const MaxSymbols = 8

// MaxSeqLength is the maximum number of symbols accumulated in one packet.
const MaxSeqLength = 120

// Protocol is a named bundle describing one pulse-timing protocol: its
// symbol alphabet, timing tolerance, packet length bounds and the state of
// the packet currently being assembled.
type Protocol struct {
	Name       string // short name, <= 11 chars
	MinCodeLen int    // inclusive lower bound on packet length in symbols
	MaxCodeLen int    // inclusive upper bound on packet length in symbols
	Tolerance  int    // percent, typically 15-35
	SendRepeat int    // number of times the composed waveform is sent
	BaseTime   symbol.Duration // nominal microsecond unit
	RealBase   symbol.Duration // learned base time for the packet in progress, 0 if not yet learned

	Symbols []symbol.Symbol // ordered alphabet, 1 <= len <= MaxSymbols

	Seq    []byte // symbol names accumulated for the packet in progress
	SeqLen int    // len(Seq), kept explicit to mirror the reference's fixed buffer

	logf func(format string, v ...interface{}) // nil-safe log sink, see SetLogger

	loaded bool // true once Load has derived Min/MaxTime successfully
}

// SetLogger installs a logging function used to report configuration errors
// (see Load). A nil logger silences all output, which is the default.
func (p *Protocol) SetLogger(fn func(format string, v ...interface{})) {
	p.logf = fn
}

func (p *Protocol) log(format string, v ...interface{}) {
	if p.logf != nil {
		p.logf("protocol %s: "+format, append([]interface{}{p.Name}, v...)...)
	}
}

// Load derives the per-symbol acceptance windows from BaseTime and
// Tolerance, and resets the mutable packet state to empty. Load is
// idempotent: calling it again (e.g. after changing BaseTime or Tolerance)
// recomputes the windows from scratch.
//
// Load reports a configuration error (§7) if MinCodeLen > MaxCodeLen,
// BaseTime is 0, or the alphabet exceeds MaxSymbols entries; in all of
// these cases the protocol is left unloaded (Advance never matches
// anything) and the error is also reported through the logger.
func (p *Protocol) Load() error {
	if p.MinCodeLen > p.MaxCodeLen {
		err := fmt.Errorf("protocol %s: minCodeLen %d > maxCodeLen %d", p.Name, p.MinCodeLen, p.MaxCodeLen)
		p.log("%s", err)
		p.loaded = false
		return err
	}
	if p.BaseTime == 0 {
		err := fmt.Errorf("protocol %s: baseTime must not be 0", p.Name)
		p.log("%s", err)
		p.loaded = false
		return err
	}
	if len(p.Symbols) == 0 || len(p.Symbols) > MaxSymbols {
		err := fmt.Errorf("protocol %s: alphabet size %d out of range 1..%d", p.Name, len(p.Symbols), MaxSymbols)
		p.log("%s", err)
		p.loaded = false
		return err
	}

	p.rebase(p.BaseTime)
	p.RealBase = 0
	p.Reset()
	p.loaded = true
	return nil
}

// rebase recomputes MinTime/MaxTime for every symbol of the alphabet against
// base, counting the non-zero entries of Time[] as TimeLength along the way.
func (p *Protocol) rebase(base symbol.Duration) {
	for i := range p.Symbols {
		s := &p.Symbols[i]

		n := 0
		for n < symbol.MaxTimeLength && s.Time[n] != 0 {
			n++
		}
		s.TimeLength = n

		for j := 0; j < n; j++ {
			t := base * symbol.Duration(s.Time[j])
			radius := (t * symbol.Duration(p.Tolerance)) / 100
			s.MinTime[j] = t - radius
			s.MaxTime[j] = t + radius
		}
	}
}

// Reset clears the in-progress packet (Seq, SeqLen) and every symbol's
// matching state (Cnt, Valid, Total) back to the post-Load default. After a
// protocol emits a packet or fails to match, it is indistinguishable from a
// freshly loaded protocol. Any base time learned for the packet in progress
// (RealBase) is discarded and the acceptance windows revert to BaseTime, so
// transmitter drift observed in one packet never leaks into the next.
func (p *Protocol) Reset() {
	p.Seq = p.Seq[:0]
	p.SeqLen = 0
	if p.RealBase != 0 {
		p.RealBase = 0
		p.rebase(p.BaseTime)
	}
	p.resetSymbols()
}

// resetSymbols resets every symbol's Cnt/Valid/Total without touching Seq,
// used after a single symbol completes so that the next duration starts a
// fresh symbol match within the same packet.
func (p *Protocol) resetSymbols() {
	for i := range p.Symbols {
		p.Symbols[i].Reset()
	}
}

// Symbol returns the alphabet entry named name, or nil if the protocol has
// none by that name.
func (p *Protocol) Symbol(name byte) *symbol.Symbol {
	for i := range p.Symbols {
		if p.Symbols[i].Name == name {
			return &p.Symbols[i]
		}
	}
	return nil
}
