// Copyright 2016 by Thorsten von Eicken, see LICENSE file

// Package parser implements the Signal Parser orchestrator: it holds a set
// of loaded protocol.Protocol tables, routes each incoming duration to every
// one of them, and fans any completed packet to a single registered
// callback.
package parser

import (
	"strings"

	"github.com/tve/rfcode/protocol"
	"github.com/tve/rfcode/symbol"
)

// Callback is invoked synchronously from Parse when a protocol completes a
// packet. It must not block for long since it runs on the caller's thread
// (typically the collector's main loop).
type Callback func(code string)

// Parser routes incoming durations to an ordered set of protocols and fans
// out completed packets to a single callback. Parser is not safe for
// concurrent use; it is intended to be driven from one goroutine (the
// collector's consumer loop), matching the single-producer/single-consumer
// model of the ring buffer that normally feeds it.
type Parser struct {
	protocols []*protocol.Protocol
	byName    map[string]*protocol.Protocol
	callback  Callback
	logf      func(format string, v ...interface{})
}

// New returns an empty Parser with no protocols loaded.
func New() *Parser {
	return &Parser{byName: map[string]*protocol.Protocol{}}
}

// SetLogger configures the function every subsequently-loaded protocol logs
// configuration errors through, matching protocol.Protocol.SetLogger. Call
// it before Load so that Load's own validation errors are logged too.
func (p *Parser) SetLogger(fn func(format string, v ...interface{})) {
	p.logf = fn
}

// Load registers a protocol with the parser, deriving its acceptance
// windows via protocol.Load. Loading a protocol whose name is already
// registered replaces it in place, preserving its position in the
// registration order (protocols are otherwise independent and are
// advanced in that order on every Parse call).
func (p *Parser) Load(pr *protocol.Protocol) error {
	if p.logf != nil {
		pr.SetLogger(p.logf)
	}
	if err := pr.Load(); err != nil {
		return err
	}
	if existing, ok := p.byName[pr.Name]; ok {
		for i, cur := range p.protocols {
			if cur == existing {
				p.protocols[i] = pr
				break
			}
		}
	} else {
		p.protocols = append(p.protocols, pr)
	}
	p.byName[pr.Name] = pr
	return nil
}

// AttachCallback registers the function invoked with the textual code of
// every completed packet. Calling it again replaces the previous callback.
func (p *Parser) AttachCallback(fn Callback) {
	p.callback = fn
}

// Protocols returns the loaded protocols in registration order, for
// diagnostics (see collector's trace helpers). Callers must not mutate the
// returned protocols.
func (p *Parser) Protocols() []*protocol.Protocol {
	return p.protocols
}

// GetSendRepeat returns the sendRepeat count configured for the named
// protocol, or 0 if no such protocol is loaded.
func (p *Parser) GetSendRepeat(name string) int {
	if pr, ok := p.byName[name]; ok {
		return pr.SendRepeat
	}
	return 0
}

// Parse advances every loaded protocol by one duration, in registration
// order. Protocols are independent: one may be mid-packet while another is
// idle, and every protocol sees every duration regardless of what its
// neighbors do with it. At most one protocol can complete a packet for any
// given duration; when one does, its code is handed to the registered
// callback (if any) after all protocols have been advanced.
func (p *Parser) Parse(d symbol.Duration) {
	var completed string
	var ok bool
	for _, pr := range p.protocols {
		if code, done := pr.Advance(d); done {
			completed, ok = code, true
		}
	}
	if ok && p.callback != nil {
		p.callback(completed)
	}
}

// Compose parses the leading "<protocol-name> " token of code and, for each
// subsequent character, looks up the matching Symbol in that protocol's
// alphabet and appends the centre of each of its sub-duration acceptance
// windows ((MinTime[i]+MaxTime[i])/2) to buf. It returns the number of
// entries written, not counting the terminating 0 that Compose always
// appends if there is room. Unknown trailing characters are skipped
// silently; an unknown protocol name produces no output and a 0 length.
func (p *Parser) Compose(code string, buf []symbol.Duration) int {
	name, syms, ok := strings.Cut(code, " ")
	if !ok {
		name = code
		syms = ""
	}

	pr, ok := p.byName[name]
	if !ok {
		if len(buf) > 0 {
			buf[0] = 0
		}
		return 0
	}

	n := 0
outer:
	for i := 0; i < len(syms); i++ {
		sym := pr.Symbol(syms[i])
		if sym == nil {
			continue
		}
		for j := 0; j < sym.TimeLength; j++ {
			if n >= len(buf)-1 {
				break outer
			}
			buf[n] = (sym.MinTime[j] + sym.MaxTime[j]) / 2
			n++
		}
	}
	if n < len(buf) {
		buf[n] = 0
	}
	return n
}
