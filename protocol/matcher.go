// Copyright 2016 by Thorsten von Eicken, see LICENSE file

package protocol

import (
	"fmt"

	"github.com/tve/rfcode/symbol"
)

// Advance feeds one incoming duration into the protocol's matcher and
// returns the textual packet code if a full packet was just recognized.
//
// This is the hard part of the library: it walks the alphabet in order,
// advancing every Symbol still marked valid, gates candidates by role
// depending on whether we're at the start of a packet or mid-packet, tests
// the duration against the Symbol's current acceptance window, and on a
// full Symbol match either continues accumulating or emits/discards the
// packet per the protocol's length bounds. See the retry handling in
// advancePass for the resynchronization policy used when a tentative start
// fails on its second sub-duration.
func (p *Protocol) Advance(d symbol.Duration) (code string, emitted bool) {
	if !p.loaded {
		return "", false
	}
	return p.advancePass(d, true)
}

// advancePass runs a single scan of the alphabet against d. allowRetry is
// true on the first pass for a given duration and false on the reattempt
// pass triggered by a retry candidate, so that a single incoming duration
// can trigger at most one retry (after a retry-reset every symbol's Cnt is
// back at 0, so the i==1 trigger condition cannot fire again this call).
func (p *Protocol) advancePass(d symbol.Duration, allowRetry bool) (string, bool) {
	var completed *symbol.Symbol
	matched := false
	retry := false

	for i := range p.Symbols {
		s := &p.Symbols[i]
		if !s.Valid {
			continue
		}
		idx := s.Cnt

		if p.SeqLen == 0 && !s.Role.Any(symbol.RoleStart) {
			// codes other than start codes are not acceptable as the first
			// code in the sequence.
			s.Valid = false
			continue
		}
		if p.SeqLen > 0 && !s.Role.Any(symbol.RoleAny) {
			// codes other than data and end codes are not acceptable while
			// a packet is in progress.
			s.Valid = false
			continue
		}

		if d < s.MinTime[idx] || d > s.MaxTime[idx] {
			s.Valid = false
			if allowRetry && idx == 1 && p.SeqLen == 0 {
				// This duration matched the first sub-duration of a
				// tentative start symbol but not the second. Reset and
				// re-attempt it as a possible new first sub-duration.
				retry = true
				break
			}
			continue
		}

		matched = true
		s.Cnt = idx + 1
		s.Total += d
		if s.Cnt == s.TimeLength {
			completed = s
			break
		}
	}

	switch {
	case retry:
		p.Reset()
		return p.advancePass(d, false)
	case completed != nil:
		return p.complete(completed)
	case !matched:
		p.Reset()
	}
	return "", false
}

// complete handles a Symbol that just matched all of its sub-durations: it
// performs the adaptive base-time recalibration on the packet's first
// Symbol, appends the Symbol's name to the in-progress sequence, resets
// every Symbol's per-position matching state, and applies the termination
// policy (fragment discard, emit on End, emit on reaching maxCodeLen, or
// keep accumulating).
func (p *Protocol) complete(s *symbol.Symbol) (string, bool) {
	if p.SeqLen == 0 {
		sum := 0
		for i := 0; i < s.TimeLength; i++ {
			sum += int(s.Time[i])
		}
		if sum > 0 {
			p.RealBase = s.Total / symbol.Duration(sum)
			p.rebase(p.RealBase)
		}
	}

	p.Seq = append(p.Seq, s.Name)
	p.SeqLen++
	p.resetSymbols()

	switch {
	case s.Role == symbol.RoleEnd && p.SeqLen < p.MinCodeLen:
		// Fragment: an End-only symbol arrived before the minimum packet
		// length was reached.
		p.Reset()
		return "", false

	case s.Role.Any(symbol.RoleEnd) && p.SeqLen >= p.MinCodeLen:
		code := fmt.Sprintf("%s %s", p.Name, string(p.Seq))
		p.Reset()
		return code, true

	case p.SeqLen == p.MaxCodeLen:
		code := fmt.Sprintf("%s %s", p.Name, string(p.Seq))
		p.Reset()
		return code, true

	default:
		return "", false
	}
}
