// Copyright 2016 by Thorsten von Eicken, see LICENSE file

// This file implements the optional diagnostics surface: dumps of pending
// ring-buffer timings and of the loaded protocol tables, for use during
// development. None of these functions alter collector, parser or protocol
// state, mirroring github.com/tve/devices/rfm69/dbgbuf.go's read-only debug
// event renderer.

package collector

import (
	"fmt"
	"io"

	"github.com/tve/rfcode/protocol"
	"github.com/tve/rfcode/symbol"
)

// GetBufferData copies the last n durations from the ring buffer into out,
// appending a terminating 0. It returns the number of durations copied, not
// counting the terminator.
func (c *Collector) GetBufferData(out []symbol.Duration, n int) int {
	if n > len(out)-1 {
		n = len(out) - 1
	}
	if n < 0 {
		n = 0
	}
	written := c.buf.SnapshotLastN(n, out)
	out[written] = 0
	return written
}

// DumpTimings writes a human-readable rendering of a 0-terminated timing
// array to w.
func DumpTimings(w io.Writer, raw []symbol.Duration) {
	for i, t := range raw {
		if t == 0 {
			break
		}
		if i > 0 {
			fmt.Fprint(w, " ")
		}
		fmt.Fprintf(w, "%d", t)
	}
	fmt.Fprintln(w)
}

// DumpProtocol writes the characteristics and acceptance windows of a
// single protocol to w.
func (c *Collector) DumpProtocol(w io.Writer, name string) {
	for _, p := range c.parser.Protocols() {
		if p.Name != name {
			continue
		}
		dumpProtocol(w, p)
		return
	}
}

// DumpTable writes the characteristics and acceptance windows of every
// loaded protocol to w.
func (c *Collector) DumpTable(w io.Writer) {
	for _, p := range c.parser.Protocols() {
		dumpProtocol(w, p)
	}
}

func dumpProtocol(w io.Writer, p *protocol.Protocol) {
	fmt.Fprintf(w, "Protocol %q, min:%d max:%d tol:%d%% rep:%d base:%d\n",
		p.Name, p.MinCodeLen, p.MaxCodeLen, p.Tolerance, p.SendRepeat, p.BaseTime)
	for _, s := range p.Symbols {
		fmt.Fprintf(w, "  %q |", string(s.Name))
		for i := 0; i < s.TimeLength; i++ {
			fmt.Fprintf(w, "%6d -%6d |", s.MinTime[i], s.MaxTime[i])
		}
		fmt.Fprintln(w)
	}
}
