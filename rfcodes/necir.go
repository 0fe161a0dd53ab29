// Copyright 2016 by Thorsten von Eicken, see LICENSE file

package rfcodes

import (
	"github.com/tve/rfcode/protocol"
	"github.com/tve/rfcode/symbol"
)

// NECIR returns the NEC infrared remote protocol: a long start burst and 32
// data bits (address, ~address, command, ~command); the packet is emitted
// once those 33 symbols are in. Base time 560µs, the NEC unit pulse width.
// Its 'R' symbol has the repeat-frame timing, but a bare repeat frame is
// not reported by this protocol: 'N' comes first in the alphabet and shares
// R's first sub-duration, so N failing on the second sub-duration triggers
// the start retry, which resets R as well. NECIRRepeat reports repeat frames.
func NECIR() *protocol.Protocol {
	return &protocol.Protocol{
		Name:       "nec",
		MinCodeLen: 1,
		MaxCodeLen: 1 + 32,
		Tolerance:  20,
		SendRepeat: 1,
		BaseTime:   560,
		Symbols: []symbol.Symbol{
			startSym('N', 16, 8),
			dataSym('0', 1, 1),
			dataSym('1', 1, 3),
			startEndSym('R', 16, 4, 1),
		},
	}
}

// NECIRRepeat returns the bare NEC repeat frame as its own protocol: a
// single Start|End symbol, emitted by remotes holding a button down
// instead of resending the full 32-bit frame. Loaded on its own (without
// "nec") it lets a receiver that only cares about repeats skip the 32-bit
// alphabet entirely.
func NECIRRepeat() *protocol.Protocol {
	return &protocol.Protocol{
		Name:       "necR",
		MinCodeLen: 1,
		MaxCodeLen: 1,
		Tolerance:  20,
		SendRepeat: 1,
		BaseTime:   560,
		Symbols: []symbol.Symbol{
			startEndSym('X', 16, 4, 1),
		},
	}
}
