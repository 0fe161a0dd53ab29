// Copyright 2016 by Thorsten von Eicken, see LICENSE file

package rfcodes

import (
	"github.com/tve/rfcode/protocol"
	"github.com/tve/rfcode/symbol"
)

// Cresta returns the Cresta/TX3 family's Manchester-encoded protocol: a
// 5-pulse preamble ('H') followed by 58 short/long Manchester half-bits
// encoding 7 bytes, base time 500µs. Its tolerance (16%, per scenario 6) is
// what lets a transmitter running 4% fast still match the nominal windows
// long enough for the base time to be relearned from the preamble.
func Cresta() *protocol.Protocol {
	return &protocol.Protocol{
		Name:       "cw",
		MinCodeLen: 59,
		MaxCodeLen: 59,
		Tolerance:  16,
		SendRepeat: 3,
		BaseTime:   500,
		Symbols: []symbol.Symbol{
			startSym('H', 2, 2, 2, 2, 2),
			dataSym('s', 1, 1),
			dataSym('l', 2),
		},
	}
}
