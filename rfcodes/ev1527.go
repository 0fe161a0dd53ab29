// Copyright 2016 by Thorsten von Eicken, see LICENSE file

package rfcodes

import (
	"github.com/tve/rfcode/protocol"
	"github.com/tve/rfcode/symbol"
)

// EV1527 returns the protocol used by EV1527-class encoder chips: a fixed
// sync pulse followed by 20 address bits and 4 data bits, base time 320µs.
func EV1527() *protocol.Protocol {
	return &protocol.Protocol{
		Name:       "ev1527",
		MinCodeLen: 1 + 20 + 4,
		MaxCodeLen: 1 + 20 + 4,
		Tolerance:  25,
		SendRepeat: 3,
		BaseTime:   320,
		Symbols: []symbol.Symbol{
			startSym('s', 1, 31),
			dataSym('0', 1, 3),
			dataSym('1', 3, 1),
		},
	}
}
