// Copyright 2016 by Thorsten von Eicken, see LICENSE file

package rfcodes

import (
	"github.com/tve/rfcode/protocol"
	"github.com/tve/rfcode/symbol"
)

// Intertechno2 returns the "newer" Intertechno protocol, with 34 to 48
// symbols per packet counting the start and end symbols (dimmer remotes
// encode extra bits), base time 280µs and an explicit end-of-packet symbol.
func Intertechno2() *protocol.Protocol {
	return &protocol.Protocol{
		Name:       "it2",
		MinCodeLen: 34,
		MaxCodeLen: 48,
		Tolerance:  25,
		SendRepeat: 10,
		BaseTime:   280,
		Symbols: []symbol.Symbol{
			startSym('s', 1, 10),
			dataSym('_', 1, 1, 1, 5),
			dataSym('#', 1, 5, 1, 1),
			dataSym('D', 1, 1, 1, 1),
			endSym('x', 1, 38),
		},
	}
}
