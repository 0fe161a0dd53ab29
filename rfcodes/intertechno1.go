// Copyright 2016 by Thorsten von Eicken, see LICENSE file

package rfcodes

import (
	"github.com/tve/rfcode/protocol"
	"github.com/tve/rfcode/symbol"
)

// Intertechno1 returns the "older" Intertechno protocol: a fixed 1 start +
// 12 data symbol packet, base time 380µs. Its data symbols distinguish '0'
// and '1' by the order of a short/long sub-pulse pair, repeated twice.
func Intertechno1() *protocol.Protocol {
	return &protocol.Protocol{
		Name:       "it1",
		MinCodeLen: 1 + 12,
		MaxCodeLen: 1 + 12,
		Tolerance:  20,
		SendRepeat: 4,
		BaseTime:   380,
		Symbols: []symbol.Symbol{
			startSym('B', 1, 31),
			dataSym('0', 1, 3, 3, 1),
			dataSym('1', 1, 3, 1, 3),
		},
	}
}
