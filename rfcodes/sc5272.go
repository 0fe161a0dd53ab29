// Copyright 2016 by Thorsten von Eicken, see LICENSE file

package rfcodes

import (
	"github.com/tve/rfcode/protocol"
	"github.com/tve/rfcode/symbol"
)

// SC5272 returns the protocol used by the SC5272 and similar encoder
// chips: 12 tri-state address/data symbols followed by a dedicated sync
// symbol, base time 100µs. Its symbols may appear first or mid-packet
// (RoleAnyData), matching scenario 2's "1 0 1 0 1 0 1 0 1 0 1 0 S" packet.
func SC5272() *protocol.Protocol {
	return &protocol.Protocol{
		Name:       "sc5",
		MinCodeLen: 1 + 12,
		MaxCodeLen: 1 + 12,
		Tolerance:  25,
		SendRepeat: 3,
		BaseTime:   100,
		Symbols: []symbol.Symbol{
			anyDataSym('0', 4, 12, 4, 12),
			anyDataSym('1', 12, 4, 12, 4),
			anyDataSym('f', 4, 12, 12, 4),
			endSym('S', 4, 124),
		},
	}
}
