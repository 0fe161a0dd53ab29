// Copyright 2016 by Thorsten von Eicken, see LICENSE file

package rfcodes

import "github.com/tve/rfcode/protocol"

// All returns a fresh instance of every bundled protocol table. Callers
// typically Load each into a parser.Parser at startup.
func All() []*protocol.Protocol {
	return []*protocol.Protocol{
		Intertechno1(),
		Intertechno2(),
		SC5272(),
		EV1527(),
		Cresta(),
		NECIR(),
		NECIRRepeat(),
	}
}
