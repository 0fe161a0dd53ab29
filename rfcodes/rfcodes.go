// Copyright 2016 by Thorsten von Eicken, see LICENSE file

// Package rfcodes is a collection of illustrative protocol table literals
// for the 433 MHz remote-control chips and NEC-style IR receivers commonly
// paired with this library: the "older" and "newer" Intertechno protocols,
// SC5272-class chips, EV1527-class chips, Cresta Manchester-encoded sensors
// and NEC infrared remotes. These are data, not core logic (§1 of the
// design): loading any of them is just protocol.Load, and none of their
// details leak into the protocol/parser/ring/collector packages.
package rfcodes

import "github.com/tve/rfcode/symbol"

func startSym(name byte, time ...uint8) symbol.Symbol {
	return newSymbol(name, symbol.RoleStart, time...)
}

func dataSym(name byte, time ...uint8) symbol.Symbol {
	return newSymbol(name, symbol.RoleData, time...)
}

func anyDataSym(name byte, time ...uint8) symbol.Symbol {
	return newSymbol(name, symbol.RoleAnyData, time...)
}

func endSym(name byte, time ...uint8) symbol.Symbol {
	return newSymbol(name, symbol.RoleEnd, time...)
}

func startEndSym(name byte, time ...uint8) symbol.Symbol {
	return newSymbol(name, symbol.RoleStart|symbol.RoleEnd, time...)
}

func newSymbol(name byte, role symbol.Role, time ...uint8) symbol.Symbol {
	var s symbol.Symbol
	s.Name = name
	s.Role = role
	copy(s.Time[:], time)
	return s
}
