// Copyright 2016 by Thorsten von Eicken, see LICENSE file

// Package gpioshim is a hack to be able to switch the digital I/O backend
// this module drives its receive/send pins through, the same way
// github.com/tve/devices/shim.go lets its device drivers switch between
// embd and periph. The collector package only depends on the small GPIO
// interface defined here, not on periph.io or embd directly.
package gpioshim

import "time"

// Edge selects which transitions of a pin generate an interrupt.
type Edge int

const (
	NoEdge Edge = iota
	RisingEdge
	FallingEdge
	BothEdges
)

// Level is a digital pin level.
type Level int

const (
	Low  Level = 0
	High Level = 1
)

// GPIO is the minimal digital I/O surface the collector needs: configure a
// direction, read the current level, block for an edge, and drive a level.
// recvPin only ever uses In/Read/WaitForEdge; sendPin only ever uses Out.
type GPIO interface {
	In(edge Edge) error
	Read() Level
	WaitForEdge(timeout time.Duration) bool
	Out(level Level)
	Number() int
}
