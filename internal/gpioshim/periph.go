// Copyright 2017 by Thorsten von Eicken, see LICENSE file

//go:build !embd

package gpioshim

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// NewPeriph resolves a GPIO pin by name using periph.io's global pin
// registry (gpioreg), the way tve-devices/spimux and the periph cmd tools
// look up pins with gpio.ByName. It returns an error instead of a nil pin so
// callers can report a configuration error (§7) and disable the direction
// rather than dereference a nil pin.
func NewPeriph(name string) (GPIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("gpioshim: no such pin %q", name)
	}
	return &periphPin{p: p}, nil
}

type periphPin struct {
	p gpio.PinIO
}

func (g *periphPin) In(edge Edge) error {
	e := [...]gpio.Edge{gpio.NoEdge, gpio.RisingEdge, gpio.FallingEdge, gpio.BothEdges}[edge]
	return g.p.In(gpio.PullNoChange, e)
}

func (g *periphPin) Read() Level {
	if g.p.Read() == gpio.High {
		return High
	}
	return Low
}

func (g *periphPin) WaitForEdge(timeout time.Duration) bool {
	return g.p.WaitForEdge(timeout)
}

func (g *periphPin) Out(level Level) {
	l := gpio.Low
	if level == High {
		l = gpio.High
	}
	g.p.Out(l)
}

func (g *periphPin) Number() int {
	return g.p.Number()
}
