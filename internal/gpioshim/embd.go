// Copyright 2016 by Thorsten von Eicken, see LICENSE file

//go:build embd

package gpioshim

import (
	"fmt"
	"time"

	"github.com/kidoman/embd"
)

// NewEmbd resolves a GPIO pin by name through github.com/kidoman/embd, for
// boards (like the CHIP) whose periph.io host driver is incomplete but that
// embd already supports. Build with -tags embd to select this backend over
// the default periph.io one in periph.go; the cmd/ programs call NewPeriph,
// which is not built under that tag.
func NewEmbd(name string) (GPIO, error) {
	p, err := embd.NewDigitalPin(name)
	if err != nil {
		return nil, fmt.Errorf("gpioshim: embd: %w", err)
	}
	return &embdPin{p: p, edge: make(chan struct{}, 1)}, nil
}

type embdPin struct {
	p    embd.DigitalPin
	dir  embd.Direction
	edge chan struct{}
}

func (g *embdPin) In(edge Edge) error {
	if err := g.p.SetDirection(embd.In); err != nil {
		return err
	}
	g.dir = embd.In
	if edge == NoEdge {
		return nil
	}
	e := [...]embd.Edge{embd.EdgeNone, embd.EdgeRising, embd.EdgeFalling, embd.EdgeBoth}[edge]
	return g.p.Watch(e, g.onEdge)
}

func (g *embdPin) Read() Level {
	v, _ := g.p.Read()
	if v != 0 {
		return High
	}
	return Low
}

func (g *embdPin) WaitForEdge(timeout time.Duration) bool {
	to := time.After(timeout)
	select {
	case <-g.edge:
		return true
	case <-to:
		return false
	}
}

func (g *embdPin) Out(level Level) {
	if g.dir != embd.Out {
		g.p.SetDirection(embd.Out)
		g.dir = embd.Out
	}
	g.p.Write(int(level))
}

func (g *embdPin) Number() int { return g.p.N() }

func (g *embdPin) onEdge(embd.DigitalPin) {
	select {
	case g.edge <- struct{}{}:
	default:
	}
}
