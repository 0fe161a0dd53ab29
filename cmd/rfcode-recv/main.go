// Copyright (c) 2016 by Thorsten von Eicken, see LICENSE file for details

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/tve/rfcode/collector"
	"github.com/tve/rfcode/internal/gpioshim"
	"github.com/tve/rfcode/parser"
	"github.com/tve/rfcode/rfcodes"
	"periph.io/x/host/v3"
)

func run(recvPinName string, debug bool) error {
	if _, err := host.Init(); err != nil {
		return err
	}

	recvPin, err := gpioshim.NewPeriph(recvPinName)
	if err != nil {
		return fmt.Errorf("cannot open pin %s: %w", recvPinName, err)
	}

	p := parser.New()
	for _, pr := range rfcodes.All() {
		if err := p.Load(pr); err != nil {
			return fmt.Errorf("cannot load protocol: %w", err)
		}
	}
	if debug {
		p.SetLogger(log.Printf)
	}
	p.AttachCallback(func(code string) {
		log.Printf("received: %s", code)
	})

	logger := collector.LogPrintf(nil)
	if debug {
		logger = log.Printf
	}
	c, err := collector.Init(p, collector.Options{
		RecvPin: recvPin,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	log.Printf("Listening on %s ...", recvPinName)
	c.Loop(ctx)
	return nil
}

func main() {
	recvPin := flag.String("pin", "GPIO17", "receive pin name")
	debug := flag.Bool("debug", false, "enable debug output")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s:\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	flag.Parse()

	if err := run(*recvPin, *debug); err != nil {
		fmt.Fprintf(os.Stderr, "Exiting due to error: %s\n", err)
		os.Exit(2)
	}
}
