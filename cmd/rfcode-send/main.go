// Copyright (c) 2016 by Thorsten von Eicken, see LICENSE file for details

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tve/rfcode/collector"
	"github.com/tve/rfcode/internal/gpioshim"
	"github.com/tve/rfcode/parser"
	"github.com/tve/rfcode/rfcodes"
	"periph.io/x/host/v3"
)

func run(sendPinName, code string, debug bool) error {
	if _, err := host.Init(); err != nil {
		return err
	}

	sendPin, err := gpioshim.NewPeriph(sendPinName)
	if err != nil {
		return fmt.Errorf("cannot open pin %s: %w", sendPinName, err)
	}

	p := parser.New()
	for _, pr := range rfcodes.All() {
		if err := p.Load(pr); err != nil {
			return fmt.Errorf("cannot load protocol: %w", err)
		}
	}

	logger := collector.LogPrintf(nil)
	if debug {
		logger = log.Printf
	}
	c, err := collector.Init(p, collector.Options{
		SendPin: sendPin,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	log.Printf("Sending %q on %s ...", code, sendPinName)
	return c.Send(code)
}

func main() {
	sendPin := flag.String("pin", "GPIO18", "send pin name")
	debug := flag.Bool("debug", false, "enable debug output")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s <protocol> <symbols>:\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
	}
	code := flag.Arg(0) + " " + flag.Arg(1)

	if err := run(*sendPin, code, *debug); err != nil {
		fmt.Fprintf(os.Stderr, "Exiting due to error: %s\n", err)
		os.Exit(2)
	}
}
