// Copyright (c) 2016 by Thorsten von Eicken, see LICENSE file for details

package main

import (
	"bufio"
	"context"
	"fmt"

	"github.com/tarm/serial"
)

// serialBridge forwards codes to and from a serial port running its own
// receiver/transmitter, e.g. a microcontroller sketch that speaks lines of
// "<protocol> <symbols>" over USB instead of this host driving GPIO
// directly.
type serialBridge struct {
	port     *serial.Port
	reader   *bufio.Scanner
	callback func(code string)
	logf     LogPrintf
}

func openSerialBridge(conf SerialConfig, logf LogPrintf) (*serialBridge, error) {
	baud := conf.Baud
	if baud == 0 {
		baud = 115200
	}
	port, err := serial.OpenPort(&serial.Config{Name: conf.Device, Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("rfcode-mqtt: serial: %w", err)
	}
	return &serialBridge{port: port, reader: bufio.NewScanner(port), logf: logf}, nil
}

func (s *serialBridge) AttachCallback(fn func(code string)) {
	s.callback = fn
}

// Run reads newline-terminated codes from the serial port and hands each to
// the registered callback, until ctx is cancelled.
func (s *serialBridge) Run(ctx context.Context) {
	for s.reader.Scan() {
		select {
		case <-ctx.Done():
			return
		default:
		}
		line := s.reader.Text()
		if line == "" {
			continue
		}
		if s.callback != nil {
			s.callback(line)
		}
	}
	if err := s.reader.Err(); err != nil {
		s.logf("rfcode-mqtt: serial: read: %s", err)
	}
}

// Send writes code followed by a newline to the serial port.
func (s *serialBridge) Send(code string) {
	if _, err := fmt.Fprintln(s.port, code); err != nil {
		s.logf("rfcode-mqtt: serial: write: %s", err)
	}
}

func (s *serialBridge) Close() error {
	return s.port.Close()
}
