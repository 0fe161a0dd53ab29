// Copyright (c) 2016 by Thorsten von Eicken, see LICENSE file for details

package main

import (
	"context"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"os/signal"

	"github.com/BurntSushi/toml"
	"github.com/tve/rfcode/collector"
	"github.com/tve/rfcode/internal/gpioshim"
	"github.com/tve/rfcode/parser"
	"github.com/tve/rfcode/rfcodes"
	"periph.io/x/host/v3"
)

type LogPrintf func(format string, v ...interface{})

// Config is the rfcode-mqtt configuration file format, toml-decoded the same
// way cmd/mqttradio decodes its own config.
type Config struct {
	Debug  bool
	Mqtt   MqttConfig
	Radio  RadioConfig
	Serial SerialConfig
}

type MqttConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	// Topic is the prefix under which received codes are published
	// (<Topic>/rx) and send requests are subscribed (<Topic>/tx).
	Topic string
}

type RadioConfig struct {
	RecvPin string `toml:"recv_pin"`
	SendPin string `toml:"send_pin"`
}

// SerialConfig optionally bridges codes to/from a serial port instead of, or
// in addition to, a GPIO radio — e.g. an Arduino running its own receiver
// that forwards lines of the form "<protocol> <symbols>" over USB.
type SerialConfig struct {
	Device string
	Baud   int
}

func main() {
	configFile := flag.String("config", "rfcode-mqtt.toml", "path to config file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s:\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	flag.Parse()

	config := &Config{}
	rawConfig, err := ioutil.ReadFile(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot access config file: %s\n", err)
		os.Exit(1)
	}
	if err := toml.Unmarshal(rawConfig, config); err != nil {
		fmt.Fprintf(os.Stderr, "Cannot parse config file: %s\n", err)
		os.Exit(1)
	}

	logger := LogPrintf(func(format string, v ...interface{}) {})
	if config.Debug {
		log.SetFlags(log.LstdFlags | log.Lmicroseconds)
		logger = log.Printf
	}

	if err := run(config, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Exiting due to error: %s\n", err)
		os.Exit(2)
	}
}

func run(config *Config, logger LogPrintf) error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("periph host init: %w", err)
	}

	p := parser.New()
	p.SetLogger(collector.LogPrintf(logger))
	for _, pr := range rfcodes.All() {
		if err := p.Load(pr); err != nil {
			return fmt.Errorf("cannot load protocol: %w", err)
		}
	}

	log.Printf("Configuring radio")
	opts := collector.Options{Logger: collector.LogPrintf(logger)}
	if config.Radio.RecvPin != "" {
		recvPin, err := gpioshim.NewPeriph(config.Radio.RecvPin)
		if err != nil {
			return fmt.Errorf("cannot open recv pin: %w", err)
		}
		opts.RecvPin = recvPin
	}
	if config.Radio.SendPin != "" {
		sendPin, err := gpioshim.NewPeriph(config.Radio.SendPin)
		if err != nil {
			return fmt.Errorf("cannot open send pin: %w", err)
		}
		opts.SendPin = sendPin
	}
	coll, err := collector.Init(p, opts)
	if err != nil {
		return err
	}

	var ser *serialBridge
	if config.Serial.Device != "" {
		ser, err = openSerialBridge(config.Serial, logger)
		if err != nil {
			return fmt.Errorf("cannot open serial bridge: %w", err)
		}
		defer ser.Close()
	}

	log.Printf("Configuring MQTT")
	mq, err := newMQ(config.Mqtt, logger)
	if err != nil {
		return fmt.Errorf("cannot connect to MQTT broker: %w", err)
	}

	topicPrefix := config.Mqtt.Topic
	if topicPrefix == "" {
		topicPrefix = "rfcode"
	}

	p.AttachCallback(func(code string) {
		mq.PublishCode(topicPrefix+"/rx", code)
	})
	if ser != nil {
		ser.AttachCallback(func(code string) {
			mq.PublishCode(topicPrefix+"/rx", code)
		})
	}

	if err := mq.SubscribeSend(topicPrefix+"/tx", func(code string) {
		if err := coll.Send(code); err != nil {
			logger("rfcode-mqtt: send %q: %s", code, err)
		}
		if ser != nil {
			ser.Send(code)
		}
	}); err != nil {
		return fmt.Errorf("cannot subscribe to send topic: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if ser != nil {
		go ser.Run(ctx)
	}

	log.Printf("Gateway is ready")
	coll.Loop(ctx)
	return nil
}
