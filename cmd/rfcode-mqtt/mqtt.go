// Copyright (c) 2016 by Thorsten von Eicken, see LICENSE file for details

package main

import (
	"fmt"
	"hash/fnv"
	"log"
	"os"
	"sync"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
)

// mq is a handle onto an MQTT broker connection, trimmed down from
// cmd/mqttradio's mq to the two things this gateway needs: publishing a
// received code and subscribing to codes to send. It still de-dups
// self-published messages the way cmd/mqttradio's Publish/Subscribe pair
// does, since a code published to <prefix>/tx can legitimately also be
// echoed as a received code.
type mq struct {
	conn    mqtt.Client
	dedupMu sync.Mutex
	dedup   map[uint64]time.Time
}

// newMQ connects to a broker and returns a new mq object.
func newMQ(conf MqttConfig, debug LogPrintf) (*mq, error) {
	debug("Configuring MQTT: %+v", conf)
	mqtt.ERROR = log.New(os.Stderr, "", 0)
	opts := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("tcp://%s:%d", conf.Host, conf.Port))
	opts.ClientID = "rfcode-mqtt"
	opts.Username = conf.User
	opts.Password = conf.Password

	mqConn := mqtt.NewClient(opts)
	if token := mqConn.Connect(); !token.WaitTimeout(10 * time.Second) {
		return nil, token.Error()
	}
	q := &mq{conn: mqConn, dedup: make(map[uint64]time.Time)}
	go q.gc()

	log.Printf("MQTT connected")
	return q, nil
}

// gc periodically removes stale de-dup entries for messages that were never
// echoed back by the broker (most likely because nothing is subscribed).
func (q *mq) gc() {
	for {
		time.Sleep(time.Minute)
		q.dedupMu.Lock()
		tooOld := time.Now().Add(-10 * time.Minute)
		for h, t := range q.dedup {
			if t.Before(tooOld) {
				delete(q.dedup, h)
			}
		}
		q.dedupMu.Unlock()
	}
}

// PublishCode publishes a received code as a plain-text MQTT message.
func (q *mq) PublishCode(topic, code string) {
	q.conn.Publish(topic, 1, false, code)
	q.dedupMu.Lock()
	q.dedup[hashMessage(topic, code)] = time.Now()
	q.dedupMu.Unlock()
}

// SubscribeSend subscribes to topic and calls fn with the payload of every
// message that was not something we ourselves just published.
func (q *mq) SubscribeSend(topic string, fn func(code string)) error {
	handler := func(c mqtt.Client, m mqtt.Message) {
		code := string(m.Payload())
		hash := hashMessage(topic, code)
		q.dedupMu.Lock()
		_, dup := q.dedup[hash]
		delete(q.dedup, hash)
		q.dedupMu.Unlock()
		if dup {
			return
		}
		fn(code)
	}
	if token := q.conn.Subscribe(topic, 1, handler); !token.WaitTimeout(2 * time.Second) {
		return token.Error()
	}
	return nil
}

func hashMessage(s ...string) uint64 {
	h := fnv.New64()
	h.Write([]byte(s[0]))
	h.Write([]byte{0})
	h.Write([]byte(s[1]))
	return h.Sum64()
}
