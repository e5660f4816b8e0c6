// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// dht11 samples a DHT11 sensor forever and prints each reading. Readings can
// also be published to an MQTT broker.
//
// Usage:
//
//	dht11 [-pin GPIO22] [-interval 2s] [-backoff 120ms] [-threshold 45µs]
//	      [-datasheet-start] [-rt-priority 10] [-plain]
//	      [-mqtt mqtt://host:1883/prefix/] [-topic dht11]
//
// The MQTT broker URL defaults to the DHT11_MQTT_URL environment variable;
// publishing is disabled when both are empty. The reason of every failed
// attempt is logged to stderr as well as to the glog files; pass
// -alsologtostderr=false to silence it. Run as root, or with CAP_SYS_NICE,
// for the real-time priority to apply.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/singlewire/console"
	"github.com/GermanBionicSystems/singlewire/dht11"
	"github.com/GermanBionicSystems/singlewire/mqttsink"
)

var (
	pinName   = flag.String("pin", "GPIO22", "GPIO line the sensor data pin is wired to, by name or number")
	interval  = flag.Duration("interval", 2*time.Second, "delay between two readings")
	backoff   = flag.Duration("backoff", dht11.DefaultOpts.Backoff, "delay before retrying a failed attempt")
	threshold = flag.Duration("threshold", dht11.DefaultOpts.BitThreshold, "high pulse width above which a bit is a 1")
	datasheet = flag.Bool("datasheet-start", false, "use the datasheet start signal (18ms low) instead of high/low/high")
	priority  = flag.Int("rt-priority", 10, "SCHED_FIFO priority while sampling, 0 to keep the default scheduler")
	plain     = flag.Bool("plain", false, "print readings without colors")
	mqttURL   = flag.String("mqtt", os.Getenv("DHT11_MQTT_URL"), "MQTT broker URL, e.g. mqtt://localhost:1883/home/; empty disables publishing")
	topic     = flag.String("topic", mqttsink.DefaultTopic, "MQTT topic appended to the URL prefix")
)

// buildOpts returns the driver options selected on the command line.
func buildOpts(threshold, backoff time.Duration, datasheet bool) (dht11.Opts, error) {
	if threshold <= 0 {
		return dht11.Opts{}, fmt.Errorf("invalid -threshold %s", threshold)
	}
	if backoff <= 0 {
		return dht11.Opts{}, fmt.Errorf("invalid -backoff %s", backoff)
	}
	opts := dht11.DefaultOpts
	opts.BitThreshold = threshold
	opts.Backoff = backoff
	if datasheet {
		opts.Start = dht11.DatasheetStart
	}
	return opts, nil
}

func mainImpl() error {
	// The scheduling priority applies to the current thread only; sampling
	// must stay on it.
	runtime.LockOSThread()

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize periph: %w", err)
	}
	p := gpioreg.ByName(*pinName)
	if p == nil {
		return fmt.Errorf("invalid pin %q", *pinName)
	}
	opts, err := buildOpts(*threshold, *backoff, *datasheet)
	if err != nil {
		return err
	}
	d, err := dht11.New(p, &opts)
	if err != nil {
		return err
	}
	if *priority > 0 {
		if err := setRealtime(*priority); err != nil {
			glog.Warningf("failed to set real-time priority, readings will fail more often: %v", err)
		}
	}

	out := console.New(&console.Opts{Plain: *plain})
	defer out.Halt()

	var pub *mqttsink.Publisher
	if *mqttURL != "" {
		if pub, err = mqttsink.Dial(*mqttURL, *topic); err != nil {
			return err
		}
		defer pub.Close()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	stop := make(chan struct{})
	go func() {
		<-sig
		close(stop)
	}()

	glog.Infof("sampling %s every %s", d, *interval)
	r := d.Retrier()
	for {
		reading, err := r.Run(stop)
		if errors.Is(err, dht11.ErrHalted) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := out.Report(reading); err != nil {
			return err
		}
		if pub != nil {
			if err := pub.Publish(reading, time.Now()); err != nil {
				glog.Warningf("%v", err)
			}
		}
		select {
		case <-stop:
			return nil
		case <-time.After(*interval):
		}
	}
}

// logToStderr makes glog echo every message to stderr so failed attempts
// show on the terminal. Flags parsed afterwards still override it.
func logToStderr() error {
	return flag.Set("alsologtostderr", "true")
}

func main() {
	if err := logToStderr(); err != nil {
		glog.Exitf("dht11: %v", err)
	}
	flag.Parse()
	if err := mainImpl(); err != nil {
		glog.Exitf("dht11: %v", err)
	}
	glog.Flush()
}
