// sstv-transmitter - transmit images over amateur radio as slow scan TV
//  Copyright (C) 2024, the sstv-transmitter authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"io"
	"log"
	"net"
	"os"
	"strings"
	"time"

	arg "github.com/alexflint/go-arg"
	"github.com/coreos/go-systemd/daemon"
	"periph.io/x/periph/host"

	"github.com/rpi-sstv/sstv-transmitter/imagesource"
	"github.com/rpi-sstv/sstv-transmitter/loglimiter"
	"github.com/rpi-sstv/sstv-transmitter/transmit"
)

const failureLogInterval = 10 * time.Minute

var version = "<not set>"

type Args struct {
	ConfigFile string `arg:"-c,--config" help:"path to configuration file"`
	Once       bool   `arg:"-o,--once" help:"transmit one image then exit"`
	Timestamps bool   `arg:"-t,--timestamps" help:"include timestamps in log output"`
}

func (Args) Version() string {
	return version
}

func procArgs() Args {
	var args Args
	args.ConfigFile = "/etc/sstv-transmitter.yaml"
	arg.MustParse(&args)
	return args
}

func main() {
	err := runMain()
	if err != nil {
		log.Fatal(err)
	}
}

func runMain() error {
	args := procArgs()

	if !args.Timestamps {
		log.SetFlags(0) // Removes default timestamp flag
	}

	log.Printf("running version: %s", version)
	conf, err := ParseConfigFile(args.ConfigFile)
	if err != nil {
		return err
	}
	logConfig(conf)

	log.Println("host initialisation")
	if _, err := host.Init(); err != nil {
		return err
	}

	ptt, err := newPTT(conf.PTTPin)
	if err != nil {
		return err
	}

	sink, err := openTNC(conf.TNC)
	if err != nil {
		return err
	}
	defer sink.Close()

	transmitter, err := transmit.NewTransmitter(&conf.Transmit, sink)
	if err != nil {
		return err
	}

	source := imagesource.New(&conf.Image)
	status := newStatus()

	if args.Once {
		return transmitOnce(source, transmitter, ptt, status)
	}

	trigger := make(chan struct{}, 1)
	log.Println("starting d-bus service")
	if err := startService(status, trigger); err != nil {
		return err
	}

	daemon.SdNotify(false, "READY=1")

	window := NewWindow(conf.WindowStart, conf.WindowEnd)
	limiter := loglimiter.New(failureLogInterval)
	interval := time.Duration(conf.IntervalSecs) * time.Second
	retryDelay := time.Duration(conf.RetryDelaySecs) * time.Second

	for {
		if !window.Active() {
			wait := window.Until()
			log.Printf("outside transmit window, %s until it opens", wait.Round(time.Second))
			if !sleepOrTrigger(wait, trigger) {
				continue
			}
			// A d-bus request overrides the window.
		}

		if err := transmitOnce(source, transmitter, ptt, status); err != nil {
			limiter.Printf("transmission failed: %v", err)
			sleepOrTrigger(retryDelay, trigger)
			continue
		}

		daemon.SdNotify(false, "WATCHDOG=1")
		log.Printf("waiting %s until next transmission", interval)
		sleepOrTrigger(interval, trigger)
	}
}

func transmitOnce(
	source *imagesource.Source,
	transmitter *transmit.Transmitter,
	ptt *PTT,
	status *status,
) error {
	img, err := source.Next()
	if err != nil {
		status.Record(err)
		return err
	}

	if err := ptt.Key(); err != nil {
		status.Record(err)
		return err
	}
	defer ptt.Unkey()

	err = transmitter.Transmit(img)
	status.Record(err)
	return err
}

// sleepOrTrigger waits out d, returning early with true if a
// transmission was requested over d-bus.
func sleepOrTrigger(d time.Duration, trigger <-chan struct{}) bool {
	select {
	case <-time.After(d):
		return false
	case <-trigger:
		log.Print("immediate transmission requested")
		return true
	}
}

// openTNC connects to the TNC. "tcp:host:port" dials a network KISS
// TNC; anything else is treated as a serial device path which must
// already be configured (the daemon never changes port settings).
func openTNC(addr string) (io.WriteCloser, error) {
	if strings.HasPrefix(addr, "tcp:") {
		return net.Dial("tcp", strings.TrimPrefix(addr, "tcp:"))
	}
	return os.OpenFile(addr, os.O_WRONLY, 0)
}

func logConfig(conf *Config) {
	log.Printf("tnc: %s", conf.TNC)
	log.Printf("image url: %s", conf.Image.URL)
	log.Printf("callsign: %s-%d to %s-%d", conf.Transmit.Callsign, conf.Transmit.SSID,
		conf.Transmit.DestCallsign, conf.Transmit.DestSSID)
	log.Printf("transmit interval: %ds", conf.IntervalSecs)
	log.Printf("max payload: %d", conf.Transmit.MaxPayload)
	log.Printf("sample rate: %d", conf.Transmit.SampleRate)
	if conf.PTTPin != "" {
		log.Printf("ptt pin: %s", conf.PTTPin)
	}
	if !conf.WindowStart.IsZero() {
		log.Printf("transmit window: %02d:%02d to %02d:%02d",
			conf.WindowStart.Hour(), conf.WindowStart.Minute(),
			conf.WindowEnd.Hour(), conf.WindowEnd.Minute())
	}
}
