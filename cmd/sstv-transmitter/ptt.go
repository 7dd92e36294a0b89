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
	"fmt"
	"log"

	"periph.io/x/periph/conn/gpio"
	"periph.io/x/periph/conn/gpio/gpioreg"
)

// newPTT returns a push-to-talk control on the named GPIO pin, keyed
// down while a transmission is in progress. An empty pin name returns
// a nil PTT whose methods do nothing, for TNCs that key the radio
// themselves.
func newPTT(pinName string) (*PTT, error) {
	if pinName == "" {
		return nil, nil
	}
	pin := gpioreg.ByName(pinName)
	if pin == nil {
		return nil, fmt.Errorf("unable to load PTT pin %q", pinName)
	}
	if err := pin.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("failed to init PTT pin: %v", err)
	}
	return &PTT{pin: pin}, nil
}

type PTT struct {
	pin gpio.PinIO
}

func (p *PTT) Key() error {
	if p == nil {
		return nil
	}
	return p.pin.Out(gpio.High)
}

func (p *PTT) Unkey() {
	if p == nil {
		return
	}
	if err := p.pin.Out(gpio.Low); err != nil {
		// A stuck PTT jams the frequency. Make sure it gets seen.
		log.Printf("failed to release PTT pin: %v", err)
	}
}
