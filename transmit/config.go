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

package transmit

import (
	"errors"

	"github.com/rpi-sstv/sstv-transmitter/ax25"
	"github.com/rpi-sstv/sstv-transmitter/sstv"
)

// Config controls one transmitter. Start from DefaultConfig and
// override; Validate rejects unset required fields rather than
// filling them in.
type Config struct {
	Callsign     string `yaml:"callsign"`
	SSID         int    `yaml:"ssid"`
	DestCallsign string `yaml:"dest-callsign"`
	DestSSID     int    `yaml:"dest-ssid"`
	MaxPayload   int    `yaml:"max-payload"`
	SampleRate   int    `yaml:"sample-rate"`
	TNCPort      int    `yaml:"tnc-port"`
	PacketMsecs  int    `yaml:"packet-msecs"`
	FSKID        string `yaml:"fsk-id"`
	OddVISParity bool   `yaml:"odd-vis-parity"`
	VOX          bool   `yaml:"vox"`
}

func DefaultConfig() Config {
	return Config{
		Callsign:     "N0CALL",
		DestCallsign: "CQ",
		MaxPayload:   ax25.DefaultMaxPayload,
		SampleRate:   sstv.DefaultSampleRate,
		PacketMsecs:  20,
	}
}

func (conf *Config) Validate() error {
	if conf.MaxPayload < 1 {
		return errors.New("max-payload must be at least 1")
	}
	if conf.SampleRate < 8000 {
		return errors.New("sample-rate too low")
	}
	if conf.TNCPort < 0 || conf.TNCPort > 15 {
		return errors.New("tnc-port must be between 0 and 15")
	}
	if conf.PacketMsecs < 0 {
		return errors.New("packet-msecs may not be negative")
	}
	return nil
}
