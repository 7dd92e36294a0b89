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
	"errors"
	"io/ioutil"
	"time"

	yaml "gopkg.in/yaml.v2"

	"github.com/rpi-sstv/sstv-transmitter/imagesource"
	"github.com/rpi-sstv/sstv-transmitter/transmit"
)

type Config struct {
	// TNC is where KISS frames are written: either "tcp:host:port"
	// or a device path. A serial device must already be configured
	// for the TNC's line speed (stty or a systemd unit); the daemon
	// never sets baud itself.
	TNC            string
	PTTPin         string
	IntervalSecs   int
	RetryDelaySecs int
	WindowStart    time.Time
	WindowEnd      time.Time
	Image          imagesource.Config
	Transmit       transmit.Config
}

func (conf *Config) Validate() error {
	if conf.TNC == "" {
		return errors.New("tnc is required")
	}
	if conf.IntervalSecs < 1 {
		return errors.New("interval-secs must be at least 1")
	}
	if conf.WindowStart.IsZero() && !conf.WindowEnd.IsZero() {
		return errors.New("window-end is set but window-start isn't")
	}
	if !conf.WindowStart.IsZero() && conf.WindowEnd.IsZero() {
		return errors.New("window-start is set but window-end isn't")
	}
	if err := conf.Image.Validate(); err != nil {
		return err
	}
	return conf.Transmit.Validate()
}

type rawConfig struct {
	TNC            string             `yaml:"tnc"`
	PTTPin         string             `yaml:"ptt-pin"`
	IntervalSecs   int                `yaml:"interval-secs"`
	RetryDelaySecs int                `yaml:"retry-delay-secs"`
	WindowStart    string             `yaml:"window-start"`
	WindowEnd      string             `yaml:"window-end"`
	Image          imagesource.Config `yaml:"image"`
	Transmit       transmit.Config    `yaml:"transmit"`
}

var defaultConfig = rawConfig{
	TNC:            "/dev/rfcomm0",
	IntervalSecs:   300,
	RetryDelaySecs: 60,
	Image:          imagesource.DefaultConfig(),
	Transmit:       transmit.DefaultConfig(),
}

func ParseConfigFile(filename string) (*Config, error) {
	buf, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseConfig(buf)
}

func ParseConfig(buf []byte) (*Config, error) {
	raw := defaultConfig
	if err := yaml.Unmarshal(buf, &raw); err != nil {
		return nil, err
	}

	conf := &Config{
		TNC:            raw.TNC,
		PTTPin:         raw.PTTPin,
		IntervalSecs:   raw.IntervalSecs,
		RetryDelaySecs: raw.RetryDelaySecs,
		Image:          raw.Image,
		Transmit:       raw.Transmit,
	}

	const timeOnly = "15:04"
	if raw.WindowStart != "" {
		t, err := time.Parse(timeOnly, raw.WindowStart)
		if err != nil {
			return nil, errors.New("invalid window-start")
		}
		conf.WindowStart = t
	}
	if raw.WindowEnd != "" {
		t, err := time.Parse(timeOnly, raw.WindowEnd)
		if err != nil {
			return nil, errors.New("invalid window-end")
		}
		conf.WindowEnd = t
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}
