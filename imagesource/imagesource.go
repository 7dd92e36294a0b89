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

// Package imagesource fetches the image to transmit and scales it to
// the fixed SSTV frame geometry.
package imagesource

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"net/http"
	"time"

	"golang.org/x/image/draw"

	"github.com/rpi-sstv/sstv-transmitter/sstv"
)

type Config struct {
	URL            string `yaml:"url"`
	TimeoutSecs    int    `yaml:"timeout-secs"`
	Attempts       int    `yaml:"attempts"`
	RetryDelaySecs int    `yaml:"retry-delay-secs"`
}

func DefaultConfig() Config {
	return Config{
		URL:            "https://example.com/image.jpg",
		TimeoutSecs:    10,
		Attempts:       3,
		RetryDelaySecs: 60,
	}
}

func (conf *Config) Validate() error {
	if conf.URL == "" {
		return fmt.Errorf("image url is required")
	}
	if conf.Attempts < 1 {
		return fmt.Errorf("attempts must be at least 1")
	}
	return nil
}

// New returns a Source downloading images as configured.
func New(conf *Config) *Source {
	return &Source{
		conf: *conf,
		client: &http.Client{
			Timeout: time.Duration(conf.TimeoutSecs) * time.Second,
		},
		sleep: time.Sleep,
	}
}

// Source downloads an image over HTTP and scales it to 320x256.
type Source struct {
	conf   Config
	client *http.Client
	sleep  func(time.Duration)
}

// Next fetches and decodes the configured URL, retrying failed
// downloads up to the configured attempt count.
func (src *Source) Next() (image.Image, error) {
	var lastErr error
	for attempt := 1; attempt <= src.conf.Attempts; attempt++ {
		img, err := src.fetch()
		if err == nil {
			return scale(img), nil
		}
		lastErr = err
		log.Printf("image fetch failed (attempt %d/%d): %v", attempt, src.conf.Attempts, err)
		if attempt < src.conf.Attempts {
			src.sleep(time.Duration(src.conf.RetryDelaySecs) * time.Second)
		}
	}
	return nil, fmt.Errorf("image fetch failed after %d attempts: %v", src.conf.Attempts, lastErr)
}

func (src *Source) fetch() (image.Image, error) {
	resp, err := src.client.Get(src.conf.URL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected response status %q", resp.Status)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %v", err)
	}
	return img, nil
}

func scale(img image.Image) image.Image {
	bounds := img.Bounds()
	if bounds.Dx() == sstv.Width && bounds.Dy() == sstv.Height {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, sstv.Width, sstv.Height))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
	return dst
}
