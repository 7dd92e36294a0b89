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
	"fmt"
	"image"
	"io"
	"log"
	"time"

	"github.com/juju/ratelimit"

	"github.com/rpi-sstv/sstv-transmitter/ax25"
	"github.com/rpi-sstv/sstv-transmitter/kiss"
	"github.com/rpi-sstv/sstv-transmitter/sstv"
)

// NewTransmitter returns a Transmitter writing KISS frames to sink.
// The sink is typically an open TNC serial device or socket; the
// transmitter never opens or closes it.
func NewTransmitter(conf *Config, sink io.Writer) (*Transmitter, error) {
	return NewTransmitterWithClock(conf, sink, nil)
}

// NewTransmitterWithClock is NewTransmitter with the pacing clock
// exposed for tests.
func NewTransmitterWithClock(conf *Config, sink io.Writer, clock ratelimit.Clock) (*Transmitter, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	src, err := ax25.NewCallsign(conf.Callsign, conf.SSID)
	if err != nil {
		return nil, err
	}
	dst, err := ax25.NewCallsign(conf.DestCallsign, conf.DestSSID)
	if err != nil {
		return nil, err
	}
	framer, err := ax25.NewFramer(src, dst, conf.MaxPayload)
	if err != nil {
		return nil, err
	}

	encoder := sstv.NewEncoder(conf.SampleRate)
	encoder.FSKID = conf.FSKID
	encoder.OddParity = conf.OddVISParity
	encoder.VOX = conf.VOX

	// TNCs have small buffers so frame writes are paced: one token
	// per frame, refilled at the configured packet interval.
	var bucket *ratelimit.Bucket
	if conf.PacketMsecs > 0 {
		rate := 1000 / float64(conf.PacketMsecs)
		bucket = ratelimit.NewBucketWithRateAndClock(rate, 1, clock)
	}

	return &Transmitter{
		encoder: encoder,
		framer:  framer,
		port:    byte(conf.TNCPort),
		bucket:  bucket,
		sink:    sink,
	}, nil
}

// Transmitter runs one full transmission cycle at a time: Martin M1
// encode, AX.25 framing, KISS framing, paced writes to the sink.
// It holds no state between cycles.
type Transmitter struct {
	encoder *sstv.Encoder
	framer  *ax25.Framer
	port    byte
	bucket  *ratelimit.Bucket
	sink    io.Writer
}

// Transmit encodes img and writes every frame to the sink in
// generation order. The first write failure aborts the remaining
// frames of this cycle and is returned to the caller; retry policy
// belongs to the caller.
func (t *Transmitter) Transmit(img image.Image) error {
	start := time.Now()
	samples, err := t.encoder.Encode(img)
	if err != nil {
		return err
	}

	frames := t.framer.Frame(sstv.Bytes(samples))
	log.Printf("transmitting %d samples in %d frames", len(samples), len(frames))

	for i, frame := range frames {
		if t.bucket != nil {
			t.bucket.Wait(1)
		}
		if _, err := t.sink.Write(kiss.Frame(t.port, frame.Bytes())); err != nil {
			return fmt.Errorf("transport write failed at frame %d of %d: %v", i+1, len(frames), err)
		}
	}

	log.Printf("transmission complete in %s", time.Since(start).Round(time.Millisecond))
	return nil
}
