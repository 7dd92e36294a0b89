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

package sstv

import (
	"encoding/binary"
	"errors"
	"image"
)

// Martin M1 frame geometry. The mode's tone timings only make sense
// for this exact size so other sizes are rejected.
const (
	Width  = 320
	Height = 256
)

// DefaultSampleRate is the audio sample rate used unless the encoder
// is configured otherwise.
const DefaultSampleRate = 44100

const (
	visCode = 44 // Martin M1 mode identifier

	freqSync      = 1200.0
	freqBlack     = 1500.0
	freqWhite     = 2300.0
	freqRange     = freqWhite - freqBlack
	freqVISLeader = 1900.0
	freqVISBit0   = 1100.0
	freqVISBit1   = 1300.0

	msecVISLeader = 300.0
	msecVISBreak  = 10.0
	msecVISBit    = 30.0
	msecSync      = 4.862
	msecPorch     = 0.572
	msecSeparator = 0.572
	msecPixel     = 0.4576

	msecVOXTone = 100.0
)

// voxTones is the tone prelude keying VOX operated radios before the
// VIS header starts.
var voxTones = []float64{1900, 1500, 1900, 1500, 2300, 1500, 2300, 1500}

// ErrInvalidDimensions is returned when the image to encode is not
// exactly 320x256.
var ErrInvalidDimensions = errors.New("image must be 320x256 for Martin M1")

// NewEncoder returns a Martin M1 encoder generating samples at the
// given rate. A rate of 0 selects DefaultSampleRate.
func NewEncoder(sampleRate int) *Encoder {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Encoder{SampleRate: sampleRate}
}

// Encoder converts an image into the audio sample stream for a Martin
// M1 SSTV transmission. Encode is a pure function of the image and the
// encoder's settings; an Encoder may be reused across transmissions.
type Encoder struct {
	SampleRate int

	// OddParity selects odd instead of even parity for the VIS
	// header parity bit. Receivers disagree on the convention.
	OddParity bool

	// VOX prepends a tone prelude so VOX operated radios are keyed
	// up before the VIS header starts.
	VOX bool

	// FSKID, if set, is sent as an FSK station identifier after the
	// final scan line.
	FSKID string
}

// Encode returns the full sample stream for one transmission of img:
// optional VOX prelude, VIS header, 256 scan lines and the optional
// FSK ID.
func (e *Encoder) Encode(img image.Image) ([]int16, error) {
	bounds := img.Bounds()
	if bounds.Dx() != Width || bounds.Dy() != Height {
		return nil, ErrInvalidDimensions
	}

	osc := newOscillator(e.SampleRate)
	if e.VOX {
		for _, freq := range voxTones {
			osc.Add(freq, msecVOXTone)
		}
	}
	e.writeVIS(osc)

	for y := 0; y < Height; y++ {
		osc.Add(freqSync, msecSync)
		osc.Add(freqBlack, msecPorch)
		writeScan(osc, img, bounds, y, green)
		osc.Add(freqBlack, msecSeparator)
		writeScan(osc, img, bounds, y, blue)
		osc.Add(freqBlack, msecSeparator)
		writeScan(osc, img, bounds, y, red)
		osc.Add(freqBlack, msecSeparator)
	}

	if e.FSKID != "" {
		writeFSKID(osc, e.FSKID)
	}
	return osc.Samples(), nil
}

type channel int

const (
	red channel = iota
	green
	blue
)

func writeScan(osc *oscillator, img image.Image, bounds image.Rectangle, y int, ch channel) {
	for x := 0; x < Width; x++ {
		r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
		var v uint32
		switch ch {
		case green:
			v = g
		case blue:
			v = b
		case red:
			v = r
		}
		osc.Add(byteToFreq(uint8(v>>8)), msecPixel)
	}
}

// byteToFreq maps a pixel intensity onto the 1500-2300 Hz subcarrier range.
func byteToFreq(v uint8) float64 {
	return freqBlack + freqRange*float64(v)/255
}

func (e *Encoder) writeVIS(osc *oscillator) {
	osc.Add(freqVISLeader, msecVISLeader)
	osc.Add(freqSync, msecVISBreak)
	osc.Add(freqVISLeader, msecVISLeader)
	osc.Add(freqSync, msecVISBit) // start bit

	code := visCode
	ones := 0
	for i := 0; i < 8; i++ {
		bit := code & 1
		code >>= 1
		ones += bit
		osc.Add(visBitFreq(bit), msecVISBit)
	}

	parity := ones & 1
	if e.OddParity {
		parity ^= 1
	}
	osc.Add(visBitFreq(parity), msecVISBit)

	osc.Add(freqSync, msecVISBit) // stop bit
}

func visBitFreq(bit int) float64 {
	if bit != 0 {
		return freqVISBit1
	}
	return freqVISBit0
}

// Bytes serializes a sample stream to the little endian byte form
// carried in AX.25 information fields.
func Bytes(samples []int16) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}
