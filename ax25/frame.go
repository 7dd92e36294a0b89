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

package ax25

import (
	"encoding/binary"
	"errors"
)

const (
	// ControlUI marks an unnumbered information frame. UI frames are
	// fire and forget: no acknowledgment, no retransmission.
	ControlUI = 0x03

	// PIDNone signals that no layer 3 protocol is in use.
	PIDNone = 0xF0

	// DefaultMaxPayload is the information field size limit used
	// unless a framer is configured otherwise.
	DefaultMaxPayload = 256
)

// Frame is a single AX.25 UI frame. Digipeater addresses are not
// supported; the address block is always destination then source.
type Frame struct {
	Dest    Callsign
	Src     Callsign
	Control byte
	PID     byte
	Info    []byte
}

// Bytes returns the frame's wire representation: address fields,
// control, PID, information field and the little endian FCS.
func (f *Frame) Bytes() []byte {
	out := make([]byte, 0, 16+len(f.Info)+2)
	dest := f.Dest.address(false)
	src := f.Src.address(true)
	out = append(out, dest[:]...)
	out = append(out, src[:]...)
	out = append(out, f.Control, f.PID)
	out = append(out, f.Info...)

	crc := fcs(out)
	out = append(out, 0, 0)
	binary.LittleEndian.PutUint16(out[len(out)-2:], crc)
	return out
}

// NewFramer returns a Framer addressing frames from src to dst and
// splitting payloads into chunks of at most maxPayload bytes. A
// maxPayload of 0 selects DefaultMaxPayload.
func NewFramer(src, dst Callsign, maxPayload int) (*Framer, error) {
	if maxPayload == 0 {
		maxPayload = DefaultMaxPayload
	}
	if maxPayload < 1 {
		return nil, errors.New("max payload must be at least 1")
	}
	return &Framer{
		src:        src,
		dst:        dst,
		maxPayload: maxPayload,
	}, nil
}

// Framer splits a payload into a sequence of UI frames. Concatenating
// the information fields of the produced frames, in order, gives back
// the payload exactly.
type Framer struct {
	src        Callsign
	dst        Callsign
	maxPayload int
}

// Frame splits payload into frames. An empty payload gives no frames.
func (fr *Framer) Frame(payload []byte) []*Frame {
	frames := make([]*Frame, 0, (len(payload)+fr.maxPayload-1)/fr.maxPayload)
	for len(payload) > 0 {
		n := fr.maxPayload
		if n > len(payload) {
			n = len(payload)
		}
		frames = append(frames, &Frame{
			Dest:    fr.dst,
			Src:     fr.src,
			Control: ControlUI,
			PID:     PIDNone,
			Info:    payload[:n],
		})
		payload = payload[n:]
	}
	return frames
}
