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

// Package kiss implements KISS framing for passing link layer frames
// to a TNC over a raw byte stream.
package kiss

import "errors"

const (
	// FEND delimits frames on the stream.
	FEND = 0xC0
	// FESC introduces an escaped byte.
	FESC = 0xDB
	// TFEND and TFESC are the escaped stand-ins for FEND and FESC.
	TFEND = 0xDC
	TFESC = 0xDD

	cmdData = 0x00
)

// Frame wraps payload in a KISS data frame for the given TNC port:
// FEND, command byte, byte stuffed payload, FEND. The result contains
// exactly two unescaped FEND bytes so it is self delimiting.
func Frame(port byte, payload []byte) []byte {
	out := make([]byte, 0, len(payload)+3)
	out = append(out, FEND, port<<4|cmdData)
	for _, b := range payload {
		switch b {
		case FEND:
			out = append(out, FESC, TFEND)
		case FESC:
			out = append(out, FESC, TFESC)
		default:
			out = append(out, b)
		}
	}
	return append(out, FEND)
}

// Unframe reverses Frame, returning the payload of a single KISS data
// frame. It exists for tests and for monitoring tools reading frames
// back off a stream.
func Unframe(frame []byte) ([]byte, error) {
	if len(frame) < 3 || frame[0] != FEND || frame[len(frame)-1] != FEND {
		return nil, errors.New("kiss: missing frame delimiters")
	}
	body := frame[2 : len(frame)-1]
	out := make([]byte, 0, len(body))
	for i := 0; i < len(body); i++ {
		b := body[i]
		if b == FEND {
			return nil, errors.New("kiss: unescaped FEND inside frame")
		}
		if b != FESC {
			out = append(out, b)
			continue
		}
		i++
		if i >= len(body) {
			return nil, errors.New("kiss: truncated escape sequence")
		}
		switch body[i] {
		case TFEND:
			out = append(out, FEND)
		case TFESC:
			out = append(out, FESC)
		default:
			return nil, errors.New("kiss: bad escape sequence")
		}
	}
	return out, nil
}
