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
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidCallsign is returned for callsigns longer than six
// characters, with characters outside A-Z and 0-9, or with an SSID
// outside 0-15.
var ErrInvalidCallsign = errors.New("invalid callsign")

const (
	callsignChars = 6
	maxSSID       = 15
)

// Callsign is a station address: up to six uppercase alphanumeric
// characters plus a secondary station identifier.
type Callsign struct {
	Call string
	SSID uint8
}

// NewCallsign validates call and ssid and returns the Callsign. The
// call is folded to upper case.
func NewCallsign(call string, ssid int) (Callsign, error) {
	call = strings.ToUpper(call)
	if len(call) == 0 || len(call) > callsignChars {
		return Callsign{}, fmt.Errorf("%w: %q", ErrInvalidCallsign, call)
	}
	for _, c := range call {
		if !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') {
			return Callsign{}, fmt.Errorf("%w: %q", ErrInvalidCallsign, call)
		}
	}
	if ssid < 0 || ssid > maxSSID {
		return Callsign{}, fmt.Errorf("%w: SSID %d out of range", ErrInvalidCallsign, ssid)
	}
	return Callsign{Call: call, SSID: uint8(ssid)}, nil
}

// ParseCallsign parses the usual "CALL" or "CALL-N" notation.
func ParseCallsign(s string) (Callsign, error) {
	call := s
	ssid := 0
	if i := strings.IndexByte(s, '-'); i >= 0 {
		call = s[:i]
		n, err := strconv.Atoi(s[i+1:])
		if err != nil {
			return Callsign{}, fmt.Errorf("%w: %q", ErrInvalidCallsign, s)
		}
		ssid = n
	}
	return NewCallsign(call, ssid)
}

func (c Callsign) String() string {
	if c.SSID == 0 {
		return c.Call
	}
	return fmt.Sprintf("%s-%d", c.Call, c.SSID)
}

// address returns the 7 byte AX.25 address field encoding: six space
// padded characters each shifted left one bit, then the SSID byte.
// The extension bit (bit 0 of the SSID byte) is set on the last
// address field of a frame to terminate the address list.
func (c Callsign) address(last bool) [7]byte {
	var addr [7]byte
	call := c.Call
	for len(call) < callsignChars {
		call += " "
	}
	for i := 0; i < callsignChars; i++ {
		addr[i] = call[i] << 1
	}
	addr[6] = 0x60 | (c.SSID << 1)
	if last {
		addr[6] |= 0x01
	}
	return addr
}
