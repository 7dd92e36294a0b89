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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCallsign(t *testing.T) {
	c, err := NewCallsign("N0CALL", 0)
	require.NoError(t, err)
	assert.Equal(t, "N0CALL", c.Call)
	assert.Equal(t, uint8(0), c.SSID)

	c, err = NewCallsign("n0call", 7)
	require.NoError(t, err)
	assert.Equal(t, "N0CALL", c.Call)
	assert.Equal(t, uint8(7), c.SSID)
}

func TestInvalidCallsigns(t *testing.T) {
	cases := []struct {
		call string
		ssid int
	}{
		{"", 0},
		{"TOOLONG", 0},
		{"AB CD", 0},
		{"N0-C;", 0},
		{"N0CALL", -1},
		{"N0CALL", 16},
	}
	for _, c := range cases {
		_, err := NewCallsign(c.call, c.ssid)
		assert.True(t, errors.Is(err, ErrInvalidCallsign), "%q-%d should be rejected", c.call, c.ssid)
	}
}

func TestParseCallsign(t *testing.T) {
	c, err := ParseCallsign("N0CALL-5")
	require.NoError(t, err)
	assert.Equal(t, Callsign{Call: "N0CALL", SSID: 5}, c)

	c, err = ParseCallsign("CQ")
	require.NoError(t, err)
	assert.Equal(t, Callsign{Call: "CQ"}, c)

	_, err = ParseCallsign("N0CALL-x")
	assert.True(t, errors.Is(err, ErrInvalidCallsign))
	_, err = ParseCallsign("N0CALL-16")
	assert.True(t, errors.Is(err, ErrInvalidCallsign))
}

func TestCallsignString(t *testing.T) {
	c, _ := NewCallsign("N0CALL", 0)
	assert.Equal(t, "N0CALL", c.String())
	c, _ = NewCallsign("N0CALL", 9)
	assert.Equal(t, "N0CALL-9", c.String())
}

func TestAddressEncoding(t *testing.T) {
	c, err := NewCallsign("N0CALL", 0)
	require.NoError(t, err)

	// Each character shifted left one bit, SSID byte 0x60, extension
	// bit set only when this is the final address field.
	assert.Equal(t,
		[7]byte{0x9C, 0x60, 0x86, 0x82, 0x98, 0x98, 0x60},
		c.address(false))
	assert.Equal(t,
		[7]byte{0x9C, 0x60, 0x86, 0x82, 0x98, 0x98, 0x61},
		c.address(true))
}

func TestAddressPaddingAndSSID(t *testing.T) {
	c, err := NewCallsign("CQ", 12)
	require.NoError(t, err)

	// Short calls are space padded to six characters (space << 1 ==
	// 0x40) before the shift. SSID 12 packs into bits 1-4.
	assert.Equal(t,
		[7]byte{0x86, 0xA2, 0x40, 0x40, 0x40, 0x40, 0x60 | 12<<1 | 1},
		c.address(true))
}
