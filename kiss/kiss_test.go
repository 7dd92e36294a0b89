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

package kiss

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameLayout(t *testing.T) {
	out := Frame(0, []byte{0x01, 0x02})
	assert.Equal(t, []byte{FEND, 0x00, 0x01, 0x02, FEND}, out)
}

func TestPortInCommandByte(t *testing.T) {
	out := Frame(3, []byte{0x01})
	assert.Equal(t, byte(0x30), out[1])
}

func TestStuffing(t *testing.T) {
	out := Frame(0, []byte{FEND})
	assert.Equal(t, []byte{FEND, 0x00, FESC, TFEND, FEND}, out)

	out = Frame(0, []byte{FESC})
	assert.Equal(t, []byte{FEND, 0x00, FESC, TFESC, FEND}, out)
}

func TestSelfDelimiting(t *testing.T) {
	payloads := [][]byte{
		{},
		{0x00},
		{FEND, FEND, FEND},
		{FESC, TFEND, FEND, TFESC},
		bytes.Repeat([]byte{FEND, FESC, 0x55}, 100),
	}
	for _, payload := range payloads {
		out := Frame(0, payload)
		require.True(t, len(out) >= 3)
		assert.Equal(t, byte(FEND), out[0])
		assert.Equal(t, byte(FEND), out[len(out)-1])
		// The only unescaped FENDs are the two delimiters.
		assert.Equal(t, 0, bytes.Count(out[1:len(out)-1], []byte{FEND}))
	}
}

func TestRoundTrip(t *testing.T) {
	payloads := [][]byte{
		{},
		{0x01, 0x02, 0x03},
		{FEND},
		{FESC},
		{FEND, FESC, TFEND, TFESC},
		bytes.Repeat([]byte{FESC, FEND}, 300),
	}
	for _, payload := range payloads {
		got, err := Unframe(Frame(0, payload))
		require.NoError(t, err)
		assert.Equal(t, []byte(append([]byte{}, payload...)), got)
	}
}

func TestUnframeErrors(t *testing.T) {
	bad := [][]byte{
		nil,
		{FEND},
		{FEND, 0x00},
		{0x00, 0x01, 0x02},
		{FEND, 0x00, FESC, FEND},       // truncated escape
		{FEND, 0x00, FESC, 0x42, FEND}, // bad escape
	}
	for _, frame := range bad {
		_, err := Unframe(frame)
		assert.Error(t, err, "%#v should not unframe", frame)
	}
}
