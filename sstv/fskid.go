package sstv

// FSK station identification, sent after the image. Each character is
// offset from ASCII space and sent as six bits, least significant
// first, between a 0x2A lead-in and a 0x01 terminator.
const (
	freqFSKBit1 = 1900.0
	freqFSKBit0 = 2100.0
	msecFSKBit  = 22.0

	fskLeadIn     = 0x2A
	fskTerminator = 0x01
)

func writeFSKID(osc *oscillator, id string) {
	writeFSKChar(osc, fskLeadIn)
	for _, c := range []byte(id) {
		if c < 0x20 || c >= 0x20+0x40 {
			continue // not representable in 6 bits
		}
		writeFSKChar(osc, c-0x20)
	}
	writeFSKChar(osc, fskTerminator)
}

func writeFSKChar(osc *oscillator, c byte) {
	for i := 0; i < 6; i++ {
		if c&1 != 0 {
			osc.Add(freqFSKBit1, msecFSKBit)
		} else {
			osc.Add(freqFSKBit0, msecFSKBit)
		}
		c >>= 1
	}
}
