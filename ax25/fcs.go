package ax25

// fcs computes the AX.25 frame check sequence: CRC-16/CCITT as used by
// X.25. Bit-reflected polynomial 0x8408, initial value 0xFFFF, final
// complement.
func fcs(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc ^= uint16(b)
		for i := 0; i < 8; i++ {
			if crc&1 != 0 {
				crc = (crc >> 1) ^ 0x8408
			} else {
				crc >>= 1
			}
		}
	}
	return ^crc
}
