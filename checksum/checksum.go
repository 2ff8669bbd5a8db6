package checksum

// Additive 16-bit checksum as used in frame trailers of the sensor
// serial protocol. Overflow beyond 16 bits is discarded.

func Sum16(init uint16, data []byte) uint16 {
	s := init
	for _, b := range data {
		s += uint16(b)
	}
	return s
}

func Sum16Byte(init uint16, b byte) uint16 { return init + uint16(b) }
