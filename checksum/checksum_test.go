package checksum

import "testing"

func TestSum16(t *testing.T) {
	check := func(init uint16, data []byte, expect uint16) {
		if s := Sum16(init, data); s != expect {
			t.Errorf("Sum16(%04x, %x) = %04x expect %04x", init, data, s, expect)
		}
	}
	check(0, nil, 0)
	check(0, []byte{0x01}, 0x0001)
	check(0, []byte{0xff, 0xff}, 0x01fe)
	check(0x0007, []byte{0x00, 0x04, 0x13}, 0x001e)
	// overflow wraps silently
	check(0xffff, []byte{0x02}, 0x0001)
}

func TestSum16Byte(t *testing.T) {
	if s := Sum16Byte(Sum16Byte(0, 0x01), 0x02); s != 3 {
		t.Errorf("chained byte sum = %04x", s)
	}
}
