// HD44780 character LCD behind a PCF8574 I2C expander backpack,
// 4-bit mode. Expander bit mapping is the common backpack wiring:
// P0=RS P1=RW P2=E P3=backlight P4..P7=D4..D7.
package text_display

import (
	"time"

	"github.com/fptk/fpterm/hardware/i2c"
)

type Command byte

const (
	CommandClear     Command = 0x01
	CommandReturn    Command = 0x02
	CommandEntryMode Command = 0x04
	CommandControl   Command = 0x08
	CommandFunction  Command = 0x20
	CommandAddress   Command = 0x80
)

type Control byte

const (
	ControlOn         Control = 0x04
	ControlUnderscore Control = 0x02
	ControlBlink      Control = 0x01
)

const (
	pinRS        byte = 1 << 0
	pinRW        byte = 1 << 1
	pinE         byte = 1 << 2
	pinBacklight byte = 1 << 3
)

// DDRAM start address of each row on 20x4 modules.
var rowAddr = [MaxLines]byte{0x00, 0x40, 0x14, 0x54}

type HD44780 struct {
	bus       i2c.I2CBus
	addr      byte
	control   Control
	backlight bool
	width     uint8
	lines     uint8
}

type HD44780Config struct { //nolint:maligned
	Enable      bool   `hcl:"enable"`
	Codepage    string `hcl:"codepage"`
	Bus         int    `hcl:"i2c_bus"`
	Addr        int    `hcl:"i2c_addr"`
	Width       int    `hcl:"width"`
	Lines       int    `hcl:"lines"`
	Blink       bool   `hcl:"blink"`
	Cursor      bool   `hcl:"cursor"`
	ScrollDelay int    `hcl:"scroll_delay"`
}

// compile-time interface compliance test
var _ Devicer = new(HD44780)

func NewHD44780(bus i2c.I2CBus, config *HD44780Config) (*HD44780, error) {
	self := &HD44780{
		bus:       bus,
		addr:      byte(config.Addr),
		backlight: true,
		width:     uint8(config.Width),
		lines:     uint8(config.Lines),
	}
	if self.addr == 0 {
		self.addr = 0x27
	}
	if self.width == 0 {
		self.width = 20
	}
	if self.lines == 0 {
		self.lines = 4
	}
	if err := self.bus.Init(); err != nil {
		return nil, err
	}

	self.init4()
	control := ControlOn
	if config.Blink {
		control |= ControlBlink
	}
	if config.Cursor {
		control |= ControlUnderscore
	}
	self.SetControl(control)
	return self, nil
}

func (self *HD44780) expander(b byte) {
	if self.backlight {
		b |= pinBacklight
	}
	_ = self.bus.Tx(self.addr, []byte{b}, nil)
}

// Latches one 4-bit transfer: data already in high nibble position.
func (self *HD44780) pulse(b byte) {
	self.expander(b | pinE)
	time.Sleep(1 * time.Microsecond)
	self.expander(b &^ pinE)
	time.Sleep(50 * time.Microsecond)
}

func (self *HD44780) send(b byte, rs bool) {
	var flags byte
	if rs {
		flags = pinRS
	}
	self.pulse((b & 0xf0) | flags)
	self.pulse((b << 4) | flags)
}

func (self *HD44780) init4() {
	time.Sleep(20 * time.Millisecond)

	// special sequence to force 4-bit mode
	self.pulse(0x30)
	time.Sleep(5 * time.Millisecond)
	self.pulse(0x30)
	time.Sleep(150 * time.Microsecond)
	self.pulse(0x30)
	self.pulse(0x20)

	// function set: 4-bit, 2 banks, 5x8 font
	self.Command(CommandFunction | 0x08)
	self.SetControl(0) // off
	self.Clear()
	self.Command(CommandEntryMode | 0x02) // increment, no shift
}

func (self *HD44780) Command(c Command) {
	self.send(byte(c), false)
	time.Sleep(40 * time.Microsecond)
}

func (self *HD44780) Data(b byte) {
	self.send(b, true)
	time.Sleep(40 * time.Microsecond)
}

func (self *HD44780) Write(bs []byte) {
	for _, b := range bs {
		self.Data(b)
	}
}

func (self *HD44780) Clear() {
	self.Command(CommandClear)
	time.Sleep(2 * time.Millisecond)
}

func (self *HD44780) SetControl(new Control) Control {
	old := self.control
	self.control = new
	self.Command(CommandControl | Command(new))
	return old
}

func (self *HD44780) SetBacklight(on bool) {
	self.backlight = on
	self.expander(0)
}

// row and column are 1-based, following the datasheet convention.
func (self *HD44780) CursorYX(row uint8, column uint8) bool {
	if !(row > 0 && row <= self.lines) {
		return false
	}
	if !(column > 0 && column <= self.width) {
		return false
	}
	addr := rowAddr[row-1] + (column - 1)
	self.Command(CommandAddress | Command(addr))
	return true
}
