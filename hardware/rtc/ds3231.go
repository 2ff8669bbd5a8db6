package rtc

import (
	"time"

	"github.com/juju/errors"
	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/host"
)

const DefaultAddr = 0x68

// DS3231 over I2C. Seven BCD registers starting at 0x00:
// seconds, minutes, hours, weekday, day, month(+century bit), year.
type DS3231 struct {
	bus  i2c.BusCloser
	dev  i2c.Dev
	addr uint16
}

var _ Clocker = new(DS3231)

func NewDS3231(config Config) (*DS3231, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Annotate(err, "periph/init")
	}

	bus, err := i2creg.Open(config.Bus)
	if err != nil {
		return nil, errors.Annotatef(err, "rtc i2c open bus=%s", config.Bus)
	}
	addr := uint16(config.Addr)
	if addr == 0 {
		addr = DefaultAddr
	}
	self := &DS3231{
		bus:  bus,
		dev:  i2c.Dev{Bus: bus, Addr: addr},
		addr: addr,
	}
	// probe: chip must answer a register read
	if _, err := self.readRegs(); err != nil {
		bus.Close()
		return nil, errors.Annotate(err, "rtc probe")
	}
	return self, nil
}

func (self *DS3231) Close() error { return self.bus.Close() }

func (self *DS3231) readRegs() ([7]byte, error) {
	var regs [7]byte
	err := self.dev.Tx([]byte{0x00}, regs[:])
	return regs, err
}

func (self *DS3231) Now() (time.Time, error) {
	regs, err := self.readRegs()
	if err != nil {
		return time.Time{}, errors.Annotate(err, "rtc read")
	}
	return decodeTime(regs), nil
}

func (self *DS3231) Set(t time.Time) error {
	regs := encodeTime(t)
	bw := make([]byte, 0, 8)
	bw = append(bw, 0x00)
	bw = append(bw, regs[:]...)
	return errors.Annotate(self.dev.Tx(bw, nil), "rtc write")
}

func decodeTime(regs [7]byte) time.Time {
	sec := fromBcd(regs[0] & 0x7f)
	min := fromBcd(regs[1] & 0x7f)
	hour := fromBcd(regs[2] & 0x3f) // 24h mode
	day := fromBcd(regs[4] & 0x3f)
	month := fromBcd(regs[5] & 0x1f)
	year := 2000 + fromBcd(regs[6])
	if regs[5]&0x80 != 0 {
		year += 100
	}
	return time.Date(year, time.Month(month), day, hour, min, sec, 0, time.Local)
}

func encodeTime(t time.Time) [7]byte {
	var regs [7]byte
	regs[0] = toBcd(t.Second())
	regs[1] = toBcd(t.Minute())
	regs[2] = toBcd(t.Hour())
	regs[3] = byte(t.Weekday()) + 1
	regs[4] = toBcd(t.Day())
	regs[5] = toBcd(int(t.Month()))
	regs[6] = toBcd(t.Year() % 100)
	if t.Year() >= 2100 {
		regs[5] |= 0x80
	}
	return regs
}

func fromBcd(b byte) int { return int(b>>4)*10 + int(b&0x0f) }
func toBcd(x int) byte   { return byte(x/10)<<4 | byte(x%10) }
