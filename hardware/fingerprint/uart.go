package fingerprint

import (
	"encoding/binary"
	"os"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/juju/errors"
	"github.com/fptk/fpterm/log2"
)

const (
	DefaultBaudrate = 57600
	DefaultTimeout  = 500 * time.Millisecond
)

// UartSensor drives the sensor over a serial port. All operations
// follow the same shape: frame one command packet, wait for one ack.
type UartSensor struct { //nolint:maligned
	Log *log2.Log

	lk       sync.Mutex
	f        *os.File
	reader   fdReader
	t2       termios2
	addr     uint32
	password uint32
	timeout  time.Duration
	rbuf     [packetOverhead + MaxPayload]byte
}

func NewUartSensor(log *log2.Log) *UartSensor {
	return &UartSensor{Log: log, timeout: DefaultTimeout}
}

func (self *UartSensor) Open(c Config) error {
	baud := c.Baudrate
	if baud == 0 {
		baud = DefaultBaudrate
	}
	var err error
	if self.addr, err = parseHex32(c.Address, DefaultAddress); err != nil {
		return errors.Annotate(err, "sensor address")
	}
	if self.password, err = parseHex32(c.Password, 0); err != nil {
		return errors.Annotate(err, "sensor password")
	}
	if self.f != nil {
		self.f.Close()
	}
	self.f, err = os.OpenFile(c.Device, syscall.O_RDWR|syscall.O_NOCTTY, 0600)
	if err != nil {
		return errors.Annotatef(err, "sensor device=%s", c.Device)
	}
	self.reader = fdReader{fd: self.f.Fd(), timeout: self.timeout}
	if err = io_reset_termios(self.f.Fd(), &self.t2, baud); err != nil {
		self.f.Close()
		self.f = nil
		return errors.Annotatef(err, "sensor device=%s baud=%d", c.Device, baud)
	}
	return self.verifyPassword()
}

func (self *UartSensor) Close() error {
	if self.f == nil {
		return nil
	}
	err := self.f.Close()
	self.f = nil
	return err
}

func (self *UartSensor) verifyPassword() error {
	var payload [5]byte
	payload[0] = CmdVerifyPassword
	binary.BigEndian.PutUint32(payload[1:], self.password)
	return errors.Annotate(self.txStatus(payload[:]), "sensor handshake")
}

func (self *UartSensor) CaptureImage() error {
	return self.txStatus([]byte{CmdGenImage})
}

func (self *UartSensor) ToTemplate(buffer uint8) error {
	return self.txStatus([]byte{CmdImageToTz, buffer})
}

func (self *UartSensor) BuildModel() error {
	return self.txStatus([]byte{CmdRegModel})
}

func (self *UartSensor) StoreModel(slot uint8) error {
	// store from buffer 1; page id is 16 bit on the wire
	return self.txStatus([]byte{CmdStoreModel, 1, 0, slot})
}

func (self *UartSensor) DeleteModel(slot uint8) error {
	// delete exactly one template starting at slot
	return self.txStatus([]byte{CmdDeleteModel, 0, slot, 0, 1})
}

func (self *UartSensor) EmptyLibrary() error {
	return self.txStatus([]byte{CmdEmptyLibrary})
}

func (self *UartSensor) TemplateExists(slot uint8) (bool, error) {
	p, err := self.tx([]byte{CmdLoadModel, 1, 0, slot})
	if err != nil {
		return false, err
	}
	switch p.Status() {
	case StatusOK:
		return true, nil
	case StatusDbRangeFail, StatusBadLocation, StatusUploadFail:
		return false, nil
	}
	return false, statusToError(p.Status())
}

func (self *UartSensor) Search() (uint8, error) {
	p, err := self.tx([]byte{CmdSearch, 1, 0, 0, 0, MaxSlots})
	if err != nil {
		return 0, err
	}
	if err = statusToError(p.Status()); err != nil {
		return 0, err
	}
	payload := p.Payload()
	if len(payload) < 5 {
		return 0, errors.NotValidf("sensor search ack payload=%x", payload)
	}
	page := binary.BigEndian.Uint16(payload[1:3])
	if page >= MaxSlots {
		return 0, errors.NotValidf("sensor search page=%d", page)
	}
	return uint8(page), nil
}

func (self *UartSensor) TemplateCount() (uint16, error) {
	p, err := self.tx([]byte{CmdTemplateCount})
	if err != nil {
		return 0, err
	}
	if err = statusToError(p.Status()); err != nil {
		return 0, err
	}
	payload := p.Payload()
	if len(payload) < 3 {
		return 0, errors.NotValidf("sensor count ack payload=%x", payload)
	}
	return binary.BigEndian.Uint16(payload[1:3]), nil
}

func (self *UartSensor) txStatus(payload []byte) error {
	p, err := self.tx(payload)
	if err != nil {
		return err
	}
	return statusToError(p.Status())
}

func (self *UartSensor) tx(payload []byte) (Packet, error) {
	self.lk.Lock()
	defer self.lk.Unlock()

	var response Packet
	if self.f == nil {
		return response, errors.Errorf("sensor is not open")
	}
	request := NewCommand(self.addr, payload...)
	if err := io_flush(self.f.Fd()); err != nil {
		return response, errors.Trace(err)
	}
	self.Log.Debugf("sensor send %s", request.String())
	if _, err := self.f.Write(request.Bytes()); err != nil {
		return response, errors.Trace(err)
	}
	if err := self.readPacket(&response); err != nil {
		return response, errors.Trace(err)
	}
	self.Log.Debugf("sensor recv %s status=%s", response.String(), response.Status())
	if response.Address != self.addr {
		return response, errors.NotValidf("sensor ack address=%08x expected=%08x", response.Address, self.addr)
	}
	if response.ID != PacketAck {
		return response, errors.NotValidf("sensor ack id=%02x", byte(response.ID))
	}
	return response, nil
}

func (self *UartSensor) readPacket(p *Packet) error {
	filled := 0
	need := packetOverhead
	for filled < need {
		n, err := self.reader.Read(self.rbuf[filled:])
		if err != nil {
			return err
		}
		filled += n
		if need == packetOverhead && filled >= 9 {
			length := int(binary.BigEndian.Uint16(self.rbuf[7:]))
			if length < 2 || length-2 > MaxPayload {
				return errors.NotValidf("sensor frame=%x claims length=%d", self.rbuf[:filled], length)
			}
			need = 9 + length
		}
	}
	return p.Parse(self.rbuf[:filled])
}

func parseHex32(s string, def uint32) (uint32, error) {
	if s == "" {
		return def, nil
	}
	u, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, errors.NotValidf("hex32=%s", s)
	}
	return uint32(u), nil
}
