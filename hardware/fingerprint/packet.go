package fingerprint

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/juju/errors"
	"github.com/fptk/fpterm/checksum"
)

// Wire frame:
//   2 start code, 4 address, 1 packet id, 2 length, payload, 2 checksum
// length counts payload+checksum; checksum is the 16-bit additive sum
// of packet id, length and payload.
const StartCode uint16 = 0xef01
const DefaultAddress uint32 = 0xffffffff

const packetOverhead = 9 + 2 // header before payload + checksum
const MaxPayload = 64

type PacketID byte

const (
	PacketCommand PacketID = 0x01
	PacketData    PacketID = 0x02
	PacketAck     PacketID = 0x07
	PacketEndData PacketID = 0x08
)

// Command codes carried in the first payload byte.
const (
	CmdGenImage       byte = 0x01
	CmdImageToTz      byte = 0x02
	CmdSearch         byte = 0x04
	CmdRegModel       byte = 0x05
	CmdStoreModel     byte = 0x06
	CmdLoadModel      byte = 0x07
	CmdDeleteModel    byte = 0x0c
	CmdEmptyLibrary   byte = 0x0d
	CmdVerifyPassword byte = 0x13
	CmdTemplateCount  byte = 0x1d
)

type Packet struct {
	buf     [packetOverhead + MaxPayload]byte
	Address uint32
	ID      PacketID
	dataLen uint16
}

func NewPacket(addr uint32, id PacketID, payload ...byte) Packet {
	if len(payload) > MaxPayload {
		panic(fmt.Sprintf("code error packet payload=%d max=%d", len(payload), MaxPayload))
	}
	p := Packet{Address: addr, ID: id, dataLen: uint16(len(payload))}
	binary.BigEndian.PutUint16(p.buf[0:], StartCode)
	binary.BigEndian.PutUint32(p.buf[2:], addr)
	p.buf[6] = byte(id)
	length := p.dataLen + 2
	binary.BigEndian.PutUint16(p.buf[7:], length)
	copy(p.buf[9:], payload)
	sum := checksum.Sum16(0, p.buf[6:9+p.dataLen])
	binary.BigEndian.PutUint16(p.buf[9+p.dataLen:], sum)
	return p
}

func NewCommand(addr uint32, payload ...byte) Packet {
	return NewPacket(addr, PacketCommand, payload...)
}

func (self *Packet) Payload() []byte {
	if self.dataLen == 0 {
		return nil
	}
	return self.buf[9 : 9+self.dataLen]
}

func (self *Packet) Bytes() []byte { return self.buf[:packetOverhead+self.dataLen] }

// Overwrites packet state.
func (self *Packet) Parse(b []byte) error {
	if len(b) < packetOverhead {
		return errors.NotValidf("packet=%x length=%d < min=%d", b, len(b), packetOverhead)
	}
	if sc := binary.BigEndian.Uint16(b[0:]); sc != StartCode {
		return errors.NotValidf("packet=%x start=%04x", b, sc)
	}
	length := binary.BigEndian.Uint16(b[7:])
	if length < 2 {
		return errors.NotValidf("packet=%x claims length=%d < min=2", b, length)
	}
	if int(length)-2 > MaxPayload {
		return errors.NotValidf("packet=%x claims length=%d > max=%d", b, length, MaxPayload+2)
	}
	total := 9 + int(length)
	if total > len(b) {
		return errors.NotValidf("packet=%x claims length=%d > input=%d", b, length, len(b))
	}
	sumIn := binary.BigEndian.Uint16(b[total-2:])
	sumLocal := checksum.Sum16(0, b[6:total-2])
	if sumIn != sumLocal {
		return errors.NotValidf("packet=%x checksum=%04x actual=%04x", b, sumIn, sumLocal)
	}
	self.Address = binary.BigEndian.Uint32(b[2:])
	self.ID = PacketID(b[6])
	switch self.ID {
	case PacketCommand, PacketData, PacketAck, PacketEndData:
	default:
		return errors.NotValidf("packet=%x id=%02x", b, byte(self.ID))
	}
	self.dataLen = length - 2
	copy(self.buf[:], b[:total])
	return nil
}

// First payload byte of an ack packet.
func (self *Packet) Status() Status {
	if self.ID != PacketAck || self.dataLen < 1 {
		return StatusPacketError
	}
	return Status(self.buf[9])
}

func (self *Packet) String() string {
	return fmt.Sprintf("addr=%08x id=%02x payload=%s",
		self.Address, byte(self.ID), hex.EncodeToString(self.Payload()))
}
