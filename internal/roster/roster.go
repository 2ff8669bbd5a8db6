// Package roster maps fingerprint sensor slots to service numbers.
// Slot N in the sensor template library and record N here describe the
// same person; keeping them in step is the caller's job.
package roster

import (
	"bytes"
	"sync"

	"github.com/juju/errors"
)

const (
	// Bytes reserved per record. Service numbers are ASCII digits,
	// shorter numbers are right padded with spaces.
	RecordWidth = 8

	// Record capacity, matches the sensor template library.
	MaxUsers = 127
)

var ErrSlotRange = errors.Errorf("slot out of range 0..%d", MaxUsers-1)

// Roster is a fixed array of fixed-width records. The whole array is
// one storage blob so a record write never moves its neighbours.
type Roster struct {
	lk   sync.Mutex
	data [MaxUsers * RecordWidth]byte
}

func (self *Roster) slice(slot uint8) []byte {
	off := int(slot) * RecordWidth
	return self.data[off : off+RecordWidth]
}

// Store writes the service number into the record at slot, right
// padded with spaces up to RecordWidth. Fails closed on bad input.
func (self *Roster) Store(slot uint8, serviceNumber string) error {
	if slot >= MaxUsers {
		return errors.Trace(ErrSlotRange)
	}
	if len(serviceNumber) == 0 || len(serviceNumber) > RecordWidth {
		return errors.NotValidf("service number=%q length", serviceNumber)
	}
	for i := 0; i < len(serviceNumber); i++ {
		if c := serviceNumber[i]; c < '0' || c > '9' {
			return errors.NotValidf("service number=%q digit", serviceNumber)
		}
	}
	self.lk.Lock()
	defer self.lk.Unlock()
	rec := self.slice(slot)
	n := copy(rec, serviceNumber)
	for ; n < RecordWidth; n++ {
		rec[n] = ' '
	}
	return nil
}

// Load returns the stored service number with the trailing space
// padding trimmed, "" for an empty record.
func (self *Roster) Load(slot uint8) (string, error) {
	if slot >= MaxUsers {
		return "", errors.Trace(ErrSlotRange)
	}
	self.lk.Lock()
	defer self.lk.Unlock()
	return trimRecord(self.slice(slot)), nil
}

// Clear empties the record at slot.
func (self *Roster) Clear(slot uint8) error {
	if slot >= MaxUsers {
		return errors.Trace(ErrSlotRange)
	}
	self.lk.Lock()
	defer self.lk.Unlock()
	zeroRecord(self.slice(slot))
	return nil
}

// Wipe empties every record.
func (self *Roster) Wipe() {
	self.lk.Lock()
	defer self.lk.Unlock()
	for i := range self.data {
		self.data[i] = 0
	}
}

// Find returns the first slot holding the service number. Digits are
// compared as entered: "007" and "7" are distinct records.
func (self *Roster) Find(serviceNumber string) (uint8, bool) {
	if serviceNumber == "" || len(serviceNumber) > RecordWidth {
		return 0, false
	}
	var query [RecordWidth]byte
	n := copy(query[:], serviceNumber)
	for ; n < RecordWidth; n++ {
		query[n] = ' '
	}
	self.lk.Lock()
	defer self.lk.Unlock()
	for slot := uint8(0); slot < MaxUsers; slot++ {
		if bytes.Equal(self.slice(slot), query[:]) {
			return slot, true
		}
	}
	return 0, false
}

// FreeSlot returns the lowest empty slot.
func (self *Roster) FreeSlot() (uint8, bool) {
	self.lk.Lock()
	defer self.lk.Unlock()
	for slot := uint8(0); slot < MaxUsers; slot++ {
		if isEmptyRecord(self.slice(slot)) {
			return slot, true
		}
	}
	return 0, false
}

// Used counts non-empty records.
func (self *Roster) Used() int {
	self.lk.Lock()
	defer self.lk.Unlock()
	n := 0
	for slot := uint8(0); slot < MaxUsers; slot++ {
		if !isEmptyRecord(self.slice(slot)) {
			n++
		}
	}
	return n
}

func (self *Roster) MarshalBinary() ([]byte, error) {
	self.lk.Lock()
	defer self.lk.Unlock()
	b := make([]byte, len(self.data))
	copy(b, self.data[:])
	return b, nil
}

func (self *Roster) UnmarshalBinary(b []byte) error {
	if len(b) != len(self.data) {
		return errors.NotValidf("roster blob length=%d expected=%d", len(b), len(self.data))
	}
	self.lk.Lock()
	defer self.lk.Unlock()
	copy(self.data[:], b)
	return nil
}

func zeroRecord(rec []byte) {
	for i := range rec {
		rec[i] = 0
	}
}

func isEmptyRecord(rec []byte) bool {
	for _, b := range rec {
		if b != 0 {
			return false
		}
	}
	return true
}

// Strips the trailing space padding, digits come back as entered.
func trimRecord(rec []byte) string {
	if isEmptyRecord(rec) {
		return ""
	}
	return string(bytes.TrimRight(rec, " "))
}
