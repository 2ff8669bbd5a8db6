// Optical fingerprint sensor. The sensor owns template storage; this
// package only frames commands and reports confirmation codes.
package fingerprint

import (
	"fmt"

	"github.com/juju/errors"
)

// Slot capacity of the sensor template library.
const MaxSlots = 127

type Config struct { //nolint:maligned
	Device   string `hcl:"device"`
	Baudrate int    `hcl:"baudrate"`
	Password string `hcl:"password"` // 8 hex digits, default 00000000
	Address  string `hcl:"address"`  // 8 hex digits, default ffffffff
	LogDebug bool   `hcl:"log_debug"`
}

// Sensor operations return nil on confirmation code 0.
// CaptureImage returns ErrNoFinger when nothing is on the window,
// Search returns ErrNotFound when the sensor library has no match.
type Sensor interface {
	TemplateExists(slot uint8) (bool, error)
	CaptureImage() error
	ToTemplate(buffer uint8) error
	BuildModel() error
	StoreModel(slot uint8) error
	DeleteModel(slot uint8) error
	EmptyLibrary() error
	Search() (uint8, error)
}

var ErrNoFinger = fmt.Errorf("no finger on sensor")
var ErrNotFound = fmt.Errorf("no match in sensor library")

// Confirmation codes, sensor wire values.
type Status byte

const (
	StatusOK           Status = 0x00
	StatusPacketError  Status = 0x01
	StatusNoFinger     Status = 0x02
	StatusImageFail    Status = 0x03
	StatusImageMess    Status = 0x06
	StatusFeatureFail  Status = 0x07
	StatusNotFound     Status = 0x09
	StatusBadLocation  Status = 0x0b
	StatusDbRangeFail  Status = 0x0c
	StatusUploadFail   Status = 0x0d
	StatusDeleteFail   Status = 0x10
	StatusBadPassword  Status = 0x13
	StatusInvalidImage Status = 0x15
	StatusFlashError   Status = 0x18
)

func (s Status) Error() string { return s.String() }

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusPacketError:
		return "packet receive error"
	case StatusNoFinger:
		return "no finger"
	case StatusImageFail:
		return "image capture fail"
	case StatusImageMess:
		return "image too messy"
	case StatusFeatureFail:
		return "too few features"
	case StatusNotFound:
		return "not found"
	case StatusBadLocation:
		return "bad template location"
	case StatusDbRangeFail:
		return "template read out of range"
	case StatusUploadFail:
		return "template upload fail"
	case StatusDeleteFail:
		return "template delete fail"
	case StatusInvalidImage:
		return "invalid image"
	case StatusFlashError:
		return "flash write error"
	case StatusBadPassword:
		return "wrong password"
	}
	return fmt.Sprintf("sensor status=%02x", byte(s))
}

// Maps a confirmation code to package sentinel errors where callers
// branch on them, to a Status error otherwise.
func statusToError(s Status) error {
	switch s {
	case StatusOK:
		return nil
	case StatusNoFinger:
		return ErrNoFinger
	case StatusNotFound:
		return ErrNotFound
	}
	return errors.Trace(s)
}
