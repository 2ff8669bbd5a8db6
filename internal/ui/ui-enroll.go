package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/juju/errors"
	"github.com/fptk/fpterm/hardware/fingerprint"
	"github.com/fptk/fpterm/internal/roster"
	tele_api "github.com/fptk/fpterm/internal/tele/api"
	"github.com/fptk/fpterm/internal/types"
)

func (self *UI) onEnroll(ctx context.Context) State {
	number, next := self.promptNumber(MsgEnrollTitle, keyEnroll)
	if next != StateDefault {
		return next
	}

	if _, found := self.g.Roster.Find(number); found {
		if e := self.showDwell(MsgDuplicate, "", "", ""); e.Kind == types.EventStop {
			return StateStop
		}
		return StateIdle
	}
	slot, free := self.g.Roster.FreeSlot()
	if !free {
		if e := self.showDwell(MsgMemoryFull, "", "", ""); e.Kind == types.EventStop {
			return StateStop
		}
		return StateIdle
	}

	sensor, err := self.g.Sensor()
	if err != nil {
		self.g.Error(err)
		return StateBroken
	}

	// two captures of the same finger make one model
	if next = self.captureInto(sensor, 1, MsgPlaceFinger); next != StateDefault {
		return next
	}
	if next = self.waitFingerRemoved(sensor); next != StateDefault {
		return next
	}
	if next = self.captureInto(sensor, 2, MsgPlaceAgain); next != StateDefault {
		return next
	}

	if err = sensor.BuildModel(); err != nil {
		self.g.Log.Infof("enroll model err=%v", err)
		if e := self.showDwell(MsgMismatch, "", "", ""); e.Kind == types.EventStop {
			return StateStop
		}
		return StateIdle
	}

	// Template first, record second. A crash between the two leaves a
	// template without a record, scan reports it until re-enrolled.
	if err = sensor.StoreModel(slot); err != nil {
		self.showError(errors.Annotatef(err, "enroll store slot=%d", slot))
		return StateIdle
	}
	if err = self.g.Roster.Store(slot, number); err != nil {
		self.showError(errors.Annotatef(err, "enroll record slot=%d", slot))
		return StateIdle
	}

	self.g.Tele.RosterChange(tele_api.Telemetry_Roster{
		Op:            "enroll",
		Slot:          int32(slot),
		ServiceNumber: number,
		Used:          int32(self.g.Roster.Used()),
	})
	if e := self.showDwell(MsgEnrolled, fmt.Sprintf("NO:%s", number), "", ""); e.Kind == types.EventStop {
		return StateStop
	}
	return StateIdle
}

func (self *UI) onDelete(ctx context.Context) State {
	number, next := self.promptNumber(MsgDeleteTitle, keyDelete)
	if next != StateDefault {
		return next
	}

	slot, found := self.g.Roster.Find(number)
	if !found {
		if e := self.showDwell(MsgUnknown, "", "", ""); e.Kind == types.EventStop {
			return StateStop
		}
		return StateIdle
	}

	sensor, err := self.g.Sensor()
	if err != nil {
		self.g.Error(err)
		return StateBroken
	}
	if err = sensor.DeleteModel(slot); err != nil {
		self.showError(errors.Annotatef(err, "delete template slot=%d", slot))
		return StateIdle
	}
	if err = self.g.Roster.Clear(slot); err != nil {
		self.showError(errors.Annotatef(err, "delete record slot=%d", slot))
		return StateIdle
	}

	self.g.Tele.RosterChange(tele_api.Telemetry_Roster{
		Op:            "delete",
		Slot:          int32(slot),
		ServiceNumber: number,
		Used:          int32(self.g.Roster.Used()),
	})
	if e := self.showDwell(MsgDeleted, fmt.Sprintf("NO:%s", number), "", ""); e.Kind == types.EventStop {
		return StateStop
	}
	return StateIdle
}

func (self *UI) onWipeConfirm(ctx context.Context) State {
	self.display.SetLines(MsgWipeAsk, MsgWipeHint, "", "")
	e := self.wait(self.wipeConfirmTimeout)
	switch e.Kind {
	case types.EventInput:
		if e.Input.Key == keyWipe {
			return StateWipe
		}
	case types.EventStop:
		return StateStop
	}
	return StateIdle
}

func (self *UI) onWipe(ctx context.Context) State {
	self.display.SetLines(self.g.Config.UI.Front.MsgWait, "", "", "")

	sensor, err := self.g.Sensor()
	if err != nil {
		self.g.Error(err)
		return StateBroken
	}
	// best-effort sweep: records go even when the sensor erase fails
	libErr := sensor.EmptyLibrary()
	if err = self.g.Roster.Wipe(); err != nil {
		self.showError(errors.Annotate(err, "wipe records"))
		return StateIdle
	}

	self.g.Tele.RosterChange(tele_api.Telemetry_Roster{Op: "wipe"})
	if libErr != nil {
		self.showError(errors.Annotate(libErr, "wipe library"))
		return StateIdle
	}
	if e := self.showDwell(MsgWiped, "", "", ""); e.Kind == types.EventStop {
		return StateStop
	}
	return StateIdle
}

// Digit entry with echo. StateDefault result means number confirmed.
// The mode's own toggle key is a second exit besides cancel.
func (self *UI) promptNumber(title string, toggle types.InputKey) (string, State) {
	self.inputBuf = self.inputBuf[:0]
	for {
		echo := fmt.Sprintf(MsgNumberEcho, string(self.inputBuf))
		self.display.SetLines(title, MsgEnterNumber, echo, "")

		e := self.wait(self.frontResetTimeout)
		switch e.Kind {
		case types.EventInput:
			switch {
			case e.Input.IsDigit():
				if len(self.inputBuf) < roster.RecordWidth {
					self.inputBuf = append(self.inputBuf, byte(e.Input.Key))
				}

			case e.Input.Key == keyBackspace:
				if len(self.inputBuf) > 0 {
					self.inputBuf = self.inputBuf[:len(self.inputBuf)-1]
				}

			case e.Input.Key == keyConfirm:
				if len(self.inputBuf) > 0 {
					return string(self.inputBuf), StateDefault
				}

			case e.Input.Key == keyCancel || e.Input.Key == toggle:
				return "", StateIdle
			}

		case types.EventTime:
			return "", StateIdle

		case types.EventStop:
			return "", StateStop
		}
	}
}

// Polls the window until an image lands in the given buffer.
func (self *UI) captureInto(sensor fingerprint.Sensor, buffer uint8, title string) State {
	self.display.SetLines(title, "", "", "")
	// wall clock, not tick count: wait returns early on key chatter
	deadline := time.Now().Add(self.enrollTimeout)
	for time.Now().Before(deadline) {
		e := self.wait(captureTick)
		switch e.Kind {
		case types.EventInput:
			if e.Input.Key == keyCancel {
				return StateIdle
			}

		case types.EventTime:
			err := sensor.CaptureImage()
			if err == fingerprint.ErrNoFinger {
				continue
			}
			if err != nil {
				self.showError(errors.Annotate(err, "enroll capture"))
				return StateIdle
			}
			if err = sensor.ToTemplate(buffer); err != nil {
				self.showError(errors.Annotate(err, "enroll template"))
				return StateIdle
			}
			return StateDefault

		case types.EventStop:
			return StateStop
		}
	}
	return StateIdle
}

func (self *UI) waitFingerRemoved(sensor fingerprint.Sensor) State {
	self.display.SetLines(MsgRemoveFinger, "", "", "")
	deadline := time.Now().Add(self.enrollTimeout)
	for time.Now().Before(deadline) {
		e := self.wait(captureTick)
		switch e.Kind {
		case types.EventInput:
			if e.Input.Key == keyCancel {
				return StateIdle
			}

		case types.EventTime:
			if err := sensor.CaptureImage(); err == fingerprint.ErrNoFinger {
				return StateDefault
			}

		case types.EventStop:
			return StateStop
		}
	}
	return StateIdle
}
