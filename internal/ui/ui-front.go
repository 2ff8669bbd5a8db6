package ui

import (
	"context"
	"fmt"

	"github.com/juju/errors"
	"github.com/temoto/atomic_clock"
	"github.com/fptk/fpterm/hardware/fingerprint"
	tele_api "github.com/fptk/fpterm/internal/tele/api"
	"github.com/fptk/fpterm/internal/types"
)

// Idle doubles as the match loop: the sensor window is polled between
// clock refreshes, a finger on the window interrupts the clock.
func (self *UI) onIdle(ctx context.Context) State {
	self.g.Tele.State(tele_api.State_Nominal)
	sensor, err := self.g.Sensor()
	if err != nil {
		self.g.Error(err)
		return StateBroken
	}

	for {
		self.idleShow()

		e := self.wait(idleTick)
		switch e.Kind {
		case types.EventInput:
			switch e.Input.Key {
			case keyEnroll:
				return StateEnroll
			case keyDelete:
				return StateDelete
			case keyWipe:
				return StateWipeConfirm
			}

		case types.EventTime:
			if next := self.scanOnce(ctx, sensor); next != StateDefault {
				return next
			}

		case types.EventStop:
			return StateStop
		}
	}
}

func (self *UI) idleShow() {
	now, err := self.g.Clock().Now()
	if err != nil {
		self.g.Error(errors.Annotate(err, "rtc read"))
		self.display.SetLines(self.g.Config.UI.Front.MsgStateIntro, "", "", MsgIdleHint)
		return
	}
	self.display.SetLines(
		self.g.Config.UI.Front.MsgStateIntro,
		now.Format("2006-01-02"),
		now.Format("15:04:05"),
		MsgIdleHint,
	)
}

// StateDefault means nothing happened, stay in idle.
func (self *UI) scanOnce(ctx context.Context, sensor fingerprint.Sensor) State {
	err := sensor.CaptureImage()
	if err == fingerprint.ErrNoFinger {
		return StateDefault
	}
	if err != nil {
		self.g.Error(errors.Annotate(err, "scan capture"))
		return StateDefault
	}
	if err = sensor.ToTemplate(1); err != nil {
		self.g.Error(errors.Annotate(err, "scan template"))
		return StateDefault
	}

	now, _ := self.g.Clock().Now()
	slot, err := sensor.Search()
	if err == fingerprint.ErrNotFound {
		self.g.Tele.Scan(tele_api.Telemetry_Scan{Matched: false, AtUnix: now.Unix()})
		if e := self.showDwell(MsgScanMiss, "", "", ""); e.Kind == types.EventStop {
			return StateStop
		}
		return StateDefault
	}
	if err != nil {
		self.g.Error(errors.Annotate(err, "scan search"))
		return StateDefault
	}

	if slot == self.lastScanSlot && atomic_clock.Since(&self.lastScanAt) < scanRepeatGuard {
		return StateDefault
	}
	self.lastScanSlot = slot
	self.lastScanAt.SetNow()

	number, err := self.g.Roster.Load(slot)
	if err != nil {
		self.g.Error(errors.Annotatef(err, "scan slot=%d", slot))
		return StateDefault
	}
	if number == "" {
		// template without a record, sensor and roster disagree
		self.g.Error(errors.Errorf("scan slot=%d has no record", slot))
	}
	self.g.Tele.Scan(tele_api.Telemetry_Scan{
		Slot:          int32(slot),
		ServiceNumber: number,
		Matched:       true,
		AtUnix:        now.Unix(),
	})
	line2 := fmt.Sprintf("NO:%s", number)
	if e := self.showDwell("WELCOME", line2, now.Format("15:04:05"), ""); e.Kind == types.EventStop {
		return StateStop
	}
	return StateDefault
}
