package ui

import (
	"context"
	"time"

	"github.com/temoto/atomic_clock"
	"github.com/fptk/fpterm/hardware/input"
	"github.com/fptk/fpterm/hardware/text_display"
	"github.com/fptk/fpterm/helpers"
	"github.com/fptk/fpterm/internal/roster"
	"github.com/fptk/fpterm/internal/state"
	"github.com/fptk/fpterm/internal/types"
)

// Messages not worth a config knob.
const (
	MsgNumberEcho   = "NO:%s_\x00"
	MsgEnrollTitle  = "ADD PERSON"
	MsgDeleteTitle  = "REMOVE PERSON"
	MsgEnterNumber  = "ENTER NUMBER #=OK"
	MsgPlaceFinger  = "PLACE FINGER"
	MsgRemoveFinger = "REMOVE FINGER"
	MsgPlaceAgain   = "SAME FINGER AGAIN"
	MsgScanMiss     = "NOT RECOGNIZED"
	MsgEnrolled     = "ADDED"
	MsgDeleted      = "REMOVED"
	MsgWiped        = "MEMORY CLEARED"
	MsgDuplicate    = "ALREADY ENROLLED"
	MsgUnknown      = "NUMBER NOT FOUND"
	MsgMemoryFull   = "MEMORY FULL"
	MsgMismatch     = "SCANS DIFFER"
	MsgWipeAsk      = "ERASE EVERYTHING?"
	MsgWipeHint     = "D=YES C=NO"
	MsgIdleHint     = "A=ADD B=DEL"
)

const (
	keyEnroll    = types.InputKey('A')
	keyDelete    = types.InputKey('B')
	keyCancel    = types.InputKey('C')
	keyWipe      = types.InputKey('D')
	keyConfirm   = types.InputKey('#')
	keyBackspace = types.InputKey('*')
)

const (
	defaultDwell       = 1200 * time.Millisecond
	defaultResetTo     = 30 * time.Second
	defaultWipeConfirm = 1500 * time.Millisecond
	defaultEnrollTo    = 20 * time.Second
	idleTick           = 500 * time.Millisecond
	captureTick        = 300 * time.Millisecond

	// finger held on the window is one scan, not one per poll tick
	scanRepeatGuard = 3 * time.Second
)

type UI struct { //nolint:maligned
	g            *state.Global
	state        State
	broken       bool
	display      *text_display.TextDisplay
	lastActivity time.Time
	lastScanSlot uint8
	lastScanAt   atomic_clock.Clock
	inputBuf     []byte
	eventch      chan types.Event
	inputch      chan types.InputEvent

	dwell              time.Duration
	frontResetTimeout  time.Duration
	wipeConfirmTimeout time.Duration
	enrollTimeout      time.Duration

	XXX_testHook func(State)
}

func (self *UI) Init(ctx context.Context) error {
	self.g = state.GetGlobal(ctx)
	self.setState(StateBoot)

	front := &self.g.Config.UI.Front
	if front.MsgError == "" {
		front.MsgError = "ERROR"
	}
	if front.MsgStateBroken == "" {
		front.MsgStateBroken = "OUT OF ORDER"
	}
	if front.MsgStateIntro == "" {
		front.MsgStateIntro = "ATTENDANCE"
	}
	if front.MsgWait == "" {
		front.MsgWait = "PLEASE WAIT"
	}

	self.display = self.g.MustTextDisplay()
	self.eventch = make(chan types.Event)
	self.inputBuf = make([]byte, 0, roster.RecordWidth)
	self.inputch = self.g.Hardware.Input.SubscribeChan("ui", self.g.Alive.StopChan())

	self.dwell = helpers.IntMillisecondDefault(front.DwellMs, defaultDwell)
	self.frontResetTimeout = helpers.IntSecondDefault(front.ResetTimeoutSec, defaultResetTo)
	self.wipeConfirmTimeout = helpers.IntMillisecondDefault(front.WipeConfirmMs, defaultWipeConfirm)
	self.enrollTimeout = helpers.IntSecondDefault(front.EnrollTimeoutSec, defaultEnrollTo)

	return nil
}

func (self *UI) wait(timeout time.Duration) types.Event {
	tmr := time.NewTimer(timeout)
	defer tmr.Stop()
	select {
	case e := <-self.eventch:
		if e.Kind != types.EventInvalid {
			self.lastActivity = time.Now()
		}
		return e

	case e := <-self.inputch:
		if e.Source != "" {
			self.lastActivity = time.Now()
		}
		if e.Source == input.DevInputEventTag && e.Up {
			return types.Event{Kind: types.EventService}
		}
		return types.Event{Kind: types.EventInput, Input: e}

	case <-tmr.C:
		return types.Event{Kind: types.EventTime}

	case <-self.g.Alive.StopChan():
		return types.Event{Kind: types.EventStop}
	}
}

// Shows lines until dwell expires or any key is pressed.
func (self *UI) showDwell(lines ...string) types.Event {
	self.display.SetLines(lines...)
	return self.wait(self.dwell)
}

func (self *UI) showError(err error) {
	self.g.Error(err)
	self.display.SetLines(self.g.Config.UI.Front.MsgError, "", "", "")
	_ = self.wait(self.dwell)
}
