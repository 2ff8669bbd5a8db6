package ui

import (
	"context"
	"sync/atomic"
	"time"

	tele_api "github.com/fptk/fpterm/internal/tele/api"
	"github.com/fptk/fpterm/internal/types"
)

//go:generate stringer -type=State -trimprefix=State
type State uint32

const (
	StateDefault State = iota

	StateBoot   // t=sensor handshake +ok=Idle +err+retry=Boot +retryMax=Broken
	StateBroken // t=input +inputService=Boot

	StateIdle        // t=input/scan/timeout clock display, match loop
	StateEnroll      // t=input digits + two finger captures
	StateDelete      // t=input digits
	StateWipeConfirm // t=input/timeout second wipe key arms the sweep
	StateWipe        // t=sensor library erase + record wipe

	StateStop
)

func (self *UI) State() State               { return State(atomic.LoadUint32((*uint32)(&self.state))) }
func (self *UI) setState(new State)         { atomic.StoreUint32((*uint32)(&self.state), uint32(new)) }
func (self *UI) XXX_testSetState(new State) { self.setState(new) }

func (self *UI) Loop(ctx context.Context) {
	self.g.Alive.Add(1)
	defer self.g.Alive.Done()
	next := StateDefault
	for next != StateStop && self.g.Alive.IsRunning() {
		current := self.State()
		next = self.enter(ctx, current)
		if next == StateDefault {
			self.g.Log.Fatalf("ui state=%s next=default", current.String())
		}
		self.exit(ctx, current, next)

		if !self.g.Alive.IsRunning() {
			self.g.Log.Debugf("ui Loop stopping because g.Alive")
			next = StateStop
		}

		self.setState(next)
		if self.XXX_testHook != nil {
			self.XXX_testHook(next)
		}
	}
	self.g.Log.Debugf("ui loop end")
}

func (self *UI) enter(ctx context.Context, s State) State {
	self.g.Log.Debugf("ui enter %s", s.String())
	switch s {
	case StateBoot:
		self.g.Tele.State(tele_api.State_Boot)
		var err error
		for i := 1; i <= 3; i++ {
			if _, err = self.g.Sensor(); err == nil {
				break
			}
			self.g.Error(err, "sensor probe try=%d", i)
		}
		if err != nil {
			return StateBroken
		}
		self.broken = false
		self.inputBuf = self.inputBuf[:0]
		return StateIdle

	case StateBroken:
		if !self.broken {
			self.g.Tele.State(tele_api.State_Problem)
		}
		self.broken = true
		self.display.SetLines(self.g.Config.UI.Front.MsgStateBroken, "", "", "")
		for self.g.Alive.IsRunning() {
			e := self.wait(time.Second)
			if e.Kind == types.EventService {
				return StateBoot
			}
			if e.Kind == types.EventStop {
				return StateStop
			}
		}
		return StateStop

	case StateIdle:
		self.inputBuf = self.inputBuf[:0]
		return self.onIdle(ctx)

	case StateEnroll:
		return self.onEnroll(ctx)

	case StateDelete:
		return self.onDelete(ctx)

	case StateWipeConfirm:
		return self.onWipeConfirm(ctx)

	case StateWipe:
		return self.onWipe(ctx)

	case StateStop:
		return StateStop

	default:
		self.g.Log.Fatalf("unhandled ui state=%s", s.String())
		return StateDefault
	}
}

func (self *UI) exit(ctx context.Context, current, next State) {
	self.g.Log.Debugf("ui exit %s -> %s", current.String(), next.String())

	if next != StateBroken {
		self.broken = false
	}
}
