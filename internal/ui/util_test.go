package ui_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/fptk/fpterm/hardware/fingerprint"
	"github.com/fptk/fpterm/hardware/input"
	"github.com/fptk/fpterm/hardware/keypad"
	"github.com/fptk/fpterm/hardware/text_display"
	"github.com/fptk/fpterm/internal/state"
	"github.com/fptk/fpterm/internal/types"
	"github.com/fptk/fpterm/internal/ui"
)

const testDisplayWidth = 16

type tenv struct {
	ctx context.Context
	g   *state.Global
	ui  *ui.UI

	display        *text_display.TextDisplay
	displayUpdated chan text_display.State
	sensor         *fingerprint.MockSensor
	_T             func(l1, l2, l3, l4 string) string
	_Key           func(types.InputKey) types.Event
	_KeyService    types.Event
	_Stop          types.Event
}

type step struct {
	expect string
	inev   types.Event
	fun    func()
}

func uiTestSetup(t testing.TB, env *tenv, initState, endState ui.State) {
	env.display = env.g.MustTextDisplay()
	env.sensor = env.g.Hardware.Sensor.Dev.(*fingerprint.MockSensor)
	env.ui = &ui.UI{
		XXX_testHook: func(s ui.State) {
			t.Logf("testHook %s", s.String())
			switch s {
			case endState: // success path
				env.g.Alive.Stop()
			case ui.StateDefault:
				t.Fatalf("ui switch state=default")
			}
		},
	}
	err := env.ui.Init(env.ctx)
	require.NoError(t, err)
	env.ui.XXX_testSetState(initState)
	env.displayUpdated = make(chan text_display.State)
	env.display.SetUpdateChan(env.displayUpdated)
	env._T = func(l1, l2, l3, l4 string) string {
		return fmt.Sprintf("%s\n%s\n%s\n%s",
			text_display.PadSpace(env.display.Translate(l1), testDisplayWidth),
			text_display.PadSpace(env.display.Translate(l2), testDisplayWidth),
			text_display.PadSpace(env.display.Translate(l3), testDisplayWidth),
			text_display.PadSpace(env.display.Translate(l4), testDisplayWidth),
		)
	}
	env._Key = func(k types.InputKey) types.Event {
		return types.Event{Kind: types.EventInput, Input: types.InputEvent{Source: keypad.SourceTag, Key: k}}
	}
	env._KeyService = types.Event{Kind: types.EventInput, Input: types.InputEvent{Source: input.DevInputEventTag, Up: true}}
	env._Stop = types.Event{Kind: types.EventStop}
}

func uiTestWait(t testing.TB, env *tenv, steps []step) {
	waitch := env.g.Alive.WaitChan()

	for _, step := range steps {
		if step.fun != nil {
			step.fun()
			continue
		}

		select {
		case current := <-env.displayUpdated:
			t.Logf("display:\n%s\n%s\nevent=%s", current, strings.Repeat("-", testDisplayWidth), step.inev.String())
			require.Equal(t, step.expect, current.Format(testDisplayWidth))
			switch step.inev.Kind {
			case types.EventInvalid: // wait for next display update

			case types.EventInput:
				env.g.Hardware.Input.Emit(step.inev.Input)

			case types.EventStop:
				env.g.Log.Debugf("emit types.EventStop")
				env.g.Alive.Stop()
				for {
					select {
					case <-env.displayUpdated: // drain in-flight refresh
					case <-waitch:
						return
					}
				}

			default:
				t.Fatalf("test code error not supported event=%s", step.inev.String())
			}

		case <-waitch:
			if !(step.expect == "" && step.inev.Kind == types.EventInvalid) {
				t.Error("ui stopped before end of test")
			}
			return
		}
	}
	if env.g.Alive.IsRunning() {
		t.Logf("display:\n%s", env.display.State().Format(testDisplayWidth))
		t.Error("ui still running")
	}
	env.g.Alive.Wait()
}
