package ui_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/fptk/fpterm/hardware/fingerprint"
	state_new "github.com/fptk/fpterm/internal/state/new"
	"github.com/fptk/fpterm/internal/ui"
)

const testConfIdle = `
ui {
	front {
		msg_intro = "hello attend"
		dwell_ms = 30
		reset_sec = 5
	}
}`

func TestIdleClock(t *testing.T) {
	t.Parallel()

	ctx, g := state_new.NewTestContext(t, "", testConfIdle)
	env := &tenv{ctx: ctx, g: g}
	uiTestSetup(t, env, ui.StateIdle, ui.StateStop)
	env.sensor.ScriptCapture(fingerprint.ErrNoFinger)
	go env.ui.Loop(ctx)

	idle := env._T("hello attend", "2020-02-03", "04:05:06", ui.MsgIdleHint)
	steps := []step{
		{expect: idle, inev: env._Stop},
		{},
	}
	uiTestWait(t, env, steps)
}

func TestScanMatch(t *testing.T) {
	t.Parallel()

	ctx, g := state_new.NewTestContext(t, "", testConfIdle)
	require.NoError(t, g.Roster.Store(5, "1234"))
	env := &tenv{ctx: ctx, g: g}
	uiTestSetup(t, env, ui.StateIdle, ui.StateStop)
	env.sensor.SetTemplate(5, true)
	env.sensor.ScriptSearch(5, nil)
	go env.ui.Loop(ctx)

	idle := env._T("hello attend", "2020-02-03", "04:05:06", ui.MsgIdleHint)
	steps := []step{
		// no input, next idle tick runs the sensor window
		{expect: idle},
		{expect: env._T("WELCOME", "NO:1234", "04:05:06", "")},
		{expect: idle, inev: env._Stop},
		{},
	}
	uiTestWait(t, env, steps)
}

func TestScanMiss(t *testing.T) {
	t.Parallel()

	ctx, g := state_new.NewTestContext(t, "", testConfIdle)
	env := &tenv{ctx: ctx, g: g}
	uiTestSetup(t, env, ui.StateIdle, ui.StateStop)
	go env.ui.Loop(ctx)

	idle := env._T("hello attend", "2020-02-03", "04:05:06", ui.MsgIdleHint)
	steps := []step{
		{expect: idle},
		{expect: env._T(ui.MsgScanMiss, "", "", "")},
		{expect: idle, inev: env._Stop},
		{},
	}
	uiTestWait(t, env, steps)
}

func TestScanNoFinger(t *testing.T) {
	t.Parallel()

	ctx, g := state_new.NewTestContext(t, "", testConfIdle)
	env := &tenv{ctx: ctx, g: g}
	uiTestSetup(t, env, ui.StateIdle, ui.StateStop)
	env.sensor.ScriptCapture(fingerprint.ErrNoFinger, fingerprint.ErrNoFinger)
	go env.ui.Loop(ctx)

	// empty window never interrupts the clock
	idle := env._T("hello attend", "2020-02-03", "04:05:06", ui.MsgIdleHint)
	steps := []step{
		{expect: idle},
		{expect: idle},
		{expect: idle, inev: env._Stop},
		{},
	}
	uiTestWait(t, env, steps)
}

func TestBrokenServiceRecovery(t *testing.T) {
	t.Parallel()

	ctx, g := state_new.NewTestContext(t, "", `
ui {
	front {
		msg_broken = "CALL STAFF"
		dwell_ms = 30
		reset_sec = 5
	}
}`)
	env := &tenv{ctx: ctx, g: g}
	uiTestSetup(t, env, ui.StateBroken, ui.StateStop)
	env.sensor.ScriptCapture(fingerprint.ErrNoFinger)
	go env.ui.Loop(ctx)

	idle := env._T("ATTENDANCE", "2020-02-03", "04:05:06", ui.MsgIdleHint)
	steps := []step{
		{expect: env._T("CALL STAFF", "", "", ""), inev: env._KeyService},
		{expect: idle, inev: env._Stop},
		{},
	}
	uiTestWait(t, env, steps)
}
