package ui_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/fptk/fpterm/hardware/fingerprint"
	state_new "github.com/fptk/fpterm/internal/state/new"
	"github.com/fptk/fpterm/internal/types"
	"github.com/fptk/fpterm/internal/ui"
)

func TestEnrollHappy(t *testing.T) {
	t.Parallel()

	ctx, g := state_new.NewTestContext(t, "", testConfIdle)
	env := &tenv{ctx: ctx, g: g}
	uiTestSetup(t, env, ui.StateIdle, ui.StateStop)
	// first window poll captures, second reports the finger is gone
	env.sensor.ScriptCapture(nil, fingerprint.ErrNoFinger)
	go env.ui.Loop(ctx)

	idle := env._T("hello attend", "2020-02-03", "04:05:06", ui.MsgIdleHint)
	echo := func(s string) string {
		return env._T(ui.MsgEnrollTitle, ui.MsgEnterNumber, fmt.Sprintf(ui.MsgNumberEcho, s), "")
	}
	steps := []step{
		{expect: idle, inev: env._Key('A')},
		{expect: echo(""), inev: env._Key('7')},
		{expect: echo("7"), inev: env._Key('#')},
		{expect: env._T(ui.MsgPlaceFinger, "", "", "")},
		{expect: env._T(ui.MsgRemoveFinger, "", "", "")},
		{expect: env._T(ui.MsgPlaceAgain, "", "", "")},
		{expect: env._T(ui.MsgEnrolled, "NO:7", "", "")},
		{expect: idle, inev: env._Stop},
		{},
	}
	uiTestWait(t, env, steps)

	assert.True(t, env.sensor.HasTemplate(0))
	slot, found := g.Roster.Find("7")
	require.True(t, found)
	assert.Equal(t, uint8(0), slot)
}

func TestEnrollDuplicate(t *testing.T) {
	t.Parallel()

	ctx, g := state_new.NewTestContext(t, "", testConfIdle)
	require.NoError(t, g.Roster.Store(3, "77"))
	env := &tenv{ctx: ctx, g: g}
	uiTestSetup(t, env, ui.StateIdle, ui.StateStop)
	go env.ui.Loop(ctx)

	idle := env._T("hello attend", "2020-02-03", "04:05:06", ui.MsgIdleHint)
	echo := func(s string) string {
		return env._T(ui.MsgEnrollTitle, ui.MsgEnterNumber, fmt.Sprintf(ui.MsgNumberEcho, s), "")
	}
	steps := []step{
		{expect: idle, inev: env._Key('A')},
		{expect: echo(""), inev: env._Key('7')},
		{expect: echo("7"), inev: env._Key('7')},
		{expect: echo("77"), inev: env._Key('#')},
		{expect: env._T(ui.MsgDuplicate, "", "", "")},
		{expect: idle, inev: env._Stop},
		{},
	}
	uiTestWait(t, env, steps)
}

func TestEnrollMemoryFull(t *testing.T) {
	t.Parallel()

	ctx, g := state_new.NewTestContext(t, "", testConfIdle)
	for i := uint8(0); i < 127; i++ {
		require.NoError(t, g.Roster.Store(i, fmt.Sprintf("9%03d", i)))
	}
	env := &tenv{ctx: ctx, g: g}
	uiTestSetup(t, env, ui.StateIdle, ui.StateStop)
	go env.ui.Loop(ctx)

	idle := env._T("hello attend", "2020-02-03", "04:05:06", ui.MsgIdleHint)
	echo := func(s string) string {
		return env._T(ui.MsgEnrollTitle, ui.MsgEnterNumber, fmt.Sprintf(ui.MsgNumberEcho, s), "")
	}
	steps := []step{
		{expect: idle, inev: env._Key('A')},
		{expect: echo(""), inev: env._Key('5')},
		{expect: echo("5"), inev: env._Key('#')},
		{expect: env._T(ui.MsgMemoryFull, "", "", "")},
		{expect: idle, inev: env._Stop},
		{},
	}
	uiTestWait(t, env, steps)
}

func TestEnrollScansDiffer(t *testing.T) {
	t.Parallel()

	ctx, g := state_new.NewTestContext(t, "", testConfIdle)
	env := &tenv{ctx: ctx, g: g}
	uiTestSetup(t, env, ui.StateIdle, ui.StateStop)
	env.sensor.ScriptCapture(nil, fingerprint.ErrNoFinger)
	env.sensor.ScriptBuild(fingerprint.StatusFeatureFail)
	go env.ui.Loop(ctx)

	idle := env._T("hello attend", "2020-02-03", "04:05:06", ui.MsgIdleHint)
	echo := func(s string) string {
		return env._T(ui.MsgEnrollTitle, ui.MsgEnterNumber, fmt.Sprintf(ui.MsgNumberEcho, s), "")
	}
	steps := []step{
		{expect: idle, inev: env._Key('A')},
		{expect: echo(""), inev: env._Key('9')},
		{expect: echo("9"), inev: env._Key('#')},
		{expect: env._T(ui.MsgPlaceFinger, "", "", "")},
		{expect: env._T(ui.MsgRemoveFinger, "", "", "")},
		{expect: env._T(ui.MsgPlaceAgain, "", "", "")},
		{expect: env._T(ui.MsgMismatch, "", "", "")},
		{expect: idle, inev: env._Stop},
		{},
	}
	uiTestWait(t, env, steps)

	assert.False(t, env.sensor.HasTemplate(0))
	_, found := g.Roster.Find("9")
	assert.False(t, found)
}

func TestEnrollCancel(t *testing.T) {
	t.Parallel()

	ctx, g := state_new.NewTestContext(t, "", testConfIdle)
	env := &tenv{ctx: ctx, g: g}
	uiTestSetup(t, env, ui.StateIdle, ui.StateStop)
	go env.ui.Loop(ctx)

	idle := env._T("hello attend", "2020-02-03", "04:05:06", ui.MsgIdleHint)
	echo := env._T(ui.MsgEnrollTitle, ui.MsgEnterNumber, fmt.Sprintf(ui.MsgNumberEcho, ""), "")
	steps := []step{
		{expect: idle, inev: env._Key('A')},
		{expect: echo, inev: env._Key('C')},
		{expect: idle, inev: env._Stop},
		{},
	}
	uiTestWait(t, env, steps)
}

func TestEnrollStrayKeys(t *testing.T) {
	t.Parallel()

	// tight capture window, chatter must not count against it
	const conf = `
ui {
	front {
		msg_intro = "hello attend"
		dwell_ms = 30
		reset_sec = 5
		enroll_sec = 1
	}
}`
	ctx, g := state_new.NewTestContext(t, "", conf)
	env := &tenv{ctx: ctx, g: g}
	uiTestSetup(t, env, ui.StateIdle, ui.StateStop)
	env.sensor.ScriptCapture(nil, fingerprint.ErrNoFinger)
	go env.ui.Loop(ctx)

	chatter := func() {
		for _, k := range []byte("12345") {
			env.g.Hardware.Input.Emit(env._Key(types.InputKey(k)).Input)
		}
	}
	idle := env._T("hello attend", "2020-02-03", "04:05:06", ui.MsgIdleHint)
	echo := func(s string) string {
		return env._T(ui.MsgEnrollTitle, ui.MsgEnterNumber, fmt.Sprintf(ui.MsgNumberEcho, s), "")
	}
	steps := []step{
		{expect: idle, inev: env._Key('A')},
		{expect: echo(""), inev: env._Key('7')},
		{expect: echo("7"), inev: env._Key('#')},
		{expect: env._T(ui.MsgPlaceFinger, "", "", "")},
		{fun: chatter},
		{expect: env._T(ui.MsgRemoveFinger, "", "", "")},
		{expect: env._T(ui.MsgPlaceAgain, "", "", "")},
		{expect: env._T(ui.MsgEnrolled, "NO:7", "", "")},
		{expect: idle, inev: env._Stop},
		{},
	}
	uiTestWait(t, env, steps)

	assert.True(t, env.sensor.HasTemplate(0))
}

func TestNumberEntryCap(t *testing.T) {
	t.Parallel()

	ctx, g := state_new.NewTestContext(t, "", testConfIdle)
	env := &tenv{ctx: ctx, g: g}
	uiTestSetup(t, env, ui.StateIdle, ui.StateStop)
	go env.ui.Loop(ctx)

	idle := env._T("hello attend", "2020-02-03", "04:05:06", ui.MsgIdleHint)
	echo := func(s string) string {
		return env._T(ui.MsgEnrollTitle, ui.MsgEnterNumber, fmt.Sprintf(ui.MsgNumberEcho, s), "")
	}
	steps := []step{
		{expect: idle, inev: env._Key('A')},
		{expect: echo(""), inev: env._Key('1')},
		{expect: echo("1"), inev: env._Key('2')},
		{expect: echo("12"), inev: env._Key('3')},
		{expect: echo("123"), inev: env._Key('4')},
		{expect: echo("1234"), inev: env._Key('5')},
		{expect: echo("12345"), inev: env._Key('6')},
		{expect: echo("123456"), inev: env._Key('7')},
		{expect: echo("1234567"), inev: env._Key('8')},
		// record is full, the ninth digit is dropped
		{expect: echo("12345678"), inev: env._Key('9')},
		{expect: echo("12345678"), inev: env._Key('C')},
		{expect: idle, inev: env._Stop},
		{},
	}
	uiTestWait(t, env, steps)
}

func TestDeleteHappy(t *testing.T) {
	t.Parallel()

	ctx, g := state_new.NewTestContext(t, "", testConfIdle)
	require.NoError(t, g.Roster.Store(2, "42"))
	env := &tenv{ctx: ctx, g: g}
	uiTestSetup(t, env, ui.StateIdle, ui.StateStop)
	env.sensor.SetTemplate(2, true)
	go env.ui.Loop(ctx)

	idle := env._T("hello attend", "2020-02-03", "04:05:06", ui.MsgIdleHint)
	echo := func(s string) string {
		return env._T(ui.MsgDeleteTitle, ui.MsgEnterNumber, fmt.Sprintf(ui.MsgNumberEcho, s), "")
	}
	steps := []step{
		{expect: idle, inev: env._Key('B')},
		{expect: echo(""), inev: env._Key('4')},
		{expect: echo("4"), inev: env._Key('2')},
		{expect: echo("42"), inev: env._Key('#')},
		{expect: env._T(ui.MsgDeleted, "NO:42", "", "")},
		{expect: idle, inev: env._Stop},
		{},
	}
	uiTestWait(t, env, steps)

	assert.False(t, env.sensor.HasTemplate(2))
	_, found := g.Roster.Find("42")
	assert.False(t, found)
}

func TestDeleteUnknown(t *testing.T) {
	t.Parallel()

	ctx, g := state_new.NewTestContext(t, "", testConfIdle)
	env := &tenv{ctx: ctx, g: g}
	uiTestSetup(t, env, ui.StateIdle, ui.StateStop)
	go env.ui.Loop(ctx)

	idle := env._T("hello attend", "2020-02-03", "04:05:06", ui.MsgIdleHint)
	echo := func(s string) string {
		return env._T(ui.MsgDeleteTitle, ui.MsgEnterNumber, fmt.Sprintf(ui.MsgNumberEcho, s), "")
	}
	steps := []step{
		{expect: idle, inev: env._Key('B')},
		{expect: echo(""), inev: env._Key('9')},
		{expect: echo("9"), inev: env._Key('#')},
		{expect: env._T(ui.MsgUnknown, "", "", "")},
		{expect: idle, inev: env._Stop},
		{},
	}
	uiTestWait(t, env, steps)
}

func TestNumberBackspace(t *testing.T) {
	t.Parallel()

	ctx, g := state_new.NewTestContext(t, "", testConfIdle)
	require.NoError(t, g.Roster.Store(6, "13"))
	env := &tenv{ctx: ctx, g: g}
	uiTestSetup(t, env, ui.StateIdle, ui.StateStop)
	env.sensor.SetTemplate(6, true)
	go env.ui.Loop(ctx)

	idle := env._T("hello attend", "2020-02-03", "04:05:06", ui.MsgIdleHint)
	echo := func(s string) string {
		return env._T(ui.MsgDeleteTitle, ui.MsgEnterNumber, fmt.Sprintf(ui.MsgNumberEcho, s), "")
	}
	steps := []step{
		{expect: idle, inev: env._Key('B')},
		{expect: echo(""), inev: env._Key('*')}, // backspace on empty buffer
		{expect: echo(""), inev: env._Key('1')},
		{expect: echo("1"), inev: env._Key('7')},
		{expect: echo("17"), inev: env._Key('*')},
		{expect: echo("1"), inev: env._Key('3')},
		{expect: echo("13"), inev: env._Key('#')},
		{expect: env._T(ui.MsgDeleted, "NO:13", "", "")},
		{expect: idle, inev: env._Stop},
		{},
	}
	uiTestWait(t, env, steps)
}

func TestWipeSweep(t *testing.T) {
	t.Parallel()

	ctx, g := state_new.NewTestContext(t, "", testConfIdle)
	require.NoError(t, g.Roster.Store(0, "1"))
	require.NoError(t, g.Roster.Store(1, "2"))
	env := &tenv{ctx: ctx, g: g}
	uiTestSetup(t, env, ui.StateIdle, ui.StateStop)
	env.sensor.SetTemplate(0, true)
	env.sensor.SetTemplate(1, true)
	go env.ui.Loop(ctx)

	idle := env._T("hello attend", "2020-02-03", "04:05:06", ui.MsgIdleHint)
	steps := []step{
		{expect: idle, inev: env._Key('D')},
		{expect: env._T(ui.MsgWipeAsk, ui.MsgWipeHint, "", ""), inev: env._Key('D')},
		{expect: env._T("PLEASE WAIT", "", "", "")},
		{expect: env._T(ui.MsgWiped, "", "", "")},
		{expect: idle, inev: env._Stop},
		{},
	}
	uiTestWait(t, env, steps)

	assert.Equal(t, 0, g.Roster.Used())
	assert.False(t, env.sensor.HasTemplate(0))
	assert.False(t, env.sensor.HasTemplate(1))
}

func TestWipeSensorError(t *testing.T) {
	t.Parallel()

	ctx, g := state_new.NewTestContext(t, "", testConfIdle)
	require.NoError(t, g.Roster.Store(0, "1"))
	env := &tenv{ctx: ctx, g: g}
	uiTestSetup(t, env, ui.StateIdle, ui.StateStop)
	env.sensor.SetTemplate(0, true)
	env.sensor.ScriptEmpty(fingerprint.StatusFlashError)
	go env.ui.Loop(ctx)

	idle := env._T("hello attend", "2020-02-03", "04:05:06", ui.MsgIdleHint)
	steps := []step{
		{expect: idle, inev: env._Key('D')},
		{expect: env._T(ui.MsgWipeAsk, ui.MsgWipeHint, "", ""), inev: env._Key('D')},
		{expect: env._T("PLEASE WAIT", "", "", "")},
		{expect: env._T("ERROR", "", "", "")},
		{expect: idle, inev: env._Stop},
		{},
	}
	uiTestWait(t, env, steps)

	// records are swept even when the sensor erase fails
	assert.Equal(t, 0, g.Roster.Used())
	assert.True(t, env.sensor.HasTemplate(0))
}

func TestWipeConfirmTimeout(t *testing.T) {
	t.Parallel()

	const conf = `
ui {
	front {
		msg_intro = "hello attend"
		dwell_ms = 30
		reset_sec = 5
		wipe_confirm_ms = 30
	}
}`
	ctx, g := state_new.NewTestContext(t, "", conf)
	require.NoError(t, g.Roster.Store(0, "1"))
	env := &tenv{ctx: ctx, g: g}
	uiTestSetup(t, env, ui.StateIdle, ui.StateStop)
	env.sensor.SetTemplate(0, true)
	go env.ui.Loop(ctx)

	idle := env._T("hello attend", "2020-02-03", "04:05:06", ui.MsgIdleHint)
	steps := []step{
		{expect: idle, inev: env._Key('D')},
		// second 'D' never comes, the confirm window expires on its own
		{expect: env._T(ui.MsgWipeAsk, ui.MsgWipeHint, "", "")},
		{expect: idle, inev: env._Stop},
		{},
	}
	uiTestWait(t, env, steps)

	assert.Equal(t, 1, g.Roster.Used())
	assert.True(t, env.sensor.HasTemplate(0))
}

func TestWipeAbort(t *testing.T) {
	t.Parallel()

	ctx, g := state_new.NewTestContext(t, "", testConfIdle)
	require.NoError(t, g.Roster.Store(0, "1"))
	env := &tenv{ctx: ctx, g: g}
	uiTestSetup(t, env, ui.StateIdle, ui.StateStop)
	go env.ui.Loop(ctx)

	idle := env._T("hello attend", "2020-02-03", "04:05:06", ui.MsgIdleHint)
	steps := []step{
		{expect: idle, inev: env._Key('D')},
		{expect: env._T(ui.MsgWipeAsk, ui.MsgWipeHint, "", ""), inev: env._Key('C')},
		{expect: idle, inev: env._Stop},
		{},
	}
	uiTestWait(t, env, steps)

	assert.Equal(t, 1, g.Roster.Used())
}
