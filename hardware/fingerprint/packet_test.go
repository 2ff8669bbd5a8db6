package fingerprint

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/fptk/fpterm/helpers"
)

func TestPacketWire(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		payload []byte
		expect  string
	}{
		{"genimg", []byte{CmdGenImage}, "ef01ffffffff010003010005"},
		{"img2tz1", []byte{CmdImageToTz, 1}, "ef01ffffffff01000402010008"},
		{"search", []byte{CmdSearch, 1, 0, 0, 0, MaxSlots}, "ef01ffffffff01000804010000007f008d"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			p := NewCommand(DefaultAddress, c.payload...)
			assert.Equal(t, helpers.MustHex(c.expect), p.Bytes())

			var back Packet
			require.NoError(t, back.Parse(p.Bytes()))
			assert.Equal(t, DefaultAddress, back.Address)
			assert.Equal(t, PacketCommand, back.ID)
			assert.Equal(t, c.payload, back.Payload())
		})
	}
}

func TestPacketParseErrors(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		input  string
		errStr string
	}{
		{"short", "ef01", "length=2 < min=11 not valid"},
		{"start", "aa55ffffffff010003010005", "start=aa55 not valid"},
		{"truncated", "ef01ffffffff010009040100", "claims length=9 > input=12 not valid"},
		{"checksum", "ef01ffffffff010003010006", "checksum=0006 actual=0005 not valid"},
		{"id", "ef01ffffffff0f0003010013", "id=0f not valid"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			var p Packet
			err := p.Parse(helpers.MustHex(c.input))
			require.Error(t, err)
			assert.True(t, errors.IsNotValid(err), "err=%v", err)
			assert.Contains(t, err.Error(), c.errStr)
		})
	}
}

func TestAckStatus(t *testing.T) {
	t.Parallel()
	ack := NewPacket(DefaultAddress, PacketAck, byte(StatusNoFinger))
	var p Packet
	require.NoError(t, p.Parse(ack.Bytes()))
	assert.Equal(t, StatusNoFinger, p.Status())
	assert.Equal(t, ErrNoFinger, statusToError(p.Status()))

	ok := NewPacket(DefaultAddress, PacketAck, byte(StatusOK))
	require.NoError(t, p.Parse(ok.Bytes()))
	assert.NoError(t, statusToError(p.Status()))

	// status on a command packet means nothing
	cmd := NewCommand(DefaultAddress, CmdGenImage)
	require.NoError(t, p.Parse(cmd.Bytes()))
	assert.Equal(t, StatusPacketError, p.Status())
}

func TestMockSensorEnrollFlow(t *testing.T) {
	t.Parallel()
	s := NewMockSensor()

	exists, err := s.TemplateExists(5)
	require.NoError(t, err)
	assert.False(t, exists)

	// model before two captures must fail
	require.NoError(t, s.CaptureImage())
	require.NoError(t, s.ToTemplate(1))
	require.Error(t, s.BuildModel())

	require.NoError(t, s.CaptureImage())
	require.NoError(t, s.ToTemplate(1))
	require.NoError(t, s.CaptureImage())
	require.NoError(t, s.ToTemplate(2))
	require.NoError(t, s.BuildModel())
	require.NoError(t, s.StoreModel(5))

	exists, err = s.TemplateExists(5)
	require.NoError(t, err)
	assert.True(t, exists)

	s.ScriptSearch(5, nil)
	slot, err := s.Search()
	require.NoError(t, err)
	assert.Equal(t, uint8(5), slot)
	_, err = s.Search()
	assert.Equal(t, ErrNotFound, err)

	require.NoError(t, s.DeleteModel(5))
	exists, err = s.TemplateExists(5)
	require.NoError(t, err)
	assert.False(t, exists)
}
