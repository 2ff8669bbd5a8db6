package tele

import (
	"fmt"

	"github.com/golang/protobuf/proto"
	"github.com/juju/errors"
	tele_api "github.com/fptk/fpterm/internal/tele/api"
)

func (self *Tele) onCommandMessage(payload []byte) bool {
	cmd := new(tele_api.Command)
	err := proto.Unmarshal(payload, cmd)
	if err != nil {
		self.log.Errorf("tele command parse raw=%x err=%v", payload, err)
		return true
	}
	self.log.Debugf("tele command raw=%x task=%s", payload, cmd.String())
	self.dispatchCommand(cmd)
	return true
}

func (self *Tele) dispatchCommand(cmd *tele_api.Command) {
	var err error
	switch {
	case cmd.Report != nil:
		err = self.cmdReport(cmd)

	default:
		err = fmt.Errorf("unknown command=%#v", cmd)
		self.log.Errorf(err.Error())
	}
	self.CommandReplyErr(cmd, err)
}

// Flushes accumulated stat counters as a telemetry message.
func (self *Tele) cmdReport(cmd *tele_api.Command) error {
	return errors.Annotate(self.qpushTelemetry(&tele_api.Telemetry{}), "cmdReport")
}

func (self *Tele) CommandReplyErr(c *tele_api.Command, e error) {
	if !self.enabled {
		self.log.Debugf(logMsgDisabled)
		return
	}
	errText := ""
	if e != nil {
		errText = e.Error()
	}
	r := tele_api.Response{
		CommandId: c.Id,
		Error:     errText,
	}
	err := self.qpushCommandResponse(c, &r)
	if err != nil {
		self.log.Errorf("CRITICAL command=%#v response=%#v err=%v", c, r, err)
	}
}
