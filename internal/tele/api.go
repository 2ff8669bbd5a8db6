package tele

import (
	tele_api "github.com/fptk/fpterm/internal/tele/api"
)

const logMsgDisabled = "tele disabled"

func (self *Tele) State(s tele_api.State) {
	if !self.enabled {
		self.log.Debugf(logMsgDisabled)
		return
	}

	self.log.Infof("tele.State s=%v", s)
	self.stateCh <- s
}

func (self *Tele) Error(e error) {
	if !self.enabled {
		self.log.Debugf(logMsgDisabled)
		return
	}

	self.log.Errorf("tele.Error e=%v", e)
	tmerr := tele_api.Telemetry_Error{
		Message: e.Error(),
	}
	if err := self.qpushTelemetry(&tele_api.Telemetry{Error: &tmerr}); err != nil {
		self.log.Errorf("CRITICAL qpushTelemetry telemetry_error=%#v err=%v", tmerr, err)
	}
}

// Scan reports a fingerprint match attempt, both hits and misses.
func (self *Tele) Scan(s tele_api.Telemetry_Scan) {
	if !self.enabled {
		self.log.Debugf(logMsgDisabled)
		return
	}
	self.stat.Lock()
	if s.Matched {
		self.stat.ScanOk++
	} else {
		self.stat.ScanMiss++
	}
	self.stat.Unlock()
	if err := self.qpushTelemetry(&tele_api.Telemetry{Scan: &s}); err != nil {
		self.log.Errorf("CRITICAL scan=%#v err=%v", s, err)
	}
}

// RosterChange reports enroll, delete and wipe operations.
func (self *Tele) RosterChange(r tele_api.Telemetry_Roster) {
	if !self.enabled {
		self.log.Debugf(logMsgDisabled)
		return
	}
	self.stat.Lock()
	switch r.Op {
	case "enroll":
		self.stat.Enroll++
	case "delete":
		self.stat.Delete++
	case "wipe":
		self.stat.Wipe++
	}
	self.stat.Unlock()
	if err := self.qpushTelemetry(&tele_api.Telemetry{Roster: &r}); err != nil {
		self.log.Errorf("CRITICAL roster=%#v err=%v", r, err)
	}
}

func (self *Tele) StatModify(fun func(s *tele_api.Stat)) {
	if !self.enabled {
		self.log.Debugf(logMsgDisabled)
		return
	}

	self.stat.Lock()
	fun(&self.stat)
	self.stat.Unlock()
}
