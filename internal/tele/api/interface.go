package tele_api

import (
	"context"
	"sync"

	tele_config "github.com/fptk/fpterm/internal/tele/config"
	"github.com/fptk/fpterm/log2"
)

//go:generate protoc --go_out=./ tele.proto

type Teler interface {
	Init(context.Context, *log2.Log, tele_config.Config) error
	Close()
	State(State)
	Error(error)
	Scan(Telemetry_Scan)
	RosterChange(Telemetry_Roster)
	StatModify(func(*Stat))
}

// Low priority counters, sent piggyback on other telemetry or on
// remote report command.
type Stat struct { //nolint:maligned
	sync.Mutex
	Telemetry_Stat
}

func (self *Stat) Locked_Reset() {
	self.Telemetry_Stat.Reset()
}
