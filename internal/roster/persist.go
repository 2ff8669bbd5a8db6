package roster

import (
	"io"
	"path/filepath"
	"time"

	"github.com/juju/errors"
	"github.com/temoto/extremofile"
	"github.com/fptk/fpterm/log2"
)

type storage interface {
	Read() ([]byte, error)
	io.Writer
}

// Persistent is a Roster flushed to crash safe storage after every
// mutation, same promise the record table makes on a terminal with
// battery-less power. With empty root it degrades to memory only.
type Persistent struct {
	Roster
	log     *log2.Log
	storage storage
}

func NewPersistent(root string, log *log2.Log) *Persistent {
	p := &Persistent{log: log}
	if root == "" {
		p.log.Debugf("roster persist disabled")
		return p
	}
	p.storage = extremofile.New(extremofile.Config{
		Dir:      filepath.Join(root, "roster"),
		DirPerm:  0755,
		FilePerm: 0644,
	})
	return p
}

func (self *Persistent) Init() error {
	if self.storage == nil {
		return nil
	}
	tbegin := time.Now()
	b, err := self.storage.Read()
	self.log.Debugf("roster storage.read duration=%v", time.Since(tbegin))
	if b == nil {
		// first boot, nothing stored yet
		return nil
	}
	if err != nil {
		self.log.Errorf("roster ignore non-critical storage err=%v", err)
	}
	return errors.Annotate(self.UnmarshalBinary(b), "roster load")
}

func (self *Persistent) Store(slot uint8, serviceNumber string) error {
	if err := self.Roster.Store(slot, serviceNumber); err != nil {
		return err
	}
	return self.flush()
}

func (self *Persistent) Clear(slot uint8) error {
	if err := self.Roster.Clear(slot); err != nil {
		return err
	}
	return self.flush()
}

func (self *Persistent) Wipe() error {
	self.Roster.Wipe()
	return self.flush()
}

func (self *Persistent) flush() error {
	if self.storage == nil {
		return nil
	}
	b, err := self.MarshalBinary()
	if err == nil {
		tbegin := time.Now()
		_, err = self.storage.Write(b)
		self.log.Debugf("roster storage.write duration=%v", time.Since(tbegin))
	}
	return errors.Annotate(err, "roster store")
}
