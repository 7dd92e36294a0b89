// sstv-transmitter - transmit images over amateur radio as slow scan TV
//  Copyright (C) 2024, the sstv-transmitter authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/godbus/dbus"
	"github.com/godbus/dbus/introspect"
)

const (
	dbusName = "org.rpisstv.SSTVTransmitter"
	dbusPath = "/org/rpisstv/SSTVTransmitter"
)

type service struct {
	status  *status
	trigger chan<- struct{}
}

func startService(status *status, trigger chan<- struct{}) error {
	conn, err := dbus.SystemBus()
	if err != nil {
		return err
	}
	reply, err := conn.RequestName(dbusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return err
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return errors.New("name already taken")
	}

	s := &service{
		status:  status,
		trigger: trigger,
	}
	conn.Export(s, dbusPath, dbusName)
	conn.Export(genIntrospectable(s), dbusPath, "org.freedesktop.DBus.Introspectable")

	return nil
}

func genIntrospectable(v interface{}) introspect.Introspectable {
	node := &introspect.Node{
		Interfaces: []introspect.Interface{{
			Name:    dbusName,
			Methods: introspect.Methods(v),
		}},
	}
	return introspect.NewIntrospectable(node)
}

// TransmitNow asks the transmit loop to start a cycle without waiting
// out the current interval.
func (s *service) TransmitNow() *dbus.Error {
	select {
	case s.trigger <- struct{}{}:
	default:
		// A request is already pending.
	}
	return nil
}

// Status returns a one line summary of the last transmission.
func (s *service) Status() (string, *dbus.Error) {
	return s.status.Summary(), nil
}

func newStatus() *status {
	return &status{}
}

type status struct {
	mu          sync.Mutex
	cycles      int
	failures    int
	lastSuccess time.Time
	lastError   string
}

func (st *status) Record(err error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.cycles++
	if err != nil {
		st.failures++
		st.lastError = err.Error()
		return
	}
	st.lastSuccess = time.Now()
	st.lastError = ""
}

func (st *status) Summary() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.cycles == 0 {
		return "no transmissions yet"
	}
	if st.lastError != "" {
		return fmt.Sprintf("%d cycles, %d failed, last error: %s",
			st.cycles, st.failures, st.lastError)
	}
	return fmt.Sprintf("%d cycles, %d failed, last success: %s",
		st.cycles, st.failures, st.lastSuccess.Format(time.RFC3339))
}
