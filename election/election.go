/*
 * Cherry - An OpenFlow Controller
 *
 * Copyright (C) 2015 Samjung Data Service, Inc. All rights reserved.
 * Kitae Kim <superkkt@sds.co.kr>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation; either version 2 of the License, or
 * any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License along
 * with this program; if not, write to the Free Software Foundation, Inc.,
 * 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
 */

package election

import (
	"context"
	"crypto/sha256"
	"fmt"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/op/go-logging"
)

var (
	logger = logging.MustGetLogger("election")
)

const (
	interval = 1 * time.Second
)

// Role is the mastership role of this controller for a device.
type Role uint8

const (
	RoleSlave Role = iota
	RoleMaster
)

func (r Role) String() string {
	switch r {
	case RoleSlave:
		return "slave"
	case RoleMaster:
		return "master"
	default:
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
}

// RoleListener is notified whenever the role for a device changes.
type RoleListener interface {
	OnRoleChanged(deviceID uint64, role Role)
}

// Mastership reports the current role of this controller.
type Mastership interface {
	IsMaster() bool
	Register(deviceID uint64, l RoleListener)
	Unregister(deviceID uint64)
}

type Observer struct {
	uid      string
	db       Database
	interval time.Duration

	mutex     sync.Mutex
	master    bool
	listeners map[uint64]RoleListener
}

type Database interface {
	// Elect selects a new master as uid if there is a no existing master that has
	// been updated within expiration. elected will be true if this uid has been
	// elected as the new master or was already elected.
	Elect(uid string, expiration time.Duration) (elected bool, err error)
}

func New(db Database) *Observer {
	return &Observer{
		uid:       generateRandomUID(),
		db:        db,
		interval:  interval,
		listeners: make(map[uint64]RoleListener),
	}
}

func generateRandomUID() string {
	src := fmt.Sprintf("%v.%v.%v", time.Now().UnixNano(), os.Getpid(), rand.Int63())
	sum := sha256.Sum256([]byte(src))
	return fmt.Sprintf("%x", sum)
}

func (r *Observer) Run(ctx context.Context) error {
	logger.Debugf("starting an election observer: uid=%v", r.uid)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	// Infinite loop.
	for {
		// Wait the context cancels or the ticker rasises.
		select {
		case <-ctx.Done():
			logger.Debug("terminating the election observer...")
			return nil
		case <-ticker.C:
			elected, err := r.db.Elect(r.uid, r.interval*5)
			if err != nil {
				return err
			}

			prev, listeners := r.setMaster(elected)
			if prev == elected {
				continue
			}
			logger.Warningf("master controller has been changed: prev=%v, new=%v", prev, elected)
			notify(listeners, toRole(elected))
		}
	}
}

func toRole(master bool) Role {
	if master {
		return RoleMaster
	}

	return RoleSlave
}

func notify(listeners map[uint64]RoleListener, role Role) {
	for id, l := range listeners {
		l.OnRoleChanged(id, role)
	}
}

func (r *Observer) IsMaster() bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.master
}

// Register adds the listener for a device and notifies it of the current
// role. A previous listener of the same device is replaced.
func (r *Observer) Register(deviceID uint64, l RoleListener) {
	if l == nil {
		panic("listener is nil")
	}

	r.mutex.Lock()
	r.listeners[deviceID] = l
	role := toRole(r.master)
	r.mutex.Unlock()

	l.OnRoleChanged(deviceID, role)
}

func (r *Observer) Unregister(deviceID uint64) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.listeners, deviceID)
}

// setMaster updates the master flag and returns the previous one together
// with a snapshot of the listeners to be notified outside of the lock.
func (r *Observer) setMaster(value bool) (prev bool, listeners map[uint64]RoleListener) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	prev = r.master
	r.master = value
	listeners = make(map[uint64]RoleListener, len(r.listeners))
	for k, v := range r.listeners {
		listeners[k] = v
	}

	return prev, listeners
}

// Static is a Mastership that is always master. It serves standalone
// deployments without an election database.
type Static struct {
	mutex     sync.Mutex
	listeners map[uint64]RoleListener
}

func NewStatic() *Static {
	return &Static{listeners: make(map[uint64]RoleListener)}
}

func (r *Static) IsMaster() bool {
	return true
}

func (r *Static) Register(deviceID uint64, l RoleListener) {
	if l == nil {
		panic("listener is nil")
	}

	r.mutex.Lock()
	r.listeners[deviceID] = l
	r.mutex.Unlock()

	l.OnRoleChanged(deviceID, RoleMaster)
}

func (r *Static) Unregister(deviceID uint64) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.listeners, deviceID)
}
