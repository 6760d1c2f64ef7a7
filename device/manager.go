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

package device

import (
	"sort"
	"sync"

	"github.com/superkkt/ofmatch/election"
	"github.com/superkkt/ofmatch/match"
)

// Manager keeps the contexts of the known switches and keeps their roles in
// sync with the mastership observer. It is safe for concurrent use.
type Manager struct {
	registry   *match.Registry
	conf       Config
	mastership election.Mastership

	mutex   sync.Mutex
	devices map[uint64]*Context
}

func NewManager(reg *match.Registry, conf Config, m election.Mastership) *Manager {
	if reg == nil {
		panic("registry is nil")
	}
	if m == nil {
		panic("mastership is nil")
	}

	return &Manager{
		registry:   reg,
		conf:       conf,
		mastership: m,
		devices:    make(map[uint64]*Context),
	}
}

// Add creates the context of the switch id that negotiated version,
// replacing the previous one if the switch reconnected. The new context
// learns the current role before Add returns.
func (r *Manager) Add(id uint64, version uint8) (*Context, error) {
	c, err := New(id, version, r.registry, r.conf)
	if err != nil {
		return nil, err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.devices[id]; ok {
		logger.Infof("replacing the context of a reconnected device: id=%016x", id)
		r.mastership.Unregister(id)
	}
	r.devices[id] = c
	r.mastership.Register(id, c)
	logger.Infof("device added: %v", c)

	return c, nil
}

// Remove forgets the switch id. It returns false if the switch is unknown.
func (r *Manager) Remove(id uint64) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	c, ok := r.devices[id]
	if !ok {
		return false
	}
	r.mastership.Unregister(id)
	delete(r.devices, id)
	logger.Infof("device removed: %v", c)

	return true
}

func (r *Manager) Get(id uint64) (*Context, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	c, ok := r.devices[id]
	return c, ok
}

// Devices returns the known switches ordered by id.
func (r *Manager) Devices() []*Context {
	r.mutex.Lock()
	result := make([]*Context, 0, len(r.devices))
	for _, v := range r.devices {
		result = append(result, v)
	}
	r.mutex.Unlock()

	sort.Slice(result, func(i, j int) bool { return result[i].ID() < result[j].ID() })

	return result
}
