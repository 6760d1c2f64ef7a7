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

// Package device keeps the per-switch state needed to encode and decode match
// structures: the negotiated protocol version and the mastership role.
package device

import (
	"fmt"
	"sync"
	"time"

	"github.com/superkkt/ofmatch/election"
	"github.com/superkkt/ofmatch/match"
	"github.com/superkkt/ofmatch/openflow"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

var (
	logger = logging.MustGetLogger("device")
)

var (
	ErrNotMaster = errors.New("not a master controller for the device")
)

const (
	unknownCacheSize       = 1024
	unknownCacheExpiration = 10 * time.Minute
)

// Config holds the decoding policies of a device.
type Config struct {
	UnknownField        match.Policy
	UnknownExperimenter match.Policy
}

// Context is one connected switch.
type Context struct {
	id      uint64
	version uint8
	decoder match.Decoder
	encoder *match.Encoder
	unknown *unknownCache

	mutex sync.Mutex
	role  election.Role
}

// New returns the context of the switch id that negotiated version. The role
// is slave until the first OnRoleChanged call.
func New(id uint64, version uint8, reg *match.Registry, conf Config) (*Context, error) {
	if reg == nil {
		panic("registry is nil")
	}
	if version != openflow.OF10_VERSION && version != openflow.OF13_VERSION {
		return nil, errors.Wrapf(openflow.ErrUnsupportedVersion, "0x%02x", version)
	}

	c := &Context{
		id:      id,
		version: version,
		encoder: match.NewEncoder(reg),
		unknown: newUnknownCache(unknownCacheSize, unknownCacheExpiration),
		role:    election.RoleSlave,
	}
	c.decoder = match.Decoder{
		Registry:            reg,
		UnknownField:        conf.UnknownField,
		UnknownExperimenter: conf.UnknownExperimenter,
		Observer:            c,
	}

	return c, nil
}

func (r *Context) ID() uint64 {
	return r.id
}

// Version returns the negotiated OpenFlow version.
func (r *Context) Version() uint8 {
	return r.version
}

func (r *Context) Role() election.Role {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.role
}

func (r *Context) String() string {
	return fmt.Sprintf("Device(id=%016x, version=%v, role=%v)", r.id, openflow.VersionString(r.version), r.Role())
}

// OnRoleChanged implements election.RoleListener.
func (r *Context) OnRoleChanged(deviceID uint64, role election.Role) {
	if deviceID != r.id {
		logger.Errorf("role change for another device: expected=%016x, actual=%016x", r.id, deviceID)
		return
	}

	r.mutex.Lock()
	prev := r.role
	r.role = role
	r.mutex.Unlock()

	if prev != role {
		logger.Infof("device role has been changed: id=%016x, prev=%v, new=%v", r.id, prev, role)
	}
}

// OnUnknownField implements match.UnknownObserver.
func (r *Context) OnUnknownField(key match.Key, length int) {
	if r.unknown.Mark(key) {
		logger.Warningf("unknown match field from the device: id=%016x, key=%v, length=%v", r.id, key, length)
	}
}

// DecodeMatch decodes a match received from the device. OpenFlow 1.3 devices
// send an ofp_match structure and OpenFlow 1.0 devices a bare Nicira
// extended match list.
func (r *Context) DecodeMatch(data []byte) ([]match.Field, error) {
	if r.version == openflow.OF13_VERSION {
		return r.decoder.DecodeMatch(r.version, data)
	}

	return r.decoder.DecodeList(r.version, data)
}

// EncodeMatch encodes a match to be sent to the device. It fails with
// ErrNotMaster unless this controller is the master of the device.
func (r *Context) EncodeMatch(fields []match.Field) ([]byte, error) {
	if r.Role() != election.RoleMaster {
		return nil, ErrNotMaster
	}
	if r.version == openflow.OF13_VERSION {
		return r.encoder.MarshalMatch(r.version, fields)
	}

	return r.encoder.MarshalList(r.version, fields)
}
