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

package api

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/superkkt/ofmatch/device"
	"github.com/superkkt/ofmatch/match"
	"github.com/superkkt/ofmatch/openflow"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

type deviceInfo struct {
	ID      string `json:"id"`
	Version string `json:"version"`
	Role    string `json:"role"`
}

func newDeviceInfo(c *device.Context) deviceInfo {
	return deviceInfo{
		ID:      fmt.Sprintf("0x%016x", c.ID()),
		Version: openflow.VersionString(c.Version()),
		Role:    c.Role().String(),
	}
}

// parseDPID accepts a decimal or 0x prefixed hexadecimal datapath id.
func parseDPID(s string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid device id: %v", s)
	}

	return id, nil
}

func (r *Server) listDevice(w rest.ResponseWriter, req *rest.Request) {
	logger.Debugf("device list request from %v", req.RemoteAddr)

	devices := r.Devices.Devices()
	result := make([]deviceInfo, len(devices))
	for i, v := range devices {
		result[i] = newDeviceInfo(v)
	}

	w.WriteJson(Response{Status: StatusOkay, Data: result})
}

type addDeviceParam struct {
	ID      uint64
	Version uint8
}

func (r *addDeviceParam) UnmarshalJSON(data []byte) error {
	v := struct {
		ID      string `json:"id"`
		Version string `json:"version"`
	}{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	id, err := parseDPID(v.ID)
	if err != nil {
		return err
	}
	version, err := openflow.ParseVersion(v.Version)
	if err != nil {
		return err
	}
	r.ID = id
	r.Version = version

	return nil
}

func (r *Server) addDevice(w rest.ResponseWriter, req *rest.Request) {
	p := new(addDeviceParam)
	if err := req.DecodeJsonPayload(p); err != nil {
		w.WriteJson(Response{Status: StatusInvalidParameter, Message: err.Error()})
		return
	}
	logger.Debugf("add device request from %v: %v", req.RemoteAddr, spew.Sdump(p))

	c, err := r.Devices.Add(p.ID, p.Version)
	if err != nil {
		w.WriteJson(Response{Status: StatusInvalidParameter, Message: err.Error()})
		return
	}

	w.WriteJson(Response{Status: StatusOkay, Data: newDeviceInfo(c)})
}

func (r *Server) removeDevice(w rest.ResponseWriter, req *rest.Request) {
	id, err := parseDPID(req.PathParam("id"))
	if err != nil {
		w.WriteJson(Response{Status: StatusInvalidParameter, Message: err.Error()})
		return
	}
	logger.Debugf("remove device request from %v: id=%016x", req.RemoteAddr, id)

	if r.Devices.Remove(id) == false {
		w.WriteJson(Response{Status: StatusUnknownDevice, Message: fmt.Sprintf("unknown device: 0x%016x", id)})
		return
	}

	w.WriteJson(Response{Status: StatusOkay})
}

// lookupDevice writes an error response and returns nil if the path does not
// name a known device.
func (r *Server) lookupDevice(w rest.ResponseWriter, req *rest.Request) *device.Context {
	id, err := parseDPID(req.PathParam("id"))
	if err != nil {
		w.WriteJson(Response{Status: StatusInvalidParameter, Message: err.Error()})
		return nil
	}
	c, ok := r.Devices.Get(id)
	if !ok {
		w.WriteJson(Response{Status: StatusUnknownDevice, Message: fmt.Sprintf("unknown device: 0x%016x", id)})
		return nil
	}

	return c
}

func (r *Server) decodeDeviceMatch(w rest.ResponseWriter, req *rest.Request) {
	c := r.lookupDevice(w, req)
	if c == nil {
		return
	}

	v := struct {
		Data string `json:"data"`
	}{}
	if err := req.DecodeJsonPayload(&v); err != nil {
		w.WriteJson(Response{Status: StatusInvalidParameter, Message: err.Error()})
		return
	}
	data, err := hex.DecodeString(strings.Join(strings.Fields(v.Data), ""))
	if err != nil {
		w.WriteJson(Response{Status: StatusInvalidParameter, Message: fmt.Sprintf("invalid data: %v", err)})
		return
	}
	logger.Debugf("decode request for %v from %v: %x", c, req.RemoteAddr, data)

	fields, err := c.DecodeMatch(data)
	if err != nil {
		w.WriteJson(errorResponse(err))
		return
	}
	result := make([]string, len(fields))
	for i, f := range fields {
		result[i] = f.String()
	}

	w.WriteJson(Response{
		Status: StatusOkay,
		Data: struct {
			Fields []string `json:"fields"`
		}{
			Fields: result,
		},
	})
}

func (r *Server) encodeDeviceMatch(w rest.ResponseWriter, req *rest.Request) {
	c := r.lookupDevice(w, req)
	if c == nil {
		return
	}

	v := struct {
		Fields []string `json:"fields"`
	}{}
	if err := req.DecodeJsonPayload(&v); err != nil {
		w.WriteJson(Response{Status: StatusInvalidParameter, Message: err.Error()})
		return
	}
	fields, err := match.ParseList(strings.Join(v.Fields, ","))
	if err != nil {
		w.WriteJson(errorResponse(err))
		return
	}
	logger.Debugf("encode request for %v from %v: %v", c, req.RemoteAddr, match.FormatList(fields))

	data, err := c.EncodeMatch(fields)
	if err != nil {
		if errors.Cause(err) == device.ErrNotMaster {
			w.WriteJson(Response{Status: StatusServiceUnavailable, Message: err.Error()})
			return
		}
		w.WriteJson(errorResponse(err))
		return
	}

	w.WriteJson(Response{
		Status: StatusOkay,
		Data: struct {
			Data string `json:"data"`
		}{
			Data: hex.EncodeToString(data),
		},
	})
}
