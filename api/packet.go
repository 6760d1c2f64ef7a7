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
	"strings"

	"github.com/superkkt/ofmatch/packet"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/davecgh/go-spew/spew"
)

type packetParam struct {
	InPort uint32
	Frame  []byte
}

func (r *packetParam) UnmarshalJSON(data []byte) error {
	v := struct {
		InPort uint32 `json:"in_port"`
		Frame  string `json:"frame"`
	}{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	frame, err := hex.DecodeString(strings.Join(strings.Fields(v.Frame), ""))
	if err != nil {
		return fmt.Errorf("invalid frame: %v", err)
	}
	if len(frame) == 0 {
		return fmt.Errorf("empty frame")
	}
	r.InPort = v.InPort
	r.Frame = frame

	return nil
}

// packetMatch returns the exact match fields of an Ethernet frame.
func (r *Server) packetMatch(w rest.ResponseWriter, req *rest.Request) {
	p := new(packetParam)
	if err := req.DecodeJsonPayload(p); err != nil {
		w.WriteJson(Response{Status: StatusInvalidParameter, Message: err.Error()})
		return
	}
	logger.Debugf("packet match request from %v: %v", req.RemoteAddr, spew.Sdump(p))

	fields, err := packet.ExactMatch(p.InPort, p.Frame)
	if err != nil {
		w.WriteJson(Response{Status: StatusInvalidParameter, Message: err.Error()})
		return
	}

	result := make([]string, len(fields))
	for i, v := range fields {
		result[i] = v.String()
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
