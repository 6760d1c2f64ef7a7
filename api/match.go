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

	"github.com/superkkt/ofmatch/match"
	"github.com/superkkt/ofmatch/openflow"

	"github.com/ant0ine/go-json-rest/rest"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

type fieldInfo struct {
	Name         string   `json:"name"`
	Class        string   `json:"class"`
	Experimenter uint32   `json:"experimenter,omitempty"`
	Field        uint8    `json:"field"`
	Length       int      `json:"length"` // zero for variable length fields
	Kind         string   `json:"kind"`
	Maskable     bool     `json:"maskable"`
	Versions     []string `json:"versions"`
}

func (r *Server) listField(w rest.ResponseWriter, req *rest.Request) {
	logger.Debugf("field list request from %v", req.RemoteAddr)

	table := match.Descriptors()
	result := make([]fieldInfo, 0, len(table))
	for _, v := range table {
		versions := make([]string, len(v.Versions))
		for i, ver := range v.Versions {
			versions[i] = openflow.VersionString(ver)
		}
		result = append(result, fieldInfo{
			Name:         v.Name,
			Class:        v.Class.String(),
			Experimenter: v.Experimenter,
			Field:        v.Field,
			Length:       v.Length,
			Kind:         v.Kind.String(),
			Maskable:     v.Maskable,
			Versions:     versions,
		})
	}

	w.WriteJson(Response{Status: StatusOkay, Data: result})
}

type decodeParam struct {
	Version uint8
	Data    []byte
	Wrapped bool // Data is an ofp_match structure, not a bare entry list.
}

func (r *decodeParam) UnmarshalJSON(data []byte) error {
	v := struct {
		Version string `json:"version"`
		Data    string `json:"data"`
		Wrapped bool   `json:"wrapped"`
	}{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	version, err := openflow.ParseVersion(v.Version)
	if err != nil {
		return err
	}
	if v.Wrapped && version != openflow.OF13_VERSION {
		return fmt.Errorf("ofp_match is not supported in OpenFlow %v", openflow.VersionString(version))
	}
	b, err := hex.DecodeString(strings.Join(strings.Fields(v.Data), ""))
	if err != nil {
		return fmt.Errorf("invalid data: %v", err)
	}
	r.Version = version
	r.Data = b
	r.Wrapped = v.Wrapped

	return nil
}

type unknownEntry struct {
	Class        string `json:"class"`
	Experimenter uint32 `json:"experimenter,omitempty"`
	Field        uint8  `json:"field"`
	HasMask      bool   `json:"has_mask"`
	Payload      string `json:"payload"`
}

type decodeResult struct {
	Fields  []string       `json:"fields"`
	Unknown []unknownEntry `json:"unknown,omitempty"`
}

func (r *Server) decode(w rest.ResponseWriter, req *rest.Request) {
	p := new(decodeParam)
	if err := req.DecodeJsonPayload(p); err != nil {
		w.WriteJson(Response{Status: StatusInvalidParameter, Message: err.Error()})
		return
	}
	logger.Debugf("decode request from %v: %v", req.RemoteAddr, spew.Sdump(p))

	decoder := match.NewDecoder(r.Registry)
	decoder.UnknownField = r.UnknownField
	decoder.UnknownExperimenter = r.UnknownExperimenter

	var scanner *match.Scanner
	var err error
	buf := openflow.NewBuffer(p.Data)
	if p.Wrapped {
		scanner, err = decoder.ScanMatch(p.Version, buf)
	} else {
		scanner, err = decoder.Scan(p.Version, buf, buf.Len())
	}
	if err != nil {
		w.WriteJson(errorResponse(err))
		return
	}
	entries, err := scanner.Entries()
	if err != nil {
		w.WriteJson(errorResponse(err))
		return
	}

	result := decodeResult{Fields: make([]string, 0, len(entries))}
	for _, v := range entries {
		if v.Known {
			result.Fields = append(result.Fields, v.Field.String())
			continue
		}
		result.Unknown = append(result.Unknown, unknownEntry{
			Class:        v.Header.Class.String(),
			Experimenter: v.Experimenter,
			Field:        v.Header.Field,
			HasMask:      v.Header.HasMask,
			Payload:      hex.EncodeToString(v.Payload),
		})
	}

	w.WriteJson(Response{Status: StatusOkay, Data: result})
}

type encodeParam struct {
	Version uint8
	Fields  []match.Field
	Wrapped bool
}

func (r *encodeParam) UnmarshalJSON(data []byte) error {
	v := struct {
		Version string   `json:"version"`
		Fields  []string `json:"fields"`
		Wrapped bool     `json:"wrapped"`
	}{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	version, err := openflow.ParseVersion(v.Version)
	if err != nil {
		return err
	}
	if v.Wrapped && version != openflow.OF13_VERSION {
		return fmt.Errorf("ofp_match is not supported in OpenFlow %v", openflow.VersionString(version))
	}
	fields := make([]match.Field, 0, len(v.Fields))
	for _, s := range v.Fields {
		f, err := match.ParseField(s)
		if err != nil {
			return err
		}
		fields = append(fields, f)
	}
	r.Version = version
	r.Fields = fields
	r.Wrapped = v.Wrapped

	return nil
}

func (r *Server) encode(w rest.ResponseWriter, req *rest.Request) {
	p := new(encodeParam)
	if err := req.DecodeJsonPayload(p); err != nil {
		w.WriteJson(Response{Status: StatusInvalidParameter, Message: err.Error()})
		return
	}
	logger.Debugf("encode request from %v: %v", req.RemoteAddr, spew.Sdump(p))

	encoder := match.NewEncoder(r.Registry)
	var data []byte
	var err error
	if p.Wrapped {
		data, err = encoder.MarshalMatch(p.Version, p.Fields)
	} else {
		data, err = encoder.MarshalList(p.Version, p.Fields)
	}
	if err != nil {
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

func errorResponse(err error) Response {
	switch errors.Cause(err) {
	case match.ErrUnknownField, match.ErrUnsupportedField:
		return Response{Status: StatusUnknownField, Message: err.Error()}
	case match.ErrValueType, match.ErrMaskNotAllowed, match.ErrInvalidSyntax:
		return Response{Status: StatusInvalidParameter, Message: err.Error()}
	case match.ErrMalformedHeader, match.ErrTruncatedPayload, match.ErrMalformedList,
		match.ErrBadFieldLength, match.ErrUnsupportedMatchType:
		return Response{Status: StatusMalformedMatch, Message: err.Error()}
	default:
		logger.Errorf("unexpected match error: %v", err)
		return Response{Status: StatusInternalServerError, Message: err.Error()}
	}
}
