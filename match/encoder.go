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

package match

import (
	"github.com/superkkt/ofmatch/openflow"

	"github.com/pkg/errors"
)

// Encoder encodes typed fields using the codecs of Registry. It holds no
// mutable state and may be shared by multiple goroutines.
type Encoder struct {
	Registry *Registry
}

func NewEncoder(reg *Registry) *Encoder {
	if reg == nil {
		panic("registry is nil")
	}

	return &Encoder{Registry: reg}
}

// Encode appends one entry to buf.
func (r *Encoder) Encode(version uint8, f Field, buf *openflow.Buffer) error {
	codec, ok := r.Registry.LookupEncoder(version, f.Type)
	if !ok {
		return errors.Wrapf(ErrUnsupportedField, "%v for version %v", f.Type, openflow.VersionString(version))
	}

	return codec.Encode(f, buf)
}

// EncodeList appends the entries of fields to buf in order. buf is left
// unchanged if any field fails.
func (r *Encoder) EncodeList(version uint8, fields []Field, buf *openflow.Buffer) error {
	list := openflow.NewBuffer(nil)
	for _, f := range fields {
		if err := r.Encode(version, f, list); err != nil {
			return err
		}
	}
	buf.WriteBytes(list.Bytes())

	return nil
}

// MarshalList returns the encoded entry list of fields.
func (r *Encoder) MarshalList(version uint8, fields []Field) ([]byte, error) {
	buf := openflow.NewBuffer(nil)
	if err := r.EncodeList(version, fields, buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
