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
	"fmt"

	"github.com/pkg/errors"
)

// FieldType identifies the semantic match field independent of any protocol
// version. The high byte selects the field family and the low byte carries
// the on-wire field code.
type FieldType uint16

const (
	FieldUnknown FieldType = 0

	basicFamily FieldType = 0x0100
	nxm0Family  FieldType = 0x0200
	nxm1Family  FieldType = 0x0300
	nshFamily   FieldType = 0x0400
	onfFamily   FieldType = 0x0500
)

func (r FieldType) String() string {
	d, ok := LookupDescriptor(r)
	if !ok {
		return fmt.Sprintf("FieldType(0x%04x)", uint16(r))
	}

	return d.Name
}

// Field is a typed match field value. A nil Mask means the field is matched
// exactly.
type Field struct {
	Type  FieldType
	Value Value
	Mask  Value
}

// NewField returns an exact match field.
func NewField(t FieldType, v Value) Field {
	return Field{Type: t, Value: v}
}

// NewMaskedField returns a masked field, failing if the field type does not
// allow a mask.
func NewMaskedField(t FieldType, v, mask Value) (Field, error) {
	d, ok := LookupDescriptor(t)
	if !ok {
		return Field{}, errors.Wrapf(ErrUnsupportedField, "%v", t)
	}
	if d.Maskable == false {
		return Field{}, errors.Wrapf(ErrMaskNotAllowed, "%v", d.Name)
	}
	if mask == nil {
		panic("mask is nil")
	}

	return Field{Type: t, Value: v, Mask: mask}, nil
}

func (r Field) HasMask() bool {
	return r.Mask != nil
}

// Equal reports whether r and f describe the same match.
func (r Field) Equal(f Field) bool {
	return r.Type == f.Type && equalValue(r.Value, f.Value) && equalValue(r.Mask, f.Mask)
}
