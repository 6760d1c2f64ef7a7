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
	"encoding/binary"
	"fmt"

	"github.com/superkkt/ofmatch/openflow"

	"github.com/pkg/errors"
)

// HeaderLength is the size of an encoded match entry header.
const HeaderLength = 4

// Header is the fixed 32-bit prefix of every match entry:
//
//	class(16) | field(7) | hasmask(1) | length(8)
//
// Length counts the payload only, excluding the header itself. For the
// experimenter class the payload starts with the 4-byte experimenter id.
type Header struct {
	Class   Class
	Field   uint8
	HasMask bool
	Length  uint8
}

// DecodeHeader consumes exactly four bytes from buf. Nothing is consumed if
// fewer than four bytes remain.
func DecodeHeader(buf *openflow.Buffer) (Header, error) {
	if buf.Len() < HeaderLength {
		return Header{}, errors.Wrapf(ErrMalformedHeader, "%v bytes remaining", buf.Len())
	}
	v, err := buf.ReadUint32()
	if err != nil {
		return Header{}, errors.Wrap(ErrMalformedHeader, err.Error())
	}

	return unpackHeader(v), nil
}

func unpackHeader(v uint32) Header {
	return Header{
		Class:   Class(v >> 16),
		Field:   uint8(v>>9) & 0x7F,
		HasMask: v&0x100 != 0,
		Length:  uint8(v),
	}
}

// Uint32 returns the packed form of the header.
func (r Header) Uint32() uint32 {
	v := uint32(r.Class)<<16 | uint32(r.Field&0x7F)<<9 | uint32(r.Length)
	if r.HasMask {
		v |= 0x100
	}

	return v
}

// Encode writes exactly four bytes to buf.
func (r Header) Encode(buf *openflow.Buffer) {
	buf.WriteUint32(r.Uint32())
}

func (r Header) MarshalBinary() ([]byte, error) {
	v := make([]byte, HeaderLength)
	binary.BigEndian.PutUint32(v, r.Uint32())

	return v, nil
}

func (r *Header) UnmarshalBinary(data []byte) error {
	h, err := DecodeHeader(openflow.NewBuffer(data))
	if err != nil {
		return err
	}
	*r = h

	return nil
}

func (r Header) String() string {
	return fmt.Sprintf("Header(class=%v, field=%v, hasmask=%v, length=%v)", r.Class, r.Field, r.HasMask, r.Length)
}
