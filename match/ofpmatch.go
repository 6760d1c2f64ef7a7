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

// ofp_match types.
const (
	OFPMT_STANDARD = 0
	OFPMT_OXM      = 1
)

// ofpMatchHeaderLength is the size of the type and length fields of
// ofp_match.
const ofpMatchHeaderLength = 4

// ScanMatch reads an OpenFlow 1.3 ofp_match structure from buf and returns an
// iterator over its entries. buf is advanced past the structure including
// its padding to a multiple of eight bytes.
func (r *Decoder) ScanMatch(version uint8, buf *openflow.Buffer) (*Scanner, error) {
	if buf.Len() < ofpMatchHeaderLength {
		return nil, errors.Wrapf(ErrTruncatedPayload, "ofp_match header: %v bytes remaining", buf.Len())
	}
	matchType, _ := buf.ReadUint16()
	if matchType != OFPMT_OXM {
		return nil, errors.Wrapf(ErrUnsupportedMatchType, "type %v", matchType)
	}
	// ofp_match.length does not include the padding.
	length, _ := buf.ReadUint16()
	if length < ofpMatchHeaderLength {
		return nil, errors.Wrapf(ErrMalformedList, "ofp_match length %v", length)
	}

	s, err := r.Scan(version, buf, int(length)-ofpMatchHeaderLength)
	if err != nil {
		return nil, err
	}
	if err := buf.Skip(padding(int(length))); err != nil {
		return nil, errors.Wrapf(ErrTruncatedPayload, "ofp_match padding: %v bytes remaining", buf.Len())
	}

	return s, nil
}

// DecodeMatch decodes an ofp_match structure and returns its known fields.
func (r *Decoder) DecodeMatch(version uint8, data []byte) ([]Field, error) {
	s, err := r.ScanMatch(version, openflow.NewBuffer(data))
	if err != nil {
		return nil, err
	}

	return s.Fields()
}

// EncodeMatch appends an OFPMT_OXM ofp_match structure holding fields to buf.
func (r *Encoder) EncodeMatch(version uint8, fields []Field, buf *openflow.Buffer) error {
	list := openflow.NewBuffer(nil)
	if err := r.EncodeList(version, fields, list); err != nil {
		return err
	}

	length := ofpMatchHeaderLength + list.Len()
	if length > 0xFFFF {
		return errors.Wrapf(ErrMalformedList, "ofp_match length %v overflows", length)
	}
	buf.WriteUint16(OFPMT_OXM)
	buf.WriteUint16(uint16(length))
	buf.WriteBytes(list.Bytes())
	// Add padding to align as a multiple of 8.
	buf.WriteZeros(padding(length))

	return nil
}

// MarshalMatch returns the encoded ofp_match structure holding fields.
func (r *Encoder) MarshalMatch(version uint8, fields []Field) ([]byte, error) {
	buf := openflow.NewBuffer(nil)
	if err := r.EncodeMatch(version, fields, buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func padding(length int) int {
	if rem := length % 8; rem > 0 {
		return 8 - rem
	}

	return 0
}
