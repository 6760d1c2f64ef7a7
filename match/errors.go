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
	"github.com/pkg/errors"
)

var (
	// ErrMalformedHeader is returned when fewer than four bytes remain for an
	// entry header, or an experimenter entry is too short to hold its
	// experimenter id.
	ErrMalformedHeader = errors.New("malformed match entry header")
	// ErrTruncatedPayload is returned when the buffer ends before the
	// declared payload of an entry or a match structure.
	ErrTruncatedPayload = errors.New("truncated match entry payload")
	// ErrMalformedList is returned when the entries of a list do not exactly
	// fill its declared length.
	ErrMalformedList = errors.New("malformed match entry list")
	// ErrDuplicateRegistration is returned when two codecs are registered
	// under the same key.
	ErrDuplicateRegistration = errors.New("duplicate codec registration")
	// ErrBadFieldLength is returned when a header length disagrees with the
	// field definition.
	ErrBadFieldLength = errors.New("unexpected match field length")
	ErrValueType      = errors.New("unexpected match field value type")
	// ErrUnsupportedField is returned when encoding a field that has no codec
	// for the requested protocol version.
	ErrUnsupportedField = errors.New("unsupported match field")
	// ErrUnknownField is returned for an unknown entry when the decoder is
	// configured to reject them.
	ErrUnknownField         = errors.New("unknown match field")
	ErrMaskNotAllowed       = errors.New("match field is not maskable")
	ErrInvalidSyntax        = errors.New("invalid match field syntax")
	ErrUnsupportedMatchType = errors.New("unsupported match type")
)
