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

package openflow

import (
	"fmt"

	"github.com/pkg/errors"
)

// Negotiated OpenFlow wire versions.
const (
	OF10_VERSION = 0x01
	OF13_VERSION = 0x04
)

var (
	ErrInvalidPacketLength = errors.New("invalid packet length")
	ErrUnsupportedVersion  = errors.New("unsupported protocol version")
)

// VersionString returns a human readable form of the wire version.
func VersionString(version uint8) string {
	switch version {
	case OF10_VERSION:
		return "1.0"
	case OF13_VERSION:
		return "1.3"
	default:
		return fmt.Sprintf("0x%02x", version)
	}
}

// ParseVersion converts a dotted version such as "1.3" into the wire version.
func ParseVersion(s string) (uint8, error) {
	switch s {
	case "1.0", "0x01", "1":
		return OF10_VERSION, nil
	case "1.3", "0x04", "4":
		return OF13_VERSION, nil
	default:
		return 0, errors.Wrapf(ErrUnsupportedVersion, "%q", s)
	}
}
