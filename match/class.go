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
)

// Class is the 16-bit OXM class of a match entry.
type Class uint16

const (
	ClassNXM0          Class = 0x0000 // Nicira extended match, OpenFlow 1.0 compatible fields
	ClassNXM1          Class = 0x0001 // Nicira extended match, Nicira specific fields
	ClassOpenflowBasic Class = 0x8000
	ClassExperimenter  Class = 0xFFFF
)

// Experimenter ids carried after the header of experimenter class entries.
const (
	NiciraExperimenter uint32 = 0x00002320
	NSHExperimenter    uint32 = 0x005AD650
	ONFExperimenter    uint32 = 0x4F4E4600
)

func (r Class) String() string {
	switch r {
	case ClassNXM0:
		return "NXM_0"
	case ClassNXM1:
		return "NXM_1"
	case ClassOpenflowBasic:
		return "OPENFLOW_BASIC"
	case ClassExperimenter:
		return "EXPERIMENTER"
	default:
		return fmt.Sprintf("0x%04x", uint16(r))
	}
}
