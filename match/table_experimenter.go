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

// Network service header fields, experimenter NSHExperimenter.
const (
	NSHFlags     = nshFamily + 1
	NSHMDType    = nshFamily + 2
	NSHNextProto = nshFamily + 3
	NSHSPI       = nshFamily + 4
	NSHSI        = nshFamily + 5
	NSHC1        = nshFamily + 6
	NSHC2        = nshFamily + 7
	NSHC3        = nshFamily + 8
	NSHC4        = nshFamily + 9
	NSHTTL       = nshFamily + 10
)

// Open Networking Foundation extension fields, experimenter ONFExperimenter.
const (
	// TCP flags backported to OpenFlow 1.3 (EXT-109).
	ONFTCPFlags = onfFamily + 42
)

var nshFields = []Descriptor{
	{Type: NSHFlags, Name: "nsh_flags", Length: 1, Kind: KindUint, Maskable: true, Hex: true},
	{Type: NSHMDType, Name: "nsh_mdtype", Length: 1, Kind: KindUint},
	{Type: NSHNextProto, Name: "nsh_np", Length: 1, Kind: KindUint},
	{Type: NSHSPI, Name: "nsh_spi", Length: 4, Kind: KindUint},
	{Type: NSHSI, Name: "nsh_si", Length: 1, Kind: KindUint},
	{Type: NSHC1, Name: "nsh_c1", Length: 4, Kind: KindUint, Maskable: true, Hex: true},
	{Type: NSHC2, Name: "nsh_c2", Length: 4, Kind: KindUint, Maskable: true, Hex: true},
	{Type: NSHC3, Name: "nsh_c3", Length: 4, Kind: KindUint, Maskable: true, Hex: true},
	{Type: NSHC4, Name: "nsh_c4", Length: 4, Kind: KindUint, Maskable: true, Hex: true},
	{Type: NSHTTL, Name: "nsh_ttl", Length: 1, Kind: KindUint, Maskable: true},
}

var onfFields = []Descriptor{
	{Type: ONFTCPFlags, Name: "onf_tcp_flags", Length: 2, Kind: KindUint, Maskable: true, Hex: true},
}
