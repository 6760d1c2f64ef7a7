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

// OpenFlow basic class (OFPXMC_OPENFLOW_BASIC) fields.
const (
	OXMInPort       = basicFamily + 0
	OXMInPhyPort    = basicFamily + 1
	OXMMetadata     = basicFamily + 2
	OXMEthDst       = basicFamily + 3
	OXMEthSrc       = basicFamily + 4
	OXMEthType      = basicFamily + 5
	OXMVlanVID      = basicFamily + 6
	OXMVlanPCP      = basicFamily + 7
	OXMIPDSCP       = basicFamily + 8
	OXMIPECN        = basicFamily + 9
	OXMIPProto      = basicFamily + 10
	OXMIPv4Src      = basicFamily + 11
	OXMIPv4Dst      = basicFamily + 12
	OXMTCPSrc       = basicFamily + 13
	OXMTCPDst       = basicFamily + 14
	OXMUDPSrc       = basicFamily + 15
	OXMUDPDst       = basicFamily + 16
	OXMSCTPSrc      = basicFamily + 17
	OXMSCTPDst      = basicFamily + 18
	OXMICMPv4Type   = basicFamily + 19
	OXMICMPv4Code   = basicFamily + 20
	OXMARPOp        = basicFamily + 21
	OXMARPSPA       = basicFamily + 22
	OXMARPTPA       = basicFamily + 23
	OXMARPSHA       = basicFamily + 24
	OXMARPTHA       = basicFamily + 25
	OXMIPv6Src      = basicFamily + 26
	OXMIPv6Dst      = basicFamily + 27
	OXMIPv6FLabel   = basicFamily + 28
	OXMICMPv6Type   = basicFamily + 29
	OXMICMPv6Code   = basicFamily + 30
	OXMIPv6NDTarget = basicFamily + 31
	OXMIPv6NDSLL    = basicFamily + 32
	OXMIPv6NDTLL    = basicFamily + 33
	OXMMPLSLabel    = basicFamily + 34
	OXMMPLSTC       = basicFamily + 35
	OXMMPLSBOS      = basicFamily + 36
	OXMPBBISID      = basicFamily + 37
	OXMTunnelID     = basicFamily + 38
	OXMIPv6Exthdr   = basicFamily + 39
)

var basicFields = []Descriptor{
	{Type: OXMInPort, Name: "in_port", Length: 4, Kind: KindUint},
	{Type: OXMInPhyPort, Name: "in_phy_port", Length: 4, Kind: KindUint},
	{Type: OXMMetadata, Name: "metadata", Length: 8, Kind: KindUint, Maskable: true, Hex: true},
	{Type: OXMEthDst, Name: "eth_dst", Length: 6, Kind: KindMAC, Maskable: true},
	{Type: OXMEthSrc, Name: "eth_src", Length: 6, Kind: KindMAC, Maskable: true},
	{Type: OXMEthType, Name: "eth_type", Length: 2, Kind: KindUint, Hex: true},
	{Type: OXMVlanVID, Name: "vlan_vid", Length: 2, Kind: KindUint, Maskable: true, Hex: true},
	{Type: OXMVlanPCP, Name: "vlan_pcp", Length: 1, Kind: KindUint},
	{Type: OXMIPDSCP, Name: "ip_dscp", Length: 1, Kind: KindUint},
	{Type: OXMIPECN, Name: "ip_ecn", Length: 1, Kind: KindUint},
	{Type: OXMIPProto, Name: "ip_proto", Length: 1, Kind: KindUint},
	{Type: OXMIPv4Src, Name: "ipv4_src", Length: 4, Kind: KindIPv4, Maskable: true},
	{Type: OXMIPv4Dst, Name: "ipv4_dst", Length: 4, Kind: KindIPv4, Maskable: true},
	{Type: OXMTCPSrc, Name: "tcp_src", Length: 2, Kind: KindUint},
	{Type: OXMTCPDst, Name: "tcp_dst", Length: 2, Kind: KindUint},
	{Type: OXMUDPSrc, Name: "udp_src", Length: 2, Kind: KindUint},
	{Type: OXMUDPDst, Name: "udp_dst", Length: 2, Kind: KindUint},
	{Type: OXMSCTPSrc, Name: "sctp_src", Length: 2, Kind: KindUint},
	{Type: OXMSCTPDst, Name: "sctp_dst", Length: 2, Kind: KindUint},
	{Type: OXMICMPv4Type, Name: "icmpv4_type", Length: 1, Kind: KindUint},
	{Type: OXMICMPv4Code, Name: "icmpv4_code", Length: 1, Kind: KindUint},
	{Type: OXMARPOp, Name: "arp_op", Length: 2, Kind: KindUint},
	{Type: OXMARPSPA, Name: "arp_spa", Length: 4, Kind: KindIPv4, Maskable: true},
	{Type: OXMARPTPA, Name: "arp_tpa", Length: 4, Kind: KindIPv4, Maskable: true},
	{Type: OXMARPSHA, Name: "arp_sha", Length: 6, Kind: KindMAC, Maskable: true},
	{Type: OXMARPTHA, Name: "arp_tha", Length: 6, Kind: KindMAC, Maskable: true},
	{Type: OXMIPv6Src, Name: "ipv6_src", Length: 16, Kind: KindIPv6, Maskable: true},
	{Type: OXMIPv6Dst, Name: "ipv6_dst", Length: 16, Kind: KindIPv6, Maskable: true},
	{Type: OXMIPv6FLabel, Name: "ipv6_flabel", Length: 4, Kind: KindUint, Maskable: true, Hex: true},
	{Type: OXMICMPv6Type, Name: "icmpv6_type", Length: 1, Kind: KindUint},
	{Type: OXMICMPv6Code, Name: "icmpv6_code", Length: 1, Kind: KindUint},
	{Type: OXMIPv6NDTarget, Name: "ipv6_nd_target", Length: 16, Kind: KindIPv6},
	{Type: OXMIPv6NDSLL, Name: "ipv6_nd_sll", Length: 6, Kind: KindMAC},
	{Type: OXMIPv6NDTLL, Name: "ipv6_nd_tll", Length: 6, Kind: KindMAC},
	{Type: OXMMPLSLabel, Name: "mpls_label", Length: 4, Kind: KindUint},
	{Type: OXMMPLSTC, Name: "mpls_tc", Length: 1, Kind: KindUint},
	{Type: OXMMPLSBOS, Name: "mpls_bos", Length: 1, Kind: KindUint},
	{Type: OXMPBBISID, Name: "pbb_isid", Length: 3, Kind: KindUint, Maskable: true, Hex: true},
	{Type: OXMTunnelID, Name: "tunnel_id", Length: 8, Kind: KindUint, Maskable: true, Hex: true},
	{Type: OXMIPv6Exthdr, Name: "ipv6_exthdr", Length: 2, Kind: KindUint, Maskable: true, Hex: true},
}
