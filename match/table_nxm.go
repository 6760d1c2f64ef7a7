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

// Nicira extended match, class NXM_0.
const (
	NXMOfInPort   = nxm0Family + 0
	NXMOfEthDst   = nxm0Family + 1
	NXMOfEthSrc   = nxm0Family + 2
	NXMOfEthType  = nxm0Family + 3
	NXMOfVlanTCI  = nxm0Family + 4
	NXMOfIPTOS    = nxm0Family + 5
	NXMOfIPProto  = nxm0Family + 6
	NXMOfIPSrc    = nxm0Family + 7
	NXMOfIPDst    = nxm0Family + 8
	NXMOfTCPSrc   = nxm0Family + 9
	NXMOfTCPDst   = nxm0Family + 10
	NXMOfUDPSrc   = nxm0Family + 11
	NXMOfUDPDst   = nxm0Family + 12
	NXMOfICMPType = nxm0Family + 13
	NXMOfICMPCode = nxm0Family + 14
	NXMOfARPOp    = nxm0Family + 15
	NXMOfARPSPA   = nxm0Family + 16
	NXMOfARPTPA   = nxm0Family + 17
)

// Nicira extended match, class NXM_1.
const (
	NXMNxReg0         = nxm1Family + 0 // NXMNxReg0 + n is register n, 0 <= n < 16
	NXMNxTunID        = nxm1Family + 16
	NXMNxARPSHA       = nxm1Family + 17
	NXMNxARPTHA       = nxm1Family + 18
	NXMNxIPv6Src      = nxm1Family + 19
	NXMNxIPv6Dst      = nxm1Family + 20
	NXMNxICMPv6Type   = nxm1Family + 21
	NXMNxICMPv6Code   = nxm1Family + 22
	NXMNxNDTarget     = nxm1Family + 23
	NXMNxNDSLL        = nxm1Family + 24
	NXMNxNDTLL        = nxm1Family + 25
	NXMNxIPFrag       = nxm1Family + 26
	NXMNxIPv6Label    = nxm1Family + 27
	NXMNxIPECN        = nxm1Family + 28
	NXMNxIPTTL        = nxm1Family + 29
	NXMNxCookie       = nxm1Family + 30
	NXMNxTunIPv4Src   = nxm1Family + 31
	NXMNxTunIPv4Dst   = nxm1Family + 32
	NXMNxPktMark      = nxm1Family + 33
	NXMNxTCPFlags     = nxm1Family + 34
	NXMNxDPHash       = nxm1Family + 35
	NXMNxRecircID     = nxm1Family + 36
	NXMNxConjID       = nxm1Family + 37
	NXMNxTunGBPID     = nxm1Family + 38
	NXMNxTunGBPFlags  = nxm1Family + 39
	NXMNxTunMetadata0 = nxm1Family + 40 // NXMNxTunMetadata0 + n is tun_metadata n, 0 <= n < 64
	NXMNxTunFlags     = nxm1Family + 104
	NXMNxCtState      = nxm1Family + 105
	NXMNxCtZone       = nxm1Family + 106
	NXMNxCtMark       = nxm1Family + 107
	NXMNxCtLabel      = nxm1Family + 108
	NXMNxTunIPv6Src   = nxm1Family + 109
	NXMNxTunIPv6Dst   = nxm1Family + 110
	NXMNxCtNwProto    = nxm1Family + 119
	NXMNxCtNwSrc      = nxm1Family + 120
	NXMNxCtNwDst      = nxm1Family + 121
	NXMNxCtIPv6Src    = nxm1Family + 122
	NXMNxCtIPv6Dst    = nxm1Family + 123
	NXMNxCtTpSrc      = nxm1Family + 124
	NXMNxCtTpDst      = nxm1Family + 125
)

const (
	numRegisters   = 16
	numTunMetadata = 64
)

// Register returns the field type of register n.
func Register(n int) FieldType {
	if n < 0 || n >= numRegisters {
		panic(fmt.Sprintf("invalid register number: %v", n))
	}

	return NXMNxReg0 + FieldType(n)
}

// TunMetadata returns the field type of tunnel metadata n.
func TunMetadata(n int) FieldType {
	if n < 0 || n >= numTunMetadata {
		panic(fmt.Sprintf("invalid tunnel metadata number: %v", n))
	}

	return NXMNxTunMetadata0 + FieldType(n)
}

var nxm0Fields = []Descriptor{
	{Type: NXMOfInPort, Name: "nxm_of_in_port", Length: 2, Kind: KindUint},
	{Type: NXMOfEthDst, Name: "nxm_of_eth_dst", Length: 6, Kind: KindMAC, Maskable: true},
	{Type: NXMOfEthSrc, Name: "nxm_of_eth_src", Length: 6, Kind: KindMAC, Maskable: true},
	{Type: NXMOfEthType, Name: "nxm_of_eth_type", Length: 2, Kind: KindUint, Hex: true},
	{Type: NXMOfVlanTCI, Name: "nxm_of_vlan_tci", Length: 2, Kind: KindUint, Maskable: true, Hex: true},
	{Type: NXMOfIPTOS, Name: "nxm_of_ip_tos", Length: 1, Kind: KindUint, Hex: true},
	{Type: NXMOfIPProto, Name: "nxm_of_ip_proto", Length: 1, Kind: KindUint},
	{Type: NXMOfIPSrc, Name: "nxm_of_ip_src", Length: 4, Kind: KindIPv4, Maskable: true},
	{Type: NXMOfIPDst, Name: "nxm_of_ip_dst", Length: 4, Kind: KindIPv4, Maskable: true},
	{Type: NXMOfTCPSrc, Name: "nxm_of_tcp_src", Length: 2, Kind: KindUint, Maskable: true},
	{Type: NXMOfTCPDst, Name: "nxm_of_tcp_dst", Length: 2, Kind: KindUint, Maskable: true},
	{Type: NXMOfUDPSrc, Name: "nxm_of_udp_src", Length: 2, Kind: KindUint, Maskable: true},
	{Type: NXMOfUDPDst, Name: "nxm_of_udp_dst", Length: 2, Kind: KindUint, Maskable: true},
	{Type: NXMOfICMPType, Name: "nxm_of_icmp_type", Length: 1, Kind: KindUint},
	{Type: NXMOfICMPCode, Name: "nxm_of_icmp_code", Length: 1, Kind: KindUint},
	{Type: NXMOfARPOp, Name: "nxm_of_arp_op", Length: 2, Kind: KindUint},
	{Type: NXMOfARPSPA, Name: "nxm_of_arp_spa", Length: 4, Kind: KindIPv4, Maskable: true},
	{Type: NXMOfARPTPA, Name: "nxm_of_arp_tpa", Length: 4, Kind: KindIPv4, Maskable: true},
}

func nxm1Fields() []Descriptor {
	v := make([]Descriptor, 0, numRegisters+numTunMetadata+len(nxm1FixedFields))
	for i := 0; i < numRegisters; i++ {
		v = append(v, Descriptor{Type: Register(i), Name: fmt.Sprintf("nxm_nx_reg%d", i), Length: 4, Kind: KindUint, Maskable: true, Hex: true})
	}
	for i := 0; i < numTunMetadata; i++ {
		v = append(v, Descriptor{Type: TunMetadata(i), Name: fmt.Sprintf("nxm_nx_tun_metadata%d", i), Kind: KindBytes, Maskable: true})
	}

	return append(v, nxm1FixedFields...)
}

var nxm1FixedFields = []Descriptor{
	{Type: NXMNxTunID, Name: "nxm_nx_tun_id", Length: 8, Kind: KindUint, Maskable: true, Hex: true},
	{Type: NXMNxARPSHA, Name: "nxm_nx_arp_sha", Length: 6, Kind: KindMAC, Maskable: true},
	{Type: NXMNxARPTHA, Name: "nxm_nx_arp_tha", Length: 6, Kind: KindMAC, Maskable: true},
	{Type: NXMNxIPv6Src, Name: "nxm_nx_ipv6_src", Length: 16, Kind: KindIPv6, Maskable: true},
	{Type: NXMNxIPv6Dst, Name: "nxm_nx_ipv6_dst", Length: 16, Kind: KindIPv6, Maskable: true},
	{Type: NXMNxICMPv6Type, Name: "nxm_nx_icmpv6_type", Length: 1, Kind: KindUint},
	{Type: NXMNxICMPv6Code, Name: "nxm_nx_icmpv6_code", Length: 1, Kind: KindUint},
	{Type: NXMNxNDTarget, Name: "nxm_nx_nd_target", Length: 16, Kind: KindIPv6, Maskable: true},
	{Type: NXMNxNDSLL, Name: "nxm_nx_nd_sll", Length: 6, Kind: KindMAC, Maskable: true},
	{Type: NXMNxNDTLL, Name: "nxm_nx_nd_tll", Length: 6, Kind: KindMAC, Maskable: true},
	{Type: NXMNxIPFrag, Name: "nxm_nx_ip_frag", Length: 1, Kind: KindUint, Maskable: true, Hex: true},
	{Type: NXMNxIPv6Label, Name: "nxm_nx_ipv6_label", Length: 4, Kind: KindUint, Maskable: true, Hex: true},
	{Type: NXMNxIPECN, Name: "nxm_nx_ip_ecn", Length: 1, Kind: KindUint},
	{Type: NXMNxIPTTL, Name: "nxm_nx_ip_ttl", Length: 1, Kind: KindUint},
	{Type: NXMNxCookie, Name: "nxm_nx_cookie", Length: 8, Kind: KindUint, Maskable: true, Hex: true},
	{Type: NXMNxTunIPv4Src, Name: "nxm_nx_tun_ipv4_src", Length: 4, Kind: KindIPv4, Maskable: true},
	{Type: NXMNxTunIPv4Dst, Name: "nxm_nx_tun_ipv4_dst", Length: 4, Kind: KindIPv4, Maskable: true},
	{Type: NXMNxPktMark, Name: "nxm_nx_pkt_mark", Length: 4, Kind: KindUint, Maskable: true, Hex: true},
	{Type: NXMNxTCPFlags, Name: "nxm_nx_tcp_flags", Length: 2, Kind: KindUint, Maskable: true, Hex: true},
	{Type: NXMNxDPHash, Name: "nxm_nx_dp_hash", Length: 4, Kind: KindUint, Maskable: true, Hex: true},
	{Type: NXMNxRecircID, Name: "nxm_nx_recirc_id", Length: 4, Kind: KindUint},
	{Type: NXMNxConjID, Name: "nxm_nx_conj_id", Length: 4, Kind: KindUint},
	{Type: NXMNxTunGBPID, Name: "nxm_nx_tun_gbp_id", Length: 2, Kind: KindUint, Maskable: true},
	{Type: NXMNxTunGBPFlags, Name: "nxm_nx_tun_gbp_flags", Length: 1, Kind: KindUint, Maskable: true, Hex: true},
	{Type: NXMNxTunFlags, Name: "nxm_nx_tun_flags", Length: 2, Kind: KindUint, Maskable: true, Hex: true},
	{Type: NXMNxCtState, Name: "nxm_nx_ct_state", Length: 4, Kind: KindUint, Maskable: true, Hex: true},
	{Type: NXMNxCtZone, Name: "nxm_nx_ct_zone", Length: 2, Kind: KindUint},
	{Type: NXMNxCtMark, Name: "nxm_nx_ct_mark", Length: 4, Kind: KindUint, Maskable: true, Hex: true},
	{Type: NXMNxCtLabel, Name: "nxm_nx_ct_label", Length: 16, Kind: KindUint128, Maskable: true},
	{Type: NXMNxTunIPv6Src, Name: "nxm_nx_tun_ipv6_src", Length: 16, Kind: KindIPv6, Maskable: true},
	{Type: NXMNxTunIPv6Dst, Name: "nxm_nx_tun_ipv6_dst", Length: 16, Kind: KindIPv6, Maskable: true},
	{Type: NXMNxCtNwProto, Name: "nxm_nx_ct_nw_proto", Length: 1, Kind: KindUint},
	{Type: NXMNxCtNwSrc, Name: "nxm_nx_ct_nw_src", Length: 4, Kind: KindIPv4, Maskable: true},
	{Type: NXMNxCtNwDst, Name: "nxm_nx_ct_nw_dst", Length: 4, Kind: KindIPv4, Maskable: true},
	{Type: NXMNxCtIPv6Src, Name: "nxm_nx_ct_ipv6_src", Length: 16, Kind: KindIPv6, Maskable: true},
	{Type: NXMNxCtIPv6Dst, Name: "nxm_nx_ct_ipv6_dst", Length: 16, Kind: KindIPv6, Maskable: true},
	{Type: NXMNxCtTpSrc, Name: "nxm_nx_ct_tp_src", Length: 2, Kind: KindUint, Maskable: true},
	{Type: NXMNxCtTpDst, Name: "nxm_nx_ct_tp_dst", Length: 2, Kind: KindUint, Maskable: true},
}
