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

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/superkkt/ofmatch"
)

func TestRun(t *testing.T) {
	testCases := []struct {
		args     []string
		expected string
	}{
		{[]string{"decode", "-version", "1.0", "00000e04", "0a000001"}, "nxm_of_ip_src=10.0.0.1\n"},
		{[]string{"decode", "00010e040a000001"}, "nxm_nx_reg7=0xa000001\n"},
		{[]string{"decode", "12340202abcd"}, "unknown(class=0x1234,field=1,mask=false)=0xabcd\n"},
		{[]string{"decode", "-unknown", "skip", "12340202abcd80000004 00000001"}, "in_port=1\n"},
		{
			[]string{"decode", "-wrapped", "0x00010012800000040000000180000a020800000000000000"},
			"in_port=1\neth_type=0x800\n",
		},
		{[]string{"encode", "-version", "1.0", "nxm_of_ip_src=10.0.0.1"}, "00000e040a000001\n"},
		{[]string{"encode", "-wrapped", "in_port=1", "eth_type=0x800"}, "00010012800000040000000180000a020800000000000000\n"},
		{[]string{"encode", "ipv4_src=10.0.0.0/24"}, "800017080a000000ffffff00\n"},
		{[]string{"version"}, "ofmatch v" + ofmatch.Version + "\n"},
	}

	for _, c := range testCases {
		out := new(bytes.Buffer)
		if err := run(c.args, out); err != nil {
			t.Errorf("%v: unexpected error: %v", c.args, err)
			continue
		}
		if out.String() != c.expected {
			t.Errorf("%v: expected=%q, actual=%q", c.args, c.expected, out.String())
		}
	}
}

func TestRunError(t *testing.T) {
	testCases := [][]string{
		nil,
		{"unknown"},
		{"decode"},
		{"decode", "-unknown", "reject", "12340202abcd"},
		{"decode", "-version", "1.2", "80000004 00000001"},
		{"decode", "8000000400"},
		{"encode"},
		{"encode", "-version", "1.0", "in_port=1"},
		{"encode", "no_such_field=1"},
		{"fields", "-version", "2.0"},
		{"packet", "00"},
	}

	for _, c := range testCases {
		if err := run(c, new(bytes.Buffer)); err == nil {
			t.Errorf("%v: expected error", c)
		}
	}
}

func TestFields(t *testing.T) {
	out := new(bytes.Buffer)
	if err := run([]string{"fields", "-version", "1.0"}, out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) < 2 || strings.HasPrefix(lines[0], "NAME") == false {
		t.Fatalf("unexpected field table: %v", out.String())
	}
	found := false
	for _, v := range lines[1:] {
		name := strings.Fields(v)[0]
		if strings.HasPrefix(name, "nxm_") == false {
			t.Errorf("unexpected OpenFlow 1.0 field: %v", name)
		}
		if name == "nxm_of_ip_src" {
			found = true
		}
	}
	if !found {
		t.Error("nxm_of_ip_src is missing")
	}
}
