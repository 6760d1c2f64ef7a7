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
	"sort"

	"github.com/superkkt/ofmatch/openflow"
)

// maxMetadataLength is the largest value carried by a tunnel metadata field.
const maxMetadataLength = 124

// Descriptor is one row of the static match field table.
type Descriptor struct {
	Type         FieldType
	Name         string
	Class        Class
	Experimenter uint32 // only for ClassExperimenter
	Field        uint8
	Length       int // value length in bytes, zero for variable length fields
	Kind         Kind
	Maskable     bool
	Hex          bool // print integers in hexadecimal
	Versions     []uint8
}

// Variable reports whether the value length is taken from each entry.
func (r Descriptor) Variable() bool {
	return r.Length == 0
}

var (
	descriptors []Descriptor
	byType      map[FieldType]int
	byName      map[string]int
)

func init() {
	add := func(rows []Descriptor, class Class, experimenter uint32, versions ...uint8) {
		for _, v := range rows {
			v.Class = class
			v.Experimenter = experimenter
			v.Field = uint8(v.Type)
			v.Versions = versions
			descriptors = append(descriptors, v)
		}
	}
	add(basicFields, ClassOpenflowBasic, 0, openflow.OF13_VERSION)
	add(nxm0Fields, ClassNXM0, 0, openflow.OF10_VERSION, openflow.OF13_VERSION)
	add(nxm1Fields(), ClassNXM1, 0, openflow.OF10_VERSION, openflow.OF13_VERSION)
	add(nshFields, ClassExperimenter, NSHExperimenter, openflow.OF13_VERSION)
	add(onfFields, ClassExperimenter, ONFExperimenter, openflow.OF13_VERSION)

	sort.Slice(descriptors, func(i, j int) bool { return descriptors[i].Type < descriptors[j].Type })

	byType = make(map[FieldType]int, len(descriptors))
	byName = make(map[string]int, len(descriptors))
	for i, v := range descriptors {
		if _, ok := byType[v.Type]; ok {
			panic(fmt.Sprintf("duplicated match field type: %v", v.Type))
		}
		if _, ok := byName[v.Name]; ok {
			panic(fmt.Sprintf("duplicated match field name: %v", v.Name))
		}
		byType[v.Type] = i
		byName[v.Name] = i
	}
}

// LookupDescriptor returns the table row of the field type.
func LookupDescriptor(t FieldType) (Descriptor, bool) {
	i, ok := byType[t]
	if !ok {
		return Descriptor{}, false
	}

	return descriptors[i], true
}

// LookupName returns the table row of the field named name.
func LookupName(name string) (Descriptor, bool) {
	i, ok := byName[name]
	if !ok {
		return Descriptor{}, false
	}

	return descriptors[i], true
}

// Descriptors returns a copy of the whole field table ordered by type.
func Descriptors() []Descriptor {
	v := make([]Descriptor, len(descriptors))
	copy(v, descriptors)

	return v
}
