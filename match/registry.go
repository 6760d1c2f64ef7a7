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

	"github.com/pkg/errors"
)

// Key selects a decoder for an entry read from the wire. Experimenter is zero
// unless Class is ClassExperimenter.
type Key struct {
	Version      uint8
	Class        Class
	Experimenter uint32
	Field        uint8
}

func (r Key) String() string {
	if r.Class == ClassExperimenter {
		return fmt.Sprintf("Key(version=0x%02x, class=%v, experimenter=0x%08x, field=%v)", r.Version, r.Class, r.Experimenter, r.Field)
	}

	return fmt.Sprintf("Key(version=0x%02x, class=%v, field=%v)", r.Version, r.Class, r.Field)
}

// TypeKey selects an encoder for a typed field.
type TypeKey struct {
	Version uint8
	Type    FieldType
}

// CodecKey returns the decoder key of c for the version.
func CodecKey(version uint8, c Codec) Key {
	k := Key{Version: version, Class: c.Class(), Field: c.Field()}
	if k.Class == ClassExperimenter {
		k.Experimenter = c.Experimenter()
	}

	return k
}

// RegistryBuilder collects codec registrations before a Registry is built.
// It is not safe for concurrent use. The first duplicate registration fails
// the builder permanently.
type RegistryBuilder struct {
	decoders map[Key]Codec
	encoders map[TypeKey]Codec
	err      error
}

func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{
		decoders: make(map[Key]Codec),
		encoders: make(map[TypeKey]Codec),
	}
}

func (r *RegistryBuilder) RegisterDeserializer(k Key, c Codec) error {
	if c == nil {
		panic("codec is nil")
	}
	if r.err != nil {
		return r.err
	}
	if _, ok := r.decoders[k]; ok {
		r.err = errors.Wrapf(ErrDuplicateRegistration, "deserializer %v", k)
		return r.err
	}
	r.decoders[k] = c

	return nil
}

func (r *RegistryBuilder) RegisterSerializer(k TypeKey, c Codec) error {
	if c == nil {
		panic("codec is nil")
	}
	if r.err != nil {
		return r.err
	}
	if _, ok := r.encoders[k]; ok {
		r.err = errors.Wrapf(ErrDuplicateRegistration, "serializer %v/0x%02x", k.Type, k.Version)
		return r.err
	}
	r.encoders[k] = c

	return nil
}

// Register binds c in both directions for the version.
func (r *RegistryBuilder) Register(version uint8, c Codec) error {
	if err := r.RegisterDeserializer(CodecKey(version, c), c); err != nil {
		return err
	}

	return r.RegisterSerializer(TypeKey{Version: version, Type: c.Type()}, c)
}

// Build returns an immutable registry holding the registrations so far.
func (r *RegistryBuilder) Build() (*Registry, error) {
	if r.err != nil {
		return nil, r.err
	}

	reg := &Registry{
		decoders: make(map[Key]Codec, len(r.decoders)),
		encoders: make(map[TypeKey]Codec, len(r.encoders)),
	}
	for k, v := range r.decoders {
		reg.decoders[k] = v
	}
	for k, v := range r.encoders {
		reg.encoders[k] = v
	}

	return reg, nil
}

// MustBuild is like Build but panics on a failed registration.
func (r *RegistryBuilder) MustBuild() *Registry {
	reg, err := r.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to build the codec registry: %v", err))
	}

	return reg
}

// Registry maps keys to codecs. It is read-only once built and safe for
// concurrent use by multiple goroutines.
type Registry struct {
	decoders map[Key]Codec
	encoders map[TypeKey]Codec
}

// LookupDecoder returns the codec registered for an entry read from the wire.
func (r *Registry) LookupDecoder(k Key) (Codec, bool) {
	c, ok := r.decoders[k]
	return c, ok
}

// LookupEncoder returns the codec registered for a typed field.
func (r *Registry) LookupEncoder(version uint8, t FieldType) (Codec, bool) {
	c, ok := r.encoders[TypeKey{Version: version, Type: t}]
	return c, ok
}

// Codecs returns the serializers registered for the version ordered by
// field type.
func (r *Registry) Codecs(version uint8) []Codec {
	result := make([]Codec, 0)
	for k, v := range r.encoders {
		if k.Version == version {
			result = append(result, v)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Type() < result[j].Type() })

	return result
}

// Binding assigns a codec to the protocol versions it serves.
type Binding struct {
	Versions []uint8
	Codec    Codec
}

// DefaultBindings returns a binding for every row of the field table.
func DefaultBindings() []Binding {
	table := Descriptors()
	result := make([]Binding, 0, len(table))
	for _, v := range table {
		result = append(result, Binding{Versions: v.Versions, Codec: NewCodec(v)})
	}

	return result
}

// NewRegistry builds a registry from the bindings.
func NewRegistry(bindings ...Binding) (*Registry, error) {
	builder := NewRegistryBuilder()
	for _, b := range bindings {
		for _, version := range b.Versions {
			if err := builder.Register(version, b.Codec); err != nil {
				return nil, err
			}
		}
	}

	return builder.Build()
}

// NewDefaultRegistry builds a new registry holding every field of the table.
func NewDefaultRegistry() (*Registry, error) {
	return NewRegistry(DefaultBindings()...)
}

// MustNewDefaultRegistry is like NewDefaultRegistry but panics on error.
func MustNewDefaultRegistry() *Registry {
	reg, err := NewDefaultRegistry()
	if err != nil {
		panic(fmt.Sprintf("failed to build the default codec registry: %v", err))
	}

	return reg
}
