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

package election

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type scriptedDB struct {
	mutex   sync.Mutex
	results []bool
	calls   int
}

func (r *scriptedDB) Elect(uid string, expiration time.Duration) (bool, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.calls >= len(r.results) {
		return false, errors.New("end of script")
	}
	v := r.results[r.calls]
	r.calls++

	return v, nil
}

type roleRecorder struct {
	mutex sync.Mutex
	roles []Role
}

func (r *roleRecorder) OnRoleChanged(deviceID uint64, role Role) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.roles = append(r.roles, role)
}

func (r *roleRecorder) get() []Role {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return append([]Role(nil), r.roles...)
}

func TestObserverTransitions(t *testing.T) {
	db := &scriptedDB{results: []bool{true, true, false, false, true}}
	observer := New(db)
	observer.interval = 10 * time.Millisecond

	recorder := &roleRecorder{}
	observer.Register(1, recorder)

	// The script ends with an error that stops the observer.
	if err := observer.Run(context.Background()); err == nil {
		t.Fatal("expected an error at the end of the election script")
	}

	expected := []Role{RoleSlave, RoleMaster, RoleSlave, RoleMaster}
	actual := recorder.get()
	if len(actual) != len(expected) {
		t.Fatalf("unexpected role notifications: expected=%v, actual=%v", expected, actual)
	}
	for i := range expected {
		if actual[i] != expected[i] {
			t.Fatalf("unexpected role notifications: expected=%v, actual=%v", expected, actual)
		}
	}
	if observer.IsMaster() == false {
		t.Fatal("expected the master role")
	}
}

func TestObserverUnregister(t *testing.T) {
	db := &scriptedDB{results: []bool{true}}
	observer := New(db)
	observer.interval = 10 * time.Millisecond

	recorder := &roleRecorder{}
	observer.Register(1, recorder)
	observer.Unregister(1)
	observer.Run(context.Background())

	if roles := recorder.get(); len(roles) != 1 || roles[0] != RoleSlave {
		t.Fatalf("unexpected role notifications: %v", roles)
	}
}

func TestObserverCancel(t *testing.T) {
	observer := New(&scriptedDB{})
	observer.interval = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := observer.Run(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStatic(t *testing.T) {
	s := NewStatic()
	recorder := &roleRecorder{}
	s.Register(9, recorder)

	if s.IsMaster() == false {
		t.Fatal("expected the master role")
	}
	if roles := recorder.get(); len(roles) != 1 || roles[0] != RoleMaster {
		t.Fatalf("unexpected role notifications: %v", roles)
	}
}
