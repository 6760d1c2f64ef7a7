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

package device

import (
	"fmt"
	"time"

	"github.com/superkkt/ofmatch/match"

	lru "github.com/hashicorp/golang-lru"
)

// unknownCache remembers recently reported unknown match entries so that a
// switch repeating the same entry is logged once per expiration period.
type unknownCache struct {
	cache      *lru.Cache
	expiration time.Duration
	now        func() time.Time
}

func newUnknownCache(size int, expiration time.Duration) *unknownCache {
	c, err := lru.New(size)
	if err != nil {
		panic(fmt.Sprintf("failed to init a LRU unknown field cache: %v", err))
	}

	return &unknownCache{
		cache:      c,
		expiration: expiration,
		now:        time.Now,
	}
}

// Mark records the key and returns true if it has not been seen within the
// expiration period.
func (r *unknownCache) Mark(key match.Key) bool {
	t := r.now()

	v, ok := r.cache.Get(key)
	if ok && t.Sub(v.(time.Time)) < r.expiration {
		return false
	}
	// Update if the key already exists.
	r.cache.Add(key, t)

	return true
}

func (r *unknownCache) Len() int {
	return r.cache.Len()
}
