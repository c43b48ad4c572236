/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package hll

import (
	"github.com/cespare/xxhash/v2"
	"github.com/dgryski/go-farm"
	"github.com/twmb/murmur3"
)

// Hasher turns the bytes of an item into a 128-bit hash. The low word selects the
// bucket and the leading zeros of the high word give the bucket value, so both
// words must be well mixed.
//
// A sketch does not record which Hasher built it. Sketches that are going to be
// unioned must be fed through equivalent hashers.
type Hasher interface {
	Sum128(data []byte) (lo uint64, hi uint64)
}

type murmur3Hasher struct {
	seed uint64
}

// NewMurmur3Hasher returns the default hasher, MurmurHash3 x64 128 with both seed
// words set to seed. With internal.DefaultUpdateSeed it is compatible with the
// other DataSketches implementations.
func NewMurmur3Hasher(seed uint64) Hasher {
	return murmur3Hasher{seed: seed}
}

func (h murmur3Hasher) Sum128(data []byte) (uint64, uint64) {
	return murmur3.SeedSum128(h.seed, h.seed, data)
}

type xxHasher struct {
	seed uint64
}

// NewXXHasher returns a hasher built on two chained xxHash64 digests: the second
// digest is seeded with the first one's sum.
func NewXXHasher(seed uint64) Hasher {
	return xxHasher{seed: seed}
}

func (h xxHasher) Sum128(data []byte) (uint64, uint64) {
	d := xxhash.NewWithSeed(h.seed)
	_, _ = d.Write(data)
	lo := d.Sum64()
	d = xxhash.NewWithSeed(lo)
	_, _ = d.Write(data)
	return lo, d.Sum64()
}

type farmHasher struct {
	seed uint64
}

// NewFarmHasher returns a hasher built on the 128-bit FarmHash with the given seed
// in both seed words.
func NewFarmHasher(seed uint64) Hasher {
	return farmHasher{seed: seed}
}

func (h farmHasher) Sum128(data []byte) (uint64, uint64) {
	return farm.Hash128WithSeed(data, h.seed, h.seed)
}
