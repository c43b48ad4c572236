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
	"fmt"
	"math"
	"math/bits"
)

const (
	defaultLgK     = 12
	lgInitListSize = 3
	lgInitSetSize  = 5
)

const (
	minLogK         = 4
	maxLogK         = 21
	empty           = 0
	keyBits26       = 26
	valBits6        = 6
	keyMask26       = (1 << keyBits26) - 1
	valMask6        = (1 << valBits6) - 1
	resizeNumber    = 3
	resizeDenom     = 4
	couponRSEFactor = .409 // at transition point not the asymptote
	couponRSE       = couponRSEFactor / (1 << 13)
	loNibbleMask    = 0x0f

	auxToken = 0xf
)

var (
	hllNonHipRSEFactor = math.Sqrt((3.0 * math.Log(2.0)) - 1.0) // 1.03896
	hllHipRSEFactor    = math.Sqrt(math.Log(2.0))               // .8325546
)

// TgtHllType is the dense encoding a sketch is heading for once it leaves the
// sparse warm-up modes.
//
//   - TgtHllTypeHll4 uses a 4-bit field per bucket plus a small auxiliary map for
//     the rare values that do not fit. It has the smallest footprint, about K/2
//     bytes, and the slowest updates.
//   - TgtHllTypeHll8 uses a byte per bucket. It is the fastest to update and is the
//     encoding a Union works in.
//
// Both are isomorphic: for the same lgConfigK and the same input they produce
// identical estimates.
type TgtHllType int

const (
	TgtHllTypeHll4    = TgtHllType(0)
	TgtHllTypeHll8    = TgtHllType(2)
	TgtHllTypeDefault = TgtHllTypeHll4
)

func (t TgtHllType) String() string {
	switch t {
	case TgtHllTypeHll4:
		return "HLL_4"
	case TgtHllTypeHll8:
		return "HLL_8"
	default:
		return fmt.Sprintf("TgtHllType(%d)", int(t))
	}
}

func checkTgtHllType(t TgtHllType) error {
	if t != TgtHllTypeHll4 && t != TgtHllTypeHll8 {
		return fmt.Errorf("%w: unsupported target HLL type: %d", ErrInvalidConfig, int(t))
	}
	return nil
}

// CurMode is the representation a sketch currently holds.
type CurMode int

const (
	CurModeList CurMode = 0
	CurModeSet  CurMode = 1
	CurModeHll  CurMode = 2
)

func (m CurMode) String() string {
	switch m {
	case CurModeList:
		return "LIST"
	case CurModeSet:
		return "SET"
	case CurModeHll:
		return "HLL"
	default:
		return fmt.Sprintf("CurMode(%d)", int(m))
	}
}

// lgAuxArrInts is the log2 of the initial aux map size, indexed by lgK from 0 to 26.
// Only lgK from 4 to 21 are used.
var lgAuxArrInts = [...]int{
	0, 2, 2, 2, 2, 2, 2, 3, 3, 3, // 0 - 9
	4, 4, 5, 5, 6, 7, 8, 9, 10, 11, // 10 - 19
	12, 13, 14, 15, 16, 17, 18, // 20 - 26
}

func checkLgK(lgK int) error {
	if lgK >= minLogK && lgK <= maxLogK {
		return nil
	}
	return fmt.Errorf("%w: log K must be between 4 and 21, inclusive: %d", ErrInvalidConfig, lgK)
}

func checkNumStdDev(numStdDev int) error {
	if numStdDev < 1 || numStdDev > 3 {
		return fmt.Errorf("%w: NumStdDev may not be less than 1 or greater than 3: %d", ErrInvalidConfig, numStdDev)
	}
	return nil
}

// pair packs a slot number into the low 26 bits and a value into the bits above.
func pair(slotNo int, value int) int {
	return (value << keyBits26) | (slotNo & keyMask26)
}

func pairString(p int) string {
	return fmt.Sprintf("SlotNo: %d, Value: %d", getPairLow26(p), getPairValue(p))
}

// getPairLow26 returns the low 26 bits of the pair, the slot address.
func getPairLow26(p int) int {
	return p & keyMask26
}

// getPairValue returns the value bits of the pair.
func getPairValue(p int) int {
	return p >> keyBits26
}

// coupon turns a 128-bit hash into a coupon. The slot address comes from the low
// word and the value is one more than the number of leading zeros of the high word,
// capped so that it always fits in valBits6.
func coupon(lo, hi uint64) int {
	addr26 := int(lo & keyMask26)
	lz := bits.LeadingZeros64(hi)
	value := min(lz, 62) + 1
	return (value << keyBits26) | addr26
}

func consistencyErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInternalConsistency}, args...)...)
}

// GetMaxUpdatableSerializationBytes returns the maximum size in bytes that a sketch
// with the given configuration can need when serialized in its updatable form. For
// HLL_4 it allows for the largest aux table: every slot but one at curMin can
// overflow, and holding K-1 entries at 3/4 load takes 2^(lgConfigK+1) entries.
func GetMaxUpdatableSerializationBytes(lgConfigK int, tgtHllType TgtHllType) int {
	var arrBytes int
	if tgtHllType == TgtHllTypeHll4 {
		auxBytes := 4 << (lgConfigK + 1)
		arrBytes = (1 << (lgConfigK - 1)) + auxBytes
	} else {
		arrBytes = 1 << lgConfigK
	}
	return hllByteArrStart + arrBytes
}
