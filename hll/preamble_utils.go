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
	"encoding/binary"
	"fmt"
	"math"

	"github.com/apache/datasketches-hll-go/internal"
)

// Byte offsets of the serialized image. All multi-byte fields are little endian.
const (
	preambleIntsByte = 0
	serVerByte       = 1
	familyByte       = 2
	lgKByte          = 3
	lgArrByte        = 4
	flagsByte        = 5
	listCountByte    = 6 // LIST only
	hllCurMinByte    = 6 // HLL only
	modeByte         = 7 // lo 2 bits curMode, next 2 bits TgtHllType

	listIntArrStart = 8

	hashSetCountInt    = 8
	hashSetIntArrStart = 12

	hipAccumDouble  = 8
	kxq0Double      = 16
	kxq1Double      = 24
	curMinCountInt  = 32
	auxCountInt     = 36
	hllByteArrStart = 40
)

const (
	emptyFlagMask      = 4
	compactFlagMask    = 8
	outOfOrderFlagMask = 16

	curModeMask    = 3
	tgtHllTypeMask = 12

	serVer         = 1
	listPreInts    = 2
	hashSetPreInts = 3
	hllPreInts     = 10
)

// preamble is the first 8 bytes of every image.
type preamble struct {
	preInts    int
	lgK        int
	lgArr      int
	flags      byte
	modeData   int // coupon count for LIST, curMin for HLL
	curMode    CurMode
	tgtHllType TgtHllType
}

func newPreamble(cfg *hllSketchConfig, lgArr int, empty, compact, ooo bool) preamble {
	p := preamble{
		lgK:        cfg.lgConfigK,
		lgArr:      lgArr,
		curMode:    cfg.curMode,
		tgtHllType: cfg.tgtHllType,
	}
	p.preInts, _ = preIntsFor(cfg.curMode)
	if empty {
		p.flags |= emptyFlagMask
	}
	if compact {
		p.flags |= compactFlagMask
	}
	if ooo {
		p.flags |= outOfOrderFlagMask
	}
	return p
}

func preIntsFor(curMode CurMode) (int, bool) {
	switch curMode {
	case CurModeList:
		return listPreInts, true
	case CurModeSet:
		return hashSetPreInts, true
	case CurModeHll:
		return hllPreInts, true
	}
	return 0, false
}

func (p preamble) isCompact() bool {
	return p.flags&compactFlagMask != 0
}

func (p preamble) isOutOfOrder() bool {
	return p.flags&outOfOrderFlagMask != 0
}

func (p preamble) put(dst []byte) {
	dst[preambleIntsByte] = byte(p.preInts & 0x3F)
	dst[serVerByte] = serVer
	dst[familyByte] = byte(internal.FamilyEnum.HLL.Id)
	dst[lgKByte] = byte(p.lgK)
	dst[lgArrByte] = byte(p.lgArr)
	dst[flagsByte] = p.flags
	dst[listCountByte] = byte(p.modeData)
	dst[modeByte] = (byte(p.curMode) & curModeMask) | ((byte(p.tgtHllType) << 2) & tgtHllTypeMask)
}

// readPreamble decodes and validates the first 8 bytes of an image.
func readPreamble(src []byte) (preamble, error) {
	if len(src) < 8 {
		return preamble{}, fmt.Errorf("%w: input array too small: %d", ErrInvalidImage, len(src))
	}
	p := preamble{
		preInts:    int(src[preambleIntsByte] & 0x3F),
		lgK:        int(src[lgKByte]),
		lgArr:      int(src[lgArrByte]),
		flags:      src[flagsByte],
		modeData:   int(src[listCountByte]),
		curMode:    CurMode(src[modeByte] & curModeMask),
		tgtHllType: TgtHllType((src[modeByte] & tgtHllTypeMask) >> 2),
	}
	if famID := int(src[familyByte]); famID != internal.FamilyEnum.HLL.Id {
		return p, fmt.Errorf("%w: possible corruption: invalid family: %d", ErrInvalidImage, famID)
	}
	if v := int(src[serVerByte]); v != serVer {
		return p, fmt.Errorf("%w: possible corruption: invalid serialization version: %d", ErrInvalidImage, v)
	}
	want, ok := preIntsFor(p.curMode)
	if !ok || p.preInts != want {
		return p, fmt.Errorf("%w: possible corruption: invalid preamble ints %d for mode %v", ErrInvalidImage, p.preInts, p.curMode)
	}
	if len(src) < p.preInts*4 {
		return p, fmt.Errorf("%w: preamble length mismatch: %d, %d", ErrInvalidImage, len(src), p.preInts)
	}
	if err := checkLgK(p.lgK); err != nil {
		return p, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if err := checkTgtHllType(p.tgtHllType); err != nil {
		return p, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return p, nil
}

// hllHeader is the part of the HLL preamble after the first 8 bytes.
type hllHeader struct {
	hipAccum    float64
	kxq0        float64
	kxq1        float64
	numAtCurMin int
	auxCount    int
}

func (h hllHeader) put(dst []byte) {
	binary.LittleEndian.PutUint64(dst[hipAccumDouble:], math.Float64bits(h.hipAccum))
	binary.LittleEndian.PutUint64(dst[kxq0Double:], math.Float64bits(h.kxq0))
	binary.LittleEndian.PutUint64(dst[kxq1Double:], math.Float64bits(h.kxq1))
	binary.LittleEndian.PutUint32(dst[curMinCountInt:], uint32(h.numAtCurMin))
	binary.LittleEndian.PutUint32(dst[auxCountInt:], uint32(h.auxCount))
}

func readHllHeader(src []byte) hllHeader {
	return hllHeader{
		hipAccum:    math.Float64frombits(binary.LittleEndian.Uint64(src[hipAccumDouble:])),
		kxq0:        math.Float64frombits(binary.LittleEndian.Uint64(src[kxq0Double:])),
		kxq1:        math.Float64frombits(binary.LittleEndian.Uint64(src[kxq1Double:])),
		numAtCurMin: int(binary.LittleEndian.Uint32(src[curMinCountInt:])),
		auxCount:    int(binary.LittleEndian.Uint32(src[auxCountInt:])),
	}
}

func putIntArr(dst []byte, offset int, ints []int) {
	for i, v := range ints {
		binary.LittleEndian.PutUint32(dst[offset+(i<<2):], uint32(v))
	}
}

func getInt(src []byte, offset int) int {
	return int(binary.LittleEndian.Uint32(src[offset:]))
}
