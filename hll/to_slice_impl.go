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
)

// writeCouponImage writes a LIST or SET image into dst, which is exactly the size
// reported by the matching get*SerializationBytes and zeroed.
func writeCouponImage(c *hllCouponState, dst []byte, compact bool) error {
	p := newPreamble(&c.hllSketchConfig, c.lgCouponArrInts, c.isEmpty(), compact, c.oooFlag)
	if c.curMode == CurModeList {
		p.modeData = c.couponCount
	}
	p.put(dst)
	if c.curMode == CurModeSet {
		binary.LittleEndian.PutUint32(dst[hashSetCountInt:], uint32(c.couponCount))
	}

	dataStart := c.getMemDataStart()
	if !compact {
		putIntArr(dst, dataStart, c.couponIntArr)
		return nil
	}
	cnt := 0
	for coupon := range c.validPairs() {
		binary.LittleEndian.PutUint32(dst[dataStart+(cnt<<2):], uint32(coupon))
		cnt++
	}
	if cnt != c.couponCount {
		return consistencyErrorf("coupon count %d does not match %d stored coupons", c.couponCount, cnt)
	}
	return nil
}

// writeHllImage writes an HLL_4 or HLL_8 image into dst, which is exactly the size
// reported by the matching get*SerializationBytes and zeroed.
func writeHllImage(a *hllArrayImpl, dst []byte, compact bool) error {
	lgArr := 0
	auxCount := 0
	if a.tgtHllType == TgtHllTypeHll4 {
		lgArr = lgAuxArrInts[a.lgConfigK]
		if a.auxHashMap != nil {
			lgArr = a.auxHashMap.lgAuxArrInts
			auxCount = a.auxHashMap.auxCount
		}
	}
	p := newPreamble(&a.hllSketchConfig, lgArr, a.isEmpty(), compact, a.oooFlag)
	p.modeData = a.curMin
	p.put(dst)
	hllHeader{
		hipAccum:    a.hipAccum,
		kxq0:        a.kxq0,
		kxq1:        a.kxq1,
		numAtCurMin: a.numAtCurMin,
		auxCount:    auxCount,
	}.put(dst)
	copy(dst[hllByteArrStart:], a.hllByteArr)

	if a.auxHashMap == nil {
		return nil
	}
	auxStart := a.auxStart()
	if !compact {
		putIntArr(dst, auxStart, a.auxHashMap.auxIntArr)
		return nil
	}
	cnt := 0
	for pr := range a.auxHashMap.validPairs() {
		binary.LittleEndian.PutUint32(dst[auxStart+(cnt<<2):], uint32(pr))
		cnt++
	}
	if cnt != auxCount {
		return consistencyErrorf("corruption, should not happen: %d != %d", cnt, auxCount)
	}
	return nil
}
