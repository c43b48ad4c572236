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
	"iter"
)

// hllCouponState is the storage shared by the LIST and SET representations: an
// array of coupons, kept unsorted for LIST and as an open addressing table for SET.
type hllCouponState struct {
	hllSketchConfig

	lgCouponArrInts int
	couponCount     int
	oooFlag         bool
	couponIntArr    []int
}

func newHllCouponState(lgConfigK int, tgtHllType TgtHllType, curMode CurMode) hllCouponState {
	lgArr := lgInitListSize
	if curMode == CurModeSet {
		lgArr = lgInitSetSize
	}
	return hllCouponState{
		hllSketchConfig: newHllSketchConfig(lgConfigK, tgtHllType, curMode),
		lgCouponArrInts: lgArr,
		oooFlag:         curMode == CurModeSet, // a SET never preserves input order
		couponIntArr:    make([]int, 1<<lgArr),
	}
}

func (c *hllCouponState) clone(tgtHllType TgtHllType) hllCouponState {
	out := *c
	out.tgtHllType = tgtHllType
	out.couponIntArr = make([]int, len(c.couponIntArr))
	copy(out.couponIntArr, c.couponIntArr)
	return out
}

func (c *hllCouponState) getCouponCount() int {
	return c.couponCount
}

func (c *hllCouponState) isEmpty() bool {
	return c.couponCount == 0
}

func (c *hllCouponState) isOutOfOrder() bool {
	return c.oooFlag
}

func (c *hllCouponState) putOutOfOrder(oooFlag bool) {
	c.oooFlag = oooFlag
}

func (c *hllCouponState) validPairs() iter.Seq[int] {
	return intArrayValidPairs(c.couponIntArr)
}

func (c *hllCouponState) allPairs() iter.Seq[int] {
	return intArrayAllPairs(c.couponIntArr)
}

func (c *hllCouponState) getEstimate() (float64, error) {
	return couponEstimate(c.couponCount)
}

func (c *hllCouponState) getCompositeEstimate() (float64, error) {
	return couponEstimate(c.couponCount)
}

func (c *hllCouponState) getHipEstimate() (float64, error) {
	return couponEstimate(c.couponCount)
}

func (c *hllCouponState) getLowerBound(numStdDev int) (float64, error) {
	return couponLowerBound(c.couponCount, numStdDev)
}

func (c *hllCouponState) getUpperBound(numStdDev int) (float64, error) {
	return couponUpperBound(c.couponCount, numStdDev)
}

func (c *hllCouponState) getMemDataStart() int {
	if c.curMode == CurModeList {
		return listIntArrStart
	}
	return hashSetIntArrStart
}

func (c *hllCouponState) getCompactSerializationBytes() int {
	return c.getMemDataStart() + (c.couponCount << 2)
}

func (c *hllCouponState) getUpdatableSerializationBytes() int {
	return c.getMemDataStart() + (4 << c.lgCouponArrInts)
}

func (c *hllCouponState) writeImage(dst []byte, compact bool) error {
	return writeCouponImage(c, dst, compact)
}

// couponListImpl is the LIST mode: an unsorted array of at most 2^lgInitListSize
// coupons, scanned linearly.
type couponListImpl struct {
	hllCouponState
}

func newCouponList(lgConfigK int, tgtHllType TgtHllType) *couponListImpl {
	return &couponListImpl{
		hllCouponState: newHllCouponState(lgConfigK, tgtHllType, CurModeList),
	}
}

// couponUpdate appends the coupon unless it is already present. Filling the array
// promotes the list, straight to HLL for lgConfigK < 8 and to SET otherwise.
func (c *couponListImpl) couponUpdate(coupon int) (hllSketchImpl, error) {
	for i, couponAtIdx := range c.couponIntArr {
		if couponAtIdx == coupon {
			return c, nil // duplicate
		}
		if couponAtIdx != empty {
			continue
		}
		c.couponIntArr[i] = coupon
		c.couponCount++
		if c.couponCount < len(c.couponIntArr) {
			return c, nil
		}
		if c.lgConfigK < 8 {
			return promoteListOrSetToHll(&c.hllCouponState)
		}
		return promoteListToSet(c)
	}
	return nil, consistencyErrorf("coupon list has no empties and no duplicate of %s", pairString(coupon))
}

func (c *couponListImpl) copy() hllSketchImpl {
	return &couponListImpl{hllCouponState: c.clone(c.tgtHllType)}
}

func (c *couponListImpl) copyAs(tgtHllType TgtHllType) (hllSketchImpl, error) {
	return &couponListImpl{hllCouponState: c.clone(tgtHllType)}, nil
}
