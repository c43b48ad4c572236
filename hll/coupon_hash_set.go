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

// couponHashSetImpl is the SET mode. Coupons live in an open addressing table that
// doubles when more than 3/4 full, up to 2^(lgConfigK-3) entries; one more growth
// step would cost as much as the dense array, so the set promotes to HLL instead.
type couponHashSetImpl struct {
	hllCouponState
}

func newCouponHashSet(lgConfigK int, tgtHllType TgtHllType) *couponHashSetImpl {
	return &couponHashSetImpl{
		hllCouponState: newHllCouponState(lgConfigK, tgtHllType, CurModeSet),
	}
}

func (c *couponHashSetImpl) couponUpdate(coupon int) (hllSketchImpl, error) {
	index, err := findCoupon(c.couponIntArr, c.lgCouponArrInts, coupon)
	if err != nil {
		return nil, err
	}
	if index >= 0 {
		return c, nil // duplicate
	}
	c.couponIntArr[^index] = coupon
	c.couponCount++
	promote, err := c.checkGrowOrPromote()
	if err != nil {
		return nil, err
	}
	if promote {
		return promoteListOrSetToHll(&c.hllCouponState)
	}
	return c, nil
}

// insert places a coupon known to be absent without any growth or promotion check.
func (c *couponHashSetImpl) insert(coupon int) error {
	index, err := findCoupon(c.couponIntArr, c.lgCouponArrInts, coupon)
	if err != nil {
		return err
	}
	if index >= 0 {
		return consistencyErrorf("coupon set already holds %s", pairString(coupon))
	}
	c.couponIntArr[^index] = coupon
	c.couponCount++
	return nil
}

func (c *couponHashSetImpl) checkGrowOrPromote() (bool, error) {
	if (resizeDenom * c.couponCount) <= (resizeNumber * (1 << c.lgCouponArrInts)) {
		return false, nil
	}
	if c.lgCouponArrInts == (c.lgConfigK - 3) {
		return true, nil // at max size
	}
	c.lgCouponArrInts++
	arr, err := growHashSet(c.couponIntArr, c.lgCouponArrInts)
	if err != nil {
		return false, err
	}
	c.couponIntArr = arr
	return false, nil
}

func growHashSet(coupons []int, tgtLgCoupArrSize int) ([]int, error) {
	tgtCouponIntArr := make([]int, 1<<tgtLgCoupArrSize)
	for _, fetched := range coupons {
		if fetched == empty {
			continue
		}
		idx, err := findCoupon(tgtCouponIntArr, tgtLgCoupArrSize, fetched)
		if err != nil {
			return nil, err
		}
		if idx >= 0 {
			return nil, consistencyErrorf("duplicate coupon while growing set: %s", pairString(fetched))
		}
		tgtCouponIntArr[^idx] = fetched
	}
	return tgtCouponIntArr, nil
}

// findCoupon searches the table for the coupon. It returns the index holding it, or
// the one's complement of the first empty index on its probe path.
func findCoupon(array []int, lgArrInts int, coupon int) (int, error) {
	arrMask := len(array) - 1
	probe := coupon & arrMask
	loopIndex := probe
	stride := ((coupon & keyMask26) >> lgArrInts) | 1
	for {
		couponAtIdx := array[probe]
		if couponAtIdx == empty {
			return ^probe, nil
		}
		if coupon == couponAtIdx {
			return probe, nil
		}
		probe = (probe + stride) & arrMask
		if probe == loopIndex {
			return 0, consistencyErrorf("coupon set has no empty entries and %s is absent", pairString(coupon))
		}
	}
}

func (c *couponHashSetImpl) copy() hllSketchImpl {
	return &couponHashSetImpl{hllCouponState: c.clone(c.tgtHllType)}
}

func (c *couponHashSetImpl) copyAs(tgtHllType TgtHllType) (hllSketchImpl, error) {
	return &couponHashSetImpl{hllCouponState: c.clone(tgtHllType)}, nil
}
