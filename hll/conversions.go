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

// promoteListOrSetToHll replays the coupons of a LIST or SET into a fresh dense array
// of the target type. The coupon estimate of the source becomes the array's HIP
// accumulator, and the array starts in order.
func promoteListOrSetToHll(src *hllCouponState) (hllSketchImpl, error) {
	tgt := newHllArray(src.lgConfigK, src.tgtHllType)
	est, err := src.getEstimate()
	if err != nil {
		return nil, err
	}
	for p := range src.validPairs() {
		if _, err := tgt.couponUpdate(p); err != nil {
			return nil, err
		}
	}
	tgt.base().putHipAccum(est)
	tgt.putOutOfOrder(false)
	return tgt, nil
}

func promoteListToSet(list *couponListImpl) (hllSketchImpl, error) {
	set := newCouponHashSet(list.lgConfigK, list.tgtHllType)
	for p := range list.validPairs() {
		if err := set.insert(p); err != nil {
			return nil, err
		}
	}
	set.putOutOfOrder(true)
	return set, nil
}

// curMinAndNum returns the smallest slot value of the array and how many slots hold it.
func curMinAndNum(src hllArray) (int, int) {
	curMin := 64
	numAtCurMin := 0
	for p := range src.allPairs() {
		v := getPairValue(p)
		if v > curMin {
			continue
		}
		if v < curMin {
			curMin = v
			numAtCurMin = 1
		} else {
			numAtCurMin++
		}
	}
	return curMin, numAtCurMin
}

// convertToHll4 rebuilds the array as HLL_4. The kxq sums are recomputed from the
// slot values; the HIP accumulator and the order flag are carried over unchanged.
func convertToHll4(src hllArray) (*hll4ArrayImpl, error) {
	srcBase := src.base()
	tgt := newHll4Array(srcBase.lgConfigK)
	tgt.putOutOfOrder(srcBase.oooFlag)

	curMin, numAtCurMin := curMinAndNum(src)
	for p := range src.validPairs() {
		slotNo := getPairLow26(p)
		actualValue := getPairValue(p)
		if err := tgt.hipAndKxQIncrementalUpdate(0, actualValue); err != nil {
			return nil, err
		}
		if actualValue >= curMin+auxToken {
			tgt.putNibble(slotNo, auxToken)
			if tgt.auxHashMap == nil {
				tgt.auxHashMap = newAuxHashMap(lgAuxArrInts[tgt.lgConfigK], tgt.lgConfigK)
			}
			if err := tgt.auxHashMap.mustAdd(slotNo, actualValue); err != nil {
				return nil, err
			}
		} else {
			tgt.putNibble(slotNo, actualValue-curMin)
		}
	}
	tgt.curMin = curMin
	tgt.numAtCurMin = numAtCurMin
	tgt.putHipAccum(srcBase.hipAccum) // intentional overwrite
	return tgt, nil
}

// convertToHll8 rebuilds the array as HLL_8, carrying over the HIP accumulator and
// the order flag.
func convertToHll8(src hllArray) (*hll8ArrayImpl, error) {
	srcBase := src.base()
	tgt := newHll8Array(srcBase.lgConfigK)
	tgt.putOutOfOrder(srcBase.oooFlag)
	numZeros := 1 << srcBase.lgConfigK
	for p := range src.validPairs() {
		numZeros--
		if _, err := tgt.couponUpdate(p); err != nil {
			return nil, err
		}
	}
	tgt.numAtCurMin = numZeros
	tgt.putHipAccum(srcBase.hipAccum) // intentional overwrite
	return tgt, nil
}
