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

// hll8ArrayImpl stores one byte per slot. curMin stays 0, so numAtCurMin counts the
// slots that were never hit.
type hll8ArrayImpl struct {
	hllArrayImpl
}

func newHll8Array(lgConfigK int) *hll8ArrayImpl {
	return &hll8ArrayImpl{
		hllArrayImpl: newHllArrayImpl(lgConfigK, TgtHllTypeHll8),
	}
}

func (h *hll8ArrayImpl) getSlotValue(slotNo int) int {
	return int(h.hllByteArr[slotNo]) & valMask6
}

func (h *hll8ArrayImpl) putSlotValue(slotNo int, value int) {
	h.hllByteArr[slotNo] = byte(value & valMask6)
}

func (h *hll8ArrayImpl) couponUpdate(coupon int) (hllSketchImpl, error) {
	newValue := getPairValue(coupon)
	slotNo := getPairLow26(coupon) & h.slotNoMask
	if err := h.updateSlotWithKxQ(slotNo, newValue); err != nil {
		return nil, err
	}
	return h, nil
}

// updateSlotWithKxQ keeps the larger of the stored and the new value, maintaining
// the HIP and kxq sums and the count of zero slots.
func (h *hll8ArrayImpl) updateSlotWithKxQ(slotNo int, newValue int) error {
	oldValue := h.getSlotValue(slotNo)
	if newValue <= oldValue {
		return nil
	}
	if err := h.hipAndKxQIncrementalUpdate(oldValue, newValue); err != nil {
		return err
	}
	h.putSlotValue(slotNo, newValue)
	if oldValue == 0 {
		h.numAtCurMin--
	}
	return nil
}

func (h *hll8ArrayImpl) allPairs() iter.Seq[int] {
	return func(yield func(int) bool) {
		for slotNo := range h.hllByteArr {
			if !yield(pair(slotNo, h.getSlotValue(slotNo))) {
				return
			}
		}
	}
}

func (h *hll8ArrayImpl) validPairs() iter.Seq[int] {
	return func(yield func(int) bool) {
		for slotNo := range h.hllByteArr {
			v := h.getSlotValue(slotNo)
			if v == empty {
				continue
			}
			if !yield(pair(slotNo, v)) {
				return
			}
		}
	}
}

func (h *hll8ArrayImpl) copy() hllSketchImpl {
	return &hll8ArrayImpl{hllArrayImpl: h.clone()}
}

func (h *hll8ArrayImpl) copyAs(tgtHllType TgtHllType) (hllSketchImpl, error) {
	if tgtHllType == TgtHllTypeHll8 {
		return h.copy(), nil
	}
	hll4, err := convertToHll4(h)
	if err != nil {
		return nil, err
	}
	return hll4, nil
}
