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

// hll4ArrayImpl stores each slot as a 4-bit offset from curMin, two slots per byte.
// The nibble auxToken marks a slot whose value is at least curMin+15; its exact
// value lives in the aux map. Every auxToken nibble has exactly one aux entry.
type hll4ArrayImpl struct {
	hllArrayImpl
}

func newHll4Array(lgConfigK int) *hll4ArrayImpl {
	return &hll4ArrayImpl{
		hllArrayImpl: newHllArrayImpl(lgConfigK, TgtHllTypeHll4),
	}
}

func (h *hll4ArrayImpl) getNibble(slotNo int) int {
	theByte := int(h.hllByteArr[slotNo>>1])
	if (slotNo & 1) > 0 { // odd
		theByte >>= 4
	}
	return theByte & loNibbleMask
}

func (h *hll4ArrayImpl) putNibble(slotNo int, nibValue int) {
	byteNo := slotNo >> 1
	oldValue := h.hllByteArr[byteNo]
	if (slotNo & 1) == 0 { // even
		h.hllByteArr[byteNo] = (oldValue & 0xf0) | byte(nibValue&loNibbleMask)
	} else {
		h.hllByteArr[byteNo] = (oldValue & loNibbleMask) | byte((nibValue<<4)&0xf0)
	}
}

// getSlotValue returns the exact value of the slot, consulting the aux map for
// overflowed slots.
func (h *hll4ArrayImpl) getSlotValue(slotNo int) (int, error) {
	nib := h.getNibble(slotNo)
	if nib != auxToken {
		return nib + h.curMin, nil
	}
	if h.auxHashMap == nil {
		return 0, consistencyErrorf("slot %d holds the aux token but there is no aux map", slotNo)
	}
	return h.auxHashMap.mustFindValueFor(slotNo)
}

func (h *hll4ArrayImpl) couponUpdate(coupon int) (hllSketchImpl, error) {
	newValue := getPairValue(coupon)
	if newValue <= h.curMin {
		return h, nil // quick rejection, but only works for large N
	}
	slotNo := getPairLow26(coupon) & h.slotNoMask
	if err := h.internalHll4Update(slotNo, newValue); err != nil {
		return nil, err
	}
	return h, nil
}

// allPairs walks the nibbles in slot order, then the aux map for the slots the
// nibble pass skipped.
func (h *hll4ArrayImpl) allPairs() iter.Seq[int] {
	return h.pairs(true)
}

func (h *hll4ArrayImpl) validPairs() iter.Seq[int] {
	return h.pairs(false)
}

func (h *hll4ArrayImpl) pairs(all bool) iter.Seq[int] {
	return func(yield func(int) bool) {
		k := 1 << h.lgConfigK
		for slotNo := 0; slotNo < k; slotNo++ {
			nib := h.getNibble(slotNo)
			if nib == auxToken {
				continue
			}
			v := nib + h.curMin
			if v == empty && !all {
				continue
			}
			if !yield(pair(slotNo, v)) {
				return
			}
		}
		if h.auxHashMap == nil {
			return
		}
		for p := range h.auxHashMap.validPairs() {
			if !yield(pair(getPairLow26(p)&h.slotNoMask, getPairValue(p))) {
				return
			}
		}
	}
}

// numAuxTokens counts the slots whose nibble is the aux token.
func (h *hll4ArrayImpl) numAuxTokens() int {
	n := 0
	for slotNo := 0; slotNo < (1 << h.lgConfigK); slotNo++ {
		if h.getNibble(slotNo) == auxToken {
			n++
		}
	}
	return n
}

func (h *hll4ArrayImpl) auxCount() int {
	if h.auxHashMap == nil {
		return 0
	}
	return h.auxHashMap.auxCount
}

func (h *hll4ArrayImpl) copy() hllSketchImpl {
	return &hll4ArrayImpl{hllArrayImpl: h.clone()}
}

func (h *hll4ArrayImpl) copyAs(tgtHllType TgtHllType) (hllSketchImpl, error) {
	if tgtHllType == TgtHllTypeHll4 {
		return h.copy(), nil
	}
	hll8, err := convertToHll8(h)
	if err != nil {
		return nil, err
	}
	return hll8, nil
}
