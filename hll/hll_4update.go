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

// internalHll4Update raises slotNo to newValue if that is an increase. newValue is
// known to exceed curMin.
func (h *hll4ArrayImpl) internalHll4Update(slotNo int, newValue int) error {
	rawStoredOldNibble := h.getNibble(slotNo)
	lbOnOldValue := rawStoredOldNibble + h.curMin // lower bound, could be 0

	if newValue <= lbOnOldValue {
		return nil
	}

	// the lower bound is exact unless the slot is overflowed
	oldValue := lbOnOldValue
	if rawStoredOldNibble == auxToken {
		if h.auxHashMap == nil {
			return consistencyErrorf("slot %d holds the aux token but there is no aux map", slotNo)
		}
		v, err := h.auxHashMap.mustFindValueFor(slotNo)
		if err != nil {
			return err
		}
		oldValue = v
	}
	if newValue <= oldValue {
		return nil
	}

	if err := h.hipAndKxQIncrementalUpdate(oldValue, newValue); err != nil {
		return err
	}

	shiftedNewValue := newValue - h.curMin // 1 <= shiftedNewValue <= 63
	if rawStoredOldNibble == auxToken {
		if shiftedNewValue < auxToken {
			// an overflowed old value is at least curMin+15 and the new value is larger
			return consistencyErrorf("slot %d: overflowed value %d cannot fall back to nibble %d", slotNo, oldValue, shiftedNewValue)
		}
		if err := h.auxHashMap.mustReplace(slotNo, newValue); err != nil {
			return err
		}
	} else if shiftedNewValue >= auxToken {
		h.putNibble(slotNo, auxToken)
		if h.auxHashMap == nil {
			h.auxHashMap = newAuxHashMap(lgAuxArrInts[h.lgConfigK], h.lgConfigK)
		}
		if err := h.auxHashMap.mustAdd(slotNo, newValue); err != nil {
			return err
		}
	} else {
		h.putNibble(slotNo, shiftedNewValue)
	}

	if oldValue == h.curMin {
		h.numAtCurMin--
		for h.numAtCurMin == 0 {
			if err := h.shiftToBiggerCurMin(); err != nil {
				return err
			}
		}
	}
	return nil
}

// shiftToBiggerCurMin raises curMin by one. Every nibble below the aux token drops
// by one, and every aux entry whose offset from the new curMin fits in a nibble
// again moves back into the array. The aux map is rebuilt from the entries that
// still overflow.
func (h *hll4ArrayImpl) shiftToBiggerCurMin() error {
	newCurMin := h.curMin + 1
	configK := 1 << h.lgConfigK

	numAtNewCurMin := 0
	numAuxTokens := 0
	for slotNo := 0; slotNo < configK; slotNo++ {
		nib := h.getNibble(slotNo)
		if nib == 0 {
			return consistencyErrorf("slot %d is at curMin %d while numAtCurMin is 0", slotNo, h.curMin)
		}
		if nib < auxToken {
			nib--
			h.putNibble(slotNo, nib)
			if nib == 0 {
				numAtNewCurMin++
			}
		} else {
			numAuxTokens++
		}
	}

	var newAuxMap *auxHashMap
	if h.auxHashMap != nil {
		for p := range h.auxHashMap.validPairs() {
			slotNo := getPairLow26(p) & h.slotNoMask
			exactValue := getPairValue(p)
			newShiftedValue := exactValue - newCurMin
			if newShiftedValue < 0 {
				return consistencyErrorf("aux value %d of slot %d is below the new curMin %d", exactValue, slotNo, newCurMin)
			}
			if newShiftedValue < auxToken {
				if newShiftedValue != 14 {
					return consistencyErrorf("aux value %d of slot %d was not an overflow", exactValue, slotNo)
				}
				h.putNibble(slotNo, newShiftedValue)
				numAuxTokens--
				continue
			}
			if newAuxMap == nil {
				newAuxMap = newAuxHashMap(lgAuxArrInts[h.lgConfigK], h.lgConfigK)
			}
			if err := newAuxMap.mustAdd(slotNo, exactValue); err != nil {
				return err
			}
		}
	}

	newAuxCount := 0
	if newAuxMap != nil {
		newAuxCount = newAuxMap.auxCount
	}
	if newAuxCount != numAuxTokens {
		return consistencyErrorf("aux count %d does not match %d aux tokens after curMin shift", newAuxCount, numAuxTokens)
	}

	h.auxHashMap = newAuxMap
	h.curMin = newCurMin
	h.numAtCurMin = numAtNewCurMin
	return nil
}
