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

import "fmt"

// deserializeImpl rebuilds the representation held in an image.
func deserializeImpl(bytes []byte) (hllSketchImpl, error) {
	p, err := readPreamble(bytes)
	if err != nil {
		return nil, err
	}
	switch p.curMode {
	case CurModeList:
		return deserializeList(bytes, p)
	case CurModeSet:
		return deserializeSet(bytes, p)
	default:
		return deserializeHll(bytes, p)
	}
}

func invalidImagef(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidImage}, args...)...)
}

func checkImageLength(bytes []byte, need int) error {
	if len(bytes) < need {
		return invalidImagef("image holds %d bytes, needs %d", len(bytes), need)
	}
	return nil
}

func deserializeList(bytes []byte, p preamble) (hllSketchImpl, error) {
	list := newCouponList(p.lgK, p.tgtHllType)
	couponCount := p.modeData
	if couponCount >= len(list.couponIntArr) {
		return nil, invalidImagef("list count %d exceeds list capacity", couponCount)
	}
	n := couponCount
	if !p.isCompact() {
		if p.lgArr != lgInitListSize {
			return nil, invalidImagef("list lgArr %d", p.lgArr)
		}
		n = 1 << lgInitListSize
	}
	if err := checkImageLength(bytes, listIntArrStart+(n<<2)); err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		c := getInt(bytes, listIntArrStart+(i<<2))
		if c == empty {
			continue
		}
		if _, err := list.couponUpdate(c); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
		}
	}
	if list.couponCount != couponCount {
		return nil, invalidImagef("list count %d, found %d distinct coupons", couponCount, list.couponCount)
	}
	list.oooFlag = p.isOutOfOrder()
	return list, nil
}

func deserializeSet(bytes []byte, p preamble) (hllSketchImpl, error) {
	if err := checkImageLength(bytes, hashSetIntArrStart); err != nil {
		return nil, err
	}
	couponCount := getInt(bytes, hashSetCountInt)
	lgArr := p.lgArr
	n := 1 << min(lgArr, 26)
	if p.isCompact() {
		lgArr = lgInitSetSize
		for resizeDenom*couponCount > resizeNumber*(1<<lgArr) {
			lgArr++
		}
		n = couponCount
	}
	if lgArr < lgInitSetSize || lgArr > p.lgK-3 {
		return nil, invalidImagef("set lgArr %d not valid for lgK %d", lgArr, p.lgK)
	}
	if err := checkImageLength(bytes, hashSetIntArrStart+(n<<2)); err != nil {
		return nil, err
	}
	set := newCouponHashSet(p.lgK, p.tgtHllType)
	set.lgCouponArrInts = lgArr
	set.couponIntArr = make([]int, 1<<lgArr)
	if p.isCompact() {
		for i := 0; i < n; i++ {
			c := getInt(bytes, hashSetIntArrStart+(i<<2))
			if c == empty {
				continue
			}
			if err := set.insert(c); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
			}
		}
	} else {
		// the updatable table is restored as stored
		for i := range set.couponIntArr {
			set.couponIntArr[i] = getInt(bytes, hashSetIntArrStart+(i<<2))
		}
		for i, c := range set.couponIntArr {
			if c == empty {
				continue
			}
			index, err := findCoupon(set.couponIntArr, lgArr, c)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
			}
			if index != i {
				return nil, invalidImagef("set coupon %s at index %d is not on its probe path", pairString(c), i)
			}
			set.couponCount++
		}
	}
	if set.couponCount != couponCount {
		return nil, invalidImagef("set count %d, found %d coupons", couponCount, set.couponCount)
	}
	set.oooFlag = p.isOutOfOrder()
	return set, nil
}

func deserializeHll(bytes []byte, p preamble) (hllSketchImpl, error) {
	arrBytes := hllArrBytes(p.tgtHllType, p.lgK)
	auxStart := hllByteArrStart + arrBytes
	if err := checkImageLength(bytes, auxStart); err != nil {
		return nil, err
	}
	hdr := readHllHeader(bytes)

	arr := newHllArray(p.lgK, p.tgtHllType)
	a := arr.base()
	a.curMin = p.modeData
	a.numAtCurMin = hdr.numAtCurMin
	a.hipAccum = hdr.hipAccum
	a.kxq0 = hdr.kxq0
	a.kxq1 = hdr.kxq1
	a.oooFlag = p.isOutOfOrder()
	copy(a.hllByteArr, bytes[hllByteArrStart:auxStart])

	if p.tgtHllType == TgtHllTypeHll8 {
		if a.curMin != 0 || hdr.auxCount != 0 {
			return nil, invalidImagef("HLL_8 image with curMin %d and aux count %d", a.curMin, hdr.auxCount)
		}
		return arr, nil
	}

	hll4 := arr.(*hll4ArrayImpl)
	if hdr.auxCount > 0 {
		aux, err := deserializeAuxHashMap(bytes, auxStart, p, hdr.auxCount)
		if err != nil {
			return nil, err
		}
		hll4.auxHashMap = aux
	}
	if tokens := hll4.numAuxTokens(); tokens != hdr.auxCount {
		return nil, invalidImagef("aux count %d does not match %d aux tokens", hdr.auxCount, tokens)
	}
	return hll4, nil
}

func deserializeAuxHashMap(bytes []byte, offset int, p preamble, auxCount int) (*auxHashMap, error) {
	lgAuxArr := lgAuxArrInts[p.lgK]
	n := auxCount
	if !p.isCompact() {
		if p.lgArr < lgAuxArr || p.lgArr > p.lgK+1 {
			return nil, invalidImagef("aux lgArr %d not valid for lgK %d", p.lgArr, p.lgK)
		}
		lgAuxArr = p.lgArr
		n = 1 << lgAuxArr
	}
	if err := checkImageLength(bytes, offset+(n<<2)); err != nil {
		return nil, err
	}
	aux := newAuxHashMap(lgAuxArr, p.lgK)
	configKMask := (1 << p.lgK) - 1
	if p.isCompact() {
		for i := 0; i < n; i++ {
			pr := getInt(bytes, offset+(i<<2))
			if pr == empty {
				continue
			}
			if err := aux.mustAdd(getPairLow26(pr)&configKMask, getPairValue(pr)); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
			}
		}
	} else {
		// the updatable table is restored as stored
		for i := range aux.auxIntArr {
			aux.auxIntArr[i] = getInt(bytes, offset+(i<<2))
		}
		for i, pr := range aux.auxIntArr {
			if pr == empty {
				continue
			}
			slotNo := getPairLow26(pr)
			if slotNo > configKMask {
				return nil, invalidImagef("aux entry %s outside lgK %d", pairString(pr), p.lgK)
			}
			index, err := findAuxHashMap(aux.auxIntArr, lgAuxArr, p.lgK, slotNo)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
			}
			if index != i {
				return nil, invalidImagef("aux entry %s at index %d is not on its probe path", pairString(pr), i)
			}
			aux.auxCount++
		}
	}
	if aux.auxCount != auxCount {
		return nil, invalidImagef("aux count %d, found %d entries", auxCount, aux.auxCount)
	}
	return aux, nil
}
