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

// auxHashMap holds the exact values of the 4-bit slots whose value does not fit in
// a nibble. It is an open addressing table of pairs keyed by slot number.
type auxHashMap struct {
	lgConfigK    int // required for #slot bits
	lgAuxArrInts int
	auxCount     int
	auxIntArr    []int
}

func newAuxHashMap(lgAuxArrInts int, lgConfigK int) *auxHashMap {
	return &auxHashMap{
		lgConfigK:    lgConfigK,
		lgAuxArrInts: lgAuxArrInts,
		auxIntArr:    make([]int, 1<<lgAuxArrInts),
	}
}

func (a *auxHashMap) copy() *auxHashMap {
	if a == nil {
		return nil
	}
	arr := make([]int, len(a.auxIntArr))
	copy(arr, a.auxIntArr)
	return &auxHashMap{
		lgConfigK:    a.lgConfigK,
		lgAuxArrInts: a.lgAuxArrInts,
		auxCount:     a.auxCount,
		auxIntArr:    arr,
	}
}

func (a *auxHashMap) getCompactSizeBytes() int {
	return a.auxCount << 2
}

func (a *auxHashMap) getUpdatableSizeBytes() int {
	return 4 << a.lgAuxArrInts
}

// mustFindValueFor returns the value stored for slotNo, which must be present.
func (a *auxHashMap) mustFindValueFor(slotNo int) (int, error) {
	index, err := findAuxHashMap(a.auxIntArr, a.lgAuxArrInts, a.lgConfigK, slotNo)
	if err != nil {
		return 0, err
	}
	if index < 0 {
		return 0, consistencyErrorf("aux map slotNo not found: %d", slotNo)
	}
	return getPairValue(a.auxIntArr[index]), nil
}

// mustReplace overwrites the value of slotNo, which must be present.
func (a *auxHashMap) mustReplace(slotNo int, value int) error {
	index, err := findAuxHashMap(a.auxIntArr, a.lgAuxArrInts, a.lgConfigK, slotNo)
	if err != nil {
		return err
	}
	if index < 0 {
		return consistencyErrorf("aux map pair not found: %s", pairString(pair(slotNo, value)))
	}
	a.auxIntArr[index] = pair(slotNo, value)
	return nil
}

// mustAdd inserts slotNo, which must be absent, and grows the table when it gets
// more than 3/4 full.
func (a *auxHashMap) mustAdd(slotNo int, value int) error {
	index, err := findAuxHashMap(a.auxIntArr, a.lgAuxArrInts, a.lgConfigK, slotNo)
	if err != nil {
		return err
	}
	p := pair(slotNo, value)
	if index >= 0 {
		return consistencyErrorf("aux map already holds slotNo: %s", pairString(p))
	}
	a.auxIntArr[^index] = p
	a.auxCount++
	return a.checkGrow()
}

func (a *auxHashMap) validPairs() iter.Seq[int] {
	return intArrayValidPairs(a.auxIntArr)
}

func (a *auxHashMap) checkGrow() error {
	if (resizeDenom * a.auxCount) <= (resizeNumber * len(a.auxIntArr)) {
		return nil
	}
	return a.growAuxSpace()
}

// growAuxSpace doubles the table and reinserts the existing entries.
func (a *auxHashMap) growAuxSpace() error {
	oldArray := a.auxIntArr
	configKMask := (1 << a.lgConfigK) - 1
	a.lgAuxArrInts++
	a.auxIntArr = make([]int, 1<<a.lgAuxArrInts)
	for _, fetched := range oldArray {
		if fetched == empty {
			continue
		}
		idx, err := findAuxHashMap(a.auxIntArr, a.lgAuxArrInts, a.lgConfigK, fetched&configKMask)
		if err != nil {
			return err
		}
		a.auxIntArr[^idx] = fetched
	}
	return nil
}

// findAuxHashMap searches the table for slotNo. It returns the index of the entry
// holding slotNo, or the one's complement of the index of the first empty entry on
// the probe path. A probe path that returns to its start means the table had no
// empty entry, which the growth policy forbids.
func findAuxHashMap(auxArr []int, lgAuxArrInts int, lgConfigK int, slotNo int) (int, error) {
	auxArrMask := (1 << lgAuxArrInts) - 1
	configKMask := (1 << lgConfigK) - 1
	probe := slotNo & auxArrMask
	loopIndex := probe
	stride := (slotNo >> lgAuxArrInts) | 1
	for {
		arrVal := auxArr[probe]
		if arrVal == empty {
			return ^probe, nil
		}
		if slotNo == (arrVal & configKMask) {
			return probe, nil
		}
		probe = (probe + stride) & auxArrMask
		if probe == loopIndex {
			return 0, consistencyErrorf("aux map has no empty entries and slotNo %d is absent", slotNo)
		}
	}
}
