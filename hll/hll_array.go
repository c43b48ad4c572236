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
	"github.com/apache/datasketches-hll-go/internal"
)

// hllArray is implemented by the two dense representations.
type hllArray interface {
	hllSketchImpl
	base() *hllArrayImpl
}

// hllArrayImpl is the state shared by the dense encodings.
type hllArrayImpl struct {
	hllSketchConfig

	curMin      int // always 0 for HLL_8
	numAtCurMin int // for HLL_8 the number of zero slots
	hipAccum    float64
	kxq0        float64 // sum of 2^-v over slots with v < 32
	kxq1        float64 // sum of 2^-v over slots with v >= 32
	oooFlag     bool

	hllByteArr []byte
	auxHashMap *auxHashMap // HLL_4 only, created on the first overflow
}

func newHllArrayImpl(lgConfigK int, tgtHllType TgtHllType) hllArrayImpl {
	k := 1 << lgConfigK
	return hllArrayImpl{
		hllSketchConfig: newHllSketchConfig(lgConfigK, tgtHllType, CurModeHll),
		numAtCurMin:     k,
		kxq0:            float64(k),
		hllByteArr:      make([]byte, hllArrBytes(tgtHllType, lgConfigK)),
	}
}

func newHllArray(lgConfigK int, tgtHllType TgtHllType) hllArray {
	if tgtHllType == TgtHllTypeHll4 {
		return newHll4Array(lgConfigK)
	}
	return newHll8Array(lgConfigK)
}

func hllArrBytes(tgtHllType TgtHllType, lgConfigK int) int {
	if tgtHllType == TgtHllTypeHll4 {
		return 1 << (lgConfigK - 1)
	}
	return 1 << lgConfigK
}

func (a *hllArrayImpl) base() *hllArrayImpl {
	return a
}

func (a *hllArrayImpl) clone() hllArrayImpl {
	out := *a
	out.hllByteArr = make([]byte, len(a.hllByteArr))
	copy(out.hllByteArr, a.hllByteArr)
	out.auxHashMap = a.auxHashMap.copy()
	return out
}

// isEmpty is false: a dense array is only ever built from a non-empty source.
func (a *hllArrayImpl) isEmpty() bool {
	return false
}

func (a *hllArrayImpl) isOutOfOrder() bool {
	return a.oooFlag
}

// putOutOfOrder sets the flag. An out of order array has no valid HIP accumulator,
// so setting it also clears hipAccum.
func (a *hllArrayImpl) putOutOfOrder(oooFlag bool) {
	if oooFlag {
		a.hipAccum = 0
	}
	a.oooFlag = oooFlag
}

func (a *hllArrayImpl) putHipAccum(hipAccum float64) {
	a.hipAccum = hipAccum
}

func (a *hllArrayImpl) getEstimate() (float64, error) {
	if a.oooFlag {
		return a.getCompositeEstimate()
	}
	return a.hipAccum, nil
}

func (a *hllArrayImpl) getHipEstimate() (float64, error) {
	return a.hipAccum, nil
}

func (a *hllArrayImpl) getCompositeEstimate() (float64, error) {
	return hllCompositeEstimate(a)
}

func (a *hllArrayImpl) getLowerBound(numStdDev int) (float64, error) {
	if err := checkNumStdDev(numStdDev); err != nil {
		return 0, err
	}
	return hllLowerBound(a, numStdDev)
}

func (a *hllArrayImpl) getUpperBound(numStdDev int) (float64, error) {
	if err := checkNumStdDev(numStdDev); err != nil {
		return 0, err
	}
	return hllUpperBound(a, numStdDev)
}

// hipAndKxQIncrementalUpdate must run before the slot is changed from oldValue to
// newValue. The HIP increment uses the kxq sums as they were before this change.
func (a *hllArrayImpl) hipAndKxQIncrementalUpdate(oldValue int, newValue int) error {
	if newValue <= oldValue {
		return consistencyErrorf("new value %d must exceed old value %d", newValue, oldValue)
	}
	configK := float64(uint64(1) << a.lgConfigK)
	a.hipAccum += configK / (a.kxq0 + a.kxq1)

	oldInv, err := internal.InvPow2(oldValue)
	if err != nil {
		return err
	}
	newInv, err := internal.InvPow2(newValue)
	if err != nil {
		return err
	}
	if oldValue < 32 {
		a.kxq0 -= oldInv
	} else {
		a.kxq1 -= oldInv
	}
	if newValue < 32 {
		a.kxq0 += newInv
	} else {
		a.kxq1 += newInv
	}
	return nil
}

func (a *hllArrayImpl) auxStart() int {
	return hllByteArrStart + len(a.hllByteArr)
}

func (a *hllArrayImpl) getCompactSerializationBytes() int {
	auxBytes := 0
	if a.auxHashMap != nil {
		auxBytes = a.auxHashMap.getCompactSizeBytes()
	}
	return a.auxStart() + auxBytes
}

func (a *hllArrayImpl) getUpdatableSerializationBytes() int {
	auxBytes := 0
	if a.tgtHllType == TgtHllTypeHll4 {
		if a.auxHashMap != nil {
			auxBytes = a.auxHashMap.getUpdatableSizeBytes()
		} else {
			auxBytes = 4 << lgAuxArrInts[a.lgConfigK]
		}
	}
	return a.auxStart() + auxBytes
}

func (a *hllArrayImpl) writeImage(dst []byte, compact bool) error {
	return writeHllImage(a, dst, compact)
}
