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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

var nArr = []int{1, 3, 10, 30, 100, 300, 1000, 3000, 10000, 30000}

func TestUnionOverlappingSketches(t *testing.T) {
	sk1, err := NewHllSketch(8, TgtHllTypeHll8)
	assert.NoError(t, err)
	sk2, err := NewHllSketch(8, TgtHllTypeHll8)
	assert.NoError(t, err)
	for i := 0; i < 10000; i++ {
		assert.NoError(t, sk1.UpdateInt64(int64(i)))
		assert.NoError(t, sk2.UpdateInt64(int64(i+5000)))
	}
	est1, err := sk1.GetEstimate()
	assert.NoError(t, err)
	est2, err := sk2.GetEstimate()
	assert.NoError(t, err)

	union, err := NewUnion(8)
	assert.NoError(t, err)
	assert.NoError(t, union.UpdateSketch(sk1))
	assert.NoError(t, union.UpdateSketch(sk2))
	assert.True(t, union.IsOutOfOrder())
	est, err := union.GetEstimate()
	assert.NoError(t, err)
	assert.InEpsilon(t, 15000.0, est, 0.05)
	assert.Greater(t, est, est1)
	assert.Greater(t, est, est2)

	// the inputs are not modified
	est1Again, err := sk1.GetEstimate()
	assert.NoError(t, err)
	assert.Equal(t, est1, est1Again)
	assert.False(t, sk1.IsOutOfOrder())
}

func TestUnions(t *testing.T) {
	lgKs := [][3]int{{8, 8, 8}, {8, 12, 12}, {12, 8, 12}, {12, 12, 8}, {10, 12, 11}}
	ns := []int{0, 5, 300, 20000}
	types := []TgtHllType{TgtHllTypeHll4, TgtHllTypeHll8}
	for _, lgK := range lgKs {
		for _, n1 := range ns {
			for _, n2 := range ns {
				for _, t1 := range types {
					for _, t2 := range types {
						checkBasicUnion(t, n1, n2, lgK[0], lgK[1], lgK[2], t1, t2)
					}
				}
			}
		}
	}
}

func checkBasicUnion(t *testing.T, n1 int, n2 int, lgK1 int, lgK2 int, lgMaxK int, type1 TgtHllType, type2 TgtHllType) {
	v := 0
	tot := n1 + n2

	h1, err := NewHllSketch(lgK1, type1)
	assert.NoError(t, err)
	h2, err := NewHllSketch(lgK2, type2)
	assert.NoError(t, err)

	for i := 0; i < n1; i++ {
		assert.NoError(t, h1.UpdateInt64(int64(v+i)))
	}
	v += n1
	for i := 0; i < n2; i++ {
		assert.NoError(t, h2.UpdateInt64(int64(v+i)))
	}

	expectedLgK := lgMaxK
	if h1.GetCurMode() == CurModeHll {
		expectedLgK = min(expectedLgK, lgK1)
	}
	if h2.GetCurMode() == CurModeHll {
		expectedLgK = min(expectedLgK, lgK2)
	}

	union, err := NewUnion(lgMaxK)
	assert.NoError(t, err)
	assert.NoError(t, union.UpdateSketch(h1))
	assert.NoError(t, union.UpdateSketch(h2))
	assert.Equal(t, expectedLgK, union.GetLgConfigK())
	assert.Equal(t, lgMaxK, union.GetLgMaxK())
	assert.Equal(t, TgtHllTypeHll8, union.GetTgtHllType())

	for _, resultType := range []TgtHllType{TgtHllTypeHll4, TgtHllTypeHll8} {
		result, err := union.GetResult(resultType)
		assert.NoError(t, err)
		assert.Equal(t, resultType, result.GetTgtHllType())
		assert.Equal(t, expectedLgK, result.GetLgConfigK())

		est, err := result.GetEstimate()
		assert.NoError(t, err)
		if tot == 0 {
			assert.True(t, result.IsEmpty())
			assert.Equal(t, 0.0, est)
			continue
		}
		ub, err := result.GetUpperBound(2)
		assert.NoError(t, err)
		lb, err := result.GetLowerBound(2)
		assert.NoError(t, err)
		assert.GreaterOrEqual(t, ub, est)
		assert.LessOrEqual(t, lb, est)

		rse := hllNonHipRSEFactor / math.Sqrt(float64(uint64(1)<<expectedLgK))
		assert.InEpsilon(t, float64(tot), est, 3*rse,
			"n1: %d, n2: %d, lgK1: %d, lgK2: %d, lgMaxK: %d", n1, n2, lgK1, lgK2, lgMaxK)
	}
}

func TestUnionModeTransitions(t *testing.T) {
	list := sketchWithN(t, 12, TgtHllTypeHll8, 0, 5)
	set := sketchWithN(t, 12, TgtHllTypeHll8, 100, 200)
	hll := sketchWithN(t, 12, TgtHllTypeHll8, 1000, 11000)
	hll2 := sketchWithN(t, 12, TgtHllTypeHll4, 20000, 30000)

	for _, tc := range []struct {
		name    string
		sources []HllSketch
		mode    CurMode
		ooo     bool
	}{
		{"list into empty", []HllSketch{list}, CurModeList, false},
		{"set into empty", []HllSketch{set}, CurModeSet, true},
		{"hll into empty", []HllSketch{hll}, CurModeHll, false},
		{"list into list", []HllSketch{list, sketchWithN(t, 12, TgtHllTypeHll8, 50, 52)}, CurModeList, false},
		{"set into list", []HllSketch{list, set}, CurModeSet, true},
		{"list into set", []HllSketch{set, list}, CurModeSet, true},
		{"hll into list", []HllSketch{list, hll}, CurModeHll, false},
		{"hll into set", []HllSketch{set, hll}, CurModeHll, true},
		{"list into hll", []HllSketch{hll, list}, CurModeHll, false},
		{"set into hll", []HllSketch{hll, set}, CurModeHll, true},
		{"hll into hll", []HllSketch{hll, hll2}, CurModeHll, true},
	} {
		union, err := NewUnion(12)
		assert.NoError(t, err)
		for _, sk := range tc.sources {
			assert.NoError(t, union.UpdateSketch(sk))
		}
		assert.Equal(t, tc.mode, union.GetCurMode(), tc.name)
		assert.Equal(t, tc.ooo, union.IsOutOfOrder(), tc.name)

		expected := 0
		for _, sk := range tc.sources {
			est, err := sk.GetEstimate()
			assert.NoError(t, err)
			expected += int(math.Round(est))
		}
		est, err := union.GetEstimate()
		assert.NoError(t, err)
		assert.InEpsilon(t, float64(expected), est, 0.08, tc.name)
		if tc.ooo && tc.mode == CurModeHll {
			hip, err := union.GetHipEstimate()
			assert.NoError(t, err)
			assert.Equal(t, 0.0, hip, tc.name)
		}
	}
}

func sketchWithN(t *testing.T, lgK int, tgtHllType TgtHllType, from int, to int) HllSketch {
	t.Helper()
	sk, err := NewHllSketch(lgK, tgtHllType)
	assert.NoError(t, err)
	for i := from; i < to; i++ {
		assert.NoError(t, sk.UpdateInt64(int64(i)))
	}
	return sk
}

func TestUnionDownsampling(t *testing.T) {
	for _, tgtHllType := range []TgtHllType{TgtHllTypeHll4, TgtHllTypeHll8} {
		big := sketchWithN(t, 12, tgtHllType, 0, 10000)
		bigEst, err := big.GetEstimate()
		assert.NoError(t, err)

		// an in-order source keeps its HIP estimate through the downsampling copy
		union, err := NewUnion(8)
		assert.NoError(t, err)
		assert.NoError(t, union.UpdateSketch(big))
		assert.Equal(t, 8, union.GetLgConfigK())
		assert.False(t, union.IsOutOfOrder())
		est, err := union.GetEstimate()
		assert.NoError(t, err)
		assert.Equal(t, bigEst, est)

		// a smaller source downsamples the gadget
		union, err = NewUnion(12)
		assert.NoError(t, err)
		assert.NoError(t, union.UpdateSketch(big))
		assert.Equal(t, 12, union.GetLgConfigK())
		small := sketchWithN(t, 10, tgtHllType, 5000, 15000)
		assert.NoError(t, union.UpdateSketch(small))
		assert.Equal(t, 10, union.GetLgConfigK())
		assert.True(t, union.IsOutOfOrder())
		assert.NoError(t, union.UpdateSketch(big))
		assert.Equal(t, 10, union.GetLgConfigK())
		est, err = union.GetEstimate()
		assert.NoError(t, err)
		assert.InEpsilon(t, 15000.0, est, 3*hllNonHipRSEFactor/32)

		// the gadget at lgK 10 holds exactly what a union at lgMaxK 10 holds
		control, err := NewUnion(10)
		assert.NoError(t, err)
		assert.NoError(t, control.UpdateSketch(small))
		assert.NoError(t, control.UpdateSketch(big))
		r1, err := union.GetResult(TgtHllTypeHll8)
		assert.NoError(t, err)
		r2, err := control.GetResult(TgtHllTypeHll8)
		assert.NoError(t, err)
		assert.Equal(t, computeCheckSum(t, r2), computeCheckSum(t, r1))

		assert.NoError(t, union.Reset())
		assert.True(t, union.IsEmpty())
		assert.Equal(t, 12, union.GetLgConfigK())
	}
}

func TestUnionOrderIndependence(t *testing.T) {
	sketches := []HllSketch{
		sketchWithN(t, 10, TgtHllTypeHll4, 0, 3000),
		sketchWithN(t, 11, TgtHllTypeHll8, 2000, 7000),
		sketchWithN(t, 12, TgtHllTypeHll8, 6500, 6800),
	}
	orders := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}
	var (
		firstSum int
		firstEst float64
	)
	for i, order := range orders {
		union, err := NewUnion(12)
		assert.NoError(t, err)
		for _, idx := range order {
			assert.NoError(t, union.UpdateSketch(sketches[idx]))
		}
		assert.Equal(t, 10, union.GetLgConfigK())
		result, err := union.GetResult(TgtHllTypeHll8)
		assert.NoError(t, err)
		sum := computeCheckSum(t, result)
		est, err := result.GetEstimate()
		assert.NoError(t, err)
		if i == 0 {
			firstSum, firstEst = sum, est
			assert.InEpsilon(t, 7000.0, est, 3*hllNonHipRSEFactor/32)
			continue
		}
		assert.Equal(t, firstSum, sum, "order %v", order)
		assert.InDelta(t, firstEst, est, 1e-9*firstEst, "order %v", order)
	}

	// union of unions
	u1, err := NewUnion(12)
	assert.NoError(t, err)
	assert.NoError(t, u1.UpdateSketch(sketches[0]))
	assert.NoError(t, u1.UpdateSketch(sketches[1]))
	r1, err := u1.GetResult(TgtHllTypeHll8)
	assert.NoError(t, err)
	u2, err := NewUnion(12)
	assert.NoError(t, err)
	assert.NoError(t, u2.UpdateSketch(sketches[2]))
	assert.NoError(t, u2.UpdateSketch(r1))
	r2, err := u2.GetResult(TgtHllTypeHll8)
	assert.NoError(t, err)
	assert.Equal(t, firstSum, computeCheckSum(t, r2))
}

func TestToFromUnion1(t *testing.T) {
	for i := 0; i < 10; i++ {
		n := nArr[i]
		for lgK := 4; lgK <= 13; lgK++ {
			toFrom1(t, lgK, TgtHllTypeHll4, n)
			toFrom1(t, lgK, TgtHllTypeHll8, n)
		}
	}
}

func toFrom1(t *testing.T, lgK int, tgtHllType TgtHllType, n int) {
	srcU, err := NewUnion(lgK)
	assert.NoError(t, err)
	srcSk, err := NewHllSketch(lgK, tgtHllType)
	assert.NoError(t, err)
	for i := 0; i < n; i++ {
		assert.NoError(t, srcSk.UpdateInt64(int64(i)))
	}
	assert.NoError(t, srcU.UpdateSketch(srcSk))

	byteArr, err := srcU.ToCompactSlice()
	assert.NoError(t, err)
	assert.Equal(t, srcU.GetCompactSerializationBytes(), len(byteArr))
	dstU, err := NewUnionFromSlice(byteArr)
	assert.NoError(t, err)

	dstUest, err := dstU.GetEstimate()
	assert.NoError(t, err)
	srcUest, err := srcU.GetEstimate()
	assert.NoError(t, err)

	assert.Equal(t, srcUest, dstUest, "n: %d, lgK: %d, type: %v", n, lgK, tgtHllType)
	assert.Equal(t, srcU.GetLgConfigK(), dstU.GetLgConfigK())
}

func TestUnionCompositeEst(t *testing.T) {
	u, err := NewUnionWithDefault()
	assert.NoError(t, err)
	est, err := u.GetCompositeEstimate()
	assert.NoError(t, err)
	assert.Equal(t, est, 0.0)
	for i := 1; i <= 15; i++ {
		assert.NoError(t, u.UpdateInt64(int64(i)))
	}
	est, err = u.GetCompositeEstimate()
	assert.NoError(t, err)

	assert.InDelta(t, est, 15.0, 15.0*0.03)
	for i := 15; i <= 1000; i++ {
		assert.NoError(t, u.UpdateInt64(int64(i)))
	}
	est, err = u.GetCompositeEstimate()
	assert.NoError(t, err)
	assert.InDelta(t, est, 1000.0, 1000.0*0.03)
}

func TestDeserialize1k(t *testing.T) {
	u, err := NewUnion(16)
	assert.NoError(t, err)
	for i := 0; i < (1 << 10); i++ {
		assert.NoError(t, u.UpdateInt64(int64(i)))
	}
	expected, err := u.GetEstimate()
	assert.NoError(t, err)
	byteArr, err := u.ToUpdatableSlice()
	assert.NoError(t, err)
	assert.Equal(t, u.GetUpdatableSerializationBytes(), len(byteArr))
	u2, e := NewUnionFromSlice(byteArr)
	assert.NoError(t, e)
	est, err := u2.GetEstimate()
	assert.NoError(t, err)
	assert.Equal(t, expected, est)
}

func TestDeserialize1M(t *testing.T) {
	u, err := NewUnion(16)
	assert.NoError(t, err)
	for i := 0; i < (1 << 20); i++ {
		assert.NoError(t, u.UpdateInt64(int64(i)))
	}
	expected, err := u.GetEstimate()
	assert.NoError(t, err)
	byteArr, err := u.ToUpdatableSlice()
	assert.NoError(t, err)
	u2, e := NewUnionFromSlice(byteArr)
	assert.NoError(t, e)
	est, err := u2.GetEstimate()
	assert.NoError(t, err)
	assert.Equal(t, expected, est)
}

func TestEmptyCouponMisc(t *testing.T) {
	lgK := 8
	u, err := NewUnion(lgK)
	assert.NoError(t, err)
	for i := 0; i < 20; i++ {
		assert.NoError(t, u.UpdateInt64(int64(i)))
	}
	assert.NoError(t, u.UpdateSketch(nil))
	empty, err := NewHllSketch(lgK, TgtHllTypeHll4)
	assert.NoError(t, err)
	assert.NoError(t, u.UpdateSketch(empty))
	est, err := u.GetEstimate()
	assert.NoError(t, err)
	assert.InDelta(t, est, 20.0, 0.001)
	assert.Equal(t, u.GetTgtHllType(), TgtHllTypeHll8)
	bytes := u.GetUpdatableSerializationBytes()
	assert.True(t, bytes <= GetMaxUpdatableSerializationBytes(lgK, TgtHllTypeHll8))
}

func TestUnionWithWrap(t *testing.T) {
	lgK := 4
	type1 := TgtHllTypeHll4
	n := 2
	sk, err := NewHllSketch(lgK, type1)
	assert.NoError(t, err)
	for i := 0; i < n; i++ {
		assert.NoError(t, sk.UpdateInt64(int64(i)))
	}
	est, err := sk.GetEstimate()
	assert.NoError(t, err)
	skByteArr, err := sk.ToCompactSlice()
	assert.NoError(t, err)

	sk2, err := NewHllSketchFromSlice(skByteArr)
	assert.NoError(t, err)
	est2, err := sk2.GetEstimate()
	assert.NoError(t, err)
	assert.Equal(t, est2, est)

	u, err := NewUnion(lgK)
	assert.NoError(t, err)
	assert.NoError(t, u.UpdateSketch(sk2))
	estU, err := u.GetEstimate()
	assert.NoError(t, err)
	assert.Equal(t, estU, est)
}

func TestUnionWithWrap2(t *testing.T) {
	lgK := 10
	n := 128
	sk, err := NewHllSketch(lgK, TgtHllTypeHll4)
	assert.NoError(t, err)
	for i := 0; i < n; i++ {
		assert.NoError(t, sk.UpdateInt64(int64(i)))
	}
	est, err := sk.GetEstimate()
	assert.NoError(t, err)
	skByteArr, err := sk.ToCompactSlice()
	assert.NoError(t, err)

	sk2, err := NewHllSketchFromSlice(skByteArr)
	assert.NoError(t, err)
	sk2Est, err := sk2.GetEstimate()
	assert.NoError(t, err)
	assert.Equal(t, sk2Est, est)

	u, err := NewUnion(lgK)
	assert.NoError(t, err)
	assert.NoError(t, u.UpdateSketch(sk2))
	estU, err := u.GetEstimate()
	assert.NoError(t, err)
	assert.Equal(t, estU, est)
}

func TestConversions(t *testing.T) {
	lgK := 4
	sk1, err := NewHllSketch(lgK, TgtHllTypeHll8)
	assert.NoError(t, err)
	sk2, err := NewHllSketch(lgK, TgtHllTypeHll8)
	assert.NoError(t, err)
	u := 1 << 20
	for i := 0; i < u; i++ {
		assert.NoError(t, sk1.UpdateInt64(int64(i)))
		assert.NoError(t, sk2.UpdateInt64(int64(i+u)))
	}
	union, err := NewUnion(lgK)
	assert.NoError(t, err)
	assert.NoError(t, union.UpdateSketch(sk1))
	assert.NoError(t, union.UpdateSketch(sk2))
	rsk1, err := union.GetResult(TgtHllTypeHll8)
	assert.NoError(t, err)
	rsk2, err := union.GetResult(TgtHllTypeHll4)
	assert.NoError(t, err)
	est1, err := rsk1.GetEstimate()
	assert.NoError(t, err)
	est2, err := rsk2.GetEstimate()
	assert.NoError(t, err)
	assert.InDelta(t, est1, est2, 1e-9*est1)
	def, err := union.GetDefaultResult()
	assert.NoError(t, err)
	assert.Equal(t, TgtHllTypeDefault, def.GetTgtHllType())
	assert.Equal(t, computeCheckSum(t, rsk1), computeCheckSum(t, def))
}

func TestCheckUnionDeserializeRebuildAfterMerge(t *testing.T) {
	lgK := 12
	//Build 2 sketches in HLL (dense) mode.
	u := 1 << (lgK - 3)
	sk1, err := NewHllSketch(lgK, TgtHllTypeHll4)
	assert.NoError(t, err)
	sk2, err := NewHllSketch(lgK, TgtHllTypeHll4)
	assert.NoError(t, err)
	for i := 0; i < u; i++ {
		assert.NoError(t, sk1.UpdateInt64(int64(i)))
		assert.NoError(t, sk2.UpdateInt64(int64(i+u)))
	}
	union1, err := NewUnion(lgK)
	assert.NoError(t, err)
	assert.NoError(t, union1.UpdateSketch(sk1))
	assert.NoError(t, union1.UpdateSketch(sk2))
	gadget := union1.(*unionImpl).gadget.sketch.(*hll8ArrayImpl)
	assert.True(t, gadget.oooFlag)
	assert.Equal(t, 0.0, gadget.hipAccum)

	//Deserialize byteArr as if it were a sketch, but it is actually a union!
	sl, err := union1.ToUpdatableSlice()
	assert.NoError(t, err)
	sk3, err := NewHllSketchFromSlice(sl)
	assert.NoError(t, err)
	assert.True(t, sk3.IsOutOfOrder())
	est3, err := sk3.GetEstimate()
	assert.NoError(t, err)
	estU, err := union1.GetEstimate()
	assert.NoError(t, err)
	assert.Equal(t, estU, est3)
}

func TestUnionFromSketch(t *testing.T) {
	_, err := NewUnionFromSketch(nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	hll4, err := NewHllSketch(10, TgtHllTypeHll4)
	assert.NoError(t, err)
	_, err = NewUnionFromSketch(hll4)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	sk := sketchWithN(t, 10, TgtHllTypeHll8, 0, 5000)
	union, err := NewUnionFromSketch(sk)
	assert.NoError(t, err)
	assert.Equal(t, 10, union.GetLgMaxK())
	skEst, err := sk.GetEstimate()
	assert.NoError(t, err)
	uEst, err := union.GetEstimate()
	assert.NoError(t, err)
	assert.Equal(t, skEst, uEst)

	// the union works on the wrapped sketch in place
	assert.NoError(t, union.UpdateSketch(sketchWithN(t, 10, TgtHllTypeHll8, 5000, 10000)))
	assert.True(t, sk.IsOutOfOrder())
	skEst, err = sk.GetEstimate()
	assert.NoError(t, err)
	uEst, err = union.GetEstimate()
	assert.NoError(t, err)
	assert.Equal(t, skEst, uEst)
	assert.InEpsilon(t, 10000.0, uEst, 3*hllNonHipRSEFactor/32)
}

func TestGetResultIsIndependent(t *testing.T) {
	union, err := NewUnion(11)
	assert.NoError(t, err)
	assert.NoError(t, union.UpdateSketch(sketchWithN(t, 11, TgtHllTypeHll8, 0, 3000)))
	before, err := union.ToCompactSlice()
	assert.NoError(t, err)

	result, err := union.GetResult(TgtHllTypeHll8)
	assert.NoError(t, err)
	for i := 3000; i < 6000; i++ {
		assert.NoError(t, result.UpdateInt64(int64(i)))
	}
	after, err := union.ToCompactSlice()
	assert.NoError(t, err)
	assert.Equal(t, before, after)

	resultSum := computeCheckSum(t, result)
	assert.NoError(t, union.UpdateSketch(sketchWithN(t, 11, TgtHllTypeHll8, 10000, 20000)))
	assert.Equal(t, resultSum, computeCheckSum(t, result))
}

func TestUnionUpdateTypes(t *testing.T) {
	union, err := NewUnion(12, WithHasher(NewXXHasher(7)))
	assert.NoError(t, err)
	assert.NoError(t, union.UpdateUInt64(1))
	assert.NoError(t, union.UpdateInt64(1))
	assert.NoError(t, union.UpdateFloat64(2.5))
	assert.NoError(t, union.UpdateSlice([]byte{1}))
	assert.NoError(t, union.UpdateSlice(nil))
	assert.NoError(t, union.UpdateString("a"))
	assert.NoError(t, union.UpdateString(""))
	assert.NoError(t, UpdateStrings(union, "a", "b"))
	assert.Equal(t, CurModeList, union.GetCurMode())
	est, err := union.GetEstimate()
	assert.NoError(t, err)
	assert.InDelta(t, 5.0, est, 1e-6)
	lb, err := union.GetLowerBound(1)
	assert.NoError(t, err)
	ub, err := union.GetUpperBound(1)
	assert.NoError(t, err)
	assert.LessOrEqual(t, lb, est)
	assert.GreaterOrEqual(t, ub, est)
	hip, err := union.GetHipEstimate()
	assert.NoError(t, err)
	assert.Equal(t, est, hip)
	assert.False(t, union.IsEmpty())
}
