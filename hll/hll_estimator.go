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

	"github.com/apache/datasketches-hll-go/internal"
)

// hllCompositeEstimate is the estimator used once the HIP accumulator is no longer
// valid. The raw HyperLogLog estimate is bias corrected through the per lgK
// interpolation table and, at the low end, blended with the bitmap estimate.
func hllCompositeEstimate(a *hllArrayImpl) (float64, error) {
	lgConfigK := a.lgConfigK
	rawEst := getHllRawEstimate(lgConfigK, a.kxq0+a.kxq1)

	xArr := compositeXArrays[lgConfigK-minLogK]
	yStride := compositeYStrides[lgConfigK-minLogK]
	xArrLenM1 := len(xArr) - 1

	if rawEst < xArr[0] {
		return 0, nil
	}
	if rawEst > xArr[xArrLenM1] {
		finalY := yStride * float64(xArrLenM1)
		factor := finalY / xArr[xArrLenM1]
		return rawEst * factor, nil
	}

	adjEst, err := usingXArrAndYStride(xArr, yStride, rawEst)
	if err != nil {
		return 0, err
	}

	// above 3K the raw estimate needs no help from linear counting
	if adjEst > 3.0*float64(uint64(1)<<lgConfigK) {
		return adjEst, nil
	}

	linEst := getHllBitMapEstimate(lgConfigK, a.curMin, a.numAtCurMin)

	// compare the average of the two against the crossover point
	avgEst := (adjEst + linEst) / 2.0
	crossOver := 0.64
	switch lgConfigK {
	case 4:
		crossOver = 0.718
	case 5:
		crossOver = 0.672
	}
	if avgEst > crossOver*float64(uint64(1)<<lgConfigK) {
		return adjEst, nil
	}
	return linEst, nil
}

// getHllBitMapEstimate treats the HLL array as a bitmap of hit slots.
func getHllBitMapEstimate(lgConfigK int, curMin int, numAtCurMin int) float64 {
	configK := 1 << lgConfigK
	numUnhitBuckets := 0
	if curMin == 0 {
		numUnhitBuckets = numAtCurMin
	}
	// this will eventually go away
	if numUnhitBuckets == 0 {
		return float64(configK) * math.Log(float64(configK)/0.5)
	}
	numHitBuckets := configK - numUnhitBuckets
	return internal.BitMapEstimate(configK, numHitBuckets)
}

func getHllRawEstimate(lgConfigK int, kxqSum float64) float64 {
	configK := float64(uint64(1) << lgConfigK)
	var correctionFactor float64
	switch lgConfigK {
	case 4:
		correctionFactor = 0.673
	case 5:
		correctionFactor = 0.697
	case 6:
		correctionFactor = 0.709
	default:
		correctionFactor = 0.7213 / (1.0 + (1.079 / configK))
	}
	return (correctionFactor * configK * configK) / kxqSum
}

// getRelErr is the relative error of the estimate at numStdDev standard deviations.
func getRelErr(oooFlag bool, lgConfigK int, numStdDev int) float64 {
	rseFactor := hllHipRSEFactor
	if oooFlag {
		rseFactor = hllNonHipRSEFactor
	}
	return (float64(numStdDev) * rseFactor) / math.Sqrt(float64(uint64(1)<<lgConfigK))
}

func hllLowerBound(a *hllArrayImpl, numStdDev int) (float64, error) {
	configK := 1 << a.lgConfigK
	numNonZeros := float64(configK)
	if a.curMin == 0 {
		numNonZeros -= float64(a.numAtCurMin)
	}
	estimate, err := a.getEstimate()
	if err != nil {
		return 0, err
	}
	relErr := getRelErr(a.oooFlag, a.lgConfigK, numStdDev)
	return max(estimate/(1.0+relErr), numNonZeros), nil
}

func hllUpperBound(a *hllArrayImpl, numStdDev int) (float64, error) {
	estimate, err := a.getEstimate()
	if err != nil {
		return 0, err
	}
	relErr := getRelErr(a.oooFlag, a.lgConfigK, numStdDev)
	return estimate / (1.0 - relErr), nil
}

// couponEstimate maps a coupon count to a cardinality through the reference table
// built for 2^26 slots. The result is never below the count itself.
func couponEstimate(couponCount int) (float64, error) {
	est, err := usingXAndYTables(couponMappingXArr[:], couponMappingYArr[:], float64(couponCount))
	if err != nil {
		return 0, err
	}
	return max(est, float64(couponCount)), nil
}

func couponLowerBound(couponCount int, numStdDev int) (float64, error) {
	if err := checkNumStdDev(numStdDev); err != nil {
		return 0, err
	}
	est, err := usingXAndYTables(couponMappingXArr[:], couponMappingYArr[:], float64(couponCount))
	if err != nil {
		return 0, err
	}
	tmp := est / (1.0 + (float64(numStdDev) * couponRSE))
	return max(tmp, float64(couponCount)), nil
}

func couponUpperBound(couponCount int, numStdDev int) (float64, error) {
	if err := checkNumStdDev(numStdDev); err != nil {
		return 0, err
	}
	est, err := usingXAndYTables(couponMappingXArr[:], couponMappingYArr[:], float64(couponCount))
	if err != nil {
		return 0, err
	}
	tmp := est / (1.0 - (float64(numStdDev) * couponRSE))
	return max(tmp, float64(couponCount)), nil
}
