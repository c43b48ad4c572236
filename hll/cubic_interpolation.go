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

// usingXAndYTables interpolates y at x over tabulated (x, y) points.
func usingXAndYTables(xArr []float64, yArr []float64, x float64) (float64, error) {
	if len(xArr) != len(yArr) {
		return 0, consistencyErrorf("interpolation tables differ in length: %d != %d", len(xArr), len(yArr))
	}
	return interpolate(xArr, func(i int) float64 { return yArr[i] }, x)
}

// usingXArrAndYStride interpolates y at x over points whose y values are evenly
// spaced: the i-th point is (xArr[i], i*yStride).
func usingXArrAndYStride(xArr []float64, yStride float64, x float64) (float64, error) {
	return interpolate(xArr, func(i int) float64 { return yStride * float64(i) }, x)
}

// interpolate fits a cubic through four consecutive points around x. The window
// starts one point before the straddling pair, except at either end of the table
// where it is shifted inward to stay inside it.
func interpolate(xArr []float64, yAt func(int) float64, x float64) (float64, error) {
	n := len(xArr)
	if n < 4 || x < xArr[0] || x > xArr[n-1] {
		return 0, consistencyErrorf("X value out of range: %f", x)
	}
	if x == xArr[n-1] {
		return yAt(n - 1), nil // corner case
	}
	offset, err := findStraddle(xArr, x)
	if err != nil {
		return 0, err
	}
	start := offset - 1
	switch offset {
	case 0:
		start = 0
	case n - 2:
		start = n - 4
	}
	return cubicInterpolate(
		xArr[start], yAt(start),
		xArr[start+1], yAt(start+1),
		xArr[start+2], yAt(start+2),
		xArr[start+3], yAt(start+3),
		x), nil
}

// cubicInterpolate evaluates at x the Lagrange polynomial through the four points.
func cubicInterpolate(x0, y0, x1, y1, x2, y2, x3, y3, x float64) float64 {
	l0Numer := (x - x1) * (x - x2) * (x - x3)
	l1Numer := (x - x0) * (x - x2) * (x - x3)
	l2Numer := (x - x0) * (x - x1) * (x - x3)
	l3Numer := (x - x0) * (x - x1) * (x - x2)

	l0Denom := (x0 - x1) * (x0 - x2) * (x0 - x3)
	l1Denom := (x1 - x0) * (x1 - x2) * (x1 - x3)
	l2Denom := (x2 - x0) * (x2 - x1) * (x2 - x3)
	l3Denom := (x3 - x0) * (x3 - x1) * (x3 - x2)

	return (y0*l0Numer)/l0Denom +
		(y1*l1Numer)/l1Denom +
		(y2*l2Numer)/l2Denom +
		(y3*l3Numer)/l3Denom
}

// findStraddle returns i such that xArr[i] <= x < xArr[i+1].
func findStraddle(xArr []float64, x float64) (int, error) {
	if len(xArr) < 2 || x < xArr[0] || x >= xArr[len(xArr)-1] {
		return 0, consistencyErrorf("X value out of range: %f", x)
	}
	return straddle(xArr, 0, len(xArr)-1, x), nil
}

// straddle is a binary search keeping xArr[left] <= x < xArr[right].
func straddle(xArr []float64, left int, right int, x float64) int {
	if left+1 == right {
		return left
	}
	middle := left + ((right - left) / 2)
	if xArr[middle] <= x {
		return straddle(xArr, middle, right, x)
	}
	return straddle(xArr, left, middle, x)
}
