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

package internal

import "math"

const (
	numExactHarmonicNumbers = 25
	eulerMascheroni         = 0.577215664901532860606512090082
)

var exactHarmonicNumbers = func() [numExactHarmonicNumbers]float64 {
	var table [numExactHarmonicNumbers]float64
	for i := 1; i < numExactHarmonicNumbers; i++ {
		table[i] = table[i-1] + 1.0/float64(i)
	}
	return table
}()

// HarmonicNumber returns H(n) = 1 + 1/2 + ... + 1/n. Small arguments come from an
// exact table, larger ones from the asymptotic expansion.
func HarmonicNumber(n int) float64 {
	if n < numExactHarmonicNumbers {
		return exactHarmonicNumbers[n]
	}
	x := float64(n)
	invSq := 1.0 / (x * x)
	sum := math.Log(x) + eulerMascheroni + (1.0 / (2.0 * x))
	pow := invSq
	sum -= pow * (1.0 / 12.0)
	pow *= invSq
	sum += pow * (1.0 / 120.0)
	pow *= invSq
	sum -= pow * (1.0 / 252.0)
	pow *= invSq
	sum += pow * (1.0 / 240.0)
	return sum
}

// BitMapEstimate estimates the number of distinct items thrown into a bit vector of
// the given length that ended up with numBitsSet bits on. This is the coupon
// collector expectation k * (H(k) - H(k - hits)).
func BitMapEstimate(bitVectorLength int, numBitsSet int) float64 {
	return float64(bitVectorLength) * (HarmonicNumber(bitVectorLength) - HarmonicNumber(bitVectorLength-numBitsSet))
}
