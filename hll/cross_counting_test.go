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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrossCounting(t *testing.T) {
	crossCountingCheck(t, 4, 100)
	crossCountingCheck(t, 4, 10000)
	crossCountingCheck(t, 12, 7)
	crossCountingCheck(t, 12, 384)
	crossCountingCheck(t, 12, 10000)
	crossCountingCheck(t, 16, 100000)
}

func crossCountingCheck(t *testing.T, lgK int, n int) {
	sk4, err := buildSketch(lgK, n, TgtHllTypeHll4)
	assert.NoError(t, err)
	s4csum := computeCheckSum(t, sk4)

	sk8, err := buildSketch(lgK, n, TgtHllTypeHll8)
	assert.NoError(t, err)
	s8csum := computeCheckSum(t, sk8)
	assert.Equal(t, s4csum, s8csum)

	est4, err := sk4.GetEstimate()
	assert.NoError(t, err)
	est8, err := sk8.GetEstimate()
	assert.NoError(t, err)
	assert.Equal(t, est4, est8)

	// Conversions
	sk8to4, err := sk8.CopyAs(TgtHllTypeHll4)
	assert.NoError(t, err)
	assert.Equal(t, s4csum, computeCheckSum(t, sk8to4))

	sk4to8, err := sk4.CopyAs(TgtHllTypeHll8)
	assert.NoError(t, err)
	assert.Equal(t, s4csum, computeCheckSum(t, sk4to8))

	est8to4, err := sk8to4.GetEstimate()
	assert.NoError(t, err)
	assert.Equal(t, est8, est8to4)
	est4to8, err := sk4to8.GetEstimate()
	assert.NoError(t, err)
	assert.Equal(t, est4, est4to8)
}

func buildSketch(lgK int, n int, tgtHllType TgtHllType) (HllSketch, error) {
	sketch, err := NewHllSketch(lgK, tgtHllType)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		err = sketch.UpdateInt64(int64(i))
		if err != nil {
			return nil, err
		}
	}
	return sketch, nil
}

// computeCheckSum sums the valid pairs, which does not depend on the order in which
// a representation yields them.
func computeCheckSum(t *testing.T, sketch HllSketch) int {
	t.Helper()
	return computeCheckSumImpl(sketch.getImpl())
}

func computeCheckSumImpl(impl hllSketchImpl) int {
	checksum := 0
	for p := range impl.validPairs() {
		checksum += p
	}
	return checksum
}
