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

import (
	"fmt"
	"math"
)

const (
	// DefaultUpdateSeed is the seed shared by every sketch family for hashing updates.
	DefaultUpdateSeed = uint64(9001)

	// DSketchTestGenerateGo names the environment variable that makes the tests
	// write their serialized images to GoPath.
	DSketchTestGenerateGo = "DSKETCH_TEST_GENERATE_GO"
	GoPath                = "../serialization_test_data/go_generated_files"
)

// InvPow2 returns 2^(-e) by building the IEEE-754 exponent directly.
func InvPow2(e int) (float64, error) {
	if (e | 1024 - e - 1) < 0 {
		return 0, fmt.Errorf("e cannot be negative or greater than 1023: %d", e)
	}
	return math.Float64frombits((1023 - uint64(e)) << 52), nil
}
