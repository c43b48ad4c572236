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

import "iter"

// Every representation exposes its contents as a finite, single pass sequence of
// packed pairs (see pair). validPairs skips empty entries, allPairs does not.

// intArrayValidPairs yields every non-empty entry of a coupon or aux array.
func intArrayValidPairs(arr []int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, p := range arr {
			if p == empty {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}

// intArrayAllPairs yields every entry of a coupon or aux array, empties included.
func intArrayAllPairs(arr []int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, p := range arr {
			if !yield(p) {
				return
			}
		}
	}
}
