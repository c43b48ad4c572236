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
	"golang.org/x/exp/constraints"
)

// Updatable is the item update surface shared by HllSketch and Union.
type Updatable interface {
	UpdateInt64(datum int64) error
	UpdateFloat64(datum float64) error
	UpdateString(datum string) error
}

// UpdateIntegers presents every item as a signed 64-bit integer, so that the same
// value hashes identically whatever its integer type.
func UpdateIntegers[T constraints.Integer](sk Updatable, items ...T) error {
	for _, item := range items {
		if err := sk.UpdateInt64(int64(item)); err != nil {
			return err
		}
	}
	return nil
}

// UpdateFloats presents every item as a float64.
func UpdateFloats[T constraints.Float](sk Updatable, items ...T) error {
	for _, item := range items {
		if err := sk.UpdateFloat64(float64(item)); err != nil {
			return err
		}
	}
	return nil
}

// UpdateStrings presents every item as a string. Empty strings are ignored.
func UpdateStrings[S ~string](sk Updatable, items ...S) error {
	for _, item := range items {
		if err := sk.UpdateString(string(item)); err != nil {
			return err
		}
	}
	return nil
}
