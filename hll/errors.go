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

import "errors"

var (
	// ErrInvalidConfig is returned when a sketch or union is asked for a configuration
	// it cannot honor, such as a lgK outside [4, 21] or numStdDev outside [1, 3].
	ErrInvalidConfig = errors.New("hll: invalid configuration")

	// ErrInternalConsistency signals that an internal invariant of a representation was
	// found broken. The sketch that returned it must not be used further.
	ErrInternalConsistency = errors.New("hll: internal consistency violation")

	// ErrCapacity is returned when a destination buffer is too small. Nothing is
	// written to the buffer in that case.
	ErrCapacity = errors.New("hll: insufficient capacity")

	// ErrInvalidImage is returned when a byte slice is not a valid serialized sketch.
	ErrInvalidImage = errors.New("hll: invalid serialized image")
)
