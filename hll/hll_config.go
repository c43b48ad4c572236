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

import "github.com/apache/datasketches-hll-go/internal"

// hllSketchConfig is the part of the configuration every representation carries.
type hllSketchConfig struct {
	lgConfigK  int
	tgtHllType TgtHllType
	curMode    CurMode

	slotNoMask int // mask from lgConfigK to extract slotNo
}

func newHllSketchConfig(lgConfigK int, tgtHllType TgtHllType, curMode CurMode) hllSketchConfig {
	return hllSketchConfig{
		lgConfigK:  lgConfigK,
		tgtHllType: tgtHllType,
		curMode:    curMode,
		slotNoMask: (1 << lgConfigK) - 1,
	}
}

func (c *hllSketchConfig) getLgConfigK() int {
	return c.lgConfigK
}

func (c *hllSketchConfig) getTgtHllType() TgtHllType {
	return c.tgtHllType
}

func (c *hllSketchConfig) getCurMode() CurMode {
	return c.curMode
}

type sketchOptions struct {
	hasher Hasher
}

// SketchOption configures the optional parts of a sketch or union.
type SketchOption func(*sketchOptions)

// WithSeed sets the seed of the default murmur3 hasher.
func WithSeed(seed uint64) SketchOption {
	return func(o *sketchOptions) {
		o.hasher = NewMurmur3Hasher(seed)
	}
}

// WithHasher replaces the hasher used to turn items into coupons.
func WithHasher(hasher Hasher) SketchOption {
	return func(o *sketchOptions) {
		if hasher != nil {
			o.hasher = hasher
		}
	}
}

func newSketchOptions(opts []SketchOption) sketchOptions {
	o := sketchOptions{
		hasher: NewMurmur3Hasher(internal.DefaultUpdateSeed),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
