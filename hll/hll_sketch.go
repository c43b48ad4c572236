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

// Package hll is dedicated to streaming algorithms that enable estimation of the
// cardinality of a stream of items.
//
// HllSketch and Union are the public facing types of this implementation of Philippe
// Flajolet's HyperLogLog algorithm. A sketch starts in a sparse LIST of coupons,
// moves to a hash SET of coupons once the list fills, and finally to a dense HLL
// array in the configured TgtHllType. While the sketch only receives updates in
// stream order it estimates with the HIP (historic inverse probability)
// accumulator; after unions it falls back to the bias corrected composite
// estimator.
package hll

import (
	"encoding/binary"
	"fmt"
	"iter"
	"math"

	"github.com/golang/snappy"
)

type HllSketch interface {
	// Copy returns a deep copy of this sketch.
	Copy() (HllSketch, error)

	// CopyAs returns a deep copy of this sketch with the given TgtHllType. A sketch
	// in HLL mode is converted to the other dense encoding.
	CopyAs(tgtHllType TgtHllType) (HllSketch, error)

	// GetCompositeEstimate is less accurate than GetEstimate and is used
	// automatically once the sketch has gone through union operations where the
	// HIP estimator no longer applies.
	GetCompositeEstimate() (float64, error)

	// GetEstimate returns the cardinality estimate.
	GetEstimate() (float64, error)

	// GetHipEstimate returns the value of the HIP accumulator in HLL mode, and the
	// coupon estimate otherwise.
	GetHipEstimate() (float64, error)

	// GetLowerBound returns the approximate lower error bound for the given number
	// of standard deviations, which must be 1, 2 or 3.
	GetLowerBound(numStdDev int) (float64, error)

	// GetUpperBound returns the approximate upper error bound for the given number
	// of standard deviations, which must be 1, 2 or 3.
	GetUpperBound(numStdDev int) (float64, error)

	// UpdateUInt64 presents the given unsigned 64-bit integer as a potential unique item.
	UpdateUInt64(datum uint64) error

	// UpdateInt64 presents the given signed 64-bit integer as a potential unique item.
	UpdateInt64(datum int64) error

	// UpdateFloat64 presents the given float as a potential unique item. Plus and
	// minus zero are the same item, and so are all NaNs.
	UpdateFloat64(datum float64) error

	// UpdateSlice presents the given byte slice as a potential unique item.
	// Empty slices are ignored.
	UpdateSlice(datum []byte) error

	// UpdateString presents the given string as a potential unique item.
	// Empty strings are ignored.
	UpdateString(datum string) error

	// Reset returns the sketch to empty, keeping lgConfigK and tgtHllType.
	Reset() error

	IsEmpty() bool

	// IsOutOfOrder reports whether the contents no longer come from a single
	// ordered stream of updates, in which case the HIP estimator is not used.
	IsOutOfOrder() bool

	GetLgConfigK() int
	GetTgtHllType() TgtHllType

	// GetCurMode returns the current mode of the sketch: LIST, SET or HLL.
	GetCurMode() CurMode

	// GetCompactSerializationBytes returns the size of the ToCompactSlice image.
	GetCompactSerializationBytes() int

	// GetUpdatableSerializationBytes returns the size of the ToUpdatableSlice image.
	GetUpdatableSerializationBytes() int

	// ToCompactSlice serializes the sketch without any unused capacity.
	ToCompactSlice() ([]byte, error)

	// ToUpdatableSlice serializes the sketch with the full capacity of its current
	// data structures. The updatable form is larger than the compact form.
	ToUpdatableSlice() ([]byte, error)

	// WriteCompactSlice writes the compact image into dst and returns the number of
	// bytes written. If dst is too short nothing is written and ErrCapacity is returned.
	WriteCompactSlice(dst []byte) (int, error)

	// WriteUpdatableSlice is WriteCompactSlice for the updatable image.
	WriteUpdatableSlice(dst []byte) (int, error)

	// ToCompressedSlice returns the compact image compressed with snappy.
	ToCompressedSlice() ([]byte, error)

	GetSerializationVersion() int

	couponUpdate(coupon int) error
	getImpl() hllSketchImpl
}

// hllSketchImpl is one of the four representations a sketch can hold: a coupon
// list, a coupon hash set, a 4-bit or an 8-bit HLL array. couponUpdate returns the
// representation that must be used from then on, which differs from the receiver
// when the update caused a promotion.
type hllSketchImpl interface {
	getEstimate() (float64, error)
	getCompositeEstimate() (float64, error)
	getHipEstimate() (float64, error)
	getLowerBound(numStdDev int) (float64, error)
	getUpperBound(numStdDev int) (float64, error)
	isEmpty() bool

	getLgConfigK() int
	getTgtHllType() TgtHllType
	getCurMode() CurMode

	isOutOfOrder() bool
	putOutOfOrder(oooFlag bool)

	couponUpdate(coupon int) (hllSketchImpl, error)
	validPairs() iter.Seq[int]
	allPairs() iter.Seq[int]

	copy() hllSketchImpl
	copyAs(tgtHllType TgtHllType) (hllSketchImpl, error)

	getCompactSerializationBytes() int
	getUpdatableSerializationBytes() int
	writeImage(dst []byte, compact bool) error
}

type hllSketchState struct {
	sketch  hllSketchImpl
	hasher  Hasher
	scratch [8]byte
}

func newHllSketchState(impl hllSketchImpl, hasher Hasher) *hllSketchState {
	return &hllSketchState{
		sketch: impl,
		hasher: hasher,
	}
}

// NewHllSketch constructs a new, empty sketch.
//
//   - lgConfigK, the log2 of the number of HLL buckets, between 4 and 21 inclusive.
//   - tgtHllType, the dense encoding the sketch will use once it is in HLL mode.
func NewHllSketch(lgConfigK int, tgtHllType TgtHllType, opts ...SketchOption) (HllSketch, error) {
	if err := checkLgK(lgConfigK); err != nil {
		return nil, err
	}
	if err := checkTgtHllType(tgtHllType); err != nil {
		return nil, err
	}
	o := newSketchOptions(opts)
	return newHllSketchState(newCouponList(lgConfigK, tgtHllType), o.hasher), nil
}

// NewHllSketchWithDefault constructs a new sketch with the default lgK (12) and TgtHllType (HLL_4).
func NewHllSketchWithDefault(opts ...SketchOption) (HllSketch, error) {
	return NewHllSketch(defaultLgK, TgtHllTypeDefault, opts...)
}

// NewHllSketchFromSlice deserializes a sketch from an image produced by
// ToCompactSlice or ToUpdatableSlice. The slice is neither modified nor retained.
func NewHllSketchFromSlice(bytes []byte, opts ...SketchOption) (HllSketch, error) {
	impl, err := deserializeImpl(bytes)
	if err != nil {
		return nil, err
	}
	o := newSketchOptions(opts)
	return newHllSketchState(impl, o.hasher), nil
}

// NewHllSketchFromCompressedSlice deserializes an image produced by ToCompressedSlice.
func NewHllSketchFromCompressedSlice(compressed []byte, opts ...SketchOption) (HllSketch, error) {
	bytes, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return NewHllSketchFromSlice(bytes, opts...)
}

func (h *hllSketchState) getImpl() hllSketchImpl {
	return h.sketch
}

// couponUpdate applies the coupon and adopts the representation it returns. On
// error the handle keeps its current representation.
func (h *hllSketchState) couponUpdate(coupon int) error {
	if coupon == empty {
		return nil
	}
	next, err := h.sketch.couponUpdate(coupon)
	if err != nil {
		return err
	}
	h.sketch = next
	return nil
}

func (h *hllSketchState) hashUpdate(data []byte) error {
	lo, hi := h.hasher.Sum128(data)
	return h.couponUpdate(coupon(lo, hi))
}

func (h *hllSketchState) UpdateUInt64(datum uint64) error {
	binary.LittleEndian.PutUint64(h.scratch[:], datum)
	return h.hashUpdate(h.scratch[:])
}

func (h *hllSketchState) UpdateInt64(datum int64) error {
	return h.UpdateUInt64(uint64(datum))
}

func (h *hllSketchState) UpdateFloat64(datum float64) error {
	if datum == 0 {
		datum = 0 // -0.0 and 0.0 hash the same
	}
	if math.IsNaN(datum) {
		return h.UpdateUInt64(canonicalNaNBits)
	}
	return h.UpdateUInt64(math.Float64bits(datum))
}

func (h *hllSketchState) UpdateSlice(datum []byte) error {
	if len(datum) == 0 {
		return nil
	}
	return h.hashUpdate(datum)
}

func (h *hllSketchState) UpdateString(datum string) error {
	if len(datum) == 0 {
		return nil
	}
	return h.hashUpdate([]byte(datum))
}

func (h *hllSketchState) Reset() error {
	h.sketch = newCouponList(h.sketch.getLgConfigK(), h.sketch.getTgtHllType())
	return nil
}

func (h *hllSketchState) Copy() (HllSketch, error) {
	return newHllSketchState(h.sketch.copy(), h.hasher), nil
}

func (h *hllSketchState) CopyAs(tgtHllType TgtHllType) (HllSketch, error) {
	if err := checkTgtHllType(tgtHllType); err != nil {
		return nil, err
	}
	impl, err := h.sketch.copyAs(tgtHllType)
	if err != nil {
		return nil, err
	}
	return newHllSketchState(impl, h.hasher), nil
}

func (h *hllSketchState) GetCompositeEstimate() (float64, error) {
	return h.sketch.getCompositeEstimate()
}

func (h *hllSketchState) GetEstimate() (float64, error) {
	return h.sketch.getEstimate()
}

func (h *hllSketchState) GetHipEstimate() (float64, error) {
	return h.sketch.getHipEstimate()
}

func (h *hllSketchState) GetLowerBound(numStdDev int) (float64, error) {
	return h.sketch.getLowerBound(numStdDev)
}

func (h *hllSketchState) GetUpperBound(numStdDev int) (float64, error) {
	return h.sketch.getUpperBound(numStdDev)
}

func (h *hllSketchState) IsEmpty() bool {
	return h.sketch.isEmpty()
}

func (h *hllSketchState) IsOutOfOrder() bool {
	return h.sketch.isOutOfOrder()
}

func (h *hllSketchState) GetLgConfigK() int {
	return h.sketch.getLgConfigK()
}

func (h *hllSketchState) GetTgtHllType() TgtHllType {
	return h.sketch.getTgtHllType()
}

func (h *hllSketchState) GetCurMode() CurMode {
	return h.sketch.getCurMode()
}

func (h *hllSketchState) GetCompactSerializationBytes() int {
	return h.sketch.getCompactSerializationBytes()
}

func (h *hllSketchState) GetUpdatableSerializationBytes() int {
	return h.sketch.getUpdatableSerializationBytes()
}

func (h *hllSketchState) ToCompactSlice() ([]byte, error) {
	dst := make([]byte, h.sketch.getCompactSerializationBytes())
	if err := h.sketch.writeImage(dst, true); err != nil {
		return nil, err
	}
	return dst, nil
}

func (h *hllSketchState) ToUpdatableSlice() ([]byte, error) {
	dst := make([]byte, h.sketch.getUpdatableSerializationBytes())
	if err := h.sketch.writeImage(dst, false); err != nil {
		return nil, err
	}
	return dst, nil
}

func (h *hllSketchState) WriteCompactSlice(dst []byte) (int, error) {
	return writeSized(h.sketch, dst, true)
}

func (h *hllSketchState) WriteUpdatableSlice(dst []byte) (int, error) {
	return writeSized(h.sketch, dst, false)
}

func (h *hllSketchState) ToCompressedSlice() ([]byte, error) {
	b, err := h.ToCompactSlice()
	if err != nil {
		return nil, err
	}
	return snappy.Encode(nil, b), nil
}

func (h *hllSketchState) GetSerializationVersion() int {
	return serVer
}

func writeSized(impl hllSketchImpl, dst []byte, compact bool) (int, error) {
	need := impl.getUpdatableSerializationBytes()
	if compact {
		need = impl.getCompactSerializationBytes()
	}
	if len(dst) < need {
		return 0, fmt.Errorf("%w: destination holds %d bytes, image needs %d", ErrCapacity, len(dst), need)
	}
	out := dst[:need]
	clear(out)
	if err := impl.writeImage(out, compact); err != nil {
		return 0, err
	}
	return need, nil
}

// canonicalNaNBits is the single bit pattern every NaN is hashed as.
const canonicalNaNBits = uint64(0x7ff8000000000000)
