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
	"fmt"
)

// Union merges sketches of any mode, lgConfigK and TgtHllType. It works in an
// internal HLL_8 sketch, the gadget, whose lgConfigK never exceeds lgMaxK.
type Union interface {
	UpdateUInt64(datum uint64) error
	UpdateInt64(datum int64) error
	UpdateFloat64(datum float64) error
	UpdateSlice(datum []byte) error
	UpdateString(datum string) error

	// UpdateSketch merges the given sketch into the union. The sketch is not modified.
	UpdateSketch(sketch HllSketch) error

	// Reset returns the union to empty at lgMaxK.
	Reset() error

	GetCompositeEstimate() (float64, error)
	GetEstimate() (float64, error)
	GetHipEstimate() (float64, error)
	GetLowerBound(numStdDev int) (float64, error)
	GetUpperBound(numStdDev int) (float64, error)
	IsEmpty() bool
	IsOutOfOrder() bool

	// GetLgConfigK returns the current lgConfigK of the gadget, which may be below lgMaxK.
	GetLgConfigK() int
	GetLgMaxK() int
	GetTgtHllType() TgtHllType
	GetCurMode() CurMode

	GetCompactSerializationBytes() int
	GetUpdatableSerializationBytes() int
	ToCompactSlice() ([]byte, error)
	ToUpdatableSlice() ([]byte, error)

	// GetResult returns an independent copy of the union's state as a sketch of the
	// given TgtHllType.
	GetResult(tgtHllType TgtHllType) (HllSketch, error)

	// GetDefaultResult is GetResult(TgtHllTypeDefault).
	GetDefaultResult() (HllSketch, error)
}

type unionImpl struct {
	lgMaxK int
	gadget *hllSketchState
}

// NewUnion returns an empty union whose result never exceeds lgMaxK.
func NewUnion(lgMaxK int, opts ...SketchOption) (Union, error) {
	sk, err := NewHllSketch(lgMaxK, TgtHllTypeHll8, opts...)
	if err != nil {
		return nil, err
	}
	return &unionImpl{
		lgMaxK: lgMaxK,
		gadget: sk.(*hllSketchState),
	}, nil
}

// NewUnionWithDefault returns an empty union with lgMaxK 12.
func NewUnionWithDefault(opts ...SketchOption) (Union, error) {
	return NewUnion(defaultLgK, opts...)
}

// NewUnionFromSketch wraps an HLL_8 sketch as the union's gadget, with lgMaxK set to
// the sketch's lgConfigK. The union works on the sketch in place, so the sketch
// reflects every later union update.
func NewUnionFromSketch(sketch HllSketch) (Union, error) {
	if sketch == nil {
		return nil, fmt.Errorf("%w: nil sketch", ErrInvalidConfig)
	}
	if sketch.GetTgtHllType() != TgtHllTypeHll8 {
		return nil, fmt.Errorf("%w: a union can only wrap an HLL_8 sketch, got %v", ErrInvalidConfig, sketch.GetTgtHllType())
	}
	state, ok := sketch.(*hllSketchState)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported sketch implementation %T", ErrInvalidConfig, sketch)
	}
	return &unionImpl{
		lgMaxK: state.GetLgConfigK(),
		gadget: state,
	}, nil
}

// NewUnionFromSlice returns a union at the image's lgConfigK holding the sketch the
// image describes.
func NewUnionFromSlice(bytes []byte, opts ...SketchOption) (Union, error) {
	sk, err := NewHllSketchFromSlice(bytes, opts...)
	if err != nil {
		return nil, err
	}
	union, err := NewUnion(sk.GetLgConfigK(), opts...)
	if err != nil {
		return nil, err
	}
	if err := union.UpdateSketch(sk); err != nil {
		return nil, err
	}
	return union, nil
}

func (u *unionImpl) UpdateUInt64(datum uint64) error {
	return u.gadget.UpdateUInt64(datum)
}

func (u *unionImpl) UpdateInt64(datum int64) error {
	return u.gadget.UpdateInt64(datum)
}

func (u *unionImpl) UpdateFloat64(datum float64) error {
	return u.gadget.UpdateFloat64(datum)
}

func (u *unionImpl) UpdateSlice(datum []byte) error {
	return u.gadget.UpdateSlice(datum)
}

func (u *unionImpl) UpdateString(datum string) error {
	return u.gadget.UpdateString(datum)
}

func (u *unionImpl) UpdateSketch(sketch HllSketch) error {
	if sketch == nil {
		return nil
	}
	merged, err := mergeImpl(sketch.getImpl(), u.gadget.sketch, u.lgMaxK)
	if err != nil {
		return err
	}
	u.gadget.sketch = merged
	return nil
}

func (u *unionImpl) Reset() error {
	u.gadget.sketch = newCouponList(u.lgMaxK, TgtHllTypeHll8)
	return nil
}

func (u *unionImpl) GetCompositeEstimate() (float64, error) {
	return u.gadget.GetCompositeEstimate()
}

func (u *unionImpl) GetEstimate() (float64, error) {
	return u.gadget.GetEstimate()
}

func (u *unionImpl) GetHipEstimate() (float64, error) {
	return u.gadget.GetHipEstimate()
}

func (u *unionImpl) GetLowerBound(numStdDev int) (float64, error) {
	return u.gadget.GetLowerBound(numStdDev)
}

func (u *unionImpl) GetUpperBound(numStdDev int) (float64, error) {
	return u.gadget.GetUpperBound(numStdDev)
}

func (u *unionImpl) IsEmpty() bool {
	return u.gadget.IsEmpty()
}

func (u *unionImpl) IsOutOfOrder() bool {
	return u.gadget.IsOutOfOrder()
}

func (u *unionImpl) GetLgConfigK() int {
	return u.gadget.GetLgConfigK()
}

func (u *unionImpl) GetLgMaxK() int {
	return u.lgMaxK
}

func (u *unionImpl) GetTgtHllType() TgtHllType {
	return u.gadget.GetTgtHllType()
}

func (u *unionImpl) GetCurMode() CurMode {
	return u.gadget.GetCurMode()
}

func (u *unionImpl) GetCompactSerializationBytes() int {
	return u.gadget.GetCompactSerializationBytes()
}

func (u *unionImpl) GetUpdatableSerializationBytes() int {
	return u.gadget.GetUpdatableSerializationBytes()
}

func (u *unionImpl) ToCompactSlice() ([]byte, error) {
	return u.gadget.ToCompactSlice()
}

func (u *unionImpl) ToUpdatableSlice() ([]byte, error) {
	return u.gadget.ToUpdatableSlice()
}

func (u *unionImpl) GetResult(tgtHllType TgtHllType) (HllSketch, error) {
	return u.gadget.CopyAs(tgtHllType)
}

func (u *unionImpl) GetDefaultResult() (HllSketch, error) {
	return u.GetResult(TgtHllTypeDefault)
}

// mergeImpl merges source into gadget and returns the gadget's new representation.
// The switch is over (gadget mode, or 3 when the gadget is empty) << 2 | source mode.
func mergeImpl(source hllSketchImpl, gadget hllSketchImpl, lgMaxK int) (hllSketchImpl, error) {
	if source == nil || source.isEmpty() {
		return gadget, nil
	}
	hi2bits := int(gadget.getCurMode())
	if gadget.isEmpty() {
		hi2bits = 3
	}
	lo2bits := int(source.getCurMode())

	switch sw := (hi2bits << 2) | lo2bits; sw {
	case 0, 8: // src: LIST, gadget: LIST or HLL
		dst, err := replayPairs(source, gadget)
		if err != nil {
			return nil, err
		}
		dst.putOutOfOrder(dst.isOutOfOrder() || source.isOutOfOrder())
		return dst, nil
	case 1, 4, 5, 9, 13: // src: SET, or gadget: SET
		dst, err := replayPairs(source, gadget)
		if err != nil {
			return nil, err
		}
		dst.putOutOfOrder(true) // SET oooFlag is always true
		return dst, nil
	case 2, 6: // src: HLL, gadget: LIST or SET
		// swap so that the sparse gadget is replayed into a copy of the source;
		// lgMaxK because a coupon has an effective K of 2^26
		dst, err := copyOrDownsampleHll(source.(hllArray), lgMaxK)
		if err != nil {
			return nil, err
		}
		merged, err := replayPairs(gadget, dst)
		if err != nil {
			return nil, err
		}
		if sw == 2 {
			merged.putOutOfOrder(gadget.isOutOfOrder() || merged.isOutOfOrder())
		} else {
			merged.putOutOfOrder(true)
		}
		return merged, nil
	case 10: // src: HLL, gadget: HLL
		srcLgK := source.getLgConfigK()
		dstLgK := gadget.getLgConfigK()
		dst := gadget
		if srcLgK < dstLgK || gadget.getTgtHllType() != TgtHllTypeHll8 {
			down, err := copyOrDownsampleHll(gadget.(hllArray), min(srcLgK, dstLgK))
			if err != nil {
				return nil, err
			}
			dst = down
		}
		merged, err := replayPairs(source, dst)
		if err != nil {
			return nil, err
		}
		merged.putOutOfOrder(true) // union of two HLL modes is always out of order
		return merged, nil
	case 12: // src: LIST, gadget: empty
		dst, err := replayPairs(source, gadget)
		if err != nil {
			return nil, err
		}
		dst.putOutOfOrder(source.isOutOfOrder())
		return dst, nil
	case 14: // src: HLL, gadget: empty
		dst, err := copyOrDownsampleHll(source.(hllArray), lgMaxK)
		if err != nil {
			return nil, err
		}
		dst.putOutOfOrder(source.isOutOfOrder())
		return dst, nil
	default:
		return nil, consistencyErrorf("unreachable union case: gadget %d, source %v", hi2bits, source.getCurMode())
	}
}

// replayPairs feeds every valid pair of src through dst's coupon update path,
// following promotions, and returns dst's final representation.
func replayPairs(src hllSketchImpl, dst hllSketchImpl) (hllSketchImpl, error) {
	for p := range src.validPairs() {
		next, err := dst.couponUpdate(p)
		if err != nil {
			return nil, err
		}
		dst = next
	}
	return dst, nil
}

// copyOrDownsampleHll returns an HLL_8 copy of src at no more than tgtLgK. A
// downsampled copy gets the source's HIP accumulator and order flag, not the ones
// its replay produced.
func copyOrDownsampleHll(src hllArray, tgtLgK int) (hllArray, error) {
	srcBase := src.base()
	srcLgK := srcBase.lgConfigK
	if srcLgK <= tgtLgK && srcBase.tgtHllType == TgtHllTypeHll8 {
		return src.copy().(hllArray), nil
	}
	tgt := newHll8Array(min(srcLgK, tgtLgK))
	for p := range src.validPairs() {
		if _, err := tgt.couponUpdate(p); err != nil {
			return nil, err
		}
	}
	tgt.putHipAccum(srcBase.hipAccum)
	tgt.putOutOfOrder(srcBase.oooFlag)
	return tgt, nil
}
