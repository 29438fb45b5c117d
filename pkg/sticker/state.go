// Package sticker implements transformable overlay stickers: the transform
// state model, resize recomposition, and the text sticker variant.
package sticker

import (
	"math"

	"github.com/go-drift/photoedit/pkg/errors"
	"github.com/go-drift/photoedit/pkg/graphics"
)

// TransformState is a snapshot of a sticker's geometric state.
//
// The on-screen transform, applied about the sticker centre, is
//
//	translate(TotalTranslation) · rotate(OriginAngle) · rotate(GesRotation) ·
//	scale(OriginScale) · scale(GesScale)
//
// so GesScale is the first operation applied to points and the last undone.
type TransformState struct {
	// OriginScale is the committed zoom scale.
	OriginScale float64
	// OriginAngle is the committed rotation in degrees.
	OriginAngle float64
	// OriginFrame is the untransformed frame in parent coordinates.
	OriginFrame graphics.Rect
	// GesScale is the live pinch scale.
	GesScale float64
	// GesRotation is the live rotation in radians.
	GesRotation float64
	// TotalTranslation is the accumulated pan offset.
	TotalTranslation graphics.Offset
}

// NewTransformState returns a state with identity gesture values.
func NewTransformState(originFrame graphics.Rect, originScale, originAngle float64) TransformState {
	return TransformState{
		OriginScale: originScale,
		OriginAngle: originAngle,
		OriginFrame: originFrame,
		GesScale:    1,
	}
}

// Validate reports a ContractError when a scale is not a finite positive number.
func (s TransformState) Validate() error {
	if !validScale(s.OriginScale) {
		return &errors.ContractError{Op: "sticker.TransformState", Field: "OriginScale", Value: s.OriginScale, Want: "finite > 0"}
	}
	if !validScale(s.GesScale) {
		return &errors.ContractError{Op: "sticker.TransformState", Field: "GesScale", Value: s.GesScale, Want: "finite > 0"}
	}
	return nil
}

// mustValidate panics with the ContractError from Validate, relabelled to op.
func (s TransformState) mustValidate(op string) {
	if err := s.Validate(); err != nil {
		ce := err.(*errors.ContractError)
		errors.Violation(op, ce.Field, ce.Value, ce.Want)
	}
}

func validScale(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// OriginRadians returns OriginAngle converted to radians.
func (s TransformState) OriginRadians() float64 {
	return s.OriginAngle * math.Pi / 180
}

// Scale returns the combined scale factor.
func (s TransformState) Scale() float64 {
	return s.OriginScale * s.GesScale
}

// Rotation returns the combined rotation in radians.
func (s TransformState) Rotation() float64 {
	return s.OriginRadians() + s.GesRotation
}

// Matrix composes the transform relative to the sticker centre.
func (s TransformState) Matrix() graphics.Matrix {
	return graphics.TranslateMatrix(s.TotalTranslation.X, s.TotalTranslation.Y).
		Rotate(s.OriginRadians()).
		Rotate(s.GesRotation).
		Scale(s.OriginScale, s.OriginScale).
		Scale(s.GesScale, s.GesScale)
}
