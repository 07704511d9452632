package hand

import (
	"errors"
	"fmt"
	"strings"
)

// JointCount is the number of hand joints: 4 fingers with 4 joints each,
// the fourth finger slot being the thumb.
const JointCount = 16

// ErrInvalidJointVector indicates a joint vector of the wrong length.
var ErrInvalidJointVector = errors.New("joint vector must contain exactly 16 values")

// JointVector holds one angle per joint, in radians. Angle values are not
// range-checked; the hand firmware clamps them.
type JointVector [JointCount]float64

// ParseJointVector validates the slice length and converts it to a vector.
func ParseJointVector(values []float64) (JointVector, error) {
	var vec JointVector
	if len(values) != JointCount {
		return vec, fmt.Errorf("%w: got %d", ErrInvalidJointVector, len(values))
	}
	copy(vec[:], values)
	return vec, nil
}

// Command renders the SET_JOINTS wire command for this vector: angles in
// radians, space separated, each with exactly six digits after the decimal
// point.
func (v JointVector) Command() string {
	var b strings.Builder
	b.WriteString(CommandSetJoints)
	for _, angle := range v {
		fmt.Fprintf(&b, " %.6f", angle)
	}
	return b.String()
}
