package hand_test

import (
	"errors"
	"regexp"
	"strings"
	"testing"

	"grasp/internal/hand"
)

var commandPattern = regexp.MustCompile(`^SET_JOINTS( -?\d+\.\d{6}){16}$`)

func TestParseJointVectorRejectsWrongLength(t *testing.T) {
	for _, length := range []int{0, 1, 15, 17, 32} {
		values := make([]float64, length)
		if _, err := hand.ParseJointVector(values); !errors.Is(err, hand.ErrInvalidJointVector) {
			t.Fatalf("length %d: expected ErrInvalidJointVector, got %v", length, err)
		}
	}
}

func TestCommandFormat(t *testing.T) {
	cases := [][]float64{
		make([]float64, 16),
		{1.2068, 1.0, 1.4042, -0.1194, 1.2481, 1.4073, 0.8163, -0.0093, 1.2712, 1.3881, 1.0122, 0.1116, 0.2976, 0.9034, 0.7929, 0.6017},
		{-3.14159265, 0, 0.0000004, 1e-7, 2.5, -2.5, 0.1, 0.12, 0.123, 0.1234, 0.12345, 0.123456, 0.1234567, 1, 2, 3},
	}
	for i, values := range cases {
		vec, err := hand.ParseJointVector(values)
		if err != nil {
			t.Fatalf("case %d: ParseJointVector: %v", i, err)
		}
		cmd := vec.Command()
		if !commandPattern.MatchString(cmd) {
			t.Fatalf("case %d: command does not match wire format: %q", i, cmd)
		}
	}
}

func TestCommandZeroVectorExactBytes(t *testing.T) {
	vec, err := hand.ParseJointVector(make([]float64, 16))
	if err != nil {
		t.Fatalf("ParseJointVector: %v", err)
	}
	want := "SET_JOINTS" + strings.Repeat(" 0.000000", 16)
	if got := vec.Command(); got != want {
		t.Fatalf("unexpected command:\n got %q\nwant %q", got, want)
	}
}

func TestCommandSixDecimalRounding(t *testing.T) {
	values := make([]float64, 16)
	values[0] = 1.23456789
	vec, err := hand.ParseJointVector(values)
	if err != nil {
		t.Fatalf("ParseJointVector: %v", err)
	}
	if !strings.HasPrefix(vec.Command(), "SET_JOINTS 1.234568 ") {
		t.Fatalf("expected six-decimal rounding, got %q", vec.Command())
	}
}
