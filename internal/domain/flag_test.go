package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagValue_TrialDays(t *testing.T) {
	assert.Equal(t, 14, NumericFlag(14).TrialDays(7))
	assert.Equal(t, 21, TextFlag("21").TrialDays(7))
	assert.Equal(t, 21, TextFlag(" 21 ").TrialDays(7))
	assert.Equal(t, 7, TextFlag("soon").TrialDays(7))
	assert.Equal(t, 7, StructuredFlag("Top Variant").TrialDays(7))
	assert.Equal(t, 7, FlagValue{}.TrialDays(7))
}

func TestFlagValue_DisplayText(t *testing.T) {
	assert.Equal(t, "Next Gen Experience", StructuredFlag("Next Gen Experience").DisplayText())
	assert.Equal(t, "CONTROL", TextFlag("CONTROL").DisplayText())
	assert.Equal(t, "14", NumericFlag(14).DisplayText())
}

func TestFlagValue_IsTruthy(t *testing.T) {
	assert.True(t, TextFlag("Summer Sale!").IsTruthy())
	assert.False(t, TextFlag("").IsTruthy())
	assert.True(t, NumericFlag(3).IsTruthy())
	assert.False(t, NumericFlag(0).IsTruthy())
	assert.True(t, StructuredFlag("x").IsTruthy())
	assert.False(t, StructuredFlag("").IsTruthy())
}
