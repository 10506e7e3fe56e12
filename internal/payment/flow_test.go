package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlow_StartsAtMethodSelection(t *testing.T) {
	f := NewFlow()
	assert.Equal(t, StageMethodSelection, f.Stage())
	assert.Equal(t, "0", f.Amount())
	assert.False(t, f.CanPay())
}

func TestSelectMethod_AdvancesToAmountEntry(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.SelectMethod(MethodCard))
	assert.Equal(t, StageAmountEntry, f.Stage())
	assert.Equal(t, MethodCard, f.Method())
}

func TestSelectMethod_Unknown(t *testing.T) {
	f := NewFlow()
	err := f.SelectMethod(Method("crypto"))
	assert.ErrorIs(t, err, ErrUnknownMethod)
	assert.Equal(t, StageMethodSelection, f.Stage())
}

func TestSelectMethod_SwitchWhileEntering(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.SelectMethod(MethodCard))
	require.NoError(t, f.EnterAmount("5000"))
	require.NoError(t, f.SelectMethod(MethodCash))
	assert.Equal(t, StageAmountEntry, f.Stage())
	assert.Equal(t, MethodCash, f.Method())
	assert.Equal(t, "5000", f.Amount())
}

func TestCanPay_ZeroAmountBlocks(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.SelectMethod(MethodCash))

	assert.False(t, f.CanPay())

	require.NoError(t, f.EnterAmount("0"))
	assert.False(t, f.CanPay())

	require.NoError(t, f.EnterAmount(""))
	assert.False(t, f.CanPay())

	require.NoError(t, f.EnterAmount("12000"))
	assert.True(t, f.CanPay())
}

func TestCancel_KeepsMethodAndAmount(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.SelectMethod(MethodCoupon))
	require.NoError(t, f.EnterAmount("3000"))
	require.NoError(t, f.Cancel())

	assert.Equal(t, StageMethodSelection, f.Stage())
	assert.Equal(t, MethodCoupon, f.Method())
	assert.Equal(t, "3000", f.Amount())
	assert.False(t, f.CanPay())

	// reopening resumes with the kept state
	require.NoError(t, f.SelectMethod(MethodCoupon))
	assert.True(t, f.CanPay())
}

func TestSubmit_RequiresAmountEntry(t *testing.T) {
	f := NewFlow()
	assert.ErrorIs(t, f.Submit(), ErrNoMethod)

	require.NoError(t, f.SelectMethod(MethodCard))
	assert.ErrorIs(t, f.Submit(), ErrZeroAmount)

	require.NoError(t, f.EnterAmount("8000"))
	require.NoError(t, f.Submit())
	assert.Equal(t, StageSubmitted, f.Stage())
}

func TestSubmitted_IsTerminal(t *testing.T) {
	f := NewFlow()
	require.NoError(t, f.SelectMethod(MethodCard))
	require.NoError(t, f.EnterAmount("8000"))
	require.NoError(t, f.Submit())

	assert.ErrorIs(t, f.Submit(), ErrAlreadySubmitted)
	assert.ErrorIs(t, f.SelectMethod(MethodCash), ErrAlreadySubmitted)
	assert.ErrorIs(t, f.EnterAmount("1"), ErrAlreadySubmitted)
	assert.ErrorIs(t, f.Cancel(), ErrAlreadySubmitted)
	assert.False(t, f.CanPay())
}
