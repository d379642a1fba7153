package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDirectionFor(t *testing.T) {
	dir, ok := DirectionFor(KindRevenue)
	assert.True(t, ok)
	assert.Equal(t, FlowIn, dir)

	dir, ok = DirectionFor(KindExpense)
	assert.True(t, ok)
	assert.Equal(t, FlowOut, dir)

	_, ok = DirectionFor(KindCommission)
	assert.False(t, ok)
}

func TestCashFlowMovement_SignedAmount(t *testing.T) {
	in := CashFlowMovement{Direction: FlowIn, Amount: decimal.RequireFromString("45.00")}
	out := CashFlowMovement{Direction: FlowOut, Amount: decimal.RequireFromString("120.00")}

	assert.True(t, in.SignedAmount().Equal(decimal.RequireFromString("45")))
	assert.True(t, out.SignedAmount().Equal(decimal.RequireFromString("-120")))
}

func TestTransaction_AppendNote(t *testing.T) {
	tx := Transaction{}
	tx.AppendNote("first")
	tx.AppendNote("second")
	assert.Equal(t, "first | second", tx.Notes)
}

func TestTransactionKind_Label(t *testing.T) {
	assert.Equal(t, "Receita", KindRevenue.Label())
	assert.Equal(t, "Despesa", KindExpense.Label())
	assert.Equal(t, "Comissão", KindCommission.Label())
}

func TestProfile_CheckPassword(t *testing.T) {
	client := Profile{}
	assert.False(t, client.CheckPassword(""), "profiles without password never authenticate")

	staff := Profile{}
	assert.NoError(t, staff.SetPassword("segredo123"))
	assert.True(t, staff.CheckPassword("segredo123"))
	assert.False(t, staff.CheckPassword("errada"))
}
