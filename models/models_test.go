package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusToggle(t *testing.T) {
	assert.Equal(t, StatusInactive, StatusActive.Toggle())
	assert.Equal(t, StatusActive, StatusInactive.Toggle())
	assert.Equal(t, StatusActive, StatusActive.Toggle().Toggle())
	assert.Equal(t, StatusActive, AccountStatus("").Toggle())
}

func TestParseTransactionType(t *testing.T) {
	tests := []struct {
		in      string
		want    TransactionType
		wantErr bool
	}{
		{"DEPOSIT", TransactionDeposit, false},
		{"withdrawal", TransactionWithdrawal, false},
		{" deposit ", TransactionDeposit, false},
		{"TRANSFER", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseTransactionType(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "ParseTransactionType(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "ParseTransactionType(%q)", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestJoinAccounts(t *testing.T) {
	customers := []Customer{{ID: 1, FullName: "A"}, {ID: 2, FullName: "B"}}
	accounts := []Account{{ID: 10, CustomerID: 1, Status: StatusActive}}

	rows := JoinAccounts(customers, accounts)

	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].Customer.ID)
	require.NotNil(t, rows[0].Account)
	assert.Equal(t, int64(10), rows[0].Account.ID)
	assert.Equal(t, int64(2), rows[1].Customer.ID)
	assert.Nil(t, rows[1].Account)
}

func TestJoinAccountsLastWins(t *testing.T) {
	customers := []Customer{{ID: 1}}
	accounts := []Account{{ID: 10, CustomerID: 1}, {ID: 11, CustomerID: 1}}

	rows := JoinAccounts(customers, accounts)

	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Account)
	assert.Equal(t, int64(11), rows[0].Account.ID)
}

func TestJoinAccountsIgnoresOrphans(t *testing.T) {
	rows := JoinAccounts(nil, []Account{{ID: 10, CustomerID: 7}})
	assert.Empty(t, rows)
}

func TestAccountDecodesBackendPayload(t *testing.T) {
	payload := `{"id":1,"customerId":1,"accountNumber":"ACC-123","status":"ACTIVE",
		"balance":150.25,"createdAt":"2024-01-01T00:00:00","updatedAt":"2024-01-02T10:30:00.123456"}`

	var acc Account
	require.NoError(t, json.Unmarshal([]byte(payload), &acc))

	assert.Equal(t, "ACC-123", acc.AccountNumber)
	assert.Equal(t, StatusActive, acc.Status)
	assert.True(t, decimal.RequireFromString("150.25").Equal(acc.Balance))
	assert.Equal(t, 2024, acc.CreatedAt.Year())
	assert.Equal(t, 30, acc.UpdatedAt.Minute())
}

func TestTransactionRequestEncodesAmountAsNumber(t *testing.T) {
	req := TransactionRequest{Type: TransactionDeposit, Amount: decimal.RequireFromString("100.50")}

	data, err := json.Marshal(req)
	require.NoError(t, err)

	assert.JSONEq(t, `{"type":"DEPOSIT","amount":100.5}`, string(data))
}

func TestTimestampRejectsGarbage(t *testing.T) {
	var ts Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &ts))
	assert.Error(t, json.Unmarshal([]byte(`12`), &ts))

	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())
	assert.Equal(t, "-", ts.Display())
}
