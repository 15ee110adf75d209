package token

import (
	"testing"

	"github.com/stretchr/testify/require"

	"quadrafund.io/quadra/lib/common"
	"quadrafund.io/quadra/lib/errors"
	"quadrafund.io/quadra/lib/storage"
)

var (
	testToken   = common.MustParseAddress("0x2000000000000000000000000000000000000002")
	testVoter   = common.MustParseAddress("0x3000000000000000000000000000000000000003")
	testGrant   = common.MustParseAddress("0x4000000000000000000000000000000000000004")
	testSpender = common.MustParseAddress("0x5000000000000000000000000000000000000005")
)

func TestLedgerZeroBalanceByDefault(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	balance, err := GetBalance(st, testToken, testVoter)
	require.NoError(t, err)
	require.True(t, balance.Amount.IsZero())
}

func TestLedgerCredit(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	require.NoError(t, Credit(st, testToken, testVoter, common.NewAmount(100)))
	require.NoError(t, Credit(st, testToken, testVoter, common.NewAmount(50)))

	balance, err := GetBalance(st, testToken, testVoter)
	require.NoError(t, err)
	require.True(t, balance.Amount.Equal(common.NewAmount(150)))
}

func TestLedgerTransferFrom(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	require.NoError(t, Credit(st, testToken, testVoter, common.NewAmount(100)))
	require.NoError(t, Approve(st, testToken, testVoter, testSpender, common.NewAmount(100)))

	require.NoError(t, TransferFrom(st, testToken, testVoter, testGrant, common.NewAmount(60), testSpender))

	voterBalance, _ := GetBalance(st, testToken, testVoter)
	require.True(t, voterBalance.Amount.Equal(common.NewAmount(40)))

	grantBalance, _ := GetBalance(st, testToken, testGrant)
	require.True(t, grantBalance.Amount.Equal(common.NewAmount(60)))

	allowance, _ := GetAllowance(st, testToken, testVoter, testSpender)
	require.True(t, allowance.Remaining.Equal(common.NewAmount(40)))
}

func TestLedgerTransferFromInsufficientAllowance(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	require.NoError(t, Credit(st, testToken, testVoter, common.NewAmount(100)))
	require.NoError(t, Approve(st, testToken, testVoter, testSpender, common.NewAmount(10)))

	err := TransferFrom(st, testToken, testVoter, testGrant, common.NewAmount(60), testSpender)
	require.Error(t, err)
	require.True(t, errors.TransferFailed.Equal(err))

	// nothing moved
	voterBalance, _ := GetBalance(st, testToken, testVoter)
	require.True(t, voterBalance.Amount.Equal(common.NewAmount(100)))
}

func TestLedgerTransferFromInsufficientBalance(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	require.NoError(t, Credit(st, testToken, testVoter, common.NewAmount(10)))
	require.NoError(t, Approve(st, testToken, testVoter, testSpender, common.NewAmount(100)))

	err := TransferFrom(st, testToken, testVoter, testGrant, common.NewAmount(60), testSpender)
	require.Error(t, err)
	require.True(t, errors.TransferFailed.Equal(err))
}

func TestLedgerTransferFromNoApproval(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	require.NoError(t, Credit(st, testToken, testVoter, common.NewAmount(100)))

	err := TransferFrom(st, testToken, testVoter, testGrant, common.NewAmount(1), testSpender)
	require.Error(t, err)
	require.True(t, errors.TransferFailed.Equal(err))
}

func TestLedgerApproveOverwrites(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	require.NoError(t, Approve(st, testToken, testVoter, testSpender, common.NewAmount(100)))
	require.NoError(t, Approve(st, testToken, testVoter, testSpender, common.NewAmount(30)))

	allowance, err := GetAllowance(st, testToken, testVoter, testSpender)
	require.NoError(t, err)
	require.True(t, allowance.Remaining.Equal(common.NewAmount(30)))
}

func TestLedgerSelfTransfer(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	require.NoError(t, Credit(st, testToken, testVoter, common.NewAmount(100)))
	require.NoError(t, Approve(st, testToken, testVoter, testSpender, common.NewAmount(100)))

	require.NoError(t, TransferFrom(st, testToken, testVoter, testVoter, common.NewAmount(60), testSpender))

	balance, _ := GetBalance(st, testToken, testVoter)
	require.True(t, balance.Amount.Equal(common.NewAmount(100)))

	allowance, _ := GetAllowance(st, testToken, testVoter, testSpender)
	require.True(t, allowance.Remaining.Equal(common.NewAmount(40)))
}

func TestLedgerTransferInsideTransaction(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	require.NoError(t, Credit(st, testToken, testVoter, common.NewAmount(100)))
	require.NoError(t, Approve(st, testToken, testVoter, testSpender, common.NewAmount(100)))

	ts, err := st.OpenTransaction()
	require.NoError(t, err)
	require.NoError(t, TransferFrom(ts, testToken, testVoter, testGrant, common.NewAmount(60), testSpender))
	require.NoError(t, ts.Discard())

	// discarded transfer left no trace
	voterBalance, _ := GetBalance(st, testToken, testVoter)
	require.True(t, voterBalance.Amount.Equal(common.NewAmount(100)))

	grantBalance, _ := GetBalance(st, testToken, testGrant)
	require.True(t, grantBalance.Amount.IsZero())
}
