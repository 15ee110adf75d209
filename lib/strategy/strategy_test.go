package strategy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"quadrafund.io/quadra/lib/ballot"
	"quadrafund.io/quadra/lib/common"
	"quadrafund.io/quadra/lib/errors"
	"quadrafund.io/quadra/lib/observer"
	"quadrafund.io/quadra/lib/storage"
	"quadrafund.io/quadra/lib/token"
)

var (
	testRound    = common.MustParseAddress("0x1000000000000000000000000000000000000001")
	testToken    = common.MustParseAddress("0x2000000000000000000000000000000000000002")
	testVoter    = common.MustParseAddress("0x3000000000000000000000000000000000000003")
	testGrant    = common.MustParseAddress("0x4000000000000000000000000000000000000004")
	testGrant2   = common.MustParseAddress("0x5000000000000000000000000000000000000005")
	testGrant3   = common.MustParseAddress("0x6000000000000000000000000000000000000006")
	testOutsider = common.MustParseAddress("0x7000000000000000000000000000000000000007")
)

func newTestStrategy(t *testing.T) (*BaseStrategy, *storage.LevelDBBackend) {
	st := storage.NewTestStorage()

	address := common.DeriveAddress(testRound.Bytes(), []byte("base"))
	s := NewBaseStrategy(address, st)

	return s, st
}

func newBoundTestStrategy(t *testing.T) (*BaseStrategy, *storage.LevelDBBackend) {
	s, st := newTestStrategy(t)
	require.NoError(t, s.Init(Call{Caller: testRound}))

	return s, st
}

// fund gives the voter a balance and approves the strategy as spender
func fund(t *testing.T, st *storage.LevelDBBackend, s *BaseStrategy, amount common.Amount) {
	require.NoError(t, token.Credit(st, testToken, testVoter, amount))
	require.NoError(t, token.Approve(st, testToken, testVoter, s.Address(), amount))
}

func encodeBallots(t *testing.T, ballots ...ballot.Ballot) [][]byte {
	var encoded [][]byte
	for _, b := range ballots {
		raw, err := b.Serialize()
		require.NoError(t, err)
		encoded = append(encoded, raw)
	}

	return encoded
}

// collectVotes subscribes to all committed vote events until the returned
// stop func runs
func collectVotes(records *[]VoteRecord) func() {
	event := observer.NewEvent(observer.ResourceVote, observer.ConditionAll, "").String()
	onFunc := func(args ...interface{}) {
		if len(args) < 1 {
			return
		}
		if vr, ok := args[0].(VoteRecord); ok {
			*records = append(*records, vr)
		}
	}
	observer.VoteObserver.On(event, onFunc)

	return func() {
		observer.VoteObserver.Off(event, onFunc)
	}
}

func TestStrategyInitBindsCaller(t *testing.T) {
	s, st := newTestStrategy(t)
	defer st.Close()

	_, err := s.Round()
	require.Error(t, err)
	require.True(t, errors.NotInitialized.Equal(err))

	require.NoError(t, s.Init(Call{Caller: testRound}))

	bound, err := s.Round()
	require.NoError(t, err)
	require.Equal(t, testRound, bound)
}

func TestStrategySingleInit(t *testing.T) {
	s, st := newBoundTestStrategy(t)
	defer st.Close()

	// same caller
	err := s.Init(Call{Caller: testRound})
	require.Error(t, err)
	require.True(t, errors.AlreadyInitialized.Equal(err))

	// different caller
	err = s.Init(Call{Caller: testOutsider})
	require.Error(t, err)
	require.True(t, errors.AlreadyInitialized.Equal(err))

	// the binding is untouched
	bound, err := s.Round()
	require.NoError(t, err)
	require.Equal(t, testRound, bound)
}

func TestStrategyInitZeroCaller(t *testing.T) {
	s, st := newTestStrategy(t)
	defer st.Close()

	require.Error(t, s.Init(Call{Caller: common.ZeroAddress}))

	_, err := s.Round()
	require.True(t, errors.NotInitialized.Equal(err))
}

func TestStrategyVoteBeforeInit(t *testing.T) {
	s, st := newTestStrategy(t)
	defer st.Close()

	b := ballot.NewBallot(testGrant, testToken, common.NewAmount(1))
	err := s.Vote(Call{Caller: testRound}, encodeBallots(t, b), testVoter)
	require.Error(t, err)
	require.True(t, errors.NotInitialized.Equal(err))
}

func TestStrategyVoteUnauthorized(t *testing.T) {
	s, st := newBoundTestStrategy(t)
	defer st.Close()

	fund(t, st, s, common.NewAmount(100))

	b := ballot.NewBallot(testGrant, testToken, common.NewAmount(100))
	err := s.Vote(Call{Caller: testOutsider}, encodeBallots(t, b), testVoter)
	require.Error(t, err)
	require.True(t, errors.Unauthorized.Equal(err))

	// no state change
	voterBalance, _ := token.GetBalance(st, testToken, testVoter)
	require.True(t, voterBalance.Amount.Equal(common.NewAmount(100)))
}

func TestStrategyVoteScenario(t *testing.T) {
	s, st := newBoundTestStrategy(t)
	defer st.Close()

	fund(t, st, s, common.NewAmount(100))

	var records []VoteRecord
	stop := collectVotes(&records)
	defer stop()

	b := ballot.NewBallot(testGrant, testToken, common.NewAmount(100))
	require.NoError(t, s.Vote(Call{Caller: testRound}, encodeBallots(t, b), testVoter))

	voterBalance, _ := token.GetBalance(st, testToken, testVoter)
	require.True(t, voterBalance.Amount.IsZero())

	grantBalance, _ := token.GetBalance(st, testToken, testGrant)
	require.True(t, grantBalance.Amount.Equal(common.NewAmount(100)))

	require.Equal(t, 1, len(records))
	require.Equal(t, testVoter, records[0].Voter)
	require.Equal(t, testGrant, records[0].Grant)
	require.Equal(t, testToken, records[0].Token)
	require.True(t, records[0].Amount.Equal(common.NewAmount(100)))
	require.Equal(t, testRound, records[0].Round)
}

func TestStrategyVoteAtomicity(t *testing.T) {
	s, st := newBoundTestStrategy(t)
	defer st.Close()

	fund(t, st, s, common.NewAmount(300))

	var records []VoteRecord
	stop := collectVotes(&records)
	defer stop()

	// 2nd ballot is invalid: zero amount
	encoded := encodeBallots(t,
		ballot.NewBallot(testGrant, testToken, common.NewAmount(100)),
		ballot.NewBallot(testGrant2, testToken, common.NewAmount(0)),
		ballot.NewBallot(testGrant3, testToken, common.NewAmount(100)),
	)

	err := s.Vote(Call{Caller: testRound}, encoded, testVoter)
	require.Error(t, err)
	require.True(t, errors.InvalidBallot.Equal(err))

	// no transfer from any of the 3 ballots is observable
	voterBalance, _ := token.GetBalance(st, testToken, testVoter)
	require.True(t, voterBalance.Amount.Equal(common.NewAmount(300)))

	for _, grant := range []common.Address{testGrant, testGrant2, testGrant3} {
		grantBalance, _ := token.GetBalance(st, testToken, grant)
		require.True(t, grantBalance.Amount.IsZero())
	}

	// and nothing was emitted
	require.Equal(t, 0, len(records))
}

func TestStrategyVoteMalformedAbortsBatch(t *testing.T) {
	s, st := newBoundTestStrategy(t)
	defer st.Close()

	fund(t, st, s, common.NewAmount(200))

	encoded := encodeBallots(t, ballot.NewBallot(testGrant, testToken, common.NewAmount(100)))
	encoded = append(encoded, []byte("showme"))

	err := s.Vote(Call{Caller: testRound}, encoded, testVoter)
	require.Error(t, err)
	require.True(t, errors.MalformedBallot.Equal(err))

	voterBalance, _ := token.GetBalance(st, testToken, testVoter)
	require.True(t, voterBalance.Amount.Equal(common.NewAmount(200)))
}

func TestStrategyVoteTransferFailureAbortsBatch(t *testing.T) {
	s, st := newBoundTestStrategy(t)
	defer st.Close()

	// enough for the first ballot only
	fund(t, st, s, common.NewAmount(100))

	encoded := encodeBallots(t,
		ballot.NewBallot(testGrant, testToken, common.NewAmount(100)),
		ballot.NewBallot(testGrant2, testToken, common.NewAmount(100)),
	)

	err := s.Vote(Call{Caller: testRound}, encoded, testVoter)
	require.Error(t, err)
	require.True(t, errors.TransferFailed.Equal(err))

	voterBalance, _ := token.GetBalance(st, testToken, testVoter)
	require.True(t, voterBalance.Amount.Equal(common.NewAmount(100)))

	grantBalance, _ := token.GetBalance(st, testToken, testGrant)
	require.True(t, grantBalance.Amount.IsZero())
}

func TestStrategyVoteOrdering(t *testing.T) {
	s, st := newBoundTestStrategy(t)
	defer st.Close()

	fund(t, st, s, common.NewAmount(600))

	var records []VoteRecord
	stop := collectVotes(&records)
	defer stop()

	grants := []common.Address{testGrant2, testGrant, testGrant3}
	var ballots []ballot.Ballot
	for i, grant := range grants {
		ballots = append(ballots, ballot.NewBallot(grant, testToken, common.NewAmount(uint64(i+1)*100)))
	}

	require.NoError(t, s.Vote(Call{Caller: testRound}, encodeBallots(t, ballots...), testVoter))

	// exactly N events, in submission order
	require.Equal(t, len(grants), len(records))
	for i, grant := range grants {
		require.Equal(t, grant, records[i].Grant)
		require.True(t, records[i].Amount.Equal(common.NewAmount(uint64(i+1)*100)))
	}
}

func TestStrategyVoteEmptyBatch(t *testing.T) {
	s, st := newBoundTestStrategy(t)
	defer st.Close()

	require.NoError(t, s.Vote(Call{Caller: testRound}, nil, testVoter))
}

func TestCappedStrategy(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	address := common.DeriveAddress(testRound.Bytes(), []byte("capped"))
	s := NewCappedStrategy(address, st, common.NewAmount(150))
	require.NoError(t, s.Init(Call{Caller: testRound}))

	require.NoError(t, token.Credit(st, testToken, testVoter, common.NewAmount(400)))
	require.NoError(t, token.Approve(st, testToken, testVoter, s.Address(), common.NewAmount(400)))

	// two ballots to the same grant summing over the cap
	encoded := encodeBallots(t,
		ballot.NewBallot(testGrant, testToken, common.NewAmount(100)),
		ballot.NewBallot(testGrant, testToken, common.NewAmount(100)),
	)
	err := s.Vote(Call{Caller: testRound}, encoded, testVoter)
	require.Error(t, err)
	require.True(t, errors.InvalidBallot.Equal(err))

	voterBalance, _ := token.GetBalance(st, testToken, testVoter)
	require.True(t, voterBalance.Amount.Equal(common.NewAmount(400)))

	// split across two grants is fine
	encoded = encodeBallots(t,
		ballot.NewBallot(testGrant, testToken, common.NewAmount(100)),
		ballot.NewBallot(testGrant2, testToken, common.NewAmount(100)),
	)
	require.NoError(t, s.Vote(Call{Caller: testRound}, encoded, testVoter))

	// per-batch state does not leak into the next call
	encoded = encodeBallots(t, ballot.NewBallot(testGrant, testToken, common.NewAmount(50)))
	require.NoError(t, s.Vote(Call{Caller: testRound}, encoded, testVoter))
}

func TestStrategyRegistry(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	require.True(t, HasStrategy("base"))
	require.False(t, HasStrategy("showme"))

	s, err := New("base", common.DeriveAddress(testRound.Bytes(), []byte("base")), st)
	require.NoError(t, err)
	require.NotNil(t, s)

	_, err = New("showme", common.ZeroAddress, st)
	require.Error(t, err)
	require.True(t, errors.UnknownStrategy.Equal(err))
}

func TestVoteRecordHash(t *testing.T) {
	b := ballot.NewBallot(testGrant, testToken, common.NewAmount(100))

	vr0 := NewVoteRecord(testVoter, b, testRound)
	vr1 := NewVoteRecord(testVoter, b, testRound)
	require.Equal(t, vr0.Hash(), vr1.Hash())

	vr2 := NewVoteRecord(testOutsider, b, testRound)
	require.NotEqual(t, vr0.Hash(), vr2.Hash())
}
