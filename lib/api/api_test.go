package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"quadrafund.io/quadra/lib/ballot"
	"quadrafund.io/quadra/lib/common"
	"quadrafund.io/quadra/lib/storage"
	"quadrafund.io/quadra/lib/strategy"
	"quadrafund.io/quadra/lib/token"
)

var (
	testRound = common.MustParseAddress("0x1000000000000000000000000000000000000001")
	testToken = common.MustParseAddress("0x2000000000000000000000000000000000000002")
	testVoter = common.MustParseAddress("0x3000000000000000000000000000000000000003")
	testGrant = common.MustParseAddress("0x4000000000000000000000000000000000000004")
)

func newTestServer(t *testing.T, st *storage.LevelDBBackend, history *VoteHistory) *httptest.Server {
	router := mux.NewRouter()
	NewNetworkHandlerAPI(st, history).AddAPIHandlers(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server
}

func TestGetBalanceHandler(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	require.NoError(t, token.Credit(st, testToken, testVoter, common.NewAmount(100)))

	history, _ := NewVoteHistory(10)
	server := newTestServer(t, st, history)

	resp, err := http.Get(server.URL + "/balances/" + testToken.Hex() + "/" + testVoter.Hex())
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "100", body["balance"])
}

func TestGetBalanceHandlerBadAddress(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	history, _ := NewVoteHistory(10)
	server := newTestServer(t, st, history)

	resp, err := http.Get(server.URL + "/balances/showme/" + testVoter.Hex())
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetBalanceHandlerUnknownHolder(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	history, _ := NewVoteHistory(10)
	server := newTestServer(t, st, history)

	// a holder without a record reads as zero, not as 404
	resp, err := http.Get(server.URL + "/balances/" + testToken.Hex() + "/" + testGrant.Hex())
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "0", body["balance"])
}

func TestVoteHistory(t *testing.T) {
	history, err := NewVoteHistory(10)
	require.NoError(t, err)
	history.Start()
	defer history.Stop()

	b := ballot.NewBallot(testGrant, testToken, common.NewAmount(100))
	vr := strategy.NewVoteRecord(testVoter, b, testRound)
	vr.Trigger()

	records := history.Recent()
	require.Equal(t, 1, len(records))
	require.Equal(t, testGrant, records[0].Grant)
}

func TestGetRecentVotesHandler(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	history, _ := NewVoteHistory(10)
	history.Start()
	defer history.Stop()

	b := ballot.NewBallot(testGrant, testToken, common.NewAmount(42))
	strategy.NewVoteRecord(testVoter, b, testRound).Trigger()

	server := newTestServer(t, st, history)

	resp, err := http.Get(server.URL + "/votes")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, 1, len(body))
}
