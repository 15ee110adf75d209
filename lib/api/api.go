//
// Package api exposes the read-only HTTP surface: balances, recent vote
// records and an event stream over committed votes. Vote submission
// stays off HTTP on purpose; only the bound round may cast votes.
//
package api

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/gorilla/mux"

	"quadrafund.io/quadra/lib/api/resource"
	"quadrafund.io/quadra/lib/common"
	"quadrafund.io/quadra/lib/errors"
	"quadrafund.io/quadra/lib/httputils"
	"quadrafund.io/quadra/lib/observer"
	"quadrafund.io/quadra/lib/storage"
	"quadrafund.io/quadra/lib/strategy"
	"quadrafund.io/quadra/lib/token"
)

type NetworkHandlerAPI struct {
	storage *storage.LevelDBBackend
	history *VoteHistory
}

func NewNetworkHandlerAPI(st *storage.LevelDBBackend, history *VoteHistory) *NetworkHandlerAPI {
	return &NetworkHandlerAPI{
		storage: st,
		history: history,
	}
}

func (api *NetworkHandlerAPI) AddAPIHandlers(router *mux.Router) {
	router.HandleFunc(resource.URLBalances, api.GetBalanceHandler).Methods("GET")
	router.HandleFunc(resource.URLVotes, api.GetRecentVotesHandler).Methods("GET")
	router.HandleFunc(resource.URLSubscribe, api.PostSubscribeHandler).Methods("POST")
}

func (api *NetworkHandlerAPI) GetBalanceHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tokenAddress, err := common.ParseAddress(vars["token"])
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}
	holder, err := common.ParseAddress(vars["holder"])
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	balance, err := token.GetBalance(api.storage, tokenAddress, holder)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.WriteJSON(w, http.StatusOK, resource.NewBalance(balance))
}

func (api *NetworkHandlerAPI) GetRecentVotesHandler(w http.ResponseWriter, r *http.Request) {
	records := api.history.Recent()

	resources := make([]interface{}, 0, len(records))
	for _, vr := range records {
		resources = append(resources, resource.NewVote(vr).Resource())
	}

	httputils.WriteJSON(w, http.StatusOK, resources)
}

func (api *NetworkHandlerAPI) PostSubscribeHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	if !httputils.IsEventStream(r) {
		httputils.WriteJSONError(w, errors.BadRequestParameter)
		return
	}

	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter)
		return
	}

	var requestParams []observer.Conditions
	if err := json.Unmarshal(body, &requestParams); err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter)
		return
	}

	var events []string
	for _, conditions := range requestParams {
		events = append(events, conditions.Event())
	}
	if len(events) < 1 {
		events = append(events, observer.NewEvent(observer.ResourceVote, observer.ConditionAll, "").String())
	}

	renderFunc := func(args ...interface{}) ([]byte, error) {
		if len(args) <= 1 {
			return nil, errors.BadRequestParameter
		}
		i := args[1]
		if i == nil {
			return []byte{}, nil
		}

		if vr, ok := i.(strategy.VoteRecord); ok {
			return json.Marshal(resource.NewVote(vr).Resource())
		}

		return json.Marshal(i)
	}

	es := NewEventStream(w, r, renderFunc, DefaultContentType)
	es.Render(nil)
	es.Run(observer.VoteObserver, events...)
}
