package observer

import (
	"github.com/GianlucaGuarini/go-observable"
)

// VoteObserver is triggered once per committed ballot, after the batch's
// storage transaction has committed. The emitted event log, not contract
// storage, is the durable record of votes.
var VoteObserver = observable.New()

const (
	ResourceVote = "vote"

	ConditionAll   = "*"
	ConditionRound = "round"
	ConditionGrant = "grant"
	ConditionVoter = "voter"
)

type Event struct {
	Resource  string `json:"resource"`
	Condition string `json:"condition"`
	Id        string `json:"id"`
}

func NewEvent(resource, condition, id string) Event {
	return Event{
		Resource:  resource,
		Condition: condition,
		Id:        id,
	}
}

func (e Event) String() string {
	toStr := e.Resource + "-"
	if e.Condition == ConditionAll {
		toStr += e.Condition
	} else {
		toStr += e.Condition + "="
		toStr += e.Id
	}
	return toStr
}

type Conditions struct {
	Events []Event `json:"events"`
}

func NewConditions(events ...Event) Conditions {
	s := Conditions{}
	for _, e := range events {
		s.Events = append(s.Events, e)
	}
	return s
}

func (s Conditions) Event() string {
	var toStr string
	for i, e := range s.Events {
		if i > 0 {
			toStr += "&"
		}
		toStr += e.String()
	}
	return toStr
}
