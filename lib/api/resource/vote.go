package resource

import (
	"github.com/nvellon/hal"

	"quadrafund.io/quadra/lib/strategy"
)

type Vote struct {
	vr strategy.VoteRecord
}

func NewVote(vr strategy.VoteRecord) *Vote {
	return &Vote{
		vr: vr,
	}
}

func (v Vote) GetMap() hal.Entry {
	return hal.Entry{
		"hash":   v.vr.Hash().Hex(),
		"voter":  v.vr.Voter.Hex(),
		"grant":  v.vr.Grant.Hex(),
		"token":  v.vr.Token.Hex(),
		"amount": v.vr.Amount,
		"round":  v.vr.Round.Hex(),
	}
}

func (v Vote) Resource() *hal.Resource {
	return hal.NewResource(v, v.LinkSelf())
}

func (v Vote) LinkSelf() string {
	return URLVotes + "/" + v.vr.Hash().Hex()
}
