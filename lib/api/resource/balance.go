package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"quadrafund.io/quadra/lib/token"
)

type Balance struct {
	b token.Balance
}

func NewBalance(b token.Balance) *Balance {
	return &Balance{
		b: b,
	}
}

func (b Balance) GetMap() hal.Entry {
	return hal.Entry{
		"token":   b.b.Token.Hex(),
		"holder":  b.b.Holder.Hex(),
		"balance": b.b.Amount,
	}
}

func (b Balance) Resource() *hal.Resource {
	return hal.NewResource(b, b.LinkSelf())
}

func (b Balance) LinkSelf() string {
	link := strings.Replace(URLBalances, "{token}", b.b.Token.Hex(), -1)
	return strings.Replace(link, "{holder}", b.b.Holder.Hex(), -1)
}
