package resource

import (
	"github.com/nvellon/hal"
)

const (
	APIVersionV1 = "v1"

	URLBalances  = "/balances/{token}/{holder}"
	URLVotes     = "/votes"
	URLSubscribe = "/subscribe"
)

type Resource interface {
	LinkSelf() string
	Resource() *hal.Resource
	GetMap() hal.Entry
}
