package payment

import "context"

// Request describes the amount a customer must pay for one purchase.
type Request struct {
	PurchaseID  string
	Description string
	Amount      int64 // minor units
	Currency    string

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

// Handoff is what the storefront needs to continue payment with the
// provider. Reference is stored as the purchase transaction ID.
type Handoff struct {
	Provider    string `json:"provider"`
	Reference   string `json:"reference"`
	RedirectURL string `json:"redirect_url,omitempty"`
	Message     string `json:"message,omitempty"`
}

type Gateway interface {
	Initiate(ctx context.Context, req Request) (*Handoff, error)
}

// Registry maps payment methods to the gateway handling them.
type Registry struct {
	gateways map[string]Gateway
}

func NewRegistry() *Registry {
	return &Registry{gateways: map[string]Gateway{}}
}

func (r *Registry) Register(method string, g Gateway) {
	r.gateways[method] = g
}

// For returns the gateway for method. Methods without a configured
// gateway, such as cash, report false.
func (r *Registry) For(method string) (Gateway, bool) {
	if r == nil {
		return nil, false
	}
	g, ok := r.gateways[method]
	return g, ok
}
