package payment

import (
	"context"
	"fmt"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"go.uber.org/zap"
)

// preferenceCreator is the subset of the MercadoPago preference client used
// for checkout.
type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

// MercadoPago creates hosted checkout preferences for card payments.
type MercadoPago struct {
	client preferenceCreator
	log    *zap.Logger
}

func NewMercadoPago(accessToken string, log *zap.Logger) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{client: preference.NewClient(cfg), log: log}, nil
}

func (m *MercadoPago) Initiate(ctx context.Context, req Request) (*Handoff, error) {
	request := preference.Request{
		ExternalReference: req.PurchaseID,
		Items: []preference.ItemRequest{
			{
				ID:         req.PurchaseID,
				Title:      req.Description,
				Quantity:   1,
				UnitPrice:  MajorUnits(req.Amount).InexactFloat64(),
				CurrencyID: ISOCurrency(req.Currency),
			},
		},
		Payer: &preference.PayerRequest{
			Name:  req.CustomerName,
			Email: req.CustomerEmail,
		},
	}

	resp, err := m.client.Create(ctx, request)
	if err != nil {
		m.log.Error("mercadopago preference failed",
			zap.String("purchase_id", req.PurchaseID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("mercadopago preference: %w", err)
	}

	m.log.Info("mercadopago preference created",
		zap.String("purchase_id", req.PurchaseID),
		zap.String("preference_id", resp.ID),
	)

	return &Handoff{
		Provider:    "mercadopago",
		Reference:   resp.ID,
		RedirectURL: resp.InitPoint,
	}, nil
}
