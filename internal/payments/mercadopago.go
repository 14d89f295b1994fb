package payments

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/amizade-app/companion-api/internal/models"
)

// Checkout creates Mercado Pago payment preferences for confirmed
// bookings. Settlement itself stays outside this API: the webhook only
// flips the booking's payment status. A nil Checkout is a no-op so
// deployments without a token still run.
type Checkout struct {
	prefs preference.Client
}

func New(accessToken string) (*Checkout, error) {
	if accessToken == "" {
		return nil, nil
	}
	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &Checkout{prefs: preference.NewClient(cfg)}, nil
}

// CreateForBooking returns the checkout URL for a booking. The booking
// reference travels as the external reference so the webhook can find
// its way back.
func (c *Checkout) CreateForBooking(ctx context.Context, b *models.Booking) (string, error) {
	if c == nil {
		return "", nil
	}

	title := "Companion booking " + b.Reference
	if b.Offering != nil {
		title = b.Offering.Name
	}

	resource, err := c.prefs.Create(ctx, preference.Request{
		ExternalReference: b.Reference,
		Items: []preference.ItemRequest{
			{
				Title:     title,
				Quantity:  1,
				UnitPrice: float64(b.PriceCents) / 100,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("create preference: %w", err)
	}

	return resource.InitPoint, nil
}
