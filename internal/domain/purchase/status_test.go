package purchase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/inkless-booking/internal/httperr"
	"github.com/BruksfildServices01/inkless-booking/internal/models"
)

func TestApplySessionsRemaining(t *testing.T) {
	cases := []struct {
		name       string
		remaining  int
		wantLeft   int
		wantStatus Status
	}{
		{"partial", 2, 2, StatusActive},
		{"full", 3, 3, StatusActive},
		{"exhausted", 0, 0, StatusCompleted},
		{"negative clamps", -2, 0, StatusCompleted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := &models.Purchase{SessionsTotal: 3, SessionsRemaining: 3, Status: string(StatusActive)}

			require.NoError(t, ApplySessionsRemaining(p, tc.remaining))
			assert.Equal(t, tc.wantLeft, p.SessionsRemaining)
			assert.Equal(t, string(tc.wantStatus), p.Status)
		})
	}
}

func TestApplySessionsRemaining_ReactivatesCompleted(t *testing.T) {
	p := &models.Purchase{SessionsTotal: 3, SessionsRemaining: 0, Status: string(StatusCompleted)}

	require.NoError(t, ApplySessionsRemaining(p, 1))
	assert.Equal(t, string(StatusActive), p.Status)
}

func TestApplySessionsRemaining_AboveTotal(t *testing.T) {
	p := &models.Purchase{SessionsTotal: 3, SessionsRemaining: 1, Status: string(StatusActive)}

	err := ApplySessionsRemaining(p, 4)

	assert.True(t, httperr.IsBusiness(err, "invalid_sessions_remaining"))
	assert.Equal(t, 1, p.SessionsRemaining)
}

func TestCanBook(t *testing.T) {
	assert.NoError(t, CanBook(&models.Purchase{Status: "active", SessionsRemaining: 1}))
	assert.True(t, httperr.IsBusiness(CanBook(&models.Purchase{Status: "expired", SessionsRemaining: 1}), "purchase_not_active"))
	assert.True(t, httperr.IsBusiness(CanBook(&models.Purchase{Status: "active"}), "no_sessions_remaining"))
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidPaymentMethod("mpesa"))
	assert.True(t, ValidPaymentMethod("cash"))
	assert.False(t, ValidPaymentMethod("paypal"))

	assert.True(t, ValidStatus("expired"))
	assert.False(t, ValidStatus("pending"))

	assert.True(t, ValidPaymentStatus("refunded"))
	assert.False(t, ValidPaymentStatus("active"))
}
