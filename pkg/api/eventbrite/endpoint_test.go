package eventbrite

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_OrderID(t *testing.T) {
	id, err := OrderID("https://www.eventbriteapi.com/v3/orders/5551234567/")
	require.NoError(t, err)
	require.Equal(t, "5551234567", id)

	id, err = OrderID("https://www.eventbriteapi.com/v3/orders/5551234567")
	require.NoError(t, err)
	require.Equal(t, "5551234567", id)

	_, err = OrderID("https://www.eventbriteapi.com/v3/users/me/")
	require.Error(t, err)

	_, err = OrderID("https://www.eventbriteapi.com/v3/orders/")
	require.Error(t, err)
}

func Test_orderPath(t *testing.T) {
	path, err := orderPath("https://www.eventbriteapi.com/v3/orders/5551234567/")
	require.NoError(t, err)
	require.Equal(t, "/v3/orders/5551234567/", path)

	_, err = orderPath("https://example.com/v3/orders/5551234567/")
	require.Error(t, err)
}
