package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveOutbound(t *testing.T) {
	before := testutil.ToFloat64(OutboundRequestsTotal.WithLabelValues("stripe", "error"))
	ObserveOutbound("stripe", errors.New("boom"))
	ObserveOutbound("stripe", nil)

	require.Equal(t, before+1, testutil.ToFloat64(OutboundRequestsTotal.WithLabelValues("stripe", "error")))
	require.GreaterOrEqual(t, testutil.ToFloat64(OutboundRequestsTotal.WithLabelValues("stripe", "ok")), 1.0)
}
