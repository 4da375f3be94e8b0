package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordLifecycleOperation(t *testing.T) {
	before := testutil.ToFloat64(LifecycleOperationsTotal.WithLabelValues("topic", "delete", "not_found"))
	RecordLifecycleOperation("topic", "delete", "not_found", 3*time.Millisecond)
	after := testutil.ToFloat64(LifecycleOperationsTotal.WithLabelValues("topic", "delete", "not_found"))
	assert.Equal(t, before+1, after)
}

func TestRecordAuthzDecision(t *testing.T) {
	tests := []struct {
		name    string
		allowed bool
		result  string
	}{
		{"allow", true, "allow"},
		{"deny", false, "deny"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := AuthzDecisionsTotal.WithLabelValues("newspaper", "update", tt.result)
			before := testutil.ToFloat64(c)
			RecordAuthzDecision("newspaper", "update", tt.allowed)
			assert.Equal(t, before+1, testutil.ToFloat64(c))
		})
	}
}

func TestRecordCascade(t *testing.T) {
	before := testutil.ToFloat64(CascadedNewspapersTotal)
	RecordCascade(0)
	RecordCascade(3)
	assert.Equal(t, before+3, testutil.ToFloat64(CascadedNewspapersTotal))
}

func TestRecordRegistration(t *testing.T) {
	self := RegistrationsTotal.WithLabelValues("self")
	staff := RegistrationsTotal.WithLabelValues("staff")
	s0, f0 := testutil.ToFloat64(self), testutil.ToFloat64(staff)

	RecordRegistration(true)
	RecordRegistration(false)
	RecordRegistration(false)

	assert.Equal(t, s0+1, testutil.ToFloat64(self))
	assert.Equal(t, f0+2, testutil.ToFloat64(staff))
}

func TestGauges(t *testing.T) {
	UpdateEntitiesTotal("topic", 7)
	assert.Equal(t, 7.0, testutil.ToFloat64(EntitiesTotal.WithLabelValues("topic")))

	UpdateDBConnectionStats(5, 10)
	assert.Equal(t, 5.0, testutil.ToFloat64(DBConnectionsActive))
	assert.Equal(t, 10.0, testutil.ToFloat64(DBConnectionsIdle))

	SetCircuitBreakerState("database", 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(CircuitBreakerState.WithLabelValues("database")))
}

func TestMetricsFunctions_AllCallable(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordHTTPRequest("GET", "/topics", "200", 10*time.Millisecond, 512)
		RecordDBQuery("list_topics", 2*time.Millisecond)
	})
}
