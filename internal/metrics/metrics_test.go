package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveAfterInit(t *testing.T) {
	Init()
	Init()

	before := testutil.ToFloat64(fetchTotal.WithLabelValues("wttr.in", ResultError))
	ObserveFetch("wttr.in", ResultError, 20*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(fetchTotal.WithLabelValues("wttr.in", ResultError)))

	before = testutil.ToFloat64(fetchTotal.WithLabelValues("unknown", ResultSuccess))
	ObserveFetch("", "", time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(fetchTotal.WithLabelValues("unknown", ResultSuccess)))

	before = testutil.ToFloat64(lineStatus.WithLabelValues("unknown", "ok"))
	IncLine("", "")
	assert.Equal(t, before+1, testutil.ToFloat64(lineStatus.WithLabelValues("unknown", "ok")))

	assert.NotPanics(t, func() { ObserveTick(time.Second) })
}
