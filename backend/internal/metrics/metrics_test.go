package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordLLMCall(t *testing.T) {
	successBefore := testutil.ToFloat64(LLMRequests.WithLabelValues("test-provider", "success"))
	errorBefore := testutil.ToFloat64(LLMRequests.WithLabelValues("test-provider", "error"))

	RecordLLMCall("test-provider", 10*time.Millisecond, nil)
	RecordLLMCall("test-provider", 20*time.Millisecond, errors.New("boom"))
	RecordLLMCall("test-provider", 30*time.Millisecond, errors.New("boom"))

	assert.Equal(t, successBefore+1, testutil.ToFloat64(LLMRequests.WithLabelValues("test-provider", "success")))
	assert.Equal(t, errorBefore+2, testutil.ToFloat64(LLMRequests.WithLabelValues("test-provider", "error")))
}

func TestRecordRoute(t *testing.T) {
	queryBefore := testutil.ToFloat64(ChatRoutes.WithLabelValues(RouteQuery))
	directBefore := testutil.ToFloat64(ChatRoutes.WithLabelValues(RouteDirect))

	RecordRoute(true)
	RecordRoute(false)
	RecordRoute(false)

	assert.Equal(t, queryBefore+1, testutil.ToFloat64(ChatRoutes.WithLabelValues(RouteQuery)))
	assert.Equal(t, directBefore+2, testutil.ToFloat64(ChatRoutes.WithLabelValues(RouteDirect)))
}

func TestRecordHTTPRequest_UnmatchedRoute(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "unmatched", "404"))
	RecordHTTPRequest("GET", "", 404, time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "unmatched", "404")))
}
