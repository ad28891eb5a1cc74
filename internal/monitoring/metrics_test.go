package monitoring

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordEstimate(t *testing.T) {
	success := testutil.ToFloat64(EstimatesTotal.WithLabelValues("success"))
	failure := testutil.ToFloat64(EstimatesTotal.WithLabelValues("error"))

	RecordEstimate(45, nil)
	RecordEstimate(0, errors.New("boom"))

	assert.Equal(t, success+1, testutil.ToFloat64(EstimatesTotal.WithLabelValues("success")))
	assert.Equal(t, failure+1, testutil.ToFloat64(EstimatesTotal.WithLabelValues("error")))
}

func TestRecordConsultation(t *testing.T) {
	before := testutil.ToFloat64(ConsultationsTotal.WithLabelValues("carbon_capture", "success"))
	RecordConsultation("carbon_capture", nil)
	assert.Equal(t, before+1, testutil.ToFloat64(ConsultationsTotal.WithLabelValues("carbon_capture", "success")))
}

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/health", "200"))
	RecordHTTPRequest("GET", "/health", "200", 3*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/health", "200")))
}
