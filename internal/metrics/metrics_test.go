package metrics

import (
	"errors"
	"fmt"
	"testing"

	"newsfeed/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Loads.WithLabelValues("ok").Inc()
	m.ItemsLoaded.Add(3)
	m.FetchDuration.WithLabelValues("ok").Observe(0.1)

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.Len(t, families, 5)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Loads.WithLabelValues("ok")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.ItemsLoaded))
}

func TestNew_NilRegisterer(t *testing.T) {
	m := New(nil)
	m.ItemsSaved.Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ItemsSaved))
}

func TestOutcome(t *testing.T) {
	stage := func(kind error) error {
		return fmt.Errorf("wrapped: %w", domain.NewStageError(domain.StageFetch, kind, "", nil))
	}
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "init_error", Outcome(stage(domain.ErrInit)))
	assert.Equal(t, "fetch_error", Outcome(stage(domain.ErrFetch)))
	assert.Equal(t, "parse_error", Outcome(stage(domain.ErrParse)))
	assert.Equal(t, "no_channel", Outcome(stage(domain.ErrNoChannel)))
	assert.Equal(t, "date_format_error", Outcome(stage(domain.ErrDateFormat)))
	assert.Equal(t, "error", Outcome(errors.New("db down")))
}
