package value

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
)

// Enrichment steps, used as log field and metric label.
const (
	stepProduct = "product"
	stepPrice   = "price"
	stepStock   = "stock"
	stepImage   = "image"
	stepGallery = "gallery"
	stepCMS     = "cms"
)

var (
	failures     *prometheus.CounterVec //nolint:gochecknoglobals
	failuresOnce sync.Once              //nolint:gochecknoglobals
)

func failureCounter() *prometheus.CounterVec {
	failuresOnce.Do(func() {
		failures = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "appconfig_enrichment_failures_total",
				Help: "Number of failed enrichment lookups, differentiated by step.",
			},
			[]string{"step"},
		)
	})

	return failures
}

// attempt runs one enrichment step and returns def if it fails.
func attempt[T any](ctx context.Context, step string, id int64, def T, fn func(context.Context) (T, error)) T {
	v, err := fn(ctx)
	if err != nil {
		failureCounter().WithLabelValues(step).Inc()
		log.Debug().Err(err).Str("step", step).Int64("id", id).Msg("enrichment failed")

		return def
	}

	return v
}
