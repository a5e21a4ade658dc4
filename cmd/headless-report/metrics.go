package main

import (
	"context"
	"fmt"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/cojovi/ReplitRanchDefense/internal/game"
)

// counterTotals are the simulation's OTel counters summed over every
// attribute set.
type counterTotals struct {
	shots        int64
	hits         int64
	kills        int64
	playerDamage float64
}

// newMeter returns a provider whose counters are read on demand.
func newMeter() (*sdkmetric.MeterProvider, *sdkmetric.ManualReader) {
	reader := sdkmetric.NewManualReader()
	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)), reader
}

// collectCounters reads the cumulative counter values from reader.
func collectCounters(ctx context.Context, reader *sdkmetric.ManualReader) (counterTotals, error) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return counterTotals{}, fmt.Errorf("error collecting metrics: %w", err)
	}
	var ct counterTotals
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			switch data := m.Data.(type) {
			case metricdata.Sum[int64]:
				var sum int64
				for _, dp := range data.DataPoints {
					sum += dp.Value
				}
				switch m.Name {
				case game.MetricShots:
					ct.shots = sum
				case game.MetricHits:
					ct.hits = sum
				case game.MetricKills:
					ct.kills = sum
				}
			case metricdata.Sum[float64]:
				if m.Name != game.MetricPlayerDamage {
					continue
				}
				for _, dp := range data.DataPoints {
					ct.playerDamage += dp.Value
				}
			}
		}
	}
	return ct, nil
}
