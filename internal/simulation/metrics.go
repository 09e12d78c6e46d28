package simulation

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// generationsTotal counts completed generations
	generationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "antcolony_generations_total",
		Help: "Total completed generations",
	})

	// toursCompletedTotal counts ant tours evaluated against the best tour
	toursCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "antcolony_tours_completed_total",
		Help: "Total ant tours completed and evaluated",
	})

	// tourLength tracks the length of every evaluated tour
	tourLength = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "antcolony_tour_length",
		Help:    "Length of evaluated ant tours in world units",
		Buckets: prometheus.ExponentialBuckets(100, 2, 12), // 100 to ~200k
	})

	// bestTourLength is the best-known tour length of the current run
	bestTourLength = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "antcolony_best_tour_length",
		Help: "Best-known tour length of the current run, 0 when none",
	})

	// trailCount is the number of pheromone trails in the registry
	trailCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "antcolony_trails",
		Help: "Number of pheromone trails",
	})

	// startRejectedTotal counts runs refused by setup validation
	startRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "antcolony_start_rejected_total",
		Help: "Total start requests rejected by validation",
	})
)
