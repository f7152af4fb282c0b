/*
Package traffic aggregates bikeshare trips into per-station traffic counts.

Trips are bucketed once by minute-of-day of their departure and arrival.
Station counts are then recomputed from scratch for any time window, so the
buckets are never mutated after construction and are safe for concurrent
readers.

# Basic Usage

	agg := traffic.NewAggregator(trips, loc)

	// All trips
	all := agg.ComputeStationTraffic(stations, traffic.NoFilter)

	// Trips within an hour either side of 08:00
	morning := agg.ComputeStationTraffic(stations, 8*60)

# Time Window

A window centred at minute m covers m-60 through m+60 inclusive and wraps
across midnight, so m=0 includes minutes 1380..1439 and 0..60.

# Markers

BuildScatter turns station counts into the data a map overlay draws: a
square-root radius, a three-step departure/arrival flow class and tooltip
text. The radius domain comes from the unfiltered dataset so circles shrink
when a time filter is applied.
*/
package traffic
