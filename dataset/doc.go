/*
Package dataset loads one bikeshare system into an immutable Snapshot.

A Snapshot bundles station metadata, trip history bucketed by minute-of-day
and the bike lane layers. It is built once and only read afterwards, so a
server can swap snapshots atomically on refresh.

# Basic Usage

	snap, err := dataset.Load(ctx, source.NewClient(), system, 60)
	if err != nil {
	    log.Fatal(err)
	}

	scatter := snap.Scatter(8 * 60)

# Caching

Fetching and parsing a month of trips takes seconds. SaveFile writes the
snapshot with gob so later runs can start from LoadFile instead; indexes are
rebuilt after decoding.
*/
package dataset
