/*
Package gbfs loads station metadata from a GBFS station_information feed.

This package is data-source agnostic: it accepts raw JSON bytes and builds an
in-memory index. Fetching is left to the caller.

# Basic Usage

	data := fetchFromYourSource("https://gbfs.bluebikes.com/gbfs/en/station_information.json")

	index, err := gbfs.NewIndexFromBytes(data)
	if err != nil {
	    log.Fatal(err)
	}

	st, ok := index.Station("A32000")

# Station IDs

Trip history feeds refer to stations by their short_name, so Station.ID is
the GBFS short_name and Station.SystemID keeps the GBFS station_id. Stations
without a short_name fall back to station_id.
*/
package gbfs
