package chart

import (
	"time"

	"github.com/ssingla/astralyogi/internal/ephemeris"
	"github.com/ssingla/astralyogi/internal/planet"
)

// Birth: 1990-01-01 06:15 IST, which is 00:45 UTC.
var (
	natalMoment   = ephemeris.Moment{Year: 1990, Month: time.January, Day: 1, Hour: 0.75}
	transitMoment = ephemeris.Moment{Year: 2024, Month: time.May, Day: 1, Hour: 6.5}
	fixedNow      = time.Date(2024, time.May, 1, 6, 30, 0, 0, time.UTC)
)

func natalSamples() []ephemeris.Sample {
	return []ephemeris.Sample{
		{Body: planet.Sun, Longitude: 75.0, Speed: 0.95},
		{Body: planet.Moon, Longitude: 45.0, Speed: 13.2},
		{Body: planet.Mars, Longitude: 130.0, Speed: 0.6},
		{Body: planet.Mercury, Longitude: 80.0, Speed: -0.5},
		{Body: planet.Jupiter, Longitude: 120.0, Speed: 0.1},
		{Body: planet.Venus, Longitude: 60.0, Speed: 1.2},
		{Body: planet.Saturn, Longitude: 290.0, Speed: 0.03},
		{Body: planet.Rahu, Longitude: 200.0, Speed: -0.05},
	}
}

func transitSamples() []ephemeris.Sample {
	return []ephemeris.Sample{
		{Body: planet.Sun, Longitude: 17.0, Speed: 0.98},
		{Body: planet.Moon, Longitude: 300.0, Speed: 12.5},
		{Body: planet.Mars, Longitude: 330.0, Speed: 0.7},
		{Body: planet.Mercury, Longitude: 355.0, Speed: -0.2},
		{Body: planet.Jupiter, Longitude: 25.0, Speed: 0.2},
		{Body: planet.Venus, Longitude: 12.0, Speed: 1.2},
		{Body: planet.Saturn, Longitude: 320.0, Speed: 0.05},
		{Body: planet.Rahu, Longitude: 345.0, Speed: -0.05},
	}
}

func fixtureTable(natal []ephemeris.Sample) *ephemeris.Table {
	return ephemeris.NewTable(ephemeris.Lahiri,
		ephemeris.Entry{Moment: natalMoment, Ascendant: 201.5, Samples: natal},
		ephemeris.Entry{Moment: transitMoment, Ascendant: 88.0, Samples: transitSamples()},
	)
}

func birthRequest() Request {
	return Request{
		Name:     "Asha",
		Date:     "1990-01-01",
		Time:     "06:15",
		City:     "Bathinda",
		TZOffset: DefaultTZOffset,
	}
}
