package types

// PrecipitationReading is one measurement row's precipitation. A nil
// Precipitation means the station did not report a value for that date.
type PrecipitationReading struct {
	StationID     string
	Date          string
	Precipitation *float64
}

type TemperatureObservation struct {
	Date string  `json:"date"`
	Tobs float64 `json:"tobs"`
}

// TemperatureStats aggregates temperature_observed over one filtered row
// set. Count is the number of rows the aggregate covered.
type TemperatureStats struct {
	Count int     `json:"-"`
	Min   float64 `json:"TMIN"`
	Avg   float64 `json:"TAVG"`
	Max   float64 `json:"TMAX"`
}

// DateRange bounds a measurement query by ISO date. An empty End leaves
// the range open.
type DateRange struct {
	Start string
	End   string
}

func (r DateRange) Closed() bool {
	return r.End != ""
}
