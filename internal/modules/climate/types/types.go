package types

// Precipitation is one element of the precipitation listing.
type Precipitation struct {
	Date string   `json:"date" db:"date"`
	Prcp *float64 `json:"prcp" db:"prcp"`
}

// Observation is a measurement row selected as (date, tobs, prcp).
type Observation struct {
	Date string   `db:"date"`
	Tobs *float64 `db:"tobs"`
	Prcp *float64 `db:"prcp"`
}

// TobsEntry is one element of the temperature-observation listing. Its keys
// are filled by position from the selected (date, tobs, prcp) tuple, so prcp
// carries the date, date carries the temperature and tobs the precipitation.
// Clients depend on this layout; see NewTobsEntry.
type TobsEntry struct {
	Prcp string   `json:"prcp"`
	Date *float64 `json:"date"`
	Tobs *float64 `json:"tobs"`
}

func NewTobsEntry(o Observation) TobsEntry {
	return TobsEntry{
		Prcp: o.Date,
		Date: o.Tobs,
		Tobs: o.Prcp,
	}
}

// TripStats holds temperature aggregates over a date window. All three are
// nil when the window matches no rows.
type TripStats struct {
	MinTemp *float64 `json:"min_temp" db:"min_temp"`
	AvgTemp *float64 `json:"avg_temp" db:"avg_temp"`
	MaxTemp *float64 `json:"max_temp" db:"max_temp"`
}
