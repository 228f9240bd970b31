package api

// SeriesReport carries one series' statistics in the response. Pointer
// fields are null when the series had no data; null is the only "no data"
// marker, never a sentinel number.
type SeriesReport struct {
	Label        string   `json:"label"`
	Low          *float64 `json:"low"`
	High         *float64 `json:"high"`
	Mean         *float64 `json:"mean"`
	MinDate      *string  `json:"mindate"`
	MaxDate      *string  `json:"maxdate"`
	Observations int      `json:"observations"`
	Note         string   `json:"note,omitempty"`
}

// ComparisonResponse is the full response, series keyed by Valet code. Rho
// is null when the correlation is undefined; Message says why.
type ComparisonResponse struct {
	StartDate  string                  `json:"start_date"`
	EndDate    string                  `json:"end_date"`
	Series     map[string]SeriesReport `json:"series"`
	Rho        *float64                `json:"rho"`
	SampleSize int                     `json:"sample_size"`
	Message    string                  `json:"message"`
}

// ErrorResponse is the error body for 4xx/5xx responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the health check body.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}
