package drill

import "time"

// Config holds configuration for a drill run.
type Config struct {
	BaseURL       string        // Base URL of the service
	Participants  int           // Number of participants to generate
	PresentRatio  float64       // Share of participants registered as present
	BlankRatio    float64       // Share of participants registered without skills
	SquadSize     int           // Requested squad size; 0 uses the server default
	FormationType string        // similar or diverse
	Workers       int           // Number of concurrent registration workers
	Timeout       time.Duration // HTTP request timeout
	Seed          int64         // Seed for participant generation
	Reset         bool          // Delete existing squads before forming
	OutputFile    string        // Output file for the formed squads
	Verbose       bool          // Log every failed request
}

// Participant is the registration payload sent to POST /participants.
type Participant struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Skills *string `json:"skills"`
	Status string  `json:"status"`
}

// Squad mirrors the squad representation returned by the API.
type Squad struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Members       []string `json:"members"`
	FormationType string   `json:"formationType"`
}

// FormResponse mirrors the POST /squads/form response.
type FormResponse struct {
	FormationType string  `json:"formationType"`
	SquadSize     int     `json:"squadSize"`
	FellBack      bool    `json:"fallback"`
	Reassigned    int     `json:"reassigned"`
	Squads        []Squad `json:"squads"`
}

// Stats holds drill statistics.
type Stats struct {
	Generated  int
	Present    int
	Registered int
	Failed     int
	Squads     int
	FellBack   bool
	Reassigned int
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
}
