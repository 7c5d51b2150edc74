package espn

type scheduleResponse struct {
	Events []eventResponse `json:"events"`
}

type eventResponse struct {
	ID           string                `json:"id"`
	Date         string                `json:"date"`
	Name         string                `json:"name"`
	ShortName    string                `json:"shortName"`
	Competitions []competitionResponse `json:"competitions"`
	Status       statusResponse        `json:"status"`
}

type competitionResponse struct {
	Competitors   []competitorResponse `json:"competitors"`
	Venue         venueResponse        `json:"venue"`
	Broadcasts    []broadcastResponse  `json:"broadcasts"`
	GeoBroadcasts []broadcastResponse  `json:"geoBroadcasts"`
	Status        statusResponse       `json:"status"`
}

type competitorResponse struct {
	ID       string        `json:"id"`
	HomeAway string        `json:"homeAway"`
	Winner   bool          `json:"winner"`
	Team     teamResponse  `json:"team"`
	Score    scoreResponse `json:"score"`
}

type teamResponse struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Logo         string `json:"logo"`
}

type scoreResponse struct {
	DisplayValue string `json:"displayValue"`
}

type venueResponse struct {
	FullName string `json:"fullName"`
}

type broadcastResponse struct {
	Media mediaResponse `json:"media"`
}

type mediaResponse struct {
	ShortName string `json:"shortName"`
}

type statusResponse struct {
	Type statusTypeResponse `json:"type"`
}

type statusTypeResponse struct {
	Name      string `json:"name"`
	State     string `json:"state"`
	Completed bool   `json:"completed"`
}
