package domain

// Coords is a latitude/longitude pair carried as strings, matching the
// client payloads.
type Coords struct {
	Latitude  string `json:"latitude,omitempty"`
	Longitude string `json:"longitude,omitempty"`
}

// Location is the optional place attached to a status change or branch.
type Location struct {
	Address string  `json:"address,omitempty"`
	City    string  `json:"city,omitempty"`
	Commune string  `json:"commune,omitempty"`
	Region  string  `json:"region,omitempty"`
	Coords  *Coords `json:"coords,omitempty"`
}

// StateRef is a resolved state: display name plus normalized value.
type StateRef struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// StatusHistory is an append-only record of a ticket state change.
// Creating one updates the parent ticket's currentState.
type StatusHistory struct {
	ID          string    `json:"id,omitempty"`
	TicketID    string    `json:"ticketId"`
	Description string    `json:"description,omitempty"`
	TechnicalID string    `json:"technicalId,omitempty"`
	StateID     string    `json:"stateId"`
	State       *StateRef `json:"state,omitempty"`
	Location    *Location `json:"location,omitempty"`
	CreatedAt   string    `json:"createdAt,omitempty"`
	UpdatedAt   string    `json:"updatedAt,omitempty"`
}
