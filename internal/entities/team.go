// Package entities contains core business entities.
package entities

// LegalEntity is the registered organisation behind a team.
type LegalEntity struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
}

// Team is the applicant described by a proposal. Name is its identity.
type Team struct {
	ID               string      `json:"id,omitempty"`
	Name             string      `json:"name"`
	ContactName      string      `json:"contactName,omitempty"`
	ContactEmail     string      `json:"contactEmail,omitempty"`
	Entity           LegalEntity `json:"entity"`
	Website          string      `json:"website,omitempty"`
	Members          []string    `json:"members"`
	Repos            []string    `json:"repos"`
	LinkedinProfiles []string    `json:"linkedinProfiles"`
}
