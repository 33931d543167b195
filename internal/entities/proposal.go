// Package entities contains core business entities.
package entities

// NotAvailable is stored for text fields that could not be extracted.
const NotAvailable = "N/A"

// Unset is stored for numeric proposal fields that could not be extracted.
const Unset = -1

// CurrencyAmount is a total budget with its currency token.
type CurrencyAmount struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// Deliverable is one row of a milestone deliverables table.
type Deliverable struct {
	Number        string `json:"number"`
	Name          string `json:"name"`
	Specification string `json:"specification"`
}

// Milestone is one section of a development roadmap.
type Milestone struct {
	Name         string        `json:"name"`
	Duration     string        `json:"duration"`
	FTE          string        `json:"FTE"`
	Costs        string        `json:"costs"`
	License      string        `json:"license"`
	Deliverables []Deliverable `json:"deliverables"`
}

// Chapter is the text of one recognised top-level proposal section.
type Chapter struct {
	Key  string `json:"key"`
	Text string `json:"text"`
}

// ProposalInfo is what the field extractor recovers from a proposal document.
type ProposalInfo struct {
	Title          string
	Level          int
	CurrencyAmount CurrencyAmount
	PaymentAddress string
	TotalFTE       float64
	TotalDuration  float64
	Team           Team
}

// Proposal is the stored grant proposal. Title is its identity.
type Proposal struct {
	ID             string         `json:"id,omitempty"`
	Title          string         `json:"title"`
	Level          int            `json:"level"`
	CurrencyAmount CurrencyAmount `json:"currencyAmount"`
	PaymentAddress string         `json:"paymentAddress"`
	TotalFTE       float64        `json:"totalFTE"`
	TotalDuration  float64        `json:"totalDuration"`
	TeamID         string         `json:"team"`
	Author         string         `json:"author"`
	Document       string         `json:"document"`
	Milestones     []Milestone    `json:"milestones"`
	Chapters       []Chapter      `json:"chapters"`
}
