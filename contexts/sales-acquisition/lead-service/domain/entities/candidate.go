package entities

// Candidate is a vendor- or store-sourced lead record before identity
// resolution. It carries no account scope and is never persisted as-is.
type Candidate struct {
	FirstName   string
	LastName    string
	Email       string
	Company     string
	JobTitle    string
	Location    string
	Phone       string
	Website     string
	LinkedinURL string
	ExternalID  string
	Source      string
	Enrichment  map[string]string
	Locked      bool
}

func (c Candidate) IdentityKey() string {
	return identityKey(c.Email, c.Source, c.ExternalID)
}

// Trackable reports whether the candidate resolves to an identity key.
func (c Candidate) Trackable() bool {
	return c.IdentityKey() != ""
}
