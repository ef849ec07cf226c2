package model

// StudentRecord is one identity entry to be rendered as a card.
//
// Records are treated as immutable once they reach the generator. Type is
// optional; every other field is expected to be populated upstream.
type StudentRecord struct {
	ID         string // admission / identity number
	Name       string // display name, at most 50 characters by contract
	Batch      string
	Quota      string
	Department string
	Community  string
	Type       string // optional
}

// Fields returns the record's values in spreadsheet column order.
func (r StudentRecord) Fields() []string {
	return []string{r.ID, r.Name, r.Batch, r.Quota, r.Department, r.Community, r.Type}
}

// QuotaLine returns the "quota/department" line printed on the card.
func (r StudentRecord) QuotaLine() string {
	return r.Quota + "/" + r.Department
}

// CategoryLine returns the "community/ type" line printed on the card.
// An absent type renders as an empty string after the separator.
func (r StudentRecord) CategoryLine() string {
	if r.Type == "" {
		return r.Community + "/"
	}
	return r.Community + "/ " + r.Type
}
