package domain

// Regulation identifies a compliance regime a document is reviewed against.
type Regulation struct {
	// ID is the short machine identifier (e.g. "aml-ctf").
	ID string

	// Name is the human-readable title.
	Name string

	// Description summarises the regulation's scope.
	Description string
}

// BuiltinRegulations returns the regulations known out of the box.
// Remote evaluators may accept any regulation ID; the local fallback
// only carries rules for these.
func BuiltinRegulations() []Regulation {
	return []Regulation{
		{
			ID:          "aml-ctf",
			Name:        "AML/CTF",
			Description: "Anti-money-laundering and counter-terrorism financing checks",
		},
		{
			ID:          "gdpr",
			Name:        "GDPR",
			Description: "Personal data handling and retention checks",
		},
		{
			ID:          "pci-dss",
			Name:        "PCI DSS",
			Description: "Payment card data exposure checks",
		},
	}
}

// RegulationByID looks up a built-in regulation. The boolean reports
// whether the ID is known.
func RegulationByID(id string) (Regulation, bool) {
	for _, r := range BuiltinRegulations() {
		if r.ID == id {
			return r, true
		}
	}
	return Regulation{}, false
}
