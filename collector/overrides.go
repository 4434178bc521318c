package collector

// Overrides maps pitcher names to a provider slug ("first-last-id") for
// players the name lookup resolves wrongly.
type Overrides map[string]string

// DefaultOverrides are the known-bad lookups for the 2025 season.
func DefaultOverrides() Overrides {
	return Overrides{
		"Charlie Morton":          "charlie-morton-450203",
		"Luis Castillo":           "luis-castillo-622491",
		"Nestor Cortes":           "nestor-cortes-641482",
		"Nick Martinez":           "nick-martinez-607259",
		"Matthew Boyd":            "matthew-boyd-571510",
		"Eduardo Rodriguez":       "eduardo-rodriguez-593958",
		"Thomas Harrington":       "thomas-harrington-802419",
		"Simeon Woods Richardson": "simeon-woods-richardson-680573",
		"Luis F. Castillo":        "luis-f-castillo-622379",
		"J.T. Ginn":               "j-t-ginn-669372",
		"Luis Garcia":             "luis-garcia-472610",
		"José De León":            "jose-de-leon-592254",
	}
}

// Names lists the pitchers with an override.
func (o Overrides) Names() []string {
	out := make([]string, 0, len(o))
	for n := range o {
		out = append(out, n)
	}
	return out
}
