package rating

import "strings"

// Accessorial is a priced additional service.
type Accessorial struct {
	Label string  `yaml:"label"`
	Fee   float64 `yaml:"fee"`
}

// Tables holds the lookup data the engine prices against. The defaults describe
// Canadian regions; deployments may override them.
type Tables struct {
	// PostalRegions maps the first letter of a postal code to a region code.
	PostalRegions map[string]string `yaml:"postal_regions"`
	// RegionDistances maps an unordered region pair ("AB-BC") to miles.
	RegionDistances map[string]float64 `yaml:"region_distances"`
	// AccessorialFees is keyed by lower-case service code.
	AccessorialFees map[string]Accessorial `yaml:"accessorial_fees"`
}

// DefaultTables returns a fresh copy of the built-in tables.
func DefaultTables() Tables {
	return Tables{
		PostalRegions: map[string]string{
			"A": "NL", "B": "NS", "C": "PE", "E": "NB",
			"G": "QC", "H": "QC", "J": "QC",
			"K": "ON", "L": "ON", "M": "ON", "N": "ON", "P": "ON",
			"R": "MB", "S": "SK", "T": "AB", "V": "BC", "X": "NU", "Y": "YT",
		},
		RegionDistances: map[string]float64{
			RegionPairKey("ON", "QC"): 350,
			RegionPairKey("ON", "MB"): 1300,
			RegionPairKey("ON", "SK"): 1700,
			RegionPairKey("ON", "AB"): 2100,
			RegionPairKey("ON", "BC"): 2700,
			RegionPairKey("ON", "NB"): 900,
			RegionPairKey("ON", "NS"): 1100,
			RegionPairKey("ON", "PE"): 1050,
			RegionPairKey("ON", "NL"): 1700,
			RegionPairKey("QC", "NB"): 500,
			RegionPairKey("QC", "NS"): 750,
			RegionPairKey("QC", "PE"): 700,
			RegionPairKey("QC", "NL"): 1400,
			RegionPairKey("QC", "MB"): 1600,
			RegionPairKey("QC", "AB"): 2300,
			RegionPairKey("QC", "BC"): 2900,
			RegionPairKey("MB", "SK"): 500,
			RegionPairKey("MB", "AB"): 800,
			RegionPairKey("MB", "BC"): 1400,
			RegionPairKey("SK", "AB"): 400,
			RegionPairKey("SK", "BC"): 1000,
			RegionPairKey("AB", "BC"): 650,
			RegionPairKey("NB", "NS"): 250,
			RegionPairKey("NB", "PE"): 200,
			RegionPairKey("NS", "PE"): 150,
			RegionPairKey("NS", "NL"): 900,
		},
		AccessorialFees: map[string]Accessorial{
			"residential":          {Label: "Residential Delivery", Fee: 25},
			"residential_delivery": {Label: "Residential Delivery", Fee: 25},
			"liftgate":             {Label: "Liftgate Delivery", Fee: 75},
			"liftgate_delivery":    {Label: "Liftgate Delivery", Fee: 75},
			"inside_delivery":      {Label: "Inside Delivery", Fee: 50},
			"appointment":          {Label: "Appointment Delivery", Fee: 35},
			"appointment_delivery": {Label: "Appointment Delivery", Fee: 35},
			"tailgate":             {Label: "Tailgate", Fee: 45},
		},
	}
}

// Merge overlays the non-empty entries of o onto t and returns the result.
// Keys are normalised the same way lookups normalise them.
func (t Tables) Merge(o Tables) Tables {
	out := Tables{
		PostalRegions:   make(map[string]string, len(t.PostalRegions)),
		RegionDistances: make(map[string]float64, len(t.RegionDistances)),
		AccessorialFees: make(map[string]Accessorial, len(t.AccessorialFees)),
	}
	for k, v := range t.PostalRegions {
		out.PostalRegions[k] = v
	}
	for k, v := range t.RegionDistances {
		out.RegionDistances[k] = v
	}
	for k, v := range t.AccessorialFees {
		out.AccessorialFees[k] = v
	}

	for k, v := range o.PostalRegions {
		out.PostalRegions[strings.ToUpper(strings.TrimSpace(k))] = strings.ToUpper(strings.TrimSpace(v))
	}
	for k, v := range o.RegionDistances {
		a, b, ok := strings.Cut(k, "-")
		if !ok {
			continue
		}
		out.RegionDistances[RegionPairKey(a, b)] = v
	}
	for k, v := range o.AccessorialFees {
		out.AccessorialFees[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}

// RegionPairKey builds the unordered lookup key for two regions.
func RegionPairKey(a, b string) string {
	a = strings.ToUpper(strings.TrimSpace(a))
	b = strings.ToUpper(strings.TrimSpace(b))
	if b < a {
		a, b = b, a
	}
	return a + "-" + b
}
