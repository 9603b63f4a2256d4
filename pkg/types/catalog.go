package types

// TopCompanies is the default company list offered for career page discovery.
var TopCompanies = []string{
	"Google", "Microsoft", "Apple", "Amazon", "Meta", "Netflix", "Tesla",
	"Salesforce", "Adobe", "Oracle", "IBM", "Intel", "NVIDIA", "Cisco",
	"SAP", "VMware", "Uber", "Airbnb", "Twitter", "LinkedIn", "Spotify",
	"Dropbox", "Slack", "Zoom", "Shopify", "Square", "PayPal", "eBay",
	"Atlassian", "ServiceNow", "Workday", "Palantir", "Snowflake",
	"Databricks", "Unity", "Twilio", "DocuSign", "Okta", "Splunk",
}

// DefaultCompanyCount is how many of TopCompanies are selected when the
// user names none.
const DefaultCompanyCount = 10

var EmploymentTypes = []string{"Full-time", "Part-time", "Contract", "Internship", "Temporary"}

var WorkModes = []string{"Remote", "On-site", "Hybrid"}

var ExperienceLevels = []string{"Entry Level", "Mid Level", "Senior Level", "Executive"}

// Catalog groups the selectable facet values for clients that render
// their own pickers.
type Catalog struct {
	Companies        []string `json:"companies" yaml:"companies"`
	EmploymentTypes  []string `json:"employment_types" yaml:"employment_types"`
	WorkModes        []string `json:"work_modes" yaml:"work_modes"`
	ExperienceLevels []string `json:"experience_levels" yaml:"experience_levels"`
}

// DefaultCatalog returns copies of the built-in facet values.
func DefaultCatalog() Catalog {
	return Catalog{
		Companies:        append([]string(nil), TopCompanies...),
		EmploymentTypes:  append([]string(nil), EmploymentTypes...),
		WorkModes:        append([]string(nil), WorkModes...),
		ExperienceLevels: append([]string(nil), ExperienceLevels...),
	}
}

// TopN returns a copy of the first n TopCompanies. n <= 0 selects
// DefaultCompanyCount.
func TopN(n int) []string {
	if n <= 0 {
		n = DefaultCompanyCount
	}
	if n > len(TopCompanies) {
		n = len(TopCompanies)
	}
	return append([]string(nil), TopCompanies[:n]...)
}
