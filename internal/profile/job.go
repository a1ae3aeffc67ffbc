package profile

type JobDescription struct {
	Title            string   `json:"title,omitempty" mapstructure:"title"`
	Company          string   `json:"company,omitempty" mapstructure:"company"`
	Location         string   `json:"location,omitempty" mapstructure:"location"`
	RequiredSkills   []string `json:"required_skills,omitempty" mapstructure:"required_skills"`
	PreferredSkills  []string `json:"preferred_skills,omitempty" mapstructure:"preferred_skills"`
	MinimumYears     float64  `json:"minimum_years,omitempty" mapstructure:"minimum_years"`
	Education        string   `json:"education,omitempty" mapstructure:"education"`
	Responsibilities []string `json:"responsibilities,omitempty" mapstructure:"responsibilities"`
}
