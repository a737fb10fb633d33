package models

type Trainer struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Specialization  string  `json:"specialization"`
	PhotoURL        *string `json:"photo_url"`
	Rating          float64 `json:"rating"`
	Description     *string `json:"description"`
	ExperienceYears int     `json:"experience_years"`
	PricePerSession float64 `json:"price_per_session"`
}
