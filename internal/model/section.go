package model

// Well-known section codes
const (
	SectionRisk           = "RISK"
	SectionImpact         = "IMPACT"
	SectionReturn         = "RETURN"
	SectionSectorMaturity = "SECTOR_MATURITY"
	SectionFeedback       = "FEEDBACK"
)

// Section is a weighted grouping of questions
type Section struct {
	Code      string     `json:"code" bson:"code"`
	Title     string     `json:"title" bson:"title"`
	Weight    float64    `json:"weight" bson:"weight"` // Fraction of the overall score, weights sum to 1.0
	Order     int        `json:"order" bson:"order"`
	Questions []Question `json:"questions" bson:"questions"`
}
