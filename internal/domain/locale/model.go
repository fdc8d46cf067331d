package locale

// DefaultLanguageID is the language plugin resources are installed under
const DefaultLanguageID int64 = 1

// Resource is one localized string
type Resource struct {
	ID         int64  `db:"id" json:"id"`
	LanguageID int64  `db:"language_id" json:"language_id"`
	Name       string `db:"resource_name" json:"name"`
	Value      string `db:"resource_value" json:"value"`
}
