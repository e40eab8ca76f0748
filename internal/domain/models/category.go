package models

type Category string

const (
	CategorySavings  Category = "Savings"
	CategoryLiving   Category = "Living"
	CategoryHobbies  Category = "Hobbies"
	CategoryGambling Category = "Gambling"
)

// Categories is the closed category set in reporting order.
var Categories = []Category{
	CategorySavings,
	CategoryLiving,
	CategoryHobbies,
	CategoryGambling,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
