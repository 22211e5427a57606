package enums

import "fmt"

// FoodType represents the menu catalog categories shown to customers.
type FoodType string

const (
	FoodTypeVeg     FoodType = "veg"
	FoodTypeNonVeg  FoodType = "non_veg"
	FoodTypePlatter FoodType = "platter"
)

var validFoodTypes = []FoodType{
	FoodTypeVeg,
	FoodTypeNonVeg,
	FoodTypePlatter,
}

// String implements fmt.Stringer.
func (f FoodType) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FoodType.
func (f FoodType) IsValid() bool {
	for _, candidate := range validFoodTypes {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFoodType converts raw input into a FoodType.
func ParseFoodType(value string) (FoodType, error) {
	for _, candidate := range validFoodTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid food type %q", value)
}
