package enums

import "fmt"

// FuelType describes what a vehicle consumes. Electric vehicles log
// energy in kWh; every other type logs fuel in liters.
type FuelType string

const (
	FuelTypeGasoline FuelType = "gasoline"
	FuelTypeEthanol  FuelType = "ethanol"
	FuelTypeDiesel   FuelType = "diesel"
	FuelTypeFlex     FuelType = "flex"
	FuelTypeElectric FuelType = "electric"
)

var validFuelTypes = []FuelType{
	FuelTypeGasoline,
	FuelTypeEthanol,
	FuelTypeDiesel,
	FuelTypeFlex,
	FuelTypeElectric,
}

// String implements fmt.Stringer.
func (f FuelType) String() string {
	return string(f)
}

// IsValid reports whether the value is known.
func (f FuelType) IsValid() bool {
	for _, candidate := range validFuelTypes {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFuelType converts raw input into a FuelType.
func ParseFuelType(value string) (FuelType, error) {
	for _, candidate := range validFuelTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid fuel type %q", value)
}
