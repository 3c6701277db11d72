// Package core provides mass and charge conversions for precursor ions.
package core

import "math"

// Proton mass (monoisotopic) for charge state calculations.
const ProtonMass = 1.00727646688

// NeutralMass computes the neutral monoisotopic mass of an ion observed at
// the given m/z and charge. An unknown charge (0) is treated as 1.
func NeutralMass(mz float64, charge int) float64 {
	if charge < 1 {
		charge = 1
	}
	return (mz - ProtonMass) * float64(charge)
}

// MZForCharge computes the m/z at which a neutral mass is observed for the
// given charge state. An unknown charge (0) is treated as 1.
func MZForCharge(neutralMass float64, charge int) float64 {
	if charge < 1 {
		charge = 1
	}
	return neutralMass/float64(charge) + ProtonMass
}

// RoundFloat rounds a float to n decimal places.
func RoundFloat(val float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}
