package physics

const (
	// GMSun is the heliocentric gravitational constant in km³/s².
	GMSun = 132712440041.279419

	// AU is the astronomical unit in km.
	AU = 149597870.7

	SecondsPerDay = 86400.0
	DaysPerYear   = 365.24
)

// GaussianG is GM_sun in AU³/day², the G for masses in solar masses.
const GaussianG = GMSun * SecondsPerDay * SecondsPerDay / (AU * AU * AU)
