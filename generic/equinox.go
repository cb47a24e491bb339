package generic

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Season identifies one of the four astronomical events of a year.
type Season int

const (
	MarchEquinox Season = iota
	JuneSolstice
	SeptemberEquinox
	DecemberSolstice
)

func (s Season) String() string {
	switch s {
	case MarchEquinox:
		return "march_equinox"
	case JuneSolstice:
		return "june_solstice"
	case SeptemberEquinox:
		return "september_equinox"
	case DecemberSolstice:
		return "december_solstice"
	default:
		return fmt.Sprintf("season(%d)", int(s))
	}
}

// ParseSeason is the inverse of Season.String.
func ParseSeason(s string) (Season, bool) {
	for _, candidate := range []Season{MarchEquinox, JuneSolstice, SeptemberEquinox, DecemberSolstice} {
		if candidate.String() == s {
			return candidate, true
		}
	}
	return 0, false
}

type equinoxRule struct {
	season Season
}

// Equinox returns the calendar day, in the provider's location, on which the
// equinox or solstice occurs.
func Equinox(season Season) DateRule {
	return equinoxRule{season: season}
}

func (r equinoxRule) Date(year int, loc *time.Location) (TimePoint, error) {
	instant, err := EquinoxInstant(year, r.season)
	if err != nil {
		return TimePoint{}, err
	}
	if loc == nil {
		loc = time.UTC
	}
	return FromTime(instant, loc), nil
}

// =============================================================================
// MEEUS, ASTRONOMICAL ALGORITHMS, CHAPTER 27
// =============================================================================
//
// Arithmetic runs on decimal.Decimal so the result doesn't depend on the
// platform's floating point (fused multiply-add differs across GOARCH).
// Dynamical time is taken as UT; the resulting error is minutes, well below
// the one-day resolution of a holiday.

// mean-event polynomial coefficients, Y = year/1000 (years < 1000)
var meanEventBefore1000 = [4][5]string{
	{"1721139.29189", "365242.13740", "0.06134", "0.00111", "-0.00071"},
	{"1721233.25401", "365241.72562", "-0.05323", "0.00907", "0.00025"},
	{"1721325.70455", "365242.49558", "-0.11677", "-0.00297", "0.00074"},
	{"1721414.39987", "365242.88257", "-0.00769", "-0.00933", "-0.00006"},
}

// mean-event polynomial coefficients, Y = (year-2000)/1000 (years >= 1000)
var meanEventAfter1000 = [4][5]string{
	{"2451623.80984", "365242.37404", "0.05169", "-0.00411", "-0.00057"},
	{"2451716.56767", "365241.62603", "0.00325", "0.00888", "-0.00030"},
	{"2451810.21715", "365242.01767", "-0.11575", "0.00337", "0.00078"},
	{"2451900.05952", "365242.74049", "-0.06223", "-0.00823", "0.00032"},
}

// periodic terms A, B (degrees), C (degrees per Julian century)
var periodicTerms = [24][3]string{
	{"485", "324.96", "1934.136"},
	{"203", "337.23", "32964.467"},
	{"199", "342.08", "20.186"},
	{"182", "27.85", "445267.112"},
	{"156", "73.14", "45036.886"},
	{"136", "171.52", "22518.443"},
	{"77", "222.54", "65928.934"},
	{"74", "296.72", "3034.906"},
	{"70", "243.58", "9037.513"},
	{"58", "119.81", "33718.147"},
	{"52", "297.17", "150.678"},
	{"50", "21.02", "2281.226"},
	{"45", "247.54", "29929.562"},
	{"44", "325.15", "31555.956"},
	{"29", "60.93", "4443.417"},
	{"18", "155.12", "67555.328"},
	{"17", "288.79", "4562.452"},
	{"16", "198.04", "62894.029"},
	{"14", "199.76", "31436.921"},
	{"12", "95.39", "14577.848"},
	{"12", "287.11", "31931.756"},
	{"12", "320.81", "34777.259"},
	{"9", "227.73", "1222.114"},
	{"8", "15.45", "16859.074"},
}

var (
	j2000       = decimal.RequireFromString("2451545.0")
	julianCent  = decimal.NewFromInt(36525)
	secondsDay  = decimal.NewFromInt(86400)
	fullCircle  = decimal.NewFromInt(360)
	piDecimal   = decimal.RequireFromString("3.14159265358979323846264338327950288")
	degToRadian = piDecimal.Div(decimal.NewFromInt(180))
	j2000Epoch  = time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC)
)

// EquinoxInstant returns the UTC instant of an equinox or solstice.
func EquinoxInstant(year int, season Season) (time.Time, error) {
	if err := ValidateYear(year); err != nil {
		return time.Time{}, err
	}
	if season < MarchEquinox || season > DecemberSolstice {
		return time.Time{}, fmt.Errorf("%w: unknown season %d", ErrInvalidDate, int(season))
	}

	jde := julianEphemerisDay(year, season)

	days := jde.Sub(j2000)
	whole := days.Floor()
	seconds := days.Sub(whole).Mul(secondsDay).Round(0).IntPart()

	return j2000Epoch.AddDate(0, 0, int(whole.IntPart())).Add(time.Duration(seconds) * time.Second), nil
}

func julianEphemerisDay(year int, season Season) decimal.Decimal {
	var coeffs [5]string
	var y decimal.Decimal
	if year < 1000 {
		coeffs = meanEventBefore1000[season]
		y = decimal.NewFromInt(int64(year)).Div(decimal.NewFromInt(1000))
	} else {
		coeffs = meanEventAfter1000[season]
		y = decimal.NewFromInt(int64(year - 2000)).Div(decimal.NewFromInt(1000))
	}

	// Horner evaluation of the mean event
	jde0 := decimal.Zero
	for i := len(coeffs) - 1; i >= 0; i-- {
		jde0 = jde0.Mul(y).Add(decimal.RequireFromString(coeffs[i]))
	}

	t := jde0.Sub(j2000).Div(julianCent)
	w := t.Mul(decimal.RequireFromString("35999.373")).Sub(decimal.RequireFromString("2.47"))
	deltaLambda := decimal.NewFromInt(1).
		Add(decimal.RequireFromString("0.0334").Mul(cosDegrees(w))).
		Add(decimal.RequireFromString("0.0007").Mul(cosDegrees(w.Mul(decimal.NewFromInt(2)))))

	s := decimal.Zero
	for _, term := range periodicTerms {
		a := decimal.RequireFromString(term[0])
		b := decimal.RequireFromString(term[1])
		c := decimal.RequireFromString(term[2])
		s = s.Add(a.Mul(cosDegrees(b.Add(c.Mul(t)))))
	}

	correction := s.Mul(decimal.RequireFromString("0.00001")).Div(deltaLambda)
	return jde0.Add(correction)
}

func cosDegrees(deg decimal.Decimal) decimal.Decimal {
	reduced := deg.Mod(fullCircle)
	if reduced.IsNegative() {
		reduced = reduced.Add(fullCircle)
	}
	return reduced.Mul(degToRadian).Cos()
}
