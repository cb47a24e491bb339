package countries

import (
	"fmt"
	"time"

	"github.com/warp/holiday-engine/generic"
)

var (
	jpComingOfAgeDay = generic.Switch(
		generic.Era{From: 1948, Rule: generic.Fixed(time.January, 15)},
		generic.Era{From: 2000, Rule: generic.NthWeekday(time.January, time.Monday, 2)},
	)

	jpEmperorsBirthday = generic.Switch(
		generic.Era{From: 1949, Rule: generic.Fixed(time.April, 29)},
		generic.Era{From: 1989, Rule: generic.Fixed(time.December, 23)},
		generic.Era{From: 2020, Rule: generic.Fixed(time.February, 23)},
	)

	jpGreeneryDay = generic.Switch(
		generic.Era{From: 1989, Rule: generic.Fixed(time.April, 29)},
		generic.Era{From: 2007, Rule: generic.Fixed(time.May, 4)},
	)

	// 2020 and 2021 moved Marine, Mountain and Sports Day around the Tokyo
	// Olympics.
	jpMarineDay = generic.Switch(
		generic.Era{From: 1996, Rule: generic.Fixed(time.July, 20)},
		generic.Era{From: 2003, Rule: generic.NthWeekday(time.July, time.Monday, 3)},
		generic.Era{From: 2020, Rule: generic.Fixed(time.July, 23)},
		generic.Era{From: 2021, Rule: generic.Fixed(time.July, 22)},
		generic.Era{From: 2022, Rule: generic.NthWeekday(time.July, time.Monday, 3)},
	)

	jpMountainDay = generic.Switch(
		generic.Era{From: 2016, Rule: generic.Fixed(time.August, 11)},
		generic.Era{From: 2020, Rule: generic.Fixed(time.August, 10)},
		generic.Era{From: 2021, Rule: generic.Fixed(time.August, 8)},
		generic.Era{From: 2022, Rule: generic.Fixed(time.August, 11)},
	)

	jpRespectForTheAgedDay = generic.Switch(
		generic.Era{From: 1966, Rule: generic.Fixed(time.September, 15)},
		generic.Era{From: 2003, Rule: generic.NthWeekday(time.September, time.Monday, 3)},
	)

	jpSportsDay = generic.Switch(
		generic.Era{From: 1966, Rule: generic.Fixed(time.October, 10)},
		generic.Era{From: 2000, Rule: generic.NthWeekday(time.October, time.Monday, 2)},
		generic.Era{From: 2020, Rule: generic.Fixed(time.July, 24)},
		generic.Era{From: 2021, Rule: generic.Fixed(time.July, 23)},
		generic.Era{From: 2022, Rule: generic.NthWeekday(time.October, time.Monday, 2)},
	)
)

// Japan's substitute days are named "substituteHoliday:<key>" and computed by
// derivation: a national holiday on Sunday gives the next day that is not a
// holiday itself.
var Japan = &generic.Blueprint{
	ID:       "Japan",
	Timezone: "Asia/Tokyo",
	Locale:   "ja_JP",
	Steps: []generic.Definition{
		since(1948, newYearsDay(generic.TypeNational)),
		since(1948, ruled("comingOfAgeDay", jpComingOfAgeDay, generic.TypeNational)),
		since(1966, fixed("nationalFoundationDay", time.February, 11, generic.TypeNational)),
		since(1948, ruled("vernalEquinoxDay", generic.Equinox(generic.MarchEquinox), generic.TypeNational)),
		since(2007, fixed("showaDay", time.April, 29, generic.TypeNational)),
		since(1989, ruled("greeneryDay", jpGreeneryDay, generic.TypeNational)),
		only(2019, fixed("enthronementDay", time.May, 1, generic.TypeNational)),
		since(1948, fixed("constitutionMemorialDay", time.May, 3, generic.TypeNational)),
		since(1948, fixed("childrensDay", time.May, 5, generic.TypeNational)),
		since(1996, ruled("marineDay", jpMarineDay, generic.TypeNational)),
		since(2016, ruled("mountainDay", jpMountainDay, generic.TypeNational)),
		since(1966, ruled("respectForTheAgedDay", jpRespectForTheAgedDay, generic.TypeNational)),
		since(1948, ruled("autumnalEquinoxDay", generic.Equinox(generic.SeptemberEquinox), generic.TypeNational)),
		since(1966, ruled("sportsDay", jpSportsDay, generic.TypeNational)),
		only(2019, fixed("enthronementProclamationCeremony", time.October, 22, generic.TypeNational)),
		since(1948, fixed("cultureDay", time.November, 3, generic.TypeNational)),
		since(1948, fixed("laborThanksgivingDay", time.November, 23, generic.TypeNational)),
		emperorsBirthday(),
	},
	SubstituteKey: jpSubstituteKey,
	Derivations:   []generic.Derivation{japaneseSubstitutes, japaneseBridgeDays},
}

// The Heisei emperor's birthday was moved from December to February after the
// 2019 abdication, leaving 2019 without one.
func emperorsBirthday() generic.Definition {
	d := since(1949, ruled("emperorsBirthday", jpEmperorsBirthday, generic.TypeNational))
	d.Except = []int{2019}
	return d
}

const (
	jpSubstituteLawYear = 1973 // in force from 12 April
	jpBridgeDayStart    = 1988
)

func jpSubstituteKey(key string) string { return "substituteHoliday:" + key }

func nationalDays(resolved []generic.Holiday) map[string]bool {
	days := make(map[string]bool, len(resolved))
	for _, h := range resolved {
		if h.Type == generic.TypeNational {
			days[h.Date.String()] = true
		}
	}
	return days
}

// japaneseSubstitutes moves every national holiday falling on a Sunday to the
// next day that is not already a national holiday.
func japaneseSubstitutes(year int, resolved []generic.Holiday) ([]generic.Occurrence, error) {
	if year < jpSubstituteLawYear {
		return nil, nil
	}
	taken := nationalDays(resolved)
	var out []generic.Occurrence
	for _, h := range resolved {
		if h.Type != generic.TypeNational || h.Date.Weekday() != time.Sunday {
			continue
		}
		lawStart := generic.NewTimePoint(jpSubstituteLawYear, time.April, 12, h.Date.Time.Location())
		if h.Date.Before(lawStart) {
			continue
		}
		day := h.Date.AddDays(1)
		for taken[day.String()] {
			day = day.AddDays(1)
		}
		taken[day.String()] = true
		out = append(out, generic.Occurrence{
			Key:         jpSubstituteKey(h.Key),
			Date:        day,
			Type:        generic.TypeObservance,
			Substitutes: h.Key,
		})
	}
	return out, nil
}

// japaneseBridgeDays makes a citizens' holiday of every day sandwiched between
// two national holidays, unless it is a Sunday or already a holiday.
func japaneseBridgeDays(year int, resolved []generic.Holiday) ([]generic.Occurrence, error) {
	if year < jpBridgeDayStart {
		return nil, nil
	}
	national := nationalDays(resolved)
	occupied := make(map[string]bool, len(resolved))
	for _, h := range resolved {
		occupied[h.Date.String()] = true
	}

	var out []generic.Occurrence
	for _, h := range resolved {
		if h.Type != generic.TypeNational {
			continue
		}
		between := h.Date.AddDays(1)
		after := h.Date.AddDays(2)
		if between.Year() != year || !national[after.String()] {
			continue
		}
		if occupied[between.String()] || between.Weekday() == time.Sunday {
			continue
		}
		occupied[between.String()] = true
		out = append(out, generic.Occurrence{
			Key:     fmt.Sprintf("bridgeDay%d", len(out)+1),
			Date:    between,
			Type:    generic.TypeNational,
			NameKey: "bridgeDay",
		})
	}
	return out, nil
}
