package countries

import (
	"time"

	"github.com/warp/holiday-engine/generic"
)

var (
	sundayToSaturday = generic.MustPolicy(generic.Shift{On: time.Sunday, Days: -1})

	// kingsDay moves to Saturday when April 27 is a Sunday.
	kingsDay = generic.Moved(generic.Fixed(time.April, 27), sundayToSaturday)

	// queensDay celebrated Queen Wilhelmina's birthday until 1948 and Queen
	// Juliana's afterwards; a Sunday moved it to Monday until 1980, to
	// Saturday since.
	queensDay = generic.Switch(
		generic.Era{From: 1891, Rule: generic.Moved(generic.Fixed(time.August, 31), generic.SundayToMonday)},
		generic.Era{From: 1949, Rule: generic.Moved(generic.Fixed(time.April, 30), generic.SundayToMonday)},
		generic.Era{From: 1980, Rule: generic.Moved(generic.Fixed(time.April, 30), sundayToSaturday)},
	)

	summerTime = generic.Switch(
		generic.Era{From: 1977, Rule: generic.NthWeekday(time.April, time.Sunday, 1)},
		generic.Era{From: 1981, Rule: generic.NthWeekday(time.March, time.Sunday, -1)},
	)

	winterTime = generic.Switch(
		generic.Era{From: 1977, Rule: generic.NthWeekday(time.September, time.Sunday, -1)},
		generic.Era{From: 1996, Rule: generic.NthWeekday(time.October, time.Sunday, -1)},
	)
)

// Netherlands lists official, observed, seasonal and commercial days.
var Netherlands = &generic.Blueprint{
	ID:       "Netherlands",
	Timezone: "Europe/Amsterdam",
	Locale:   "nl_NL",
	Steps: []generic.Definition{
		newYearsDay(generic.TypeNational),
		epiphany(generic.TypeOther),
		valentinesDay(generic.TypeOther),
		easterBased("carnivalDay", offsetCarnival, generic.TypeObservance),
		easterBased("secondCarnivalDay", offsetCarnival+1, generic.TypeObservance),
		easterBased("thirdCarnivalDay", offsetCarnival+2, generic.TypeObservance),
		ashWednesday(generic.TypeObservance),
		goodFriday(generic.TypeObservance),
		easter(generic.TypeNational),
		easterMonday(generic.TypeNational),
		since(2014, ruled("kingsDay", kingsDay, generic.TypeNational)),
		until(2013, since(1891, ruled("queensDay", queensDay, generic.TypeNational))),
		internationalWorkersDay(generic.TypeOther),
		since(1947, fixed("commemorationDay", time.May, 4, generic.TypeObservance)),
		since(1947, fixed("liberationDay", time.May, 5, generic.TypeObservance)),
		nthWeekday("mothersDay", time.May, time.Sunday, 2, generic.TypeOther),
		ascensionDay(generic.TypeNational),
		pentecost(generic.TypeNational),
		pentecostMonday(generic.TypeNational),
		nthWeekday("fathersDay", time.June, time.Sunday, 3, generic.TypeOther),
		nthWeekday("princesDay", time.September, time.Tuesday, 3, generic.TypeOther),
		since(1931, fixed("worldAnimalDay", time.October, 4, generic.TypeOther)),
		fixed("halloween", time.October, 31, generic.TypeObservance),
		fixed("stMartinsDay", time.November, 11, generic.TypeObservance),
		fixed("stNicholasDay", time.December, 5, generic.TypeObservance),
		christmasDay(generic.TypeNational),
		secondChristmasDay(generic.TypeNational),
		since(1977, ruled("summerTime", summerTime, generic.TypeSeason)),
		since(1977, ruled("winterTime", winterTime, generic.TypeSeason)),
	},
}
