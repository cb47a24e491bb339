package countries

import (
	"time"

	"github.com/warp/holiday-engine/generic"
)

var (
	// Early May bank holiday moved to the 8th for VE Day anniversaries.
	mayDayBankHoliday = withExceptions(generic.NthWeekday(time.May, time.Monday, 1), map[int]monthDay{
		1995: {time.May, 8},
		2020: {time.May, 8},
	})

	// Spring bank holiday moved for royal jubilees.
	springBankHoliday = withExceptions(generic.NthWeekday(time.May, time.Monday, -1), map[int]monthDay{
		2002: {time.June, 4},
		2012: {time.June, 4},
		2022: {time.June, 2},
	})
)

// UnitedKingdom covers England and Wales; Scotland is a region.
var UnitedKingdom = &generic.Blueprint{
	ID:       "UnitedKingdom",
	Timezone: "Europe/London",
	Locale:   "en_GB",
	Steps: []generic.Definition{
		substituted(generic.WeekendToMonday, since(1974, newYearsDay(generic.TypeBank))),
		goodFriday(generic.TypeNational),
		easterMonday(generic.TypeBank),
		since(1978, ruled("mayDayBankHoliday", mayDayBankHoliday, generic.TypeBank)),
		since(1965, ruled("springBankHoliday", springBankHoliday, generic.TypeBank)),
		since(1965, nthWeekday("summerBankHoliday", time.August, time.Monday, -1, generic.TypeBank)),
		substituted(generic.WeekendPlusTwo, christmasDay(generic.TypeNational)),
		substituted(generic.WeekendPlusTwo, secondChristmasDay(generic.TypeBank)),
	},
}

// Scotland has no Easter Monday, takes two days at New Year and its summer
// bank holiday at the start of August.
var Scotland = &generic.Blueprint{
	ID:       "UnitedKingdom/Scotland",
	Parent:   UnitedKingdom,
	Excludes: []string{"easterMonday"},
	Overrides: []generic.Definition{
		substituted(generic.WeekendPlusTwo, since(1974, newYearsDay(generic.TypeBank))),
		since(1965, nthWeekday("summerBankHoliday", time.August, time.Monday, 1, generic.TypeBank)),
	},
	Steps: []generic.Definition{
		substituted(generic.WeekendPlusTwo, since(1974, fixed("secondNewYearsDay", time.January, 2, generic.TypeBank))),
		substituted(generic.WeekendToMonday, since(2007, fixed("stAndrewsDay", time.November, 30, generic.TypeBank))),
	},
}
