package countries

import (
	"time"

	"github.com/warp/holiday-engine/generic"
)

// Ireland observes the Christian calendar plus four Monday bank holidays.
// Christmas and St. Stephen's Day both move two days when they fall on a
// weekend so their substitutes don't collide.
var Ireland = &generic.Blueprint{
	ID:       "Ireland",
	Timezone: "Europe/Dublin",
	Locale:   "en_IE",
	Steps: []generic.Definition{
		substituted(generic.SundayToMonday, since(1974, newYearsDay(generic.TypeNational))),
		substituted(generic.SundayToMonday, since(1903, fixed("stPatricksDay", time.March, 17, generic.TypeNational))),
		goodFriday(generic.TypeObservance),
		easter(generic.TypeNational),
		easterMonday(generic.TypeNational),
		since(1994, nthWeekday("mayDay", time.May, time.Monday, 1, generic.TypeNational)),
		pentecost(generic.TypeObservance),
		until(1973, pentecostMonday(generic.TypeNational)),
		since(1974, nthWeekday("juneHoliday", time.June, time.Monday, 1, generic.TypeNational)),
		nthWeekday("augustHoliday", time.August, time.Monday, 1, generic.TypeNational),
		since(1977, nthWeekday("octoberHoliday", time.October, time.Monday, -1, generic.TypeNational)),
		substituted(generic.WeekendPlusTwo, christmasDay(generic.TypeNational)),
		substituted(generic.WeekendPlusTwo, fixed("stStephensDay", time.December, 26, generic.TypeNational)),
	},
}
