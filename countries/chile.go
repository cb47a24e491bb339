package countries

import (
	"time"

	"github.com/warp/holiday-engine/generic"
)

// Chile lists the national holidays; the abbreviated 2017 census day was a
// one-off public holiday.
var Chile = &generic.Blueprint{
	ID:       "Chile",
	Timezone: "America/Santiago",
	Locale:   "es_CL",
	Steps: []generic.Definition{
		newYearsDay(generic.TypeNational),
		goodFriday(generic.TypeNational),
		only(2017, fixed("2017CensusDay", time.April, 19, generic.TypeNational)),
		internationalWorkersDay(generic.TypeNational),
		fixed("navyDay", time.May, 21, generic.TypeNational),
		assumptionOfMary(generic.TypeNational),
		fixed("independenceDay", time.September, 18, generic.TypeNational),
		fixed("armyDay", time.September, 19, generic.TypeNational),
		allSaintsDay(generic.TypeNational),
		fixed("immaculateConception", time.December, 8, generic.TypeNational),
		christmasDay(generic.TypeNational),
	},
}
