package countries

import (
	"time"

	"github.com/warp/holiday-engine/generic"
)

// Germany holds the nationwide holidays. Reformation Day was a one-off
// national holiday for its 500th anniversary.
var Germany = &generic.Blueprint{
	ID:       "Germany",
	Timezone: "Europe/Berlin",
	Locale:   "de_DE",
	Steps: []generic.Definition{
		newYearsDay(generic.TypeNational),
		goodFriday(generic.TypeNational),
		easter(generic.TypeNational),
		easterMonday(generic.TypeNational),
		internationalWorkersDay(generic.TypeNational),
		ascensionDay(generic.TypeNational),
		pentecost(generic.TypeNational),
		pentecostMonday(generic.TypeNational),
		since(1990, fixed("germanUnityDay", time.October, 3, generic.TypeNational)),
		only(2017, fixed("reformationDay", time.October, 31, generic.TypeNational)),
		christmasDay(generic.TypeNational),
		secondChristmasDay(generic.TypeNational),
	},
}

// BadenWurttemberg adds the Catholic regional days.
var BadenWurttemberg = &generic.Blueprint{
	ID:     "Germany/BadenWurttemberg",
	Parent: Germany,
	Steps: []generic.Definition{
		epiphany(generic.TypeOther),
		corpusChristi(generic.TypeOther),
		allSaintsDay(generic.TypeOther),
	},
}

// Saxony keeps Reformation Day every year and adds Repentance and Prayer
// Day, the Wednesday before November 23.
var Saxony = &generic.Blueprint{
	ID:     "Germany/Saxony",
	Parent: Germany,
	Overrides: []generic.Definition{
		since(1517, fixed("reformationDay", time.October, 31, generic.TypeOther)),
	},
	Steps: []generic.Definition{
		since(1995, ruled("repentanceAndPrayerDay", generic.WeekdayBefore(time.November, 23, time.Wednesday), generic.TypeOther)),
	},
}
