package countries

import (
	"time"

	"github.com/warp/holiday-engine/generic"
)

var Belgium = &generic.Blueprint{
	ID:       "Belgium",
	Timezone: "Europe/Brussels",
	Locale:   "nl_BE",
	Steps: []generic.Definition{
		newYearsDay(generic.TypeNational),
		easter(generic.TypeNational),
		easterMonday(generic.TypeNational),
		internationalWorkersDay(generic.TypeNational),
		ascensionDay(generic.TypeNational),
		pentecost(generic.TypeNational),
		pentecostMonday(generic.TypeNational),
		fixed("nationalDay", time.July, 21, generic.TypeNational),
		assumptionOfMary(generic.TypeNational),
		allSaintsDay(generic.TypeNational),
		fixed("armisticeDay", time.November, 11, generic.TypeNational),
		christmasDay(generic.TypeNational),
	},
}
