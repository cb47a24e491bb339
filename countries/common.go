/*
Package countries defines the built-in country and region blueprints.

PURPOSE:
  Each file declares one country (and its regions) as a generic.Blueprint:
  an ordered list of holiday definitions plus timezone and locale. Regions
  reference their country as Parent and declare only their differences.

CONVENTIONS:
  - Keys are camelCase and shared across countries ("christmasDay"), so one
    translation entry names the holiday everywhere.
  - Definitions are listed in calendar order; resolution keeps that order.
  - Establishment windows live on the definition, not in the rule.

SEE ALSO:
  - common.go: Shared definitions (Christian calendar, fixed civil days)
  - generic/blueprint.go: Blueprint and region diffs
  - factory/provider.go: Maps identifiers to these blueprints
*/
package countries

import (
	"time"
	_ "time/tzdata"

	"github.com/warp/holiday-engine/generic"
)

// =============================================================================
// DEFINITION BUILDERS
// =============================================================================

func fixed(key string, month time.Month, day int, t generic.Type) generic.Definition {
	return generic.Definition{Key: key, Rule: generic.Fixed(month, day), Type: t}
}

func easterBased(key string, offset int, t generic.Type) generic.Definition {
	return generic.Definition{Key: key, Rule: generic.Easter(offset), Type: t}
}

func nthWeekday(key string, month time.Month, weekday time.Weekday, n int, t generic.Type) generic.Definition {
	return generic.Definition{Key: key, Rule: generic.NthWeekday(month, weekday, n), Type: t}
}

func ruled(key string, rule generic.DateRule, t generic.Type) generic.Definition {
	return generic.Definition{Key: key, Rule: rule, Type: t}
}

// since sets the first year of the holiday.
func since(year int, d generic.Definition) generic.Definition {
	d.Established = year
	return d
}

// until sets the last year of the holiday.
func until(year int, d generic.Definition) generic.Definition {
	d.Abolished = year
	return d
}

// only restricts the holiday to a single year.
func only(year int, d generic.Definition) generic.Definition {
	d.Established = year
	d.Abolished = year
	return d
}

func substituted(p generic.Policy, d generic.Definition) generic.Definition {
	d.Substitution = p
	return d
}

// =============================================================================
// SHARED HOLIDAYS
// =============================================================================

func newYearsDay(t generic.Type) generic.Definition {
	return fixed("newYearsDay", time.January, 1, t)
}

func epiphany(t generic.Type) generic.Definition {
	return fixed("epiphany", time.January, 6, t)
}

func valentinesDay(t generic.Type) generic.Definition {
	return fixed("valentinesDay", time.February, 14, t)
}

func internationalWorkersDay(t generic.Type) generic.Definition {
	return fixed("internationalWorkersDay", time.May, 1, t)
}

func assumptionOfMary(t generic.Type) generic.Definition {
	return fixed("assumptionOfMary", time.August, 15, t)
}

func allSaintsDay(t generic.Type) generic.Definition {
	return fixed("allSaintsDay", time.November, 1, t)
}

func christmasDay(t generic.Type) generic.Definition {
	return fixed("christmasDay", time.December, 25, t)
}

func secondChristmasDay(t generic.Type) generic.Definition {
	return fixed("secondChristmasDay", time.December, 26, t)
}

// Easter-relative days, offsets from Easter Sunday.
const (
	offsetCarnival        = -49
	offsetAshWednesday    = -46
	offsetGoodFriday      = -2
	offsetEasterMonday    = 1
	offsetAscension       = 39
	offsetPentecost       = 49
	offsetPentecostMonday = 50
	offsetCorpusChristi   = 60
)

func ashWednesday(t generic.Type) generic.Definition {
	return easterBased("ashWednesday", offsetAshWednesday, t)
}

func goodFriday(t generic.Type) generic.Definition {
	return easterBased("goodFriday", offsetGoodFriday, t)
}

func easter(t generic.Type) generic.Definition {
	return easterBased("easter", 0, t)
}

func easterMonday(t generic.Type) generic.Definition {
	return easterBased("easterMonday", offsetEasterMonday, t)
}

func ascensionDay(t generic.Type) generic.Definition {
	return easterBased("ascensionDay", offsetAscension, t)
}

func pentecost(t generic.Type) generic.Definition {
	return easterBased("pentecost", offsetPentecost, t)
}

func pentecostMonday(t generic.Type) generic.Definition {
	return easterBased("pentecostMonday", offsetPentecostMonday, t)
}

func corpusChristi(t generic.Type) generic.Definition {
	return easterBased("corpusChristi", offsetCorpusChristi, t)
}

// =============================================================================
// RULE HELPERS
// =============================================================================

type monthDay struct {
	month time.Month
	day   int
}

// withExceptions uses rule except in the listed years, where the holiday was
// moved by decree.
func withExceptions(rule generic.DateRule, moved map[int]monthDay) generic.DateRule {
	return generic.RuleFunc(func(year int, loc *time.Location) (generic.TimePoint, error) {
		if md, ok := moved[year]; ok {
			return generic.Date(year, md.month, md.day, loc)
		}
		return rule.Date(year, loc)
	})
}
