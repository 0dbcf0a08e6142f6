package ngff

// Axis types with defined semantics. Anything else is a custom type.
const (
	TypeSpace   = "space"
	TypeTime    = "time"
	TypeChannel = "channel"
)

// SpaceUnits lists the recognized units for space axes (UDUNITS-2 names).
var SpaceUnits = []string{
	"angstrom",
	"attometer",
	"centimeter",
	"decimeter",
	"exameter",
	"femtometer",
	"foot",
	"gigameter",
	"hectometer",
	"inch",
	"kilometer",
	"megameter",
	"meter",
	"micrometer",
	"mile",
	"millimeter",
	"nanometer",
	"parsec",
	"petameter",
	"picometer",
	"terameter",
	"yard",
	"yoctometer",
	"yottameter",
	"zeptometer",
	"zettameter",
}

// TimeUnits lists the recognized units for time axes (UDUNITS-2 names).
var TimeUnits = []string{
	"attosecond",
	"centisecond",
	"day",
	"decisecond",
	"exasecond",
	"femtosecond",
	"gigasecond",
	"hectosecond",
	"hour",
	"kilosecond",
	"megasecond",
	"microsecond",
	"millisecond",
	"minute",
	"nanosecond",
	"petasecond",
	"picosecond",
	"second",
	"terasecond",
	"yoctosecond",
	"yottasecond",
	"zeptosecond",
	"zettasecond",
}

var (
	spaceUnitSet = toSet(SpaceUnits)
	timeUnitSet  = toSet(TimeUnits)
)

func toSet(ss []string) map[string]struct{} {
	m := make(map[string]struct{}, len(ss))
	for _, s := range ss {
		m[s] = struct{}{}
	}
	return m
}

// IsSpaceUnit reports whether u is a recognized space unit.
func IsSpaceUnit(u string) bool {
	_, ok := spaceUnitSet[u]
	return ok
}

// IsTimeUnit reports whether u is a recognized time unit.
func IsTimeUnit(u string) bool {
	_, ok := timeUnitSet[u]
	return ok
}
