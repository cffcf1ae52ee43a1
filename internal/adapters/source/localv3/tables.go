package localv3

// Zone type discriminators used by the v3 firmware.
const (
	zoneTypeManager    = 1
	zoneTypeOnOffTimer = 2
	zoneTypeControlSP  = 3
	zoneTypeControlPID = 4
	zoneTypeTPI        = 5
	zoneTypeSurrogate  = 6
)

// Zone mode bit values.
const (
	zoneModeOff       = 1
	zoneModeTimer     = 2
	zoneModeFootprint = 4
	zoneModeAway      = 8
	zoneModeBoost     = 16
	zoneModeEarly     = 32
	zoneModeTest      = 64
	zoneModeLinked    = 128
	zoneModeOther     = 256
)

// Expected-kit flag bits.
const (
	kitTypeTemp  = 1
	kitTypeValve = 2
	kitTypePIR   = 4
	kitTypePower = 8
)

var zoneTypeToName = map[int]string{
	zoneTypeManager:    "manager",
	zoneTypeOnOffTimer: "on / off",
	zoneTypeControlSP:  "radiator",
	zoneTypeControlPID: "type 4",
	zoneTypeTPI:        "hot water temperature",
	zoneTypeSurrogate:  "type 6",
}

var zoneModeToName = map[int]string{
	zoneModeOff:       "off",
	zoneModeTimer:     "timer",
	zoneModeFootprint: "footprint",
	zoneModeAway:      "away",
	zoneModeBoost:     "override",
	zoneModeEarly:     "early",
	zoneModeTest:      "test",
	zoneModeLinked:    "linked",
	zoneModeOther:     "other",
}

var issueLevelToName = map[int]string{
	0: "error",
	1: "warning",
	2: "information",
}

// v3 issues carry structured identifiers; v1 renders them as prose with the
// zone name interpolated where the template contains a placeholder.
var issueDescriptions = map[string]string{
	"manager:no_boiler_controller": "The hub does not have a boiler controller assigned",
	"manager:no_boiler_comms":      "The hub has lost communication with the boiler controller",
	"manager:no_temp":              "The hub does not have a valid temperature",
	"manager:weather":              "Unable to fetch the weather data",
	"manager:weather_data":         "Weather data -",
	"zone:using_weather_temp":      "{} is currently using the outside temperature",
	"zone:using_assumed_temp":      "{} is currently using the assumed temperature",
	"zone:tpi_no_temp":             "{} currently has no valid temperature",
	"node:no_comms":                "The {} has lost communication with the Hub",
	"node:not_seen":                "The {} has not been found by the Hub",
	"node:low_battery":             "The battery for the {} is dead and needs to be replaced",
	"node:warn_battery":            "The battery for the {} is low",
}
