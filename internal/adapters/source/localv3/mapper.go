package localv3

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/olusolaa/hub-reconciler/internal/core/domain"
	"github.com/olusolaa/hub-reconciler/internal/errors"
	"github.com/olusolaa/hub-reconciler/pkg/convert"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Mapper rewrites v3 API payloads into the v1 document shape so canonical
// comparison against the v1 sources is meaningful. The v1 sources emit
// that shape natively and need no mapper.
type Mapper struct{}

func (Mapper) Map(resourceType domain.ResourceType, body []byte) ([]byte, error) {
	var envelope struct {
		Data any `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, errors.Wrap(err, errors.CodeSchemaMapping, "v3 response is not valid JSON")
	}
	if envelope.Data == nil {
		return nil, errors.New(errors.CodeSchemaMapping, "v3 response has no data envelope")
	}

	var (
		converted any
		err       error
	)
	switch resourceType {
	case domain.ResourceZones:
		converted, err = mapZones(envelope.Data)
	case domain.ResourceDevices:
		converted, err = mapDevices(envelope.Data)
	case domain.ResourceIssues:
		converted, err = mapIssues(envelope.Data)
	default:
		return nil, errors.New(errors.CodeSchemaMapping,
			fmt.Sprintf("unknown resource type: %s", resourceType))
	}
	if err != nil {
		return nil, err
	}

	out, err := json.Marshal(converted)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSchemaMapping, "failed to serialize mapped document")
	}
	return out, nil
}

func mapZones(data any) ([]map[string]any, error) {
	rawZones, err := convert.AsSlice(data)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSchemaMapping, "v3 zones payload is not a list")
	}

	zones := make([]map[string]any, 0, len(rawZones))
	for i, rz := range rawZones {
		zone, err := convert.AsMap(rz)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeSchemaMapping, fmt.Sprintf("zone %d is not an object", i))
		}
		mapped, err := convertZone(zone)
		if err != nil {
			return nil, err
		}
		zones = append(zones, mapped)
	}
	return zones, nil
}

func convertZone(zone map[string]any) (map[string]any, error) {
	id, err := convert.ToInt(zone["iID"])
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSchemaMapping, "zone has no numeric iID")
	}
	iType, err := convert.ToInt(zone["iType"])
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSchemaMapping, fmt.Sprintf("zone %d has no numeric iType", id))
	}
	typeName, ok := zoneTypeToName[iType]
	if !ok {
		return nil, errors.New(errors.CodeSchemaMapping, fmt.Sprintf("zone %d has unknown iType %d", id, iType))
	}
	iMode, err := convert.ToInt(zone["iMode"])
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSchemaMapping, fmt.Sprintf("zone %d has no numeric iMode", id))
	}
	modeName, ok := zoneModeToName[iMode]
	if !ok {
		return nil, errors.New(errors.CodeSchemaMapping, fmt.Sprintf("zone %d has unknown iMode %d", id, iMode))
	}

	result := map[string]any{
		"id":   id,
		"type": typeName,
		"name": convert.AsString(zone["strName"]),
		"mode": modeName,
	}

	switch iType {
	case zoneTypeControlSP, zoneTypeTPI:
		result["temperature"] = zone["fPV"]
		result["setpoint"] = zone["fSP"]
	case zoneTypeOnOffTimer:
		sp, err := convert.ToFloat(zone["fSP"])
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeSchemaMapping, fmt.Sprintf("zone %d has no numeric fSP", id))
		}
		result["setpoint"] = sp != 0
	}

	if kit, err := convert.ToInt(zone["iFlagExpectedKit"]); err == nil && kit&kitTypePIR != 0 {
		occupied, err := deriveOccupancy(zone, iMode)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeSchemaMapping, fmt.Sprintf("zone %d footprint data malformed", id))
		}
		result["occupied"] = occupied
	}

	switch iType {
	case zoneTypeOnOffTimer, zoneTypeControlSP, zoneTypeTPI:
		override := map[string]any{
			"duration": zone["iBoostTimeRemaining"],
		}
		if iType == zoneTypeOnOffTimer {
			sp, err := convert.ToFloat(zone["fBoostSP"])
			if err != nil {
				return nil, errors.Wrap(err, errors.CodeSchemaMapping, fmt.Sprintf("zone %d has no numeric fBoostSP", id))
			}
			override["setpoint"] = sp != 0
		} else {
			override["setpoint"] = zone["fBoostSP"]
		}
		result["override"] = override
		result["schedule"] = map[string]any{}
	}

	return result, nil
}

// deriveOccupancy reproduces the footprint occupancy rule for PIR-equipped
// zones: occupied while in footprint mode with the reactive trigger on and
// not in night mode.
func deriveOccupancy(zone map[string]any, iMode int) (bool, error) {
	footprint, err := convert.AsMap(zone["objFootprint"])
	if err != nil {
		return false, err
	}
	reactive, err := convert.DigMap(footprint, "objReactive")
	if err != nil {
		return false, err
	}
	triggerOn, _ := reactive["bTriggerOn"].(bool)
	isNight, _ := footprint["bIsNight"].(bool)
	return iMode == zoneModeFootprint && triggerOn && !isNight, nil
}

// mapDevices extracts devices from the v3 data_manager tree: one child
// node group per zone, skipping the WeatherData group and the hub's own
// controller entry at address 1.
func mapDevices(data any) ([]map[string]any, error) {
	root, err := convert.AsMap(data)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSchemaMapping, "v3 data_manager payload is not an object")
	}
	groups, err := convert.DigMap(root, "childNodes")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSchemaMapping, "v3 data_manager has no childNodes")
	}

	devices := make([]map[string]any, 0)
	for _, groupKey := range sortedKeys(groups) {
		if groupKey == "WeatherData" {
			continue
		}
		group, err := convert.AsMap(groups[groupKey])
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeSchemaMapping, fmt.Sprintf("data_manager group %q is not an object", groupKey))
		}
		children, err := convert.DigMap(group, "childNodes")
		if err != nil {
			continue
		}
		for _, deviceKey := range sortedKeys(children) {
			if deviceKey == "1" {
				continue
			}
			device, err := convert.AsMap(children[deviceKey])
			if err != nil {
				return nil, errors.Wrap(err, errors.CodeSchemaMapping, fmt.Sprintf("device %q is not an object", deviceKey))
			}
			mapped, err := convertDevice(device)
			if err != nil {
				return nil, err
			}
			devices = append(devices, mapped)
		}
	}
	return devices, nil
}

func convertDevice(device map[string]any) (map[string]any, error) {
	addr := convert.AsString(device["addr"])
	if addr == "" {
		return nil, errors.New(errors.CodeSchemaMapping, "device has no addr")
	}

	result := map[string]any{
		"id":    addr,
		"state": map[string]any{},
	}

	if cfg, err := convert.DigMap(device, "childNodes", "_cfg", "childValues"); err == nil && len(cfg) > 0 {
		if name, err := convert.DigMap(cfg, "name"); err == nil {
			result["type"] = name["val"]
		}
		if sku, err := convert.DigMap(cfg, "sku"); err == nil {
			result["sku"] = sku["val"]
		}
	} else {
		result["type"] = nil
	}

	assigned := map[string]any{"name": nil}
	if location, err := convert.DigMap(device, "childValues", "location"); err == nil {
		if val := convert.AsString(location["val"]); val != "" {
			assigned["name"] = val
		}
	}
	result["assignedZones"] = []any{assigned}

	return result, nil
}

// mapIssues collects lstIssues across the zones payload, tagging each with
// its zone name, then renders the v1 description/level prose.
func mapIssues(data any) ([]map[string]any, error) {
	rawZones, err := convert.AsSlice(data)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSchemaMapping, "v3 zones payload is not a list")
	}

	issues := make([]map[string]any, 0)
	for _, rz := range rawZones {
		zone, err := convert.AsMap(rz)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeSchemaMapping, "zone entry is not an object")
		}
		zoneName := convert.AsString(zone["strName"])

		rawIssues, err := convert.AsSlice(zone["lstIssues"])
		if err != nil {
			continue
		}
		for _, ri := range rawIssues {
			issue, err := convert.AsMap(ri)
			if err != nil {
				return nil, errors.Wrap(err, errors.CodeSchemaMapping, "issue entry is not an object")
			}
			mapped, err := convertIssue(issue, zoneName)
			if err != nil {
				return nil, err
			}
			issues = append(issues, mapped)
		}
	}
	return issues, nil
}

func convertIssue(issue map[string]any, zoneName string) (map[string]any, error) {
	id := convert.AsString(issue["id"])
	template, ok := issueDescriptions[id]
	if !ok {
		return nil, errors.New(errors.CodeSchemaMapping, fmt.Sprintf("unknown issue identifier %q", id))
	}
	description := strings.Replace(template, "{}", zoneName, 1)

	level, err := convert.ToInt(issue["level"])
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeSchemaMapping, fmt.Sprintf("issue %q has no numeric level", id))
	}
	levelName, ok := issueLevelToName[level]
	if !ok {
		return nil, errors.New(errors.CodeSchemaMapping, fmt.Sprintf("issue %q has unknown level %d", id, level))
	}

	return map[string]any{
		"description": description,
		"level":       levelName,
	}, nil
}

// sortedKeys gives deterministic traversal of JSON object keys, numeric
// keys in numeric order so device addresses sort naturally.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ni, iErr := strconv.Atoi(keys[i])
		nj, jErr := strconv.Atoi(keys[j])
		if iErr == nil && jErr == nil {
			return ni < nj
		}
		return keys[i] < keys[j]
	})
	return keys
}
