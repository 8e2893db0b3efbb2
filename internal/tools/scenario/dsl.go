package scenario

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Shopify/go-lua"
)

const scenarioTypeName = "scenario"

// maxExactSeed is the largest integer a Lua number holds exactly. Larger
// seeds are passed as strings.
const maxExactSeed = 1 << 53

// Scenario is a named, ordered list of loot bag steps.
type Scenario struct {
	Name  string
	Steps []Step
}

// Step is one scripted call with its Lua arguments converted to Go values.
type Step struct {
	Kind string
	Args map[string]any
}

// LoadScenarioFromFile runs a Lua scenario script and returns the Scenario it builds.
func LoadScenarioFromFile(path string) (*Scenario, error) {
	state := newLuaState()
	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	scenario, err := runScenarioChunk(state)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return scenario, nil
}

// LoadScenarioFromString runs Lua source and returns the Scenario it builds.
func LoadScenarioFromString(source string) (*Scenario, error) {
	state := newLuaState()
	if err := lua.LoadString(state, source); err != nil {
		return nil, fmt.Errorf("load lua: %w", err)
	}
	return runScenarioChunk(state)
}

func newLuaState() *lua.State {
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerLuaTypes(state)
	return state
}

func runScenarioChunk(state *lua.State) (*Scenario, error) {
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		return nil, fmt.Errorf("run lua: %w", err)
	}
	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, fmt.Errorf("scenario script must return Scenario")
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	scenario, ok := ud.(*Scenario)
	if !ok || scenario == nil {
		return nil, fmt.Errorf("scenario script returned invalid Scenario")
	}
	return scenario, nil
}

func registerLuaTypes(state *lua.State) {
	lua.NewMetaTable(state, scenarioTypeName)
	state.NewTable()
	lua.SetFunctions(state, scenarioMethods, 0)
	state.SetField(-2, "__index")
	state.Pop(1)

	state.NewTable()
	lua.SetFunctions(state, scenarioConstructor, 0)
	state.SetGlobal("Scenario")
}

var scenarioConstructor = []lua.RegistryFunction{
	{Name: "new", Function: scenarioNew},
}

func scenarioNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	scenario := &Scenario{Name: name}
	state.PushUserData(scenario)
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

var scenarioMethods = []lua.RegistryFunction{
	{Name: "seed", Function: scenarioSeed},
	{Name: "locale", Function: scenarioLocale},
	{Name: "preset", Function: scenarioPreset},
	{Name: "set", Function: scenarioSet},
	{Name: "clear", Function: scenarioClear},
	{Name: "build", Function: scenarioBuild},
	{Name: "draw", Function: scenarioDraw},
	{Name: "draw_all", Function: scenarioDrawAll},
	{Name: "reset", Function: scenarioReset},
	{Name: "expect_remaining", Function: scenarioExpectRemaining},
	{Name: "expect_configured", Function: scenarioExpectConfigured},
	{Name: "expect_totals", Function: scenarioExpectTotals},
	{Name: "expect_history", Function: scenarioExpectHistory},
	{Name: "expect_error", Function: scenarioExpectError},
}

func scenarioSeed(state *lua.State) int {
	scenario := checkScenario(state)
	seed, err := luaSeed(state, 2)
	if err != nil {
		lua.ArgumentError(state, 2, err.Error())
		return 0
	}
	appendStep(scenario, "seed", map[string]any{"value": seed})
	return 0
}

// luaSeed reads a seed given as a decimal string or an exact Lua number.
func luaSeed(state *lua.State, index int) (uint64, error) {
	if state.TypeOf(index) == lua.TypeString {
		raw, _ := state.ToString(index)
		seed, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("seed %q must be a non-negative integer", raw)
		}
		return seed, nil
	}
	value := lua.CheckNumber(state, index)
	switch {
	case value < 0:
		return 0, errors.New("seed must be non-negative")
	case value != math.Trunc(value):
		return 0, errors.New("seed must be an integer")
	case value > maxExactSeed:
		return 0, errors.New("seed above 2^53 must be passed as a string")
	}
	return uint64(value), nil
}

func scenarioLocale(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "locale", map[string]any{"value": lua.CheckString(state, 2)})
	return 0
}

func scenarioPreset(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "preset", map[string]any{"name": lua.CheckString(state, 2)})
	return 0
}

func scenarioSet(state *lua.State) int {
	scenario := checkScenario(state)
	id := lua.CheckString(state, 2)
	count := lua.CheckInteger(state, 3)
	appendStep(scenario, "set", map[string]any{"category": id, "count": count})
	return 0
}

func scenarioClear(state *lua.State) int {
	appendStep(checkScenario(state), "clear", nil)
	return 0
}

func scenarioBuild(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "build", optionalTable(state, 2))
	return 0
}

func scenarioDraw(state *lua.State) int {
	scenario := checkScenario(state)
	count := lua.OptInteger(state, 2, 1)
	appendStep(scenario, "draw", map[string]any{"count": count})
	return 0
}

func scenarioDrawAll(state *lua.State) int {
	appendStep(checkScenario(state), "draw_all", nil)
	return 0
}

func scenarioReset(state *lua.State) int {
	appendStep(checkScenario(state), "reset", nil)
	return 0
}

func scenarioExpectRemaining(state *lua.State) int {
	scenario := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	appendStep(scenario, "expect_remaining", tableToMap(state, 2))
	return 0
}

func scenarioExpectConfigured(state *lua.State) int {
	scenario := checkScenario(state)
	appendStep(scenario, "expect_configured", map[string]any{"value": lua.CheckInteger(state, 2)})
	return 0
}

func scenarioExpectTotals(state *lua.State) int {
	scenario := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	appendStep(scenario, "expect_totals", tableToMap(state, 2))
	return 0
}

func scenarioExpectHistory(state *lua.State) int {
	scenario := checkScenario(state)
	lua.CheckType(state, 2, lua.TypeTable)
	data := tableToMap(state, 2)
	if _, ok := data["count"]; !ok {
		lua.ArgumentError(state, 2, "count is required")
		return 0
	}
	appendStep(scenario, "expect_history", data)
	return 0
}

func scenarioExpectError(state *lua.State) int {
	scenario := checkScenario(state)
	code := strings.TrimSpace(lua.CheckString(state, 2))
	if code == "" {
		lua.ArgumentError(state, 2, "error code is required")
		return 0
	}
	appendStep(scenario, "expect_error", map[string]any{"code": code})
	return 0
}

func checkScenario(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, scenarioTypeName)
	if scenario, ok := ud.(*Scenario); ok && scenario != nil {
		return scenario
	}
	lua.ArgumentError(state, 1, "scenario expected")
	return nil
}

func appendStep(scenario *Scenario, kind string, data map[string]any) int {
	if scenario == nil {
		return -1
	}
	if data == nil {
		data = map[string]any{}
	}
	scenario.Steps = append(scenario.Steps, Step{Kind: kind, Args: data})
	return len(scenario.Steps) - 1
}

func optionalTable(state *lua.State, index int) map[string]any {
	if state.IsNoneOrNil(index) || state.TypeOf(index) != lua.TypeTable {
		return map[string]any{}
	}
	return tableToMap(state, index)
}

func tableToMap(state *lua.State, index int) map[string]any {
	output := map[string]any{}
	if state.TypeOf(index) != lua.TypeTable {
		return output
	}

	index = state.AbsIndex(index)
	state.PushNil()
	for state.Next(index) {
		if state.TypeOf(-2) == lua.TypeString {
			key, _ := state.ToString(-2)
			output[key] = luaToGo(state, -1)
		}
		state.Pop(1)
	}
	return output
}

func luaToGo(state *lua.State, index int) any {
	switch state.TypeOf(index) {
	case lua.TypeString:
		value, _ := state.ToString(index)
		return value
	case lua.TypeNumber:
		value, _ := state.ToNumber(index)
		return normalizeNumber(value)
	case lua.TypeBoolean:
		return state.ToBoolean(index)
	case lua.TypeTable:
		return tableToMap(state, index)
	default:
		return nil
	}
}

func normalizeNumber(value float64) any {
	if math.Mod(value, 1) == 0 {
		return int(value)
	}
	return value
}
