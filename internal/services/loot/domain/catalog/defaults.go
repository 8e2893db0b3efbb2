package catalog

import "slices"

// Preset names shipped with the built-in catalog.
const (
	PresetBlank  = "blank"
	PresetSample = "sample"
)

var defaultCatalog = mustDefault()

// Default returns the built-in catalog.
func Default() *Catalog {
	return defaultCatalog
}

func mustDefault() *Catalog {
	c, err := New(DefaultTemplates(), DefaultCategories(), DefaultSupplies(), DefaultPresets())
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultTemplates returns the built-in token faces.
func DefaultTemplates() []Template {
	return []Template{
		{ID: "gold_1", Label: "1 Gold", Image: "assets/fh-one-coin-1361.png", Payload: map[string]int{"gold": 1}},
		{ID: "gold_2", Label: "2 Gold", Image: "assets/fh-two-coins-1374.png", Payload: map[string]int{"gold": 2}},
		{ID: "gold_3", Label: "3 Gold", Image: "assets/fh-three-coins-1379.png", Payload: map[string]int{"gold": 3}},
		{ID: "lumber_1", Label: "1 Lumber", Image: "assets/fh-lumber-1401.png", Payload: map[string]int{"lumber": 1}},
		{ID: "lumber_2", Label: "2 Lumber", Image: "assets/fh-lumber-1401.png", Payload: map[string]int{"lumber": 2}},
		{ID: "metal_1", Label: "1 Metal", Image: "assets/fh-metal-1409.png", Payload: map[string]int{"metal": 1}},
		{ID: "metal_2", Label: "2 Metal", Image: "assets/fh-metal-1409.png", Payload: map[string]int{"metal": 2}},
		{ID: "hide_1", Label: "1 Hide", Image: "assets/fh-hide-1393.png", Payload: map[string]int{"hide": 1}},
		{ID: "hide_2", Label: "2 Hide", Image: "assets/fh-hide-1393.png", Payload: map[string]int{"hide": 2}},
		{ID: "arrowvine", Label: "Arrowvine", Image: "assets/fh-arrowvine-1381.png", Payload: map[string]int{"arrowvine": 1}},
		{ID: "axenut", Label: "Axenut", Image: "assets/fh-axenut-1383.png", Payload: map[string]int{"axenut": 1}},
		{ID: "corpsecap", Label: "Corpsecap", Image: "assets/fh-corpsecap-1385.png", Payload: map[string]int{"corpsecap": 1}},
		{ID: "flamefruit", Label: "Flamefruit", Image: "assets/fh-flamefruit-1387.png", Payload: map[string]int{"flamefruit": 1}},
		{ID: "rockroot", Label: "Rockroot", Image: "assets/fh-rockroot-1389.png", Payload: map[string]int{"rockroot": 1}},
		{ID: "snowthistle", Label: "Snowthistle", Image: "assets/fh-snowthistle-1391.png", Payload: map[string]int{"snowthistle": 1}},
		{ID: "random_item", Label: "Random Item", Image: "assets/fh-random-item-1417.png"},
	}
}

// DefaultSupplies returns the physical decks for the random categories.
func DefaultSupplies() []Supply {
	return []Supply{
		{ID: "money", Label: "Money", Cards: deck("gold_1", 1, "gold_2", 6, "gold_3", 2)},
		{ID: "lumber", Label: "Lumber", Cards: deck("lumber_1", 2, "lumber_2", 6)},
		{ID: "metal", Label: "Metal", Cards: deck("metal_1", 2, "metal_2", 6)},
		{ID: "hide", Label: "Hide", Cards: deck("hide_1", 2, "hide_2", 5)},
	}
}

// DefaultCategories returns the builder groups in display order.
func DefaultCategories() []Category {
	return []Category{
		{ID: "money", Label: "Money", Kind: KindRandom, Max: 9},
		{ID: "lumber", Label: "Lumber", Kind: KindRandom, Max: 8},
		{ID: "metal", Label: "Metal", Kind: KindRandom, Max: 8},
		{ID: "hide", Label: "Hide", Kind: KindRandom, Max: 7},
		{ID: "arrowvine", Label: "Arrowvine", Kind: KindDirect},
		{ID: "axenut", Label: "Axenut", Kind: KindDirect},
		{ID: "corpsecap", Label: "Corpsecap", Kind: KindDirect},
		{ID: "flamefruit", Label: "Flamefruit", Kind: KindDirect},
		{ID: "rockroot", Label: "Rockroot", Kind: KindDirect},
		{ID: "snowthistle", Label: "Snowthistle", Kind: KindDirect},
		{ID: "random_item", Label: "Random Item", Kind: KindDirect},
	}
}

// DefaultPresets returns the built-in presets.
func DefaultPresets() []Preset {
	return []Preset{
		{Name: PresetBlank, Counts: map[string]int{}},
		{Name: PresetSample, Counts: map[string]int{
			"money":       4,
			"lumber":      2,
			"metal":       2,
			"hide":        2,
			"arrowvine":   1,
			"axenut":      1,
			"corpsecap":   1,
			"flamefruit":  1,
			"rockroot":    1,
			"snowthistle": 1,
			"random_item": 1,
		}},
	}
}

// deck expands alternating template/count pairs into a card list.
func deck(pairs ...any) []string {
	var cards []string
	for i := 0; i+1 < len(pairs); i += 2 {
		id := pairs[i].(string)
		n := pairs[i+1].(int)
		cards = append(cards, slices.Repeat([]string{id}, n)...)
	}
	return cards
}
