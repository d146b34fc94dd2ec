package config

import "bubbleplot/internal/chart"

// Presets are ready-made chart specs; the data file is supplied at render
// time.
var Presets = map[string]*Chart{
	"pets": {
		Title: "pets", Width: 800, Height: 500,
		LabelField: "name",
		Select:     chart.Selections{Size: "weight", Color: "kind", XAxis: "kind", YAxis: "age"},
		Dimensions: chart.Dimensions{
			"kind": {
				Label:  "Kind",
				Domain: []string{"cat", "dog", "bird", "fish"},
				Range:  []string{"#e41a1c", "#377eb8", "#4daf4a", "#984ea3"},
			},
			"age":    {Label: "Age"},
			"weight": {Label: "Weight"},
		},
		Padding: DefaultPadding, MaxTicks: DefaultMaxTicks,
	},
	"revenue": {
		Title: "revenue", Width: 1000, Height: 600,
		LabelField: "region",
		Select:     chart.Selections{Size: "revenue", Color: "growth", XAxis: "quarter", YAxis: "revenue"},
		Dimensions: chart.Dimensions{
			"quarter": {
				Label:  "Quarter",
				Domain: []string{"q1", "q2", "q3", "q4"},
			},
			"revenue": {Label: "Revenue"},
			"growth": {
				Label: "Growth",
				Range: []string{"#2166ac", "#b2182b"},
			},
		},
		Padding: DefaultPadding, MaxTicks: DefaultMaxTicks,
	},
	"plain": {
		Title: "plain", Width: 800, Height: 500,
		Select:     chart.DefaultSelections(),
		Dimensions: chart.Dimensions{},
		Padding:    DefaultPadding, MaxTicks: DefaultMaxTicks,
	},
}

func GetPreset(name string) *Chart {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
