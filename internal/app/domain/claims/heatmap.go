package claims

import (
	ahocorasick "github.com/petar-dambovaliev/aho-corasick"

	"github.com/FACorreiaa/go-claims-templui/internal/app/models"
)

type Region string

const (
	RegionWindscreen Region = "windscreen"
	RegionBonnet     Region = "bonnet"
	RegionBumper     Region = "bumper"
	RegionDoor       Region = "door"
)

// Regions lists heatmap regions in drawing order.
var Regions = []Region{RegionWindscreen, RegionBonnet, RegionBumper, RegionDoor}

var regionKeywords = []struct {
	keyword string
	region  Region
}{
	{"windscreen", RegionWindscreen},
	{"bonnet", RegionBonnet},
	{"hood", RegionBonnet},
	{"bumper", RegionBumper},
	{"door", RegionDoor},
}

// Heatmap marks which car regions appear in the damaged parts.
type Heatmap map[Region]bool

func (h Heatmap) Damaged(r Region) bool {
	return h[r]
}

var matcher = newMatcher()

func newMatcher() ahocorasick.AhoCorasick {
	patterns := make([]string, len(regionKeywords))
	for i, k := range regionKeywords {
		patterns[i] = k.keyword
	}
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchKind:            ahocorasick.LeftMostLongestMatch,
		DFA:                  true,
	})
	return builder.Build(patterns)
}

// HeatmapFor scans part names case-insensitively for region keywords.
func HeatmapFor(items []models.LineItem) Heatmap {
	h := make(Heatmap)
	for _, item := range items {
		for _, m := range matcher.FindAll(item.Part) {
			h[regionKeywords[m.Pattern()].region] = true
		}
	}
	return h
}
