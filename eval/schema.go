package eval

import (
	"fmt"

	"catan/game"
	"catan/meta"
)

// Feature identifies a base feature. Base features come first in every
// schema, so a Feature is also its index.
type Feature int

const (
	OreIncome Feature = iota
	BrickIncome
	WoodIncome
	WoolIncome
	GrainIncome
	NumRoads
	LongestRoad
	NumSettlements
	NumCities
	TurnsOverLimit
	CardsDiscarded
	Score
	HasWon
	SquaredDistance
	HasLongestRoad
	HasLargestArmy
	RoadsPerSettlement
	CitiesPerSettlement
	AccessibleResources
	ResourceSpread
	DevCardsPlayed
	PlayedKnight
	PlayedVictoryPoint
	PlayedRoadBuilding
	PlayedYearOfPlenty
	PlayedMonopoly
	NumBase
)

var baseNames = [NumBase]string{
	"ore income", "brick income", "wood income", "wool income", "grain income",
	"num roads", "longest road", "num settlements", "num cities",
	"turns over hand limit", "cards discarded",
	"score", "has won", "squared distance to end",
	"has longest road", "has largest army",
	"roads per settlement", "cities per settlement",
	"accessible resources", "resource spread",
	"dev cards played",
	"played knight", "played victory point", "played road building", "played year of plenty", "played monopoly",
}

func (f Feature) String() string {
	if f < 0 || f >= NumBase {
		return fmt.Sprintf("feature(%d)", int(f))
	}
	return baseNames[f]
}

// Income returns the income feature of a resource.
func Income(r game.Resource) Feature {
	return OreIncome + Feature(r)
}

// Played returns the played-count feature of a dev card kind.
func Played(d game.DevCard) Feature {
	return PlayedKnight + Feature(d)
}

// SlotFeature is a per-opponent adversarial feature.
type SlotFeature int

const (
	SlotScore SlotFeature = iota
	SlotDevCards
	SlotRoads
	SlotSettlements
	SlotCities
	NumSlotFeatures
)

var slotNames = [NumSlotFeatures]string{"score", "dev cards", "roads", "settlements", "cities"}

// Site is a per-seat placement count used by the positional group.
type Site int

const (
	SettlementSites Site = iota
	CitySites
	RoadSites
	NumSites
)

var siteNames = [NumSites]string{"settlement sites", "city sites", "road sites"}

// Opponents is the number of relative opponent slots. Slot k is the seat k
// places after the evaluated one.
const Opponents = meta.NUM_PLAYERS - 1

// SlotName is the display prefix of a relative slot; 0 is the evaluated seat.
func SlotName(slot int) string {
	if slot == 0 {
		return "self"
	}
	return fmt.Sprintf("opp%d", slot)
}

// Group is a block of features an extractor can include.
type Group int

const (
	GroupBase Group = iota
	GroupAdversarial
	GroupPositional
)

// Schema is the ordered list of feature names a weight vector is aligned to.
type Schema struct {
	name    string
	names   []string
	index   map[string]int
	offsets map[Group]int
}

func newSchema(name string, groups ...Group) *Schema {
	s := &Schema{name: name, index: map[string]int{}, offsets: map[Group]int{}}
	for _, g := range groups {
		s.offsets[g] = len(s.names)
		switch g {
		case GroupBase:
			s.names = append(s.names, baseNames[:]...)
		case GroupAdversarial:
			s.names = append(s.names, "offset")
			for slot := 1; slot <= Opponents; slot++ {
				for _, n := range slotNames {
					s.names = append(s.names, SlotName(slot)+" "+n)
				}
			}
		case GroupPositional:
			for slot := 0; slot <= Opponents; slot++ {
				for _, n := range siteNames {
					s.names = append(s.names, SlotName(slot)+" "+n)
				}
			}
			for _, r := range game.AllResources {
				s.names = append(s.names, r.String()+" 2:1 port")
			}
			s.names = append(s.names, "any port", "in lead")
		}
	}
	for i, n := range s.names {
		s.index[n] = i
	}
	return s
}

var (
	BasicSchema       = newSchema("basic", GroupBase)
	AdversarialSchema = newSchema("adversarial", GroupBase, GroupAdversarial)
	PositionalSchema  = newSchema("positional", GroupBase, GroupPositional)
)

// Name identifies the schema.
func (s *Schema) Name() string { return s.name }

// Len is the number of features.
func (s *Schema) Len() int { return len(s.names) }

// Names returns the feature names in index order.
func (s *Schema) Names() []string { return s.names }

// Index returns the position of a named feature.
func (s *Schema) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Has reports whether the schema includes a group.
func (s *Schema) Has(g Group) bool {
	_, ok := s.offsets[g]
	return ok
}

// SlotIndex is the position of an adversarial feature for opponent slot 1..3.
func (s *Schema) SlotIndex(slot int, f SlotFeature) int {
	return s.offsets[GroupAdversarial] + 1 + (slot-1)*int(NumSlotFeatures) + int(f)
}

// SiteIndex is the position of a site count for slot 0..3.
func (s *Schema) SiteIndex(slot int, site Site) int {
	return s.offsets[GroupPositional] + slot*int(NumSites) + int(site)
}

// PortIndex is the position of the 2:1 port flag of r.
func (s *Schema) PortIndex(r game.Resource) int {
	return s.offsets[GroupPositional] + (Opponents+1)*int(NumSites) + int(r)
}
