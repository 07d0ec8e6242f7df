// Package types defines the shared data structures for world generation.
// This package contains only type definitions and constants, no logic.
package types

// Location kinds. Toggles and rule derivation key off these.
const (
	KindWayshrine  = "wayshrine"
	KindZoneQuest  = "zone quest"
	KindMainQuest  = "main quest"
	KindSideRace   = "side race"
	KindTournament = "tournament"
)

// Item classifications.
const (
	ClassProgression = "progression"
	ClassUseful      = "useful"
	ClassFiller      = "filler"
)

// GameDef holds world-level metadata.
type GameDef struct {
	Title        string
	Root         string // structural root every run starts from ("Menu")
	Hub          string // structural quest hub, "" if the world has none
	ProgressItem string // counted item gating the progression ladder
	VictoryItem  string
	Victory      string // campaign terminal location
}

// BranchDef is one choice of the starting-branch selector (an alliance).
type BranchDef struct {
	ID    int
	Name  string
	Start string // starting region
}

// RegionDef is one node of the static region graph.
type RegionDef struct {
	Name       string
	Category   string   // location category hosted here
	Exits      []string // destination region names, declaration order
	Requires   string   // item gating entry, "" if ungated
	Structural bool     // root or hub: never a pathing stepping stone
}

// LocationDef is one point-of-interest.
type LocationDef struct {
	Name     string
	Category string
	Code     int // 0 for structural placeholders without an identifier
	Kind     string
	Skills   map[string]int // level item -> required level
	Requires []string       // unlock items (tickets, keys)
}

// ItemDef is one unlockable token.
type ItemDef struct {
	Name           string
	Category       string
	Code           int
	Classification string
	Quantity       int
	Weight         int
}

// MilestoneDef is one rung of the progression ladder.
type MilestoneDef struct {
	Location string
	Regions  map[int][]string // branch -> regions that must be selected
	Index    int              // progress items needed
}

// EdgeGuard ties a declared exit to one branch.
type EdgeGuard struct {
	From     string
	To       string
	Branch   int
	WithItem bool // also require the destination's entry item
}

// Convergence gates every entrance into Region behind the progress item.
type Convergence struct {
	Region        string
	Progress      int
	BranchRegions bool // also require the branch's first-milestone region items
}

// IDBand is a numeric identifier range reserved for one content category.
// Kinds lists location kinds, or "item".
type IDBand struct {
	Name  string
	Kinds []string
	Min   int
	Max   int
}

// WorldDef is the raw declarative description of one game world.
type WorldDef struct {
	Game         GameDef
	Branches     []BranchDef
	Regions      []RegionDef
	Locations    []LocationDef
	Items        []ItemDef
	Ladder       []MilestoneDef
	FinalQuests  map[string]string   // region -> its final quest location
	QuestPrereqs map[string][]string // region -> regions its final quest needs
	Guards       []EdgeGuard
	Convergence  []Convergence
	Bands        []IDBand
}

// Objective selects what the victory token is locked to.
type Objective string

const (
	ObjectiveCampaign  Objective = "campaign"
	ObjectiveZoneQuest Objective = "zone_quest"
)

// GoalRandom asks the zone selector to draw the goal zone.
const GoalRandom = "random"

// Options is the player configuration consumed by generation.
type Options struct {
	Game         string    `yaml:"game" validate:"required"`
	Seed         int64     `yaml:"seed"`
	Branch       int       `yaml:"alliance" validate:"min=0,max=2"`
	Objective    Objective `yaml:"objective" validate:"oneof=campaign zone_quest"`
	ZoneCount    int       `yaml:"zone_count" validate:"min=0"`
	IncludeZones []string  `yaml:"include_zones" validate:"dive,required"`
	ExcludeZones []string  `yaml:"exclude_zones" validate:"dive,required"`
	GoalZone     string    `yaml:"goal_zone"`
	ZoneQuests   bool      `yaml:"zone_quests_enabled"`
	Wayshrines   bool      `yaml:"wayshrine_checks_enabled"`
	AltUnlocks   bool      `yaml:"alternate_unlocks"`
	SkillSize    int       `yaml:"skill_size" validate:"min=1,max=150"`
}

// Selection is the immutable result of the zone selector.
type Selection struct {
	Seed             int64
	Branch           int
	Objective        Objective
	Start            string
	Goal             string // "" for the campaign objective
	Terminal         string // region hosting the terminal location
	TerminalLocation string
	Required         []string // declaration order
	Selected         []string // zones, declaration order
	Structural       []string
	Warnings         []string
}

// Progress is the tiered-progression result for one selection.
type Progress struct {
	Milestones []string // achievable ladder locations, ladder order
	Cap        int      // highest achievable ladder index
}

// RequirementKind tags a Requirement.
type RequirementKind string

const (
	ReqAlways    RequirementKind = "always"
	ReqItem      RequirementKind = "item"
	ReqAllOf     RequirementKind = "all_of"
	ReqSkillTier RequirementKind = "skill_tier"
	ReqBranch    RequirementKind = "branch"
)

// Requirement is an immutable access predicate. The zero value is always true.
type Requirement struct {
	Kind   RequirementKind
	Item   string         // ReqItem
	Count  int            // ReqItem
	Terms  []Requirement  // ReqAllOf
	Skills map[string]int // ReqSkillTier: level item -> required level
	Chunk  int            // ReqSkillTier: levels per item
	Branch int            // ReqBranch: the player's branch
	Want   int            // ReqBranch: branch the guard opens for
}

// Region is a materialized node.
type Region struct {
	Name      string
	Category  string
	Locations []*Location
	Exits     []*Entrance
}

// Entrance is a materialized directed edge.
type Entrance struct {
	Name string
	From string
	To   string
	Rule Requirement
}

// Location is a materialized point-of-interest.
type Location struct {
	Name   string
	Region string
	Kind   string
	Code   int
	Rule   Requirement
	Locked string // item locked here, "" if none
}

// World is the fully wired output of one generation run.
type World struct {
	Game          string
	RunID         string
	Root          string
	Selection     Selection
	Progress      Progress
	Regions       []*Region // declaration order
	Entrances     []*Entrance
	Victory       string
	VictoryItem   string
	ProgressItem  string
	ProgressItems int // how many progress items the pool needs
	StartingItems []string
	LocationIDs   map[string]int
	ItemIDs       map[string]int
	SlotData      map[string]any
}

// Result is the output of one explorer command.
type Result struct {
	Output []string
	Trace  []string
}

// Command is the parsed representation of an explorer command.
type Command struct {
	Verb   string
	Object string // optional, original casing
	Target string // optional
	Count  int    // trailing number, 0 if none
}
