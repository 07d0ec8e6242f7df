package eso

// Region names used by rules below.
const (
	Menu      = "Menu"
	MainQuest = "Main Quest"

	StrosMkai       = "Stros M'kai"
	Betnikh         = "Betnikh"
	Glenumbra       = "Glenumbra"
	Stormhaven      = "Stormhaven"
	Rivenspire      = "Rivenspire"
	Bangkorai       = "Bangkorai"
	AlikrDesert     = "Alik'r Desert"
	KhenarthisRoost = "Khenarthi's Roost"
	Auridon         = "Auridon"
	Grahtwood       = "Grahtwood"
	Greenshade      = "Greenshade"
	MalabalTor      = "Malabal Tor"
	ReapersMarch    = "Reaper's March"
	BleakrockIsle   = "Bleakrock Isle"
	BalFoyen        = "Bal Foyen"
	Stonefalls      = "Stonefalls"
	Deshaan         = "Deshaan"
	Shadowfen       = "Shadowfen"
	Eastmarch       = "Eastmarch"
	TheRift         = "The Rift"
	Craglorn        = "Craglorn"
	Coldharbour     = "Coldharbour"
)

// Alliances.
const (
	AldmeriDominion    = 0
	DaggerfallCovenant = 1
	EbonheartPact      = 2
)

type zone struct {
	name       string
	exits      []string
	finalQuest string
	wayshrines []string
}

// zones is the region graph in declaration order, grouped by alliance.
var zones = []zone{
	// Daggerfall Covenant
	{StrosMkai, []string{Betnikh, Glenumbra},
		"Tip of the Spearhead",
		[]string{"Port Hunding", "Saintsport", "Sandy Grotto"}},
	{Betnikh, []string{StrosMkai, Glenumbra},
		"On to Glenumbria",
		[]string{"Stonetooth Fortress", "Carved Hills", "Eagle's Strand"}},
	{Glenumbra, []string{Betnikh, StrosMkai, Stormhaven, Bangkorai, Stonefalls, Auridon},
		"Angof the Gravesinger",
		[]string{"Daggerfall", "Lion Guard Redoubt", "Wyrd Tree"}},
	{Stormhaven, []string{Glenumbra, Rivenspire, Bangkorai, Deshaan, Grahtwood, AlikrDesert, Craglorn, Coldharbour},
		"Vaermina's Gambit",
		[]string{"Wayrest", "Koeglin Village", "Alcaire Castle"}},
	{Rivenspire, []string{Stormhaven, AlikrDesert, Greenshade, Shadowfen},
		"The Crown of Shormhelm",
		[]string{"Shornhelm", "Northpoint", "Crestshade"}},
	{Bangkorai, []string{Stormhaven, Craglorn, TheRift},
		"To Walk on far Shores",
		[]string{"Evermore", "Hallin's Stand", "Fallen Grotto"}},
	{AlikrDesert, []string{Bangkorai, Eastmarch, MalabalTor, Rivenspire, Stormhaven},
		"Restoring the Ansei Wards",
		[]string{"Sentinel", "Bergama", "Kozanset"}},

	// Aldmeri Dominion
	{KhenarthisRoost, []string{Auridon},
		"The Tempest Unleashed",
		[]string{"Mistral", "Windcatcher Plantation", "Temple of the Mourning Springs"}},
	{Auridon, []string{KhenarthisRoost, Glenumbra, Grahtwood, ReapersMarch, Stonefalls},
		"Sever All Ties",
		[]string{"Vulkhel Guard", "Skywatch", "Firsthold"}},
	{Grahtwood, []string{Auridon, Deshaan, Greenshade, Stormhaven, MalabalTor, Craglorn, Coldharbour},
		"The Orrery of Elden Root",
		[]string{"Elden Root", "Haven", "Redfur Trading Post"}},
	{Greenshade, []string{Grahtwood, MalabalTor, Rivenspire, Shadowfen},
		"Striking at the Heart",
		[]string{"Marbruk", "Woodhearth", "Greenheart"}},
	{MalabalTor, []string{Grahtwood, ReapersMarch, Greenshade, AlikrDesert, Eastmarch},
		"Restore the Silvenar",
		[]string{"Baandari Post", "Velyn Harbor", "Vulkwasten"}},
	{ReapersMarch, []string{MalabalTor, Auridon, Bangkorai, TheRift},
		"The Den of Lorkhaj",
		[]string{"Rawl'kha", "Arenthia", "Dune"}},

	// Ebonheart Pact
	{BleakrockIsle, []string{BalFoyen, Stonefalls},
		"Escape from Bleakrock",
		[]string{"Bleakrock Village", "Skyshroud Barrow", "Orkey's Hollow"}},
	{BalFoyen, []string{Stonefalls, BleakrockIsle},
		"Breaking The Tide / Zeren in Peril",
		[]string{"Dhalmora", "Fort Zeren", "Foyen Docks"}},
	{Stonefalls, []string{BalFoyen, TheRift, Deshaan, Glenumbra, BleakrockIsle, Auridon, Craglorn},
		"Salal's Final Defeat",
		[]string{"Davon's Watch", "Ebonheart", "Fort Virak"}},
	{Deshaan, []string{Stonefalls, Shadowfen, Grahtwood, Stormhaven, Coldharbour},
		"The Judgement of Veloth",
		[]string{"Mournhold", "Silent Mire", "Tal'Deic Grounds"}},
	{Shadowfen, []string{Deshaan, Eastmarch, Greenshade, Rivenspire},
		"The Dream of the Hist",
		[]string{"Stormhold", "Alten Corimont", "Percolating Mire"}},
	{Eastmarch, []string{TheRift, AlikrDesert, MalabalTor, Shadowfen, Auridon},
		"Songs of Sovngarde",
		[]string{"Windhelm", "Fort Amol", "Voljar Meadery"}},
	{TheRift, []string{Eastmarch, Stonefalls},
		"Stomping Sinmur",
		[]string{"Riften", "Nimalten", "Shor's Stone"}},

	// Shared zones
	{Craglorn, []string{Bangkorai, Grahtwood, Stormhaven, Stonefalls},
		"The Time-Lost Warrior",
		[]string{"Belkarth", "Dragonstar", "Spellscar"}},
	{Coldharbour, []string{MainQuest},
		"The Final Assault",
		[]string{"The Hollow City", "Court of Contempt", "Moonless Walk"}},
}

// questPrereqs lists zones whose final quest also needs other zones.
var questPrereqs = map[string][]string{
	StrosMkai:     {Betnikh},
	BleakrockIsle: {BalFoyen},
	Betnikh:       {StrosMkai, Glenumbra},
	BalFoyen:      {BleakrockIsle},
}

// starts maps each alliance to its starting zone.
var starts = []struct {
	id    int
	name  string
	start string
}{
	{AldmeriDominion, "Aldmeri Dominion", KhenarthisRoost},
	{DaggerfallCovenant, "Daggerfall Covenant", StrosMkai},
	{EbonheartPact, "Ebonheart Pact", BleakrockIsle},
}

// craglornExits open only for the alliance whose territory they lead into.
var craglornExits = []struct {
	to     string
	branch int
}{
	{Grahtwood, AldmeriDominion},
	{Stormhaven, DaggerfallCovenant},
	{Stonefalls, EbonheartPact},
}

// mainQuestLadder is the alliance main quest, in order.
var mainQuestLadder = []struct {
	name    string
	regions map[int][]string
}{
	{"The Harborage", tier1},
	{"Daughter of Giants", tier1},
	{"Chasing Shadows", tier1},
	{"Castle of the Worm", tier1},
	{"The Tharn Speaks", tier2},
	{"Halls of Torment", tier2},
	{"Valley of Blades", tier2},
	{"Shadow of Sancre Tor", tier2},
	{"Council of the Five Companions", tier2},
	{"Messages Across Tamriel", tier3},
	{"The Weight of Three Crowns", tier4},
	{"God of Schemes", tier4},
}

var (
	tier1 = map[int][]string{
		AldmeriDominion:    {Auridon},
		DaggerfallCovenant: {Glenumbra},
		EbonheartPact:      {Stonefalls},
	}
	tier2 = map[int][]string{
		AldmeriDominion:    {Auridon, Grahtwood},
		DaggerfallCovenant: {Glenumbra, Stormhaven},
		EbonheartPact:      {Stonefalls, Deshaan},
	}
	tier3 = map[int][]string{
		AldmeriDominion:    {Auridon, Grahtwood, Stormhaven, Deshaan},
		DaggerfallCovenant: {Glenumbra, Stormhaven, Grahtwood, Deshaan},
		EbonheartPact:      {Stonefalls, Deshaan, Grahtwood, Stormhaven},
	}
	tier4 = map[int][]string{
		AldmeriDominion:    {Auridon, Grahtwood, Stormhaven, Deshaan, Coldharbour},
		DaggerfallCovenant: {Glenumbra, Stormhaven, Grahtwood, Deshaan, Coldharbour},
		EbonheartPact:      {Stonefalls, Deshaan, Grahtwood, Stormhaven, Coldharbour},
	}
)
