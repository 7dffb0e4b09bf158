package domain

// Level is a developer progression level
type Level string

const (
	LevelRookie    Level = "ROOKIE"
	LevelExplorer  Level = "EXPLORER"
	LevelBuilder   Level = "BUILDER"
	LevelCraftsman Level = "CRAFTSMAN"
	LevelArchitect Level = "ARCHITECT"
	LevelWizard    Level = "WIZARD"
	LevelLegend    Level = "LEGEND"
	LevelTitan     Level = "TITAN"
)

// LevelOrder lists all levels from lowest to highest
var LevelOrder = []Level{
	LevelRookie,
	LevelExplorer,
	LevelBuilder,
	LevelCraftsman,
	LevelArchitect,
	LevelWizard,
	LevelLegend,
	LevelTitan,
}

// LevelInfo holds display metadata for a level
type LevelInfo struct {
	Name     string `json:"name"`
	Emoji    string `json:"emoji"`
	MinScore int    `json:"min_score"`
	MaxScore int    `json:"max_score"`
}

var levelInfo = map[Level]LevelInfo{
	LevelRookie:    {Name: "Code Rookie", Emoji: "🌱", MinScore: 0, MaxScore: 99},
	LevelExplorer:  {Name: "Code Explorer", Emoji: "🔍", MinScore: 100, MaxScore: 249},
	LevelBuilder:   {Name: "Code Builder", Emoji: "🔨", MinScore: 250, MaxScore: 499},
	LevelCraftsman: {Name: "Code Craftsman", Emoji: "⚒️", MinScore: 500, MaxScore: 999},
	LevelArchitect: {Name: "Code Architect", Emoji: "🏗️", MinScore: 1000, MaxScore: 1999},
	LevelWizard:    {Name: "Code Wizard", Emoji: "🧙", MinScore: 2000, MaxScore: 3999},
	LevelLegend:    {Name: "Code Legend", Emoji: "👑", MinScore: 4000, MaxScore: 7999},
	LevelTitan:     {Name: "Code Titan", Emoji: "⚡", MinScore: 8000, MaxScore: 999999},
}

// IsValid reports whether the level is one of the known levels
func (l Level) IsValid() bool {
	_, ok := levelInfo[l]
	return ok
}

// Info returns display metadata for the level
func (l Level) Info() LevelInfo {
	return levelInfo[l]
}

// Index returns the zero-based position of the level in the progression, or -1 if unknown
func (l Level) Index() int {
	for i, lvl := range LevelOrder {
		if lvl == l {
			return i
		}
	}
	return -1
}

// NextLevel returns the level above l, or false when l is the highest level
func NextLevel(l Level) (Level, bool) {
	idx := l.Index()
	if idx < 0 || idx >= len(LevelOrder)-1 {
		return "", false
	}
	return LevelOrder[idx+1], true
}
