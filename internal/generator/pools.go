package generator

import "github.com/gitforge/bossquest/internal/domain"

// BossThemes lists the narrative themes a boss can take
var BossThemes = []string{
	"ancient-dragon",
	"cyber-overlord",
	"quantum-guardian",
	"code-demon",
	"algorithm-titan",
	"data-kraken",
	"logic-sphinx",
	"binary-phoenix",
}

// Guidelines describes the expected shape of a challenge at a given level
type Guidelines struct {
	Difficulty string
	Duration   string
	Complexity string
	CodeLength string
	FocusAreas []string
}

var guidelinesByLevel = map[domain.Level]Guidelines{
	domain.LevelExplorer: {
		Difficulty: "Medium",
		Duration:   "2-3 hours",
		Complexity: "O(n) to O(n log n)",
		CodeLength: "30-50 lines",
		FocusAreas: []string{"Basic algorithms", "Data structures", "Problem solving"},
	},
	domain.LevelBuilder: {
		Difficulty: "Medium-Hard",
		Duration:   "3-4 hours",
		Complexity: "O(n log n) preferred",
		CodeLength: "50-80 lines",
		FocusAreas: []string{"Hash maps", "Sets", "Optimization", "Edge cases"},
	},
	domain.LevelCraftsman: {
		Difficulty: "Hard",
		Duration:   "4-5 hours",
		Complexity: "O(n log n) or better",
		CodeLength: "80-120 lines",
		FocusAreas: []string{"Trees", "Graphs", "Dynamic programming", "Advanced algorithms"},
	},
	domain.LevelArchitect: {
		Difficulty: "Hard-Expert",
		Duration:   "5-6 hours",
		Complexity: "Highly optimized",
		CodeLength: "120-180 lines",
		FocusAreas: []string{"System design", "Complex algorithms", "Performance optimization"},
	},
	domain.LevelWizard: {
		Difficulty: "Expert",
		Duration:   "6-7 hours",
		Complexity: "Optimal solutions",
		CodeLength: "180-250 lines",
		FocusAreas: []string{"Advanced algorithms", "Mathematical concepts", "Innovation"},
	},
	domain.LevelLegend: {
		Difficulty: "Expert-Legendary",
		Duration:   "7-8 hours",
		Complexity: "Cutting-edge",
		CodeLength: "250-350 lines",
		FocusAreas: []string{"Research-level algorithms", "Novel approaches", "Complex systems"},
	},
	domain.LevelTitan: {
		Difficulty: "Legendary",
		Duration:   "8+ hours",
		Complexity: "Theoretical limits",
		CodeLength: "350+ lines",
		FocusAreas: []string{"Groundbreaking solutions", "Academic-level complexity", "Innovation"},
	},
}

// GuidelinesFor returns the guidelines for a target level, defaulting to
// BUILDER when the level has no dedicated entry
func GuidelinesFor(level domain.Level) Guidelines {
	if g, ok := guidelinesByLevel[level]; ok {
		return g
	}
	return guidelinesByLevel[domain.LevelBuilder]
}

var problemTypesByLevel = map[domain.Level][]string{
	domain.LevelExplorer:  {"array-manipulation", "string-processing", "basic-math", "simple-sorting", "counting-problems"},
	domain.LevelBuilder:   {"hash-maps", "two-pointers", "sliding-window", "stack-queue", "basic-recursion"},
	domain.LevelCraftsman: {"binary-search", "tree-traversal", "dynamic-programming", "graph-basics", "greedy-algorithms"},
	domain.LevelArchitect: {"advanced-dp", "graph-algorithms", "system-design", "optimization", "complex-data-structures"},
	domain.LevelWizard:    {"advanced-graphs", "mathematical-algorithms", "string-algorithms", "computational-geometry", "advanced-optimization"},
	domain.LevelLegend:    {"research-algorithms", "advanced-mathematics", "complex-optimizations", "novel-approaches", "theoretical-problems"},
	domain.LevelTitan:     {"cutting-edge-algorithms", "academic-research", "breakthrough-solutions", "theoretical-limits", "innovation-challenges"},
}

var scenariosByTheme = map[string][]string{
	"ancient-dragon":   {"treasure-hunting", "dragon-lair-navigation", "magical-spell-casting", "ancient-rune-decoding", "dragon-battle-strategy"},
	"cyber-overlord":   {"network-infiltration", "data-encryption", "system-hacking", "ai-algorithm-battle", "digital-fortress-breach"},
	"quantum-guardian": {"quantum-computation", "parallel-universe-navigation", "quantum-entanglement", "probability-manipulation", "dimensional-travel"},
	"code-demon":       {"syntax-corruption-fixing", "algorithm-debugging", "performance-optimization", "code-refactoring", "bug-elimination"},
	"algorithm-titan":  {"computational-challenges", "efficiency-optimization", "complexity-reduction", "algorithmic-innovation", "performance-mastery"},
	"data-kraken":      {"data-structure-manipulation", "information-extraction", "pattern-recognition", "data-transformation", "knowledge-synthesis"},
	"logic-sphinx":     {"logical-puzzle-solving", "reasoning-challenges", "pattern-deduction", "mathematical-proofs", "logical-optimization"},
	"binary-phoenix":   {"bit-manipulation", "binary-operations", "low-level-optimization", "memory-management", "system-programming"},
}

var constraintsByLevel = map[domain.Level][]string{
	domain.LevelExplorer:  {"1 <= n <= 100", "1 <= value <= 1000", "ASCII characters only", "Positive integers only"},
	domain.LevelBuilder:   {"1 <= n <= 1000", "1 <= value <= 10^4", "Mixed data types", "Handle negative numbers"},
	domain.LevelCraftsman: {"1 <= n <= 10^4", "1 <= value <= 10^6", "Unicode support", "Handle edge cases"},
	domain.LevelArchitect: {"1 <= n <= 10^5", "1 <= value <= 10^9", "Memory constraints", "Time complexity limits"},
	domain.LevelWizard:    {"1 <= n <= 10^6", "1 <= value <= 10^12", "Distributed systems", "Concurrent processing"},
	domain.LevelLegend:    {"1 <= n <= 10^7", "1 <= value <= 10^15", "Real-time constraints", "Fault tolerance"},
	domain.LevelTitan:     {"1 <= n <= 10^8", "1 <= value <= 10^18", "Extreme optimization", "Theoretical limits"},
}

func problemTypesFor(level domain.Level) []string {
	if types, ok := problemTypesByLevel[level]; ok {
		return types
	}
	return problemTypesByLevel[domain.LevelBuilder]
}

func scenariosFor(theme string) []string {
	if scenarios, ok := scenariosByTheme[theme]; ok {
		return scenarios
	}
	return scenariosByTheme["algorithm-titan"]
}

func constraintsFor(level domain.Level) []string {
	if constraints, ok := constraintsByLevel[level]; ok {
		return constraints
	}
	return constraintsByLevel[domain.LevelBuilder]
}
