package config

const (
	// Configuration file paths
	ConfigPathProgressionTree      = "configs/progression_tree.json"
	ConfigPathItems                = "configs/items/items.json"
	ConfigPathRecipesCrafting      = "configs/recipes/crafting.json"
	ConfigPathRecipesDisassemble   = "configs/recipes/disassemble.json"
	ConfigPathRecipesDir           = "configs/recipes/"
	ConfigPathLootTables           = "configs/loot_tables.json"
	ConfigPathItemAliases          = "configs/items/aliases.json"
	ConfigPathItemThemes           = "configs/items/themes.json"
	ConfigPathExpeditionEncounters = "configs/expedition/encounters.json"
	ConfigPathQuestPool            = "configs/quests/weekly_quest_pool.json"
	ConfigPathWeeklySales          = "configs/economy/weekly_sales.json"
)
