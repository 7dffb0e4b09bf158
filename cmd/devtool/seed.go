package main

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type SeedCommand struct{}

func (c *SeedCommand) Name() string {
	return "seed"
}

func (c *SeedCommand) Description() string {
	return "Seed database with demo challengers (test, staging)"
}

func (c *SeedCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: test, staging")
	}
	subcmd := args[0]

	db, err := sql.Open("pgx", databaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	switch subcmd {
	case "test":
		return c.seedProfiles(db, testProfiles)
	case "staging":
		return c.seedProfiles(db, testProfiles[:1])
	default:
		return fmt.Errorf("unknown subcommand: %s", subcmd)
	}
}

type seedProfile struct {
	username string
	doc      string
}

// Demo challengers at different levels, enough to exercise battle
// creation and the perks view locally.
var testProfiles = []seedProfile{
	{
		username: "alice",
		doc: `{"username":"alice","level":"BUILDER","total_score":420,` +
			`"languages":["go","python"],"focus_areas":["algorithms"],"recent_topics":["graphs"]}`,
	},
	{
		username: "bob",
		doc: `{"username":"bob","level":"ROOKIE","total_score":15,` +
			`"languages":["javascript"],"focus_areas":["fundamentals"],"recent_topics":[]}`,
	},
	{
		username: "carol",
		doc: `{"username":"carol","level":"ARCHITECT","total_score":3100,` +
			`"languages":["rust","go"],"focus_areas":["systems"],"recent_topics":["concurrency"]}`,
	},
}

func (c *SeedCommand) seedProfiles(db *sql.DB, profiles []seedProfile) error {
	PrintInfo("Seeding %d challenger profiles...", len(profiles))

	const upsertProfile = `
		INSERT INTO user_profiles (username, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (username) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`

	const upsertPerks = `
		INSERT INTO user_perks (username, data, version, updated_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (username) DO NOTHING`

	for _, p := range profiles {
		if _, err := db.Exec(upsertProfile, p.username, p.doc); err != nil {
			return fmt.Errorf("failed to seed profile %s: %w", p.username, err)
		}

		perksDoc := fmt.Sprintf(`{"username":%q,"stats":{},"badges":[],"titles":[],"skill_boosts":[]}`, p.username)
		if _, err := db.Exec(upsertPerks, p.username, perksDoc); err != nil {
			return fmt.Errorf("failed to seed perks for %s: %w", p.username, err)
		}
	}

	PrintSuccess("Seeds completed successfully")
	return nil
}
