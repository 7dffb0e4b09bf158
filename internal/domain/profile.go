package domain

// UserProfile is the slice of a user's activity the battle system personalizes against
type UserProfile struct {
	Username            string   `json:"username"`
	Email               string   `json:"email,omitempty"`
	Level               Level    `json:"level"`
	TotalScore          int      `json:"total_score"`
	Languages           []string `json:"languages,omitempty"`
	FocusAreas          []string `json:"focus_areas,omitempty"`
	RecentTopics        []string `json:"recent_topics,omitempty"`
	CompletedChallenges int      `json:"completed_challenges"`
}

// PrimaryLanguage returns the user's most used language, defaulting to javascript
func (p *UserProfile) PrimaryLanguage() string {
	if len(p.Languages) > 0 {
		return p.Languages[0]
	}
	return "javascript"
}
