package rewards

import "math"

// Level is one tier of the cat-themed progression.
type Level struct {
	Level int    `json:"level"`
	Title string `json:"title"`
	MinXP int    `json:"minXP"`
	// MaxXP is the exclusive upper bound. The top tier uses math.MaxInt.
	MaxXP int    `json:"maxXP"`
	Icon  string `json:"icon"`
}

// Top reports whether l is the unbounded final tier.
func (l Level) Top() bool { return l.MaxXP == math.MaxInt }

// Levels is the ordered tier table. Tiers are contiguous and tier 1 starts at 0.
var Levels = []Level{
	{Level: 1, Title: "Math Kitten", MinXP: 0, MaxXP: 100, Icon: "🐱"},
	{Level: 2, Title: "Curious Cat", MinXP: 100, MaxXP: 250, Icon: "😺"},
	{Level: 3, Title: "Clever Cat", MinXP: 250, MaxXP: 500, Icon: "😸"},
	{Level: 4, Title: "Smart Cat", MinXP: 500, MaxXP: 850, Icon: "😻"},
	{Level: 5, Title: "Math Cat", MinXP: 850, MaxXP: 1300, Icon: "🐈"},
	{Level: 6, Title: "Super Cat", MinXP: 1300, MaxXP: 1900, Icon: "🦁"},
	{Level: 7, Title: "Mega Cat", MinXP: 1900, MaxXP: 2600, Icon: "🐯"},
	{Level: 8, Title: "Ultra Cat", MinXP: 2600, MaxXP: 3500, Icon: "🐆"},
	{Level: 9, Title: "Math Tiger", MinXP: 3500, MaxXP: 4600, Icon: "🐅"},
	{Level: 10, Title: "Math Legend", MinXP: 4600, MaxXP: math.MaxInt, Icon: "👑"},
}

// LevelFor returns the highest tier whose MinXP is at most xp.
func LevelFor(xp int) Level {
	for i := len(Levels) - 1; i >= 0; i-- {
		if xp >= Levels[i].MinXP {
			return Levels[i]
		}
	}
	return Levels[0]
}

// XPProgress describes how far a player is through the current tier.
type XPProgress struct {
	Current    int `json:"current"`
	Needed     int `json:"needed"`
	Percentage int `json:"percentage"`
}

// Progress returns progress within the tier for xp. In the top tier
// Needed equals Current and Percentage is 100.
func Progress(xp int) XPProgress {
	lvl := LevelFor(xp)
	current := xp - lvl.MinXP
	if lvl.Top() {
		return XPProgress{Current: current, Needed: current, Percentage: 100}
	}
	needed := lvl.MaxXP - lvl.MinXP
	return XPProgress{
		Current:    current,
		Needed:     needed,
		Percentage: int(math.Round(float64(current) / float64(needed) * 100)),
	}
}
