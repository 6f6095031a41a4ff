package component

// Scoreboard mirrors the score and level for the HUD.
type Scoreboard struct {
	Score        int
	Level        int
	RenderedText string
}

var ScoreboardComponent = NewComponent[Scoreboard]()
