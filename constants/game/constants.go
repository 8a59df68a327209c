package game_constants

// Game modes selectable at creation time
const (
	ModeClassique = "classique"
	ModeBluff     = "bluff"
	ModeDuel      = "duel"
	ModeCouple    = "couple"
)

// Ambiance levels for the question pool
const (
	AmbianceSafe     = "safe"
	AmbianceIntime   = "intime"
	AmbianceNoFilter = "nofilter"
)

// Mini-game type tags. Each round runs exactly one mini-game and is
// scored by that mini-game's rule.
const (
	MiniGameKikadi   = "kikadi"   // who wrote what
	MiniGameKidivrai = "kidivrai" // truth or bluff
	MiniGameKideja   = "kideja"   // who has already...
	MiniGameKidenous = "kidenous" // most likely to...
)

// Session lifecycle status
const (
	StatusWaiting = "waiting"
	StatusActive  = "active"
	StatusEnded   = "ended"
)

// Round lifecycle status
const (
	RoundPlaying   = "playing"
	RoundCompleted = "completed"
)

// Vote type tags
const (
	VoteGuess = "guess"
	VoteBluff = "bluff"
	VoteTruth = "truth"
)

// Round count bounds enforced at game creation
const (
	MinTotalRounds = 3
	MaxTotalRounds = 15
)

// Join codes: 6 characters drawn from CodeCharset, at most
// MaxCodeAttempts collisions before game creation gives up
const (
	CodeLength      = 6
	CodeCharset     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	MaxCodeAttempts = 10
)

const MaxAnswerLength = 500

// Progression multipliers applied on top of round score deltas
const (
	XPPerPoint    = 25
	CoinsPerPoint = 10
	XPPerLevel    = 1000
)
