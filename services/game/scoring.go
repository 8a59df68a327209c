package game

import (
	"fmt"
	"log"

	game_constants "Kiadisa/constants/game"
	models "Kiadisa/models/postgres"

	"gorm.io/gorm"
)

// scoreFunc maps a closed round's answers and votes to per-player point
// deltas. Strategies are pure: no I/O, deterministic given inputs, and the
// deltas are always non-negative.
type scoreFunc func(answers []models.Answer, votes []models.Vote) map[string]int

var scoringStrategies = map[string]scoreFunc{
	game_constants.MiniGameKikadi:   scoreKikadi,
	game_constants.MiniGameKidivrai: scoreKidivrai,
	game_constants.MiniGameKideja:   scoreKideja,
	game_constants.MiniGameKidenous: scoreKidenous,
}

// ComputeRoundScores dispatches on the round's mini-game tag. Adding a
// mini-game means adding one strategy function and one tag.
func ComputeRoundScores(miniGame string, answers []models.Answer, votes []models.Vote) (map[string]int, error) {
	strategy, ok := scoringStrategies[miniGame]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMiniGame, miniGame)
	}
	return strategy(answers, votes), nil
}

// kikadi ("who wrote what"): a guess vote whose target matches the voted
// answer's true author earns the voter +1. Authors get nothing for being
// guessed or not.
func scoreKikadi(answers []models.Answer, votes []models.Vote) map[string]int {
	deltas := make(map[string]int)
	answersByID := make(map[uint]models.Answer, len(answers))
	for _, a := range answers {
		answersByID[a.ID] = a
	}
	for _, v := range votes {
		if v.VoteType != game_constants.VoteGuess {
			continue
		}
		answer, ok := answersByID[v.AnswerID]
		if ok && answer.Username == v.TargetUsername {
			deltas[v.Username]++
		}
	}
	return deltas
}

// kidivrai ("truth or bluff"): an undetected bluff earns its author +2, a
// recognized truth +1; every voter who called the answer's true nature
// earns +1.
func scoreKidivrai(answers []models.Answer, votes []models.Vote) map[string]int {
	deltas := make(map[string]int)
	for _, answer := range answers {
		bluffVotes := 0
		truthVotes := 0
		for _, v := range votes {
			if v.AnswerID != answer.ID {
				continue
			}
			switch v.VoteType {
			case game_constants.VoteBluff:
				bluffVotes++
			case game_constants.VoteTruth:
				truthVotes++
			}
		}

		if answer.IsBluff && bluffVotes == 0 {
			// Bluff succeeded
			deltas[answer.Username] += 2
		} else if !answer.IsBluff && truthVotes > bluffVotes {
			// Truth recognized
			deltas[answer.Username]++
		}

		for _, v := range votes {
			if v.AnswerID != answer.ID {
				continue
			}
			correct := (answer.IsBluff && v.VoteType == game_constants.VoteBluff) ||
				(!answer.IsBluff && v.VoteType == game_constants.VoteTruth)
			if correct {
				deltas[v.Username]++
			}
		}
	}
	return deltas
}

// kideja ("who has already..."): participation-based, every guess vote
// with a target earns the voter +1. No correctness check in this mode.
func scoreKideja(answers []models.Answer, votes []models.Vote) map[string]int {
	deltas := make(map[string]int)
	for _, v := range votes {
		if v.VoteType == game_constants.VoteGuess && v.TargetUsername != "" {
			deltas[v.Username]++
		}
	}
	return deltas
}

// kidenous ("most likely to..."): the most-voted player earns +1, and so
// does every voter who targeted them. Ties break to the target first
// reached in vote submission order, which keeps the result deterministic.
func scoreKidenous(answers []models.Answer, votes []models.Vote) map[string]int {
	deltas := make(map[string]int)
	voteCounts := make(map[string]int)
	var targetOrder []string
	for _, v := range votes {
		if v.TargetUsername == "" {
			continue
		}
		if _, seen := voteCounts[v.TargetUsername]; !seen {
			targetOrder = append(targetOrder, v.TargetUsername)
		}
		voteCounts[v.TargetUsername]++
	}

	winner := ""
	maxVotes := 0
	for _, target := range targetOrder {
		if voteCounts[target] > maxVotes {
			winner = target
			maxVotes = voteCounts[target]
		}
	}
	if winner == "" {
		return deltas
	}

	deltas[winner]++
	for _, v := range votes {
		if v.TargetUsername == winner {
			deltas[v.Username]++
		}
	}
	return deltas
}

// ApplyScoreDeltas applies the computed deltas to the session's player
// rows: score += d, xp += d*25, coins += d*10. The update is
// read-modify-write per player, not a single atomic increment; concurrent
// scorers of the same player can lose updates (overlapping rounds should
// not normally happen).
func ApplyScoreDeltas(db *gorm.DB, sessionID uint, deltas map[string]int) error {
	for username, points := range deltas {
		if points == 0 {
			continue
		}
		var player models.GamePlayer
		if err := db.Where("session_id = ? AND username = ?", sessionID, username).
			First(&player).Error; err != nil {
			return fmt.Errorf("%w: loading player %s: %v", ErrScoring, username, err)
		}

		err := db.Model(&models.GamePlayer{}).
			Where("session_id = ? AND username = ?", sessionID, username).
			Updates(map[string]interface{}{
				"score": player.Score + points,
				"xp":    player.XP + points*game_constants.XPPerPoint,
				"coins": player.Coins + points*game_constants.CoinsPerPoint,
			}).Error
		if err != nil {
			return fmt.Errorf("%w: updating player %s: %v", ErrScoring, username, err)
		}
		log.Printf("[SCORE] Player %s: +%d points (session %d)", username, points, sessionID)
	}
	return nil
}
