package redis

import "github.com/mvidak/tictactoe-go/internal/model"

// Key prefixes for the different entity types
const (
	keyPrefix = "ttt:"
)

func playerKey(id model.PlayerID) string {
	return keyPrefix + "player:" + string(id)
}

func registeredPlayerKey(id model.PlayerID) string {
	return keyPrefix + "registered:" + string(id)
}

func usernameIndexKey(username string) string {
	return keyPrefix + "username:" + username
}

func gameRecordKey(id model.GameID) string {
	return keyPrefix + "game:" + string(id)
}

func moveLogKey(id model.GameID) string {
	return keyPrefix + "moves:" + string(id)
}

// finishedIndexKey is a sorted set of finished game IDs scored by finish time
const finishedIndexKey = keyPrefix + "finished"
