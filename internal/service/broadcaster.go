package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	Publish(topic string, msgType string, payload interface{})
}

// Live topics and message types
const (
	TopicRanking      = "ranking"
	MsgRankingUpdate  = "ranking_update"
	MsgRankingRebuilt = "ranking_rebuilt"
)
