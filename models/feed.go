package models

import "time"

// FeedEvent is one append-only activity log entry. Entries are produced by
// the verticals through mq.Emit and persisted by the feed worker.
type FeedEvent struct {
	FeedID    string    `json:"feedId" bson:"feedId"`
	Kind      string    `json:"kind" bson:"kind"`     // trade, loan, donation, event, tournament, bill
	Action    string    `json:"action" bson:"action"` // created, approved, completed, ...
	ActorUID  string    `json:"actorUid" bson:"actorUid"`
	RefID     string    `json:"refId" bson:"refId"`
	Message   string    `json:"message" bson:"message"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}
