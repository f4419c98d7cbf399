// Package mq decouples the verticals from the activity feed: handlers emit
// events to a Redis channel and move on; a worker persists them and pushes
// them to live subscribers.
package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"guildhall/db"
	"guildhall/models"
	"guildhall/realtime"
	"guildhall/rdx"
	"guildhall/utils"
)

const feedChannel = "feed-events"

// Emit publishes a feed event. Fire-and-forget: a lost feed entry is not
// worth failing the originating request over.
func Emit(ctx context.Context, ev models.FeedEvent) {
	if ev.FeedID == "" {
		ev.FeedID = utils.GetUUID()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}

	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[Emit] marshal: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, feedChannel, data).Err(); err != nil {
		log.Printf("[Emit] publish: %v", err)
	}
}

// StartFeedWorker consumes emitted events, writes them to the feed
// collection, and broadcasts them to the websocket feed room.
func StartFeedWorker(hub *realtime.Hub) {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, feedChannel)
	ch := sub.Channel()

	log.Println("[FeedWorker] listening for feed events")

	for msg := range ch {
		var ev models.FeedEvent
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			log.Printf("[FeedWorker] bad payload: %v", err)
			continue
		}

		if _, err := db.FeedCollection.InsertOne(ctx, ev); err != nil {
			log.Printf("[FeedWorker] insert: %v", err)
			continue
		}

		hub.Broadcast("feed", []byte(msg.Payload))
	}
}
