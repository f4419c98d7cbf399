package rdx

import (
	"log"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"guildhall/db"
	"guildhall/globals"
)

// FlushDonationTotals periodically folds the hot Redis donation counters
// into the guild document. Confirmed donations bump donate:total:<kind>;
// Mongo only sees the rolled-up figure.
func FlushDonationTotals() {
	ticker := time.NewTicker(30 * time.Second)
	for range ticker.C {
		keys, err := Conn.Keys(globals.Ctx, "donate:total:*").Result()
		if err != nil {
			log.Println("Redis scan error:", err)
			continue
		}

		for _, key := range keys {
			parts := strings.Split(key, ":")
			if len(parts) != 3 {
				log.Println("Invalid donation total key:", key)
				continue
			}
			kind := parts[2]

			countStr, err := Conn.Get(globals.Ctx, key).Result()
			if err != nil {
				log.Println("Redis Get error for key", key, ":", err)
				continue
			}
			total, err := strconv.ParseInt(countStr, 10, 64)
			if err != nil {
				log.Println("Failed to parse donation total:", countStr)
				continue
			}

			var field string
			switch kind {
			case "gold":
				field = "goldDonated"
			case "cash":
				field = "cashDonated"
			default:
				log.Println("Unknown donation kind:", kind)
				continue
			}

			_, err = db.GuildCollection.UpdateOne(globals.Ctx,
				bson.M{},
				bson.M{"$set": bson.M{field: total, "updated_at": time.Now()}},
			)
			if err != nil {
				log.Println("MongoDB update error for donation total", kind, ":", err)
			}
		}
	}
}
