package donations

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"guildhall/rdx"
	"guildhall/utils"
)

type leaderboardEntry struct {
	UserID string `json:"userid"`
	Total  int64  `json:"total"`
}

// GetLeaderboard returns the top donors for a kind, straight from the Redis
// sorted set maintained on confirmation.
func GetLeaderboard(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	kind := ps.ByName("kind")
	if kind != "gold" && kind != "cash" {
		utils.RespondWithError(w, http.StatusBadRequest, "Kind must be gold or cash")
		return
	}

	results, err := rdx.Conn.ZRevRangeWithScores(r.Context(), "donations:leaderboard:"+kind, 0, 19).Result()
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch leaderboard")
		return
	}

	entries := make([]leaderboardEntry, 0, len(results))
	for _, z := range results {
		uid, _ := z.Member.(string)
		entries = append(entries, leaderboardEntry{UserID: uid, Total: int64(z.Score)})
	}
	utils.RespondWithJSON(w, http.StatusOK, entries)
}
