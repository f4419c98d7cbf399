package routes

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"guildhall/auth"
	"guildhall/donations"
	"guildhall/events"
	"guildhall/feed"
	"guildhall/guild"
	"guildhall/loans"
	"guildhall/middleware"
	"guildhall/profile"
	"guildhall/ratelim"
	"guildhall/realtime"
	"guildhall/splitbills"
	"guildhall/tournaments"
	"guildhall/trade"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/tradepic/*filepath", http.Dir("static/tradepic"))
}

func AddAuthRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(auth.Register))
	router.POST("/api/auth/login", rl.Limit(auth.Login))
	router.POST("/api/auth/logout", middleware.Authenticate(auth.Logout))
	router.POST("/api/auth/token/refresh", rl.Limit(auth.RefreshToken))
}

func AddProfileRoutes(router *httprouter.Router) {
	router.GET("/api/profile", middleware.Authenticate(profile.GetMyProfile))
	router.PUT("/api/profile", middleware.Authenticate(profile.UpdateProfile))
	router.GET("/api/profile/:userid", middleware.OptionalAuth(profile.GetProfile))
	router.POST("/api/profile/characters", middleware.Authenticate(profile.AddCharacter))
	router.DELETE("/api/profile/characters/:characterid", middleware.Authenticate(profile.RemoveCharacter))
}

func AddGuildRoutes(router *httprouter.Router) {
	router.GET("/api/guild", middleware.OptionalAuth(guild.GetGuild))
	router.PUT("/api/guild/announcement", middleware.Authenticate(guild.UpdateAnnouncement))
	router.GET("/api/guild/members", middleware.OptionalAuth(guild.ListMembers))
	router.POST("/api/guild/join", middleware.Authenticate(guild.JoinGuild))
	router.PUT("/api/guild/members/:userid/role", middleware.Authenticate(guild.SetMemberRole))
}

func AddEventRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/events", events.GetEvents)
	router.GET("/api/events/:eventid", events.GetEvent)
	router.POST("/api/events", rl.Limit(middleware.Authenticate(events.CreateEvent)))
	router.PUT("/api/events/:eventid", middleware.Authenticate(events.UpdateEvent))
	router.DELETE("/api/events/:eventid", middleware.Authenticate(events.DeleteEvent))
	router.POST("/api/events/:eventid/rsvp", middleware.Authenticate(events.RSVP))
	router.DELETE("/api/events/:eventid/rsvp", middleware.Authenticate(events.CancelRSVP))
	router.GET("/api/events/:eventid/checkin", middleware.Authenticate(events.CheckinQR))
	router.POST("/api/events/:eventid/checkin/scan", middleware.Authenticate(events.ScanCheckin))
}

func AddTradeRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/trade/merchants", trade.GetMerchants)
	router.POST("/api/trade/merchants", rl.Limit(middleware.Authenticate(trade.RegisterMerchant)))
	router.PUT("/api/trade/merchants", middleware.Authenticate(trade.UpdateMerchant))

	router.GET("/api/trade/trades", middleware.Authenticate(trade.GetTrades))
	router.GET("/api/trade/trades/:tradeid", middleware.Authenticate(trade.GetTrade))
	router.POST("/api/trade/trades", rl.Limit(middleware.Authenticate(trade.CreateTrade)))
	router.PUT("/api/trade/trades/:tradeid/status", middleware.Authenticate(trade.UpdateTradeStatus))

	router.GET("/api/trade/items", trade.GetItemListings)
	router.POST("/api/trade/items", rl.Limit(middleware.Authenticate(trade.CreateItemListing)))
	router.PUT("/api/trade/items/:itemid/close", middleware.Authenticate(trade.CloseItemListing))
}

func AddLoanRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/loans", middleware.Authenticate(loans.GetLoans))
	router.GET("/api/loans/:loanid", middleware.Authenticate(loans.GetLoan))
	router.POST("/api/loans", rl.Limit(middleware.Authenticate(loans.RequestLoan)))
	// Approval and rejection honor Idempotency-Key so double-submitting
	// leaders cannot double-decide.
	router.POST("/api/loans/:loanid/approve", middleware.Authenticate(middleware.Idempotent(loans.ApproveLoan)))
	router.POST("/api/loans/:loanid/reject", middleware.Authenticate(middleware.Idempotent(loans.RejectLoan)))
	router.POST("/api/loans/:loanid/return", middleware.Authenticate(loans.MarkReturned))
	router.POST("/api/loans/:loanid/complete", middleware.Authenticate(middleware.Idempotent(loans.CompleteLoan)))
}

func AddDonationRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/donations", middleware.OptionalAuth(donations.GetDonations))
	router.POST("/api/donations", rl.Limit(middleware.Authenticate(donations.CreateDonation)))
	router.POST("/api/donations/:donationid/confirm", middleware.Authenticate(middleware.Idempotent(donations.ConfirmDonation)))
	router.POST("/api/donations/:donationid/reject", middleware.Authenticate(middleware.Idempotent(donations.RejectDonation)))
	router.GET("/api/donations/leaderboard/:kind", donations.GetLeaderboard)
	router.GET("/api/donations/statement", middleware.Authenticate(donations.DonationStatement))
}

func AddSplitBillRoutes(router *httprouter.Router, rl *ratelim.RateLimiter) {
	router.GET("/api/splitbills", middleware.Authenticate(splitbills.GetMyBills))
	router.GET("/api/splitbills/:billid", middleware.Authenticate(splitbills.GetBill))
	router.POST("/api/splitbills", rl.Limit(middleware.Authenticate(splitbills.CreateBill)))
	router.PUT("/api/splitbills/:billid/paid", middleware.Authenticate(splitbills.MarkPaid))
	router.DELETE("/api/splitbills/:billid", middleware.Authenticate(splitbills.DeleteBill))
	router.GET("/api/splitbills/:billid/receipt", middleware.Authenticate(splitbills.BillReceipt))
}

func AddTournamentRoutes(router *httprouter.Router, hub *realtime.Hub, rl *ratelim.RateLimiter) {
	router.GET("/api/tournaments", tournaments.GetTournaments)
	router.GET("/api/tournaments/:tournamentid", tournaments.GetTournament)
	router.POST("/api/tournaments", rl.Limit(middleware.Authenticate(tournaments.CreateTournament)))
	router.POST("/api/tournaments/:tournamentid/register", middleware.Authenticate(tournaments.Register))
	router.DELETE("/api/tournaments/:tournamentid/register", middleware.Authenticate(tournaments.Unregister))
	router.POST("/api/tournaments/:tournamentid/bracket", middleware.Authenticate(tournaments.GenerateBracket))
	router.POST("/api/tournaments/:tournamentid/matches/:matchid/winner", middleware.Authenticate(tournaments.ReportWinner(hub)))
}

func AddFeedRoutes(router *httprouter.Router) {
	router.GET("/api/feed", feed.GetFeed)
	router.GET("/api/feed/user/:userid", feed.GetUserFeed)
}

func AddRealtimeRoutes(router *httprouter.Router, hub *realtime.Hub) {
	router.GET("/ws/:topic", realtime.SubscribeHandler(hub))
}
