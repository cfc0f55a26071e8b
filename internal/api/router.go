package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SASASDAa/tgsg-sub000/internal/constants"
)

// NewRouter wires every route under /api.
func NewRouter(h *GameHandler, issuer *SessionIssuer) *gin.Engine {
	router := gin.Default()

	// healthcheck target
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{constants.JSONKeyStatus: "ok"})
	})

	auth := NewAuthHandler(h, issuer)
	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteVersion, Version)
		apiRoutes.GET(constants.RouteCards, h.ListCards)
		apiRoutes.GET(constants.RouteLeaderboard, h.ListLeaderboard)
		apiRoutes.POST(constants.RouteAuthSession, auth.CreateSession)

		protected := apiRoutes.Group("")
		protected.Use(AuthRequired(issuer))

		protected.GET(constants.RouteProfile, h.GetProfile)
		protected.POST(constants.RouteProfile, h.UpdateProfile)
		protected.GET(constants.RouteDecks, h.ListDecks)
		protected.POST(constants.RouteDecks, h.SaveDeck)
		protected.POST(constants.RouteDeckActivate, h.ActivateDeck)

		protected.POST(constants.RouteMatchesBot, h.StartBotMatch)
		protected.POST(constants.RouteMatchesFind, h.FindMatch)
		protected.GET(constants.RouteMatchesHistory, h.ListHistory)
		protected.GET(constants.RouteMatchByID, h.GetMatch)
		protected.POST(constants.RouteMatchActions, h.SubmitAction)
		protected.POST(constants.RouteMatchConcede, h.Concede)
		protected.GET(constants.RouteMatchStream, h.StreamMatch)
	}
	return router
}
