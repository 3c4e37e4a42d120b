// Package router wires the HTTP handlers and middleware onto the
// Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/cinema-ticket-selling/internal/config"
	"github.com/iliyamo/cinema-ticket-selling/internal/handler"
	"github.com/iliyamo/cinema-ticket-selling/internal/middleware"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth       *handler.AuthHandler
	Users      *handler.UserHandler
	Cinemas    *handler.CinemaHandler
	Rooms      *handler.RoomHandler
	Seats      *handler.SeatHandler
	Movies     *handler.MovieHandler
	Casts      *handler.CastHandler
	Screenings *handler.ScreeningHandler
	Tickets    *handler.TicketHandler
	Reviews    *handler.ReviewHandler
	Favorites  *handler.FavoriteHandler
	Searches   *handler.SearchHandler
	Stats      *handler.StatsHandler
}

// Register mounts all routes. Public browse routes sit behind the
// Redis response cache and rate limiter; search routes additionally
// run OptionalJWT so signed-in searches land in the history. User
// and admin groups require a valid access token.
func Register(e *echo.Echo, h Handlers, cfg config.Config, rdb *redis.Client) {
	e.GET("/healthz", handler.Health)

	// unauthenticated auth endpoints
	auth := e.Group("/v1/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.POST("/logout", h.Auth.Logout)

	// public browse: cached and rate limited
	pub := e.Group("/v1")
	pub.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	pub.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	pub.GET("/cinemas", h.Cinemas.List)
	pub.GET("/cinemas/:id", h.Cinemas.Get)
	pub.GET("/cinemas/:id/rooms", h.Cinemas.GetRooms)
	pub.GET("/cinemas/:id/movies", h.Cinemas.GetMovies)
	pub.GET("/rooms/:id", h.Rooms.Get)
	pub.GET("/rooms/:id/seats", h.Seats.List)
	pub.GET("/movies", h.Movies.List)
	pub.GET("/movies/:id", h.Movies.Get)
	pub.GET("/movies/:id/showtimes", h.Movies.Showtimes)
	pub.GET("/movies/:id/reviews", h.Reviews.ListByMovie)
	pub.GET("/movies/:id/reviews/summary", h.Reviews.Summary)
	pub.GET("/movies/:id/cast", h.Casts.ListByMovie)
	pub.GET("/casts/:id", h.Casts.Get)
	pub.GET("/screenings", h.Screenings.List)
	pub.GET("/screenings/:id", h.Screenings.Get)
	pub.GET("/screenings/:id/available-seats", h.Screenings.AvailableSeats)

	// public search: rate limited, never cached (per-user history),
	// OptionalJWT so authenticated searches are recorded
	search := e.Group("/v1")
	search.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	search.Use(middleware.OptionalJWT(cfg.JWTSecret))
	search.GET("/cinemas/search", h.Cinemas.Search)
	search.GET("/movies/search", h.Movies.Search)

	// authenticated user endpoints
	user := e.Group("/v1")
	user.Use(middleware.JWTAuth(cfg.JWTSecret))
	user.GET("/auth/me", h.Auth.Me)
	user.PUT("/auth/change-password", h.Auth.ChangePassword)
	user.PUT("/users/me", h.Users.UpdateProfile)
	user.PUT("/users/me/preferences", h.Users.UpdatePreferences)
	user.GET("/users/me/favorites", h.Favorites.ListMine)
	user.GET("/users/me/searches", h.Searches.ListMine)
	user.DELETE("/users/me/searches", h.Searches.Clear)

	user.POST("/tickets/book", h.Tickets.Book)
	user.GET("/tickets/my", h.Tickets.My)
	user.GET("/tickets/:id", h.Tickets.Get)
	user.DELETE("/tickets/:id", h.Tickets.Cancel)
	user.POST("/tickets/:id/confirm-payment", h.Tickets.ConfirmPayment)

	user.POST("/movies/:id/reviews", h.Reviews.Create)
	user.PUT("/reviews/:id", h.Reviews.Update)
	user.POST("/reviews/:id/react", h.Reviews.React)
	user.DELETE("/reviews/:id", h.Reviews.Delete)

	user.POST("/cinemas/:id/favorite", h.Favorites.Add)
	user.DELETE("/cinemas/:id/favorite", h.Favorites.Remove)
	user.GET("/cinemas/:id/favorite", h.Favorites.Check)

	// admin endpoints
	admin := e.Group("/v1")
	admin.Use(middleware.JWTAuth(cfg.JWTSecret))
	admin.Use(middleware.RequireAdmin())

	admin.POST("/cinemas", h.Cinemas.Create)
	admin.PATCH("/cinemas/:id", h.Cinemas.Update)
	admin.DELETE("/cinemas/:id", h.Cinemas.Delete)

	admin.POST("/rooms", h.Rooms.Create)
	admin.PATCH("/rooms/:id", h.Rooms.Update)
	admin.DELETE("/rooms/:id", h.Rooms.Delete)
	admin.POST("/rooms/:id/seats/bulk", h.Seats.BulkCreate)
	admin.DELETE("/rooms/:id/seats", h.Seats.DeleteAll)

	admin.POST("/movies", h.Movies.Create)
	admin.PATCH("/movies/:id", h.Movies.Update)
	admin.DELETE("/movies/:id", h.Movies.Delete)

	admin.POST("/casts", h.Casts.Create)
	admin.PATCH("/casts/:id", h.Casts.Update)
	admin.DELETE("/casts/:id", h.Casts.Delete)

	admin.GET("/users", h.Users.AdminList)
	admin.POST("/users", h.Users.AdminCreate)
	admin.PATCH("/users/:id/status", h.Users.AdminSetActive)

	admin.POST("/screenings", h.Screenings.Create)
	admin.PATCH("/screenings/:id", h.Screenings.Update)
	admin.DELETE("/screenings/:id", h.Screenings.Delete)

	admin.GET("/tickets", h.Tickets.AdminList)
	admin.PUT("/tickets/:id/status", h.Tickets.AdminSetStatus)

	admin.GET("/admin/stats", h.Stats.Get)
}
