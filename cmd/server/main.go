package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-ticket-selling/internal/booking"
	"github.com/iliyamo/cinema-ticket-selling/internal/config"
	"github.com/iliyamo/cinema-ticket-selling/internal/database"
	"github.com/iliyamo/cinema-ticket-selling/internal/handler"
	"github.com/iliyamo/cinema-ticket-selling/internal/queue"
	"github.com/iliyamo/cinema-ticket-selling/internal/repository"
	"github.com/iliyamo/cinema-ticket-selling/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env wins
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}

	engine := booking.NewEngine(repository.NewBookingStore(db))

	users := repository.NewUserRepo(db)
	tokens := repository.NewRefreshTokenRepo(db)
	cinemas := repository.NewCinemaRepo(db)
	rooms := repository.NewRoomRepo(db)
	seats := repository.NewSeatRepo(db)
	movies := repository.NewMovieRepo(db)
	casts := repository.NewCastRepo(db)
	screenings := repository.NewScreeningRepo(db)
	tickets := repository.NewTicketRepo(db)
	reviews := repository.NewReviewRepo(db)
	favorites := repository.NewFavoriteRepo(db)
	searches := repository.NewSearchHistoryRepo(db)
	stats := repository.NewStatsRepo(db)

	h := router.Handlers{
		Auth:       handler.NewAuthHandler(cfg, users, tokens),
		Users:      handler.NewUserHandler(cfg, users),
		Cinemas:    handler.NewCinemaHandler(cinemas, rooms, movies, searches),
		Rooms:      handler.NewRoomHandler(rooms, cinemas),
		Seats:      handler.NewSeatHandler(engine, seats, rooms),
		Movies:     handler.NewMovieHandler(movies, screenings, searches),
		Casts:      handler.NewCastHandler(casts, movies),
		Screenings: handler.NewScreeningHandler(engine, screenings, movies, rooms),
		Tickets:    handler.NewTicketHandler(engine, tickets, cfg.AMQPURL),
		Reviews:    handler.NewReviewHandler(reviews, movies),
		Favorites:  handler.NewFavoriteHandler(favorites, cinemas),
		Searches:   handler.NewSearchHandler(searches),
		Stats:      handler.NewStatsHandler(stats),
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, h, cfg, rdb)

	// background consumer appending booked tickets to logs/booking.log
	go func() {
		if err := queue.StartTicketConsumer(cfg.AMQPURL); err != nil {
			log.Printf("ticket-consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
