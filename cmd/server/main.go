package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Deepthi1510/department-association/internal/config"
	"github.com/Deepthi1510/department-association/internal/database"
	"github.com/Deepthi1510/department-association/internal/handler"
	"github.com/Deepthi1510/department-association/internal/middleware"
	"github.com/Deepthi1510/department-association/internal/queue"
	"github.com/Deepthi1510/department-association/internal/repository"
	"github.com/Deepthi1510/department-association/internal/router"
)

func main() {
	// Load .env when present; in containers the environment is set
	// directly and the file is absent.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	userRepo := repository.NewUserRepo(db)
	assocRepo := repository.NewAssociationRepo(db)
	facultyRepo := repository.NewFacultyRepo(db)
	studentRepo := repository.NewStudentRepo(db)
	eventRepo := repository.NewEventRepo(db)
	activityRepo := repository.NewActivityRepo(db)
	memberRepo := repository.NewMemberRepo(db)
	adviserRepo := repository.NewAdviserRepo(db)
	winnerRepo := repository.NewWinnerRepo(db)
	regRepo := repository.NewRegistrationRepo(db)

	authH := handler.NewAuthHandler(cfg, userRepo)
	browseH := handler.NewBrowseHandler(assocRepo, eventRepo, regRepo, winnerRepo)
	studentH := handler.NewStudentHandler(regRepo, activityRepo, eventRepo, studentRepo)
	memberH := handler.NewMemberHandler(memberRepo, eventRepo, activityRepo, regRepo)
	facultyH := handler.NewFacultyHandler(winnerRepo, activityRepo, eventRepo, adviserRepo, regRepo)
	adminH := handler.NewAdminHandler(assocRepo, facultyRepo, studentRepo, memberRepo, adviserRepo)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	// Redis backs rate limiting on all authenticated groups and
	// response caching on the browse group. A missing Redis leaves
	// both middlewares out rather than failing startup.
	var limited, browseExtra []echo.MiddlewareFunc
	if rdb := config.NewRedisClient(); rdb != nil {
		limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
		cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
		limited = []echo.MiddlewareFunc{limit}
		browseExtra = []echo.MiddlewareFunc{limit, cache}
	} else {
		log.Println("redis unavailable, rate limiting and response cache disabled")
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterBrowse(e, browseH, cfg.JWTSecret, browseExtra...)
	router.RegisterStudent(e, studentH, cfg.JWTSecret, limited...)
	router.RegisterMember(e, memberH, cfg.JWTSecret, limited...)
	router.RegisterFaculty(e, facultyH, cfg.JWTSecret, limited...)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret, limited...)

	// Consume registration.confirmed events in the background; the
	// consumer reconnects on broker failures and never stops the API.
	go func() {
		if err := queue.StartRegistrationConsumer(); err != nil {
			log.Printf("registration consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
