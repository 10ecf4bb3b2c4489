package main

import (
	"os"
	"time"

	"github.com/robfig/cron"
	config "github.com/resssoft/casefolio/configuration"
	"github.com/resssoft/casefolio/internal/auth"
	"github.com/resssoft/casefolio/internal/database"
	"github.com/resssoft/casefolio/internal/fileLogger"
	"github.com/resssoft/casefolio/internal/mediator"
	"github.com/resssoft/casefolio/internal/models"
	"github.com/resssoft/casefolio/internal/notifier"
	"github.com/resssoft/casefolio/internal/posts"
	"github.com/resssoft/casefolio/internal/repository"
	"github.com/resssoft/casefolio/internal/uploads"
	routing "github.com/resssoft/casefolio/internal/webServer"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type SystemListener struct{}

var onExit chan int

func main() {
	onExit = make(chan int)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	dispatcher := mediator.NewDispatcher()
	if err := dispatcher.Register(
		SystemListener{},
		models.AppExit,
		models.SetLogDebugMode,
		models.SetLogInfoMode); err != nil {
		log.Info().Err(err).Send()
	}

	loggerClient := fileLogger.Provide(dispatcher)
	for filename, logName := range models.LogFiles {
		if err := loggerClient.AddSource(filename, logName); err != nil {
			log.Info().Err(err).Msgf("Error open log file %s", filename)
		}
	}
	time.Sleep(time.Second)
	defer loggerClient.CloseAll()

	mongoDbApp, err := database.ProvideMongo(dispatcher)
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	postRep := repository.NewPostRepo(mongoDbApp)
	userRep := repository.NewUserRepo(mongoDbApp)

	tokens := auth.NewTokenManager(config.JwtSecret(), config.TokenTTL())
	authService := auth.NewService(userRep, tokens)
	postsService := posts.NewService(postRep, dispatcher)

	storage, err := uploads.NewStorage(config.UploadsPath(), dispatcher)
	if err != nil {
		log.Fatal().Err(err).Send()
	}

	notifier.Provide(dispatcher)

	log.Info().Msg("Prepare cron jobs")
	sweeper := uploads.NewSweeper(storage, postRep, dispatcher)
	cronJobs := cron.New()
	if err := cronJobs.AddFunc(config.UploadsSweepSchedule(), sweeper.Sweep); err != nil {
		log.Err(err).Msg("cron err")
	}
	go cronJobs.Start()

	go func() {
		if err := routing.NewRouter(dispatcher, postsService, authService, storage); err != nil {
			log.Fatal().Err(err).Send()
		}
	}()

	for code := range onExit {
		os.Exit(code)
	}
}

func (u SystemListener) Listen(eventName models.EventName, _ interface{}) {
	switch eventName {
	case models.AppExit:
		onExit <- 0
	case models.SetLogDebugMode:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case models.SetLogInfoMode:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
