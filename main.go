package main

import (
	"context"
	"fmt"
	"time"

	"mediavault/media-api/api"
	"mediavault/media-api/config"
	"mediavault/media-api/service"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	a, err := api.NewRouter()
	if err != nil {
		panic(err)
	}

	if viper.GetBool("sweep.enabled") {
		sweeper := service.NewSweeper(
			a.Catalog,
			a.Blobs.Root(),
			time.Duration(viper.GetInt("sweep.min_age_minutes"))*time.Minute,
		)

		sched := cron.New()
		_, err = sched.AddFunc(viper.GetString("sweep.schedule"), func() {
			removed, err := sweeper.Run(context.Background())
			if err != nil {
				zap.L().Error("Orphan sweep failed", zap.Error(err))
				return
			}

			if removed > 0 {
				zap.L().Info("Orphan sweep finished", zap.Int("removed", removed))
			}
		})
		if err != nil {
			panic(err)
		}

		sched.Start()
	}

	zap.L().Info("Server starting")

	err = a.Router.Run(fmt.Sprintf(":%d", viper.GetInt("host.port")))
	if err != nil {
		panic(err)
	}
}
