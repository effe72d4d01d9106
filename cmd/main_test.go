package main

import (
	"context"
	"os"
	"testing"

	"github.com/linguaport/quickscore/internal/adapters/http/api"
	"github.com/linguaport/quickscore/internal/config"
	"github.com/linguaport/quickscore/internal/engine"
	"github.com/linguaport/quickscore/pkg/logger"
	"github.com/linguaport/quickscore/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("QUICKSCORE_ADDR", ":8080")
			_ = os.Setenv("QUICKSCORE_MAX_BATCH_SIZE", "64")
			defer func() {
				_ = os.Unsetenv("QUICKSCORE_ADDR")
				_ = os.Unsetenv("QUICKSCORE_MAX_BATCH_SIZE")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				ctx := context.Background()
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MaxBatchSize, convey.ShouldEqual, 64)
			})
		})

		convey.Convey("When testing engine creation", func() {
			convey.Convey("Then the engine should be creatable with default options", func() {
				eng := engine.New()
				convey.So(eng, convey.ShouldNotBeNil)
			})

			convey.Convey("And the engine should be creatable with custom options", func() {
				eng := engine.New(
					engine.WithAttemptCacheSize(500),
					engine.WithSessionShardCount(4),
					engine.WithBatchWorkers(2),
				)
				convey.So(eng, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			eng := engine.New()
			convey.So(eng.Start(context.Background()), convey.ShouldBeNil)

			convey.Convey("Then the HTTP server should be creatable", func() {
				server := api.NewServer(eng, eng)
				convey.So(server, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then the metrics manager should be creatable", func() {
				manager := metrics.NewManager()
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestSystemMetricsUpdater(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("When updating system metrics once", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})
	})
}
