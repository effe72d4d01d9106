package config_test

import (
	"testing"

	"github.com/linguaport/quickscore/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestNewDefaults(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New()

		convey.Convey("Then every field carries a sane default", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldNotBeEmpty)
			convey.So(cfg.AttemptCacheSize, convey.ShouldBeGreaterThan, 0)
			convey.So(cfg.SessionShardCount, convey.ShouldBeGreaterThan, 0)
			convey.So(cfg.BatchWorkers, convey.ShouldBeGreaterThan, 0)
			convey.So(cfg.MaxBatchSize, convey.ShouldBeGreaterThan, 0)
			convey.So(cfg.AssumedServerCostMS, convey.ShouldBeGreaterThan, 0)
		})
	})
}
