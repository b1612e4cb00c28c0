// Package bloglist provides the bloglist command entrypoint.
package bloglist

import (
	"context"
	"flag"
	"fmt"

	platformcmd "github.com/reettakoskinen/fullstack-part5/internal/platform/cmd"
	"github.com/reettakoskinen/fullstack-part5/internal/services/bloglist/app"
	"github.com/reettakoskinen/fullstack-part5/internal/services/bloglist/token"
)

// Config holds bloglist command configuration. Environment values fill
// in defaults; flags override them.
type Config struct {
	Port       int    `env:"BLOGLIST_PORT" envDefault:"3003"`
	DBPath     string `env:"BLOGLIST_DB_PATH" envDefault:"bloglist.db"`
	TestRoutes bool   `env:"BLOGLIST_TEST_ROUTES" envDefault:"false"`
}

// ParseConfig parses environment defaults and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	fs.IntVar(&cfg.Port, "port", 3003, "The bloglist HTTP server port")
	fs.StringVar(&cfg.DBPath, "db-path", "bloglist.db", "Path to the bloglist SQLite database")
	fs.BoolVar(&cfg.TestRoutes, "test-routes", false, "Expose the database reset route for end-to-end tests")
	if err := platformcmd.ParseConfigFromArgs(&cfg, fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the bloglist server with telemetry configured.
func Run(ctx context.Context, cfg Config) error {
	tokenCfg, err := token.LoadConfigFromEnv(nil)
	if err != nil {
		return fmt.Errorf("load token config: %w", err)
	}
	return platformcmd.RunWithTelemetry(ctx, platformcmd.ServiceBloglist, func(ctx context.Context) error {
		return app.Run(ctx, app.RuntimeConfig{
			Port:       cfg.Port,
			DBPath:     cfg.DBPath,
			TestRoutes: cfg.TestRoutes,
			Token:      tokenCfg,
		})
	})
}
