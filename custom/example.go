package custom

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"conputodo.GO/api"
	"conputodo.GO/cmd"
	"conputodo.GO/config"
	gqlregistry "conputodo.GO/graphql/registry"
)

// Extension-point example: one registration per registry. Copy this
// package to add store-specific behavior without touching the core.
func init() {
	// GraphQL extension: _extension(name: "ping")
	gqlregistry.Register("ping", func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return map[string]string{"pong": "ok"}, nil
	})

	// CLI command
	cmd.Register(&cobra.Command{
		Use:   "custom:hello",
		Short: "Custom command example",
		Run: func(c *cobra.Command, args []string) {
			config.LoadAppConfig()
			fmt.Println("Hello from", config.AppConfig.AppName)
		},
	})

	// HTTP route
	api.RegisterGET("/custom/ping", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"pong": "ok"})
	})
}
