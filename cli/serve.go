// ABOUTME: Serve subcommand
// ABOUTME: Starts the JSON API gateway for the browser front end
package cli

import (
	"flag"
	"fmt"

	"github.com/harperreed/tably/web"
)

// ServeCommand starts the HTTP gateway. Flags override the loaded gateway
// config; the allow-list must be configured or nobody can log in.
func ServeCommand(cfg *web.GatewayConfig, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	port := fs.Int("port", cfg.Port, "Listen port")
	dev := fs.Bool("dev", cfg.Dev, "Development mode (session cookie without Secure)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if len(cfg.AllowedEmails) == 0 {
		return fmt.Errorf("no allowed emails configured: set TABLY_ALLOWED_EMAILS or %s", web.ConfigPath())
	}

	server := web.NewServer(web.NewAllowList(cfg.AllowedEmails), *dev)
	return server.Start(*port)
}
