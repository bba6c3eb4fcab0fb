package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nwd-labs/nwd1/internal/cliconfig"
)

const helpDescription = `
nwd1relay serves and exercises the nwd1 frame protocol over QUIC.

Each QUIC stream carries length-prefixed binary frames; the relay answers
them by registered handler or by echo. Configure via file, env (NWD1_*),
or flags.
`

var exampleUsage = strings.TrimSpace(`
  nwd1relay serve --cert server.crt --key server.key
  nwd1relay serve --config ~/.nwd1/config.toml --watch
  nwd1relay ping localhost:7343 --insecure --payload hello
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "nwd1relay",
		Short:   "nwd1 frame relay over QUIC",
		Long:    strings.TrimSpace(helpDescription),
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newPingCmd())

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("nwd1relay")
		os.Exit(1)
	}
}
