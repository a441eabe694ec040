// Package cli implements the flossctl command line: palette browsing, collection
// management and nearest-blend search through the flossdex SDK.
package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	flossdex "github.com/kailas-cloud/flossdex/pkg/sdk"
)

// globalFlags are shared by every command that opens a client.
type globalFlags struct {
	palettePath   string
	valkeyAddr    string
	redisAddr     string
	password      string
	maxCandidates uint64
	timeout       time.Duration
}

func (g *globalFlags) clientOptions() []flossdex.Option {
	opts := []flossdex.Option{
		flossdex.WithPaletteFile(g.palettePath),
		flossdex.WithMaxCandidates(g.maxCandidates),
		flossdex.WithTimeout(g.timeout),
	}
	switch {
	case g.valkeyAddr != "":
		opts = append(opts, flossdex.WithValkey(g.valkeyAddr, g.password))
	case g.redisAddr != "":
		opts = append(opts, flossdex.WithRedis(g.redisAddr, g.password))
	default:
		opts = append(opts, flossdex.WithMemory())
	}
	return opts
}

// openClient creates an SDK client; the caller closes it.
func (g *globalFlags) openClient(ctx context.Context) (*flossdex.Client, error) {
	return flossdex.New(ctx, g.clientOptions()...) //nolint:wrapcheck // SDK errors are already prefixed
}

// NewRootCmd builds the flossctl command tree.
func NewRootCmd(version string) *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "flossctl",
		Short: "Find embroidery floss blends that match a reference color",
		Long: `flossctl searches a floss palette for the single flosses and blends of
several flosses whose mixed color comes closest (CIEDE2000) to a reference floss.
Searches run locally; collections are kept in Valkey/Redis when an address is given.`,
		Version: version,
		// SilenceUsage is set to true to prevent printing usage message on errors
		// handled by us (e.g. unknown colors, rejected searches)
		SilenceUsage: true,
	}
	root.SetVersionTemplate(`{{printf "flossctl version %s\n" .Version}}`)

	pf := root.PersistentFlags()
	pf.StringVar(&g.palettePath, "palette", "", "palette data file (default: bundled DMC palette)")
	pf.StringVar(&g.valkeyAddr, "valkey", "", "Valkey address for collections (host:port)")
	pf.StringVar(&g.redisAddr, "redis", "", "Redis address for collections (host:port)")
	pf.StringVar(&g.password, "password", os.Getenv("FLOSSDEX_DB_PASSWORD"), "database password")
	pf.Uint64Var(&g.maxCandidates, "max-candidates", 2_000_000, "reject searches scoring more blends (0 = no limit)")
	pf.DurationVar(&g.timeout, "timeout", 0, "abort searches after this long (0 = no limit)")
	root.MarkFlagsMutuallyExclusive("valkey", "redis")

	root.AddCommand(newPaletteCmd(g))
	root.AddCommand(newNearestCmd(g))
	root.AddCommand(newCollectionsCmd(g))
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs flossctl and returns the process exit code.
func Execute(version string) int {
	if err := NewRootCmd(version).Execute(); err != nil {
		// Cobra prints the error, we just exit non-zero
		return 1
	}
	return 0
}
