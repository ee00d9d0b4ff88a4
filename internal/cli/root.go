// Package cli implements the smchash command line.
package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/satmihir/smchash/internal/config"
)

// Deps are the collaborators shared by every command.
type Deps struct {
	Config *config.Config
	Fs     afero.Fs
	Log    *zap.SugaredLogger
}

// NewRootCommand builds the command tree. Errors are returned from Execute rather than
// printed, so the caller decides how to report them.
func NewRootCommand(deps Deps) *cobra.Command {
	if deps.Config == nil {
		deps.Config = config.Default()
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop().Sugar()
	}
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}

	root := &cobra.Command{
		Use:           "smchash",
		Short:         "Fast non-cryptographic hashing, secrets and primes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newSumCommand(deps),
		newSecretCommand(deps),
		newPrimeCommand(),
		newRandCommand(deps),
		newRouteCommand(deps),
	)
	return root
}

// NewLogger returns a development logger for EnvDev and a production one otherwise.
func NewLogger(env config.Environment) (*zap.Logger, error) {
	if env == config.EnvDev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// uint64Flag is a pflag.Value that records whether it was set. Seeds of 0 are valid, so
// the zero value cannot mean "unset".
type uint64Flag struct {
	value *uint64
}

func (f *uint64Flag) String() string {
	if f.value == nil {
		return ""
	}
	return strconv.FormatUint(*f.value, 10)
}

func (f *uint64Flag) Set(s string) error {
	v, err := parseUint64(s)
	if err != nil {
		return err
	}
	f.value = &v
	return nil
}

func (f *uint64Flag) Type() string { return "uint64" }

// or returns the flag value, else fallback.
func (f *uint64Flag) or(fallback *uint64) *uint64 {
	if f.value != nil {
		return f.value
	}
	return fallback
}

// parseUint64 accepts decimal, 0x hex, 0o octal and 0b binary.
func parseUint64(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid unsigned 64-bit integer %q", s)
	}
	return v, nil
}
