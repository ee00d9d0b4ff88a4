package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/satmihir/smchash"
	"github.com/satmihir/smchash/internal/hasher"
	"github.com/satmihir/smchash/internal/rendezvous"
)

func newSecretCommand(deps Deps) *cobra.Command {
	var (
		seed     uint64Flag
		timeout  time.Duration
		attempts int
		validate bool
	)

	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Generate a custom secret table, one word per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var requested uint64
			if s := seed.or(deps.Config.SecretSeed); s != nil {
				requested = *s
			}

			secret, err := generateSecretWith(cmd.Context(), deps, requested, smchash.SecretRetryConfig{
				MaxAttempts:    attempts,
				AttemptTimeout: timeout,
			})
			if err != nil {
				return err
			}
			if validate {
				if err := secret.Validate(); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			for _, w := range secret {
				if _, err := fmt.Fprintf(out, "0x%016x\n", w); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().Var(&seed, "seed", "generator seed (default 0)")
	cmd.Flags().DurationVar(&timeout, "timeout", deps.Config.SecretTimeout, "deadline for each attempt, 0 for none")
	cmd.Flags().IntVar(&attempts, "attempts", deps.Config.SecretAttempts, "seeds to try before giving up, 0 for no limit")
	cmd.Flags().BoolVar(&validate, "validate", false, "re-check every table invariant before printing")
	return cmd
}

func newPrimeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prime <n>...",
		Short: "Report whether each 64-bit number is prime",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, arg := range args {
				n, err := parseUint64(arg)
				if err != nil {
					return err
				}
				verdict := "composite"
				if smchash.IsPrime(n) {
					verdict = "prime"
				}
				if _, err := fmt.Fprintf(out, "%d %s\n", n, verdict); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newRandCommand(deps Deps) *cobra.Command {
	var (
		seed  uint64Flag
		count int
	)

	cmd := &cobra.Command{
		Use:   "rand",
		Short: "Print pseudo-random 64-bit values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 0 {
				return fmt.Errorf("--count must not be negative, got %d", count)
			}
			var state uint64
			if s := seed.or(deps.Config.Seed); s != nil {
				state = *s
			}

			out := cmd.OutOrStdout()
			for i := 0; i < count; i++ {
				if _, err := fmt.Fprintf(out, "0x%016x\n", smchash.Rand(&state)); err != nil {
					return err
				}
			}
			deps.Log.Debugw("generated random values", "count", count, "state", state)
			return nil
		},
	}
	cmd.Flags().Var(&seed, "seed", "generator state (default 0)")
	cmd.Flags().IntVar(&count, "count", 10, "number of values")
	return cmd
}

func newRouteCommand(deps Deps) *cobra.Command {
	var (
		nodes string
		k     int
		algo  string
		salt  string
	)

	cmd := &cobra.Command{
		Use:   "route --nodes host:port,... <key>...",
		Short: "Print the preferred nodes for each key by rendezvous hashing",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := rendezvous.ParseNodes(nodes)
			if err != nil {
				return err
			}
			if len(parsed) == 0 {
				return fmt.Errorf("--nodes lists no nodes")
			}
			a, err := hasher.ParseAlgorithm(algo)
			if err != nil {
				return err
			}
			h, err := hasher.New(a, hasher.NewHashConfig([]byte(salt)))
			if err != nil {
				return err
			}

			router := rendezvous.NewRendezvousRouter(parsed, h)
			out := cmd.OutOrStdout()
			for _, key := range args {
				owners := router.GetNodes([]byte(key), k)
				names := make([]string, len(owners))
				for i, n := range owners {
					names[i] = n.String()
				}
				if _, err := fmt.Fprintf(out, "%s\t%s\n", key, strings.Join(names, ",")); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&nodes, "nodes", "", "comma-separated host:port list")
	cmd.Flags().IntVarP(&k, "replicas", "k", 1, "nodes to print per key")
	cmd.Flags().StringVar(&algo, "algo", deps.Config.Algorithm, "hash algorithm: smchash, xxh3 or xxhash")
	cmd.Flags().StringVar(&salt, "salt", "", "salt mixed into every score")
	_ = cmd.MarkFlagRequired("nodes")
	return cmd
}
