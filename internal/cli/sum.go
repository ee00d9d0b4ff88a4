package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/satmihir/smchash"
	"github.com/satmihir/smchash/internal/hasher"
)

const stdinName = "-"

type sumOptions struct {
	algo       string
	seed       uint64Flag
	secretSeed uint64Flag
	workers    int
}

func newSumCommand(deps Deps) *cobra.Command {
	var opts sumOptions

	cmd := &cobra.Command{
		Use:   "sum [files...]",
		Short: "Print 64-bit digests of files, or of stdin when no file is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSum(cmd, deps, &opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.algo, "algo", deps.Config.Algorithm, "hash algorithm: smchash, xxh3 or xxhash")
	cmd.Flags().Var(&opts.seed, "seed", "hash seed (default: the algorithm's unseeded entry point)")
	cmd.Flags().Var(&opts.secretSeed, "secret-seed", "derive a custom smchash secret table from this seed")
	cmd.Flags().IntVar(&opts.workers, "workers", deps.Config.Workers, "files hashed concurrently")
	return cmd
}

func runSum(cmd *cobra.Command, deps Deps, opts *sumOptions, args []string) error {
	algo, err := hasher.ParseAlgorithm(opts.algo)
	if err != nil {
		return err
	}
	if opts.workers < 1 {
		return fmt.Errorf("--workers must be positive, got %d", opts.workers)
	}

	hashConfig := &hasher.HashConfig{Seed: opts.seed.or(deps.Config.Seed)}
	if secretSeed := opts.secretSeed.or(deps.Config.SecretSeed); secretSeed != nil {
		if algo != hasher.AlgorithmSmcHash {
			return fmt.Errorf("a secret seed requires the %s algorithm, got %s", hasher.AlgorithmSmcHash, algo)
		}
		secret, err := generateSecret(cmd.Context(), deps, *secretSeed)
		if err != nil {
			return err
		}
		hashConfig.Secret = &secret
	}
	h, err := hasher.New(algo, hashConfig)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{stdinName}
	}
	digests, err := hashAll(cmd.Context(), deps.Fs, cmd.InOrStdin(), h, opts.workers, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, name := range args {
		if _, err := fmt.Fprintf(out, "%016x  %s\n", digests[i], name); err != nil {
			return err
		}
	}
	deps.Log.Debugw("hashed inputs", "count", len(args), "algorithm", algo, "workers", opts.workers)
	return nil
}

// hashAll hashes every named input with at most workers files in flight. Results keep
// argument order. Stdin is read at most once.
func hashAll(ctx context.Context, fs afero.Fs, stdin io.Reader, h hasher.Hash64, workers int, names []string) ([]uint64, error) {
	digests := make([]uint64, len(names))

	var stdinData []byte
	for _, name := range names {
		if name == stdinName {
			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("reading stdin: %w", err)
			}
			stdinData = data
			break
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if name == stdinName {
				digests[i] = h.Hash64(stdinData)
				return nil
			}
			data, err := afero.ReadFile(fs, name)
			if err != nil {
				return fmt.Errorf("reading %s: %w", name, err)
			}
			digests[i] = h.Hash64(data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return digests, nil
}

// generateSecret runs the bounded secret search with the configured limits and logs
// when the requested seed had to be replaced.
func generateSecret(ctx context.Context, deps Deps, seed uint64) (smchash.Secret, error) {
	return generateSecretWith(ctx, deps, seed, smchash.SecretRetryConfig{
		MaxAttempts:    deps.Config.SecretAttempts,
		AttemptTimeout: deps.Config.SecretTimeout,
	})
}

func generateSecretWith(ctx context.Context, deps Deps, seed uint64, retry smchash.SecretRetryConfig) (smchash.Secret, error) {
	secret, used, err := smchash.MakeSecretContext(ctx, seed, retry,
		smchash.WithSecretLogger(deps.Log.Desugar()))
	if err != nil {
		return smchash.Secret{}, fmt.Errorf("generating secret from seed %d: %w", seed, err)
	}
	if used != seed {
		deps.Log.Warnw("secret generated from a derived seed", "requested", seed, "seed", used)
	}
	return secret, nil
}
