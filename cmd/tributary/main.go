// Copyright (C) 2025, Lux Industries, Inc.
// See the file LICENSE for licensing terms.

// Command tributary inspects Tributary validator-set specs.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/luxfi/geth/common/hexutil"
	"github.com/luxfi/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/luxfi/tributary"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	if err := newRootCmd(log.Root()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	log log.Logger
	v   *viper.Viper
}

// withSpec runs fn against the spec selected by the command's flags.
func (a *app) withSpec(fn func(cmd *cobra.Command, spec *tributary.Spec) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		spec, err := loadSpec(a.v)
		if err != nil {
			return err
		}
		a.log.Debug(
			"loaded spec",
			log.Stringer("genesis", spec.Genesis()),
			log.Stringer("set", spec.Set()),
		)
		return fn(cmd, spec)
	}
}

func newRootCmd(logger log.Logger) *cobra.Command {
	a := &app{log: logger}

	rootCmd := &cobra.Command{
		Use:   "tributary",
		Short: "Tributary validator-set directory CLI",
		Long: `Inspect the validator-set directory of a Tributary: its genesis, BFT
threshold, and the participant indices each weighted validator owns,
optionally with some validators removed.`,
		Version:       fmt.Sprintf("%s (built %s)", version, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			a.v, err = buildViper(cmd.Flags())
			return err
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(ConfigFileKey, "", "JSON config file providing any of these flags")
	flags.String(SpecFileKey, "", "JSON spec file")
	flags.String(SpecKey, "", "Persisted spec (hex)")
	flags.StringSlice(RemovedKey, nil, "Keys of removed validators (hex)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "genesis",
		Short: "Print the genesis of the Tributary",
		RunE: a.withSpec(func(cmd *cobra.Command, spec *tributary.Spec) error {
			genesis := spec.Genesis()
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", tributary.GenesisHash(genesis).Hex())
			return nil
		}),
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "threshold",
		Short: "Print the total weight and threshold",
		RunE: a.withSpec(func(cmd *cobra.Command, spec *tributary.Spec) error {
			removed, err := removedKeys(a.v)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "n: %d\n", spec.N())
			fmt.Fprintf(out, "live: %d\n", spec.TotalWeight(removed))
			fmt.Fprintf(out, "t: %d\n", spec.Threshold())
			return nil
		}),
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "ranges",
		Short: "Print the participant range of every validator",
		RunE: a.withSpec(func(cmd *cobra.Command, spec *tributary.Spec) error {
			removed, err := removedKeys(a.v)
			if err != nil {
				return err
			}
			removal := spec.Removal(removed)
			out := cmd.OutOrStdout()
			for _, validator := range spec.Validators() {
				r, ok := removal.IndexRange(validator.Key)
				if !ok {
					fmt.Fprintf(out, "%s removed\n", validator.Key)
					continue
				}
				fmt.Fprintf(out, "%s %s\n", validator.Key, r)
			}
			return nil
		}),
	})

	lookupCmd := &cobra.Command{
		Use:   "lookup",
		Short: "Print the validator owning a participant index",
		RunE: a.withSpec(func(cmd *cobra.Command, spec *tributary.Spec) error {
			removed, err := removedKeys(a.v)
			if err != nil {
				return err
			}
			index := a.v.GetUint16(IndexKey)
			key, ok := spec.ValidatorForIndex(removed, tributary.Participant(index))
			if !ok {
				return fmt.Errorf("no live validator owns participant %d", index)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", key)
			return nil
		}),
	}
	lookupCmd.Flags().Uint16(IndexKey, 0, "Participant index (1-based)")
	rootCmd.AddCommand(lookupCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "encode",
		Short: "Print the persisted form of the spec (hex)",
		RunE: a.withSpec(func(cmd *cobra.Command, spec *tributary.Spec) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", hexutil.Encode(spec.Bytes()))
			return nil
		}),
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "decode",
		Short: "Print the spec as JSON",
		RunE: a.withSpec(func(cmd *cobra.Command, spec *tributary.Spec) error {
			b, err := json.MarshalIndent(spec, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", b)
			return nil
		}),
	})

	return rootCmd
}
