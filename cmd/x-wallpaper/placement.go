package main

import (
	"fmt"
	"os"

	"github.com/ItsNotGoodName/x-wallpaper/internal/placement"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func placementCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "placement",
		Short: "Print the saved window bounds",
		Args:  cobra.NoArgs,
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, options *Options) {
			store, err := openStore(options.Config)
			if err != nil {
				fatal(err)
			}
			defer store.Close()

			bounds := placement.Load(store)

			out := struct {
				placement.Bounds `yaml:",inline"`
				Width            int  `yaml:"width"`
				Height           int  `yaml:"height"`
				Empty            bool `yaml:"empty"`
			}{
				Bounds: bounds,
				Width:  bounds.Width(),
				Height: bounds.Height(),
				Empty:  bounds.Empty(),
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()
			if err := enc.Encode(out); err != nil {
				fatal(err)
			}
		}),
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Forget the saved window bounds so the next start uses the default size",
		Args:  cobra.NoArgs,
		Run: humacli.WithOptions(func(cmd *cobra.Command, args []string, options *Options) {
			store, err := openStore(options.Config)
			if err != nil {
				fatal(err)
			}
			defer store.Close()

			if err := store.Delete(placement.Keys()...); err != nil {
				fatal(err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Window placement reset")
		}),
	})

	return cmd
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
