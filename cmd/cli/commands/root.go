// Package commands implements the hal command line client
package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/celestiaorg/hypermedia/internal/api/v1/routes"
	"github.com/celestiaorg/hypermedia/internal/constants"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia/client"
	"github.com/celestiaorg/hypermedia/pkg/hypermedia/support"
)

// flag names
const (
	flagServerAddress = "server-address"
	flagType          = "type"
	flagTimeout       = "timeout"
	flagParam         = "param"
)

var (
	// traverson is the shared traversal client
	traverson *client.Traverson
	// serverAddress holds the target API server address. Flag parsing sets this.
	serverAddress string
	// typeNames are the hypermedia types the client understands
	typeNames []string
	// timeout bounds each request
	timeout time.Duration
)

// initClient builds the traversal client rooted at the API entry point
func initClient() error {
	types, err := hypermedia.ParseTypes(typeNames)
	if err != nil {
		return err
	}

	// Only the link discoverers are needed, so no adapters are registered
	hctx, err := support.Enable(support.Config{Types: types})
	if err != nil {
		return err
	}

	opts := client.DefaultOptions()
	opts.Timeout = timeout

	root := strings.TrimSuffix(serverAddress, "/") + routes.APIv1Prefix
	traverson, err = client.NewTraverson(root, hctx.LinkDiscoverers(), opts)
	return err
}

func init() {
	// PersistentPreRunE handles the env var override
	RootCmd.PersistentFlags().StringVarP(&serverAddress, flagServerAddress, "s", routes.DefaultBaseURL,
		fmt.Sprintf("Address of the API server (env: %s)", constants.EnvServerAddress))
	RootCmd.PersistentFlags().StringSliceVarP(&typeNames, flagType, "t", []string{hypermedia.HAL.String()},
		"Hypermedia types to request")
	RootCmd.PersistentFlags().DurationVar(&timeout, flagTimeout, client.DefaultTimeout, "Timeout of each request")

	RootCmd.AddCommand(linksCmd)
	RootCmd.AddCommand(followCmd)
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "hal",
	Short: "hal - A command line client for hypermedia APIs",
	Long: `hal follows link relations across a HAL API, starting at its entry point.

  hal links                       # links of the entry point
  hal links projects              # links of the projects collection
  hal follow project tasks -p id=1`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Flag > env var > default
		if !cmd.Flags().Changed(flagServerAddress) {
			if envAddr := os.Getenv(constants.EnvServerAddress); envAddr != "" {
				serverAddress = envAddr
			}
		}

		if serverAddress == "" {
			return fmt.Errorf("server address cannot be empty")
		}
		return initClient()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}

// templateParams parses key=value pairs given with --param
func templateParams(cmd *cobra.Command) (map[string]string, error) {
	pairs, err := cmd.Flags().GetStringArray(flagParam)
	if err != nil {
		return nil, fmt.Errorf("error getting %s flag: %w", flagParam, err)
	}

	params := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid template parameter %q, expected key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}
