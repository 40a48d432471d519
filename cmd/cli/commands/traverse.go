package commands

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/celestiaorg/hypermedia/pkg/hypermedia"
)

func init() {
	addTraverseFlags(linksCmd)
	addTraverseFlags(followCmd)
}

func addTraverseFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP(flagParam, "p", nil, "URI template parameter as key=value")
}

var linksCmd = &cobra.Command{
	Use:   "links [rel...]",
	Short: "List the links of the resource reached by following rels",
	RunE: func(cmd *cobra.Command, rels []string) error {
		params, err := templateParams(cmd)
		if err != nil {
			return err
		}

		doc, err := traverson.Follow(rels...).WithTemplateParameters(params).ToDocument(cmd.Context())
		if err != nil {
			return fmt.Errorf("error following links: %w", err)
		}

		prettyJSON, err := json.MarshalIndent(hypermedia.PlainLinks(doc.Links), "", "  ")
		if err != nil {
			return fmt.Errorf("error formatting response: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(prettyJSON))
		return nil
	},
}

var followCmd = &cobra.Command{
	Use:   "follow rel...",
	Short: "Follow rels from the entry point and print the final resource",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, rels []string) error {
		params, err := templateParams(cmd)
		if err != nil {
			return err
		}

		body, _, err := traverson.Follow(rels...).WithTemplateParameters(params).ToBytes(cmd.Context())
		if err != nil {
			return fmt.Errorf("error following links: %w", err)
		}

		var out bytes.Buffer
		if err := json.Indent(&out, body, "", "  "); err != nil {
			return fmt.Errorf("error formatting response: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out.String())
		return nil
	},
}
