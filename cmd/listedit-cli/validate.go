package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-listedit/pkg/config"
	"github.com/goliatone/go-listedit/pkg/validation"
)

var errIssuesFound = errors.New("payloads have validation issues")

func newValidateCmd(root *rootOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a JSON object of widget payloads (stdin when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := root.loadPages()
			if err != nil {
				return printError(cmd.ErrOrStderr(), "load pages", err)
			}
			page, ok := store.Page(root.pageID)
			if !ok {
				return printError(cmd.ErrOrStderr(), "load pages", fmt.Errorf("page %q not found", root.pageID))
			}

			var data []byte
			if len(args) == 1 {
				data, err = os.ReadFile(args[0])
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return printError(cmd.ErrOrStderr(), "read payloads", err)
			}

			issues, err := reportIssues(cmd.ErrOrStderr(), page, data)
			if err != nil {
				return printError(cmd.ErrOrStderr(), "validate payloads", err)
			}
			if issues == 0 {
				printSuccess(cmd.OutOrStdout(), "%s payloads are valid", page.ID)
				return nil
			}
			if strict {
				return errIssuesFound
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when issues are found")
	return cmd
}

// reportIssues validates every page widget present in the payload object and
// prints its issues. Payloads are reported, never rewritten.
func reportIssues(w io.Writer, page config.Page, data []byte) (int, error) {
	validator, err := validation.Default()
	if err != nil {
		return 0, err
	}
	var payloads map[string]json.RawMessage
	if err := json.Unmarshal(data, &payloads); err != nil {
		return 0, fmt.Errorf("payloads must be a JSON object keyed by widget name: %w", err)
	}

	count := 0
	for _, widget := range page.Widgets {
		raw, ok := payloads[widget.Name]
		if !ok {
			continue
		}
		result := validator.Validate(widget.Kind, widget.Name, string(raw))
		for _, issue := range result.Issues {
			printWarning(w, "%s: %s", issue.Field, issue.Message)
			count++
		}
	}
	return count, nil
}
