package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"jepdash/internal/formatter"
	"jepdash/pkg/metadata"
)

// formatCmd realigns the tables of markdown reports. It does not need the
// dataset, so it skips the root setup.
func (a *app) formatCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "format [path]",
		Short: "Realign tables in markdown reports and refresh their signature",
		Long: `Walk path (a file or a directory, default ".") and realign every
markdown table. Signed reports are re-signed. Without --write the command
only lists the files it would change and exits non-zero when there are any.`,
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			out := cmd.OutOrStdout()
			scanned, changed := 0, 0

			err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}

				if d.IsDir() {
					if strings.HasPrefix(d.Name(), ".") && path != root {
						return filepath.SkipDir
					}

					return nil
				}

				if !strings.EqualFold(filepath.Ext(path), ".md") {
					return nil
				}

				scanned++

				wasChanged, err := formatFile(path, write)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}

				if wasChanged {
					changed++

					fmt.Fprintln(out, path)
				}

				return nil
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "%d scanned, %d changed\n", scanned, changed)

			if changed > 0 && !write {
				return fmt.Errorf("%d files need formatting (run with --write)", changed)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write changes back to the files")

	return cmd
}

func formatFile(path string, write bool) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	original := strings.TrimRight(string(content), "\n")

	formatted, err := formatter.FormatMarkdown(original)
	if err != nil {
		return false, err
	}

	if !needsFormat(original, formatted) {
		return false, nil
	}

	if write {
		if err := os.WriteFile(path, []byte(formatted+"\n"), 0644); err != nil {
			return false, err
		}
	}

	return true, nil
}

// needsFormat compares contents without their metadata blocks, since
// signing always refreshes the timestamp. A signed file whose hash no
// longer matches also needs rewriting.
func needsFormat(original, formatted string) bool {
	meta, before := metadata.Extract(original)
	_, after := metadata.Extract(formatted)

	if before != after {
		return true
	}

	if meta == nil {
		return false
	}

	_, err := metadata.Verify(original)

	return err != nil
}
