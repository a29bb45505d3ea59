package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/todo/internal/model"
)

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Print the list in its stored JSON form",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openStore(cmd, app, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.close()

			value, err := model.Encode(sess.store.Items())
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration and where it came from",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := yaml.Marshal(app.cfg)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			w := cmd.OutOrStdout()
			fmt.Fprint(w, string(out))
			fmt.Fprintln(w)
			fmt.Fprintln(w, "# sources (lowest precedence first):")
			for _, s := range app.cfg.Sources() {
				fmt.Fprintln(w, "#   "+s)
			}
			return nil
		},
	}
}
