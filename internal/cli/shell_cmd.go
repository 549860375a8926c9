package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newShellCmd(v *viper.Viper) *cobra.Command {
	var opt ShellOptions
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Edit the list with one command per line",
		Long: "shell reads commands such as `add Buy milk`, `done 1` and `ls` from stdin.\n" +
			"Type `help` inside the shell for the full list.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := setup(v, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.closer.Close()

			if isTerminal(os.Stdin) && cmd.InOrStdin() == os.Stdin {
				opt.Prompt = "tada> "
			}
			sh := NewShell(a.list, a.theme, cmd.OutOrStdout(), opt)
			return sh.Run(cmd.Context(), cmd.InOrStdin())
		},
	}
	cmd.Flags().BoolVarP(&opt.Group, "group", "g", false, "group ls output by pending/done")
	cmd.Flags().BoolVarP(&opt.Watch, "watch", "w", false, "redraw the list after every change")
	return cmd
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
