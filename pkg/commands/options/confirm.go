package options

import (
	"errors"
	"io"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// ErrNotInteractive is returned when confirmation is needed but stdin is not
// a terminal.
var ErrNotInteractive = errors.New("stdin is not a terminal, pass --yes to confirm")

// ConfirmOptions controls destructive commands.
type ConfirmOptions struct {
	Yes bool
}

func AddConfirmArg(cmd *cobra.Command, o *ConfirmOptions) {
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		"Skip the confirmation prompt.")
}

// Confirmer returns a yes/no prompt bound to the command's streams.
func Confirmer(cmd *cobra.Command) func(question string) (bool, error) {
	return func(question string) (bool, error) {
		if f, ok := cmd.InOrStdin().(*os.File); !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
			return false, ErrNotInteractive
		}
		return Confirm(question, io.NopCloser(cmd.InOrStdin()), nopCloser{cmd.OutOrStdout()})
	}
}

// Confirm asks question and parses the answer with ParseBool. An empty
// answer is no.
func Confirm(question string, in io.ReadCloser, out io.WriteCloser) (bool, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} [y/N] : ",
		Valid:   "{{ . | green }} [y/N] : ",
		Invalid: "{{ . | red }} [y/N] : ",
		Success: "{{ . | bold }} : ",
	}

	prompt := promptui.Prompt{
		Label:     question,
		Templates: templates,
		Validate: func(input string) error {
			if input == "" {
				return nil
			}
			_, err := ParseBool(input)
			return err
		},
		Stdin:  in,
		Stdout: out,
	}

	result, err := prompt.Run()
	if err != nil {
		return false, err
	}
	if result == "" {
		return false, nil
	}
	return ParseBool(result)
}

// ParseBool is strconv.ParseBool with the addition of Yes/No parsing.
func ParseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "no", "NO", "No":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
