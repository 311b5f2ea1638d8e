package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPasswordFn is a test seam over terminal password input.
var readPasswordFn = term.ReadPassword

// GetSimpleText prompts for a single line of text and returns it trimmed.
// An empty answer returns def.
func (a *App) GetSimpleText(w io.Writer, prompt string, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(w, "%s [%s]: ", prompt, def)
	} else {
		fmt.Fprintf(w, "%s: ", prompt)
	}

	line, err := a.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("error reading input: %w", err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}
	return line, nil
}

// GetToken prompts for a bearer token without echoing it.
func GetToken(w io.Writer) (string, error) {
	fmt.Fprint(w, "Enter access token: ")

	data, err := readPasswordFn(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("error reading token: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token must not be empty")
	}
	return token, nil
}

// GetYesNo prompts for a yes/no confirmation. Only an explicit "y" or "yes"
// counts as confirmation.
func (a *App) GetYesNo(w io.Writer, prompt string) (bool, error) {
	answer, err := a.GetSimpleText(w, prompt+" (y/n)", "n")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}
