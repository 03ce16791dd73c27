package host

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Terminal is a field.Prompter that reads one line from In. End of input
// dismisses the prompt; a line consisting of "-" keeps the default value.
type Terminal struct {
	In  io.Reader
	Out io.Writer
}

// Prompt writes the title and message to Out and reads the answer.
func (t Terminal) Prompt(ctx context.Context, title, message, defaultValue string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	fmt.Fprintf(t.Out, "%s\n%s [%s]: ", title, message, defaultValue)

	line, err := bufio.NewReader(t.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, fmt.Errorf("host: read answer: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", false, nil
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "-" {
		return defaultValue, true, nil
	}
	return line, true, nil
}
