package input

import (
	"context"
	"fmt"
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-colorable"
)

type ConsoleOptions struct {
	Message      string
	Options      []string
	DefaultValue any
}

// Console allows writing messages and prompting the user from the command line.
type Console interface {
	Message(ctx context.Context, message string)
	Prompt(ctx context.Context, options ConsoleOptions) (string, error)
	Select(ctx context.Context, options ConsoleOptions) (int, error)
	Confirm(ctx context.Context, options ConsoleOptions) (bool, error)
	Writer() io.Writer
}

type AskerConsole struct {
	asker  Asker
	writer io.Writer
}

func NewConsole(noPrompt bool, writer io.Writer) Console {
	if writer == nil {
		writer = colorable.NewColorableStdout()
	}

	return &AskerConsole{
		asker:  NewAsker(noPrompt, writer, nil),
		writer: writer,
	}
}

func (c *AskerConsole) Message(ctx context.Context, message string) {
	fmt.Fprintln(c.writer, message)
}

func (c *AskerConsole) Prompt(ctx context.Context, options ConsoleOptions) (string, error) {
	var defaultValue string
	if value, ok := options.DefaultValue.(string); ok {
		defaultValue = value
	}

	survey := &survey.Input{
		Message: options.Message,
		Default: defaultValue,
	}

	var response string

	if err := c.asker(survey, &response); err != nil {
		return "", err
	}

	return response, nil
}

func (c *AskerConsole) Select(ctx context.Context, options ConsoleOptions) (int, error) {
	survey := &survey.Select{
		Message: options.Message,
		Options: options.Options,
		Default: options.DefaultValue,
	}

	var response int

	if err := c.asker(survey, &response); err != nil {
		return -1, err
	}

	return response, nil
}

func (c *AskerConsole) Confirm(ctx context.Context, options ConsoleOptions) (bool, error) {
	var defaultValue bool
	if value, ok := options.DefaultValue.(bool); ok {
		defaultValue = value
	}

	survey := &survey.Confirm{
		Message: options.Message,
		Default: defaultValue,
	}

	var response bool

	if err := c.asker(survey, &response); err != nil {
		return false, err
	}

	return response, nil
}

func (c *AskerConsole) Writer() io.Writer {
	return c.writer
}
