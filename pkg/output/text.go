package output

import (
	"fmt"
	"io"
)

// TextRenderer is implemented by results that know how to render themselves
// as human readable text.
type TextRenderer interface {
	RenderText(writer io.Writer) error
}

type TextFormatter struct {
}

func (f *TextFormatter) Kind() Format {
	return TextFormat
}

func (f *TextFormatter) Format(obj interface{}, writer io.Writer, _ interface{}) error {
	if renderer, ok := obj.(TextRenderer); ok {
		return renderer.RenderText(writer)
	}

	_, err := fmt.Fprintln(writer, obj)
	return err
}

var _ Formatter = (*TextFormatter)(nil)

type NoneFormatter struct {
}

func (f *NoneFormatter) Kind() Format {
	return NoneFormat
}

func (f *NoneFormatter) Format(obj interface{}, writer io.Writer, _ interface{}) error {
	return nil
}

var _ Formatter = (*NoneFormatter)(nil)
