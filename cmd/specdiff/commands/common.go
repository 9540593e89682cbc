package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/specdiff/internal/source"
)

// Output format constants
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidateOutputFormat returns an error unless format is one of allowed.
func ValidateOutputFormat(format string, allowed ...string) error {
	if slices.Contains(allowed, format) {
		return nil
	}
	return fmt.Errorf("invalid format '%s'. Valid formats: %v", format, allowed)
}

// WriteStructured writes data to w as indented JSON or YAML.
func WriteStructured(w io.Writer, data any, format string) error {
	var out []byte
	var err error

	switch format {
	case FormatJSON:
		out, err = json.MarshalIndent(data, "", "  ")
	case FormatYAML:
		out, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	if _, err := w.Write(out); err != nil {
		return err
	}
	if format == FormatJSON {
		_, err = io.WriteString(w, "\n")
	}
	return err
}

// ValidateOutputPath checks that outputPath would not overwrite one of the
// file inputs. URL, stdin, and git inputs never collide.
func ValidateOutputPath(outputPath string, inputs []string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	for _, input := range inputs {
		ref, err := source.ParseRef(input)
		if err != nil || ref.Kind != source.KindFile {
			continue
		}
		absInputPath, err := filepath.Abs(ref.Location)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", input, err)
		}
		if absOutputPath == absInputPath {
			return fmt.Errorf("output file %s would overwrite input file %s", outputPath, input)
		}
	}
	return nil
}

// RejectSymlinkOutput returns an error if path is a symlink, so output
// cannot be redirected somewhere unintended.
func RejectSymlinkOutput(path string) error {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("refusing to write to symlink: %s", path)
	}
	return nil
}

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// nopCloser adapts a writer the command does not own.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns the command's stdout when path is empty, or a newly
// created file at path after checking it against the inputs.
func (a *app) openOutput(path string, inputs ...string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{a.stdout}, nil
	}
	cleaned := filepath.Clean(path)
	if err := ValidateOutputPath(cleaned, inputs); err != nil {
		return nil, err
	}
	if err := RejectSymlinkOutput(cleaned); err != nil {
		return nil, err
	}
	f, err := os.Create(cleaned) //nolint:gosec // path is user-provided output
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, nil
}

// writeOutput runs write against the output target and closes it.
func (a *app) writeOutput(path string, inputs []string, write func(io.Writer) error) error {
	out, err := a.openOutput(path, inputs...)
	if err != nil {
		return err
	}
	if err := write(out); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
