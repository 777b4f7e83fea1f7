package dialogue

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"PixelDump/convert"
)

// Prompter asks the user for the parameters of a conversion.
type Prompter struct {
	reader *bufio.Reader
	out    io.Writer
	text   Messages
}

func NewPrompter(in io.Reader, out io.Writer, text Messages) *Prompter {
	return &Prompter{reader: bufio.NewReader(in), out: out, text: text}
}

// ShowModeSelection prompts the user to choose the conversion direction.
// An empty answer keeps the default, image to binary.
func (p *Prompter) ShowModeSelection() (convert.Mode, error) {
	fmt.Fprintf(p.out, "\n%s\n", p.text.ModeTitle)
	fmt.Fprintf(p.out, "1. %s\n", p.text.ModeImageToBinary)
	fmt.Fprintf(p.out, "2. %s\n", p.text.ModeBinaryToImage)
	fmt.Fprintf(p.out, "\n%s ", p.text.ModePrompt)

	input, err := p.readLine()
	if err != nil {
		return 0, err
	}
	if input == "" {
		return convert.ImageToBinary, nil
	}

	idx, err := strconv.Atoi(input)
	if err != nil || idx < 1 || idx > 2 {
		return 0, fmt.Errorf("invalid selection '%s': please enter 1 or 2", input)
	}
	if idx == 2 {
		return convert.BinaryToImage, nil
	}
	return convert.ImageToBinary, nil
}

// AskPath prompts for a non-empty path.
func (p *Prompter) AskPath(label string) (string, error) {
	fmt.Fprintf(p.out, "%s ", label)
	input, err := p.readLine()
	if err != nil {
		return "", err
	}
	if input == "" {
		return "", fmt.Errorf("no path entered for '%s'", strings.TrimSuffix(label, ":"))
	}
	return input, nil
}

// ShowRequest runs the full dialogue: mode, input file and output folder.
func (p *Prompter) ShowRequest() (convert.Request, error) {
	mode, err := p.ShowModeSelection()
	if err != nil {
		return convert.Request{}, err
	}
	input, err := p.AskPath(p.text.SelectFile)
	if err != nil {
		return convert.Request{}, err
	}
	output, err := p.AskPath(p.text.SelectFolder)
	if err != nil {
		return convert.Request{}, err
	}
	return convert.Request{Mode: mode, Input: input, Output: output}, nil
}

func (p *Prompter) readLine() (string, error) {
	input, err := p.reader.ReadString('\n')
	if err != nil && !(err == io.EOF && input != "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(input), nil
}
