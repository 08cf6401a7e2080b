package shell

import (
	"bufio"
	"io"

	"github.com/abiosoft/readline"
)

// LineSource yields command lines one at a time, ending with io.EOF.
type LineSource interface {
	ReadLine() (string, error)
	io.Closer
}

// NewReaderSource reads lines from r without prompting, for batch
// scripts and piped input.
func NewReaderSource(r io.Reader) LineSource {
	return &readerSource{br: bufio.NewReader(r)}
}

type readerSource struct {
	br *bufio.Reader
}

func (r *readerSource) ReadLine() (string, error) {
	line, err := r.br.ReadString('\n')
	switch {
	case err == nil:
		return line, nil
	case err == io.EOF && line != "":
		// A final line without a newline still counts.
		return line, nil
	default:
		return "", err
	}
}

func (r *readerSource) Close() error {
	return nil
}

// NewPromptSource reads lines interactively with a prompt and line
// editing.
func NewPromptSource(prompt string) (LineSource, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: prompt,
	})
	if err != nil {
		return nil, err
	}
	return &promptSource{rl: rl}, nil
}

type promptSource struct {
	rl *readline.Instance
}

func (p *promptSource) ReadLine() (string, error) {
	for {
		line, err := p.rl.Readline()
		if err == readline.ErrInterrupt {
			// ^C abandons the line, not the shell.
			continue
		}
		return line, err
	}
}

func (p *promptSource) Close() error {
	return p.rl.Close()
}
