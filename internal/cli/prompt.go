package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// prompter asks for the search settings on a line-oriented console.
type prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{scanner: bufio.NewScanner(in), out: out}
}

// run fills in the directory, pattern and file limit of options. Values
// already present are offered as defaults. It reports false when the user
// gave up on entering a directory.
func (p *prompter) run(options *Options) (bool, error) {
	if options.Directory == "" {
		dir, ok := p.directory()
		if !ok {
			return false, p.scanner.Err()
		}

		options.Directory = dir
	}

	options.Pattern = p.pattern(options.Pattern)
	options.MaxFiles = p.limit(options.MaxFiles)

	return true, p.scanner.Err()
}

// readLine returns the next trimmed line and false at end of input.
func (p *prompter) readLine() (string, bool) {
	if !p.scanner.Scan() {
		return "", false
	}

	return strings.TrimSpace(p.scanner.Text()), true
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

// directory asks until an existing directory is entered. An empty answer
// or declining to retry returns false.
func (p *prompter) directory() (string, bool) {
	for {
		fmt.Fprintln(p.out, "\nEnter the directory to search:")
		fmt.Fprintln(p.out, "(leave empty and press Enter to exit)")
		fmt.Fprint(p.out, ">>> ")

		path, _ := p.readLine()
		if path == "" {
			return "", false
		}

		if isDir(path) {
			return path, true
		}

		fmt.Fprintf(p.out, "\nDirectory '%s' does not exist.\n", path)

		// Bare drive letters such as "D:"
		if len(path) == 2 && path[1] == ':' && !isDir(path+`\`) {
			fmt.Fprintf(p.out, "Drive %s was not found or is not accessible.\n", path)
		}

		if cwd, err := os.Getwd(); err == nil {
			fmt.Fprintln(p.out, "\nExample of a valid path:")
			fmt.Fprintf(p.out, "  current directory: %s\n", cwd)
		}

		fmt.Fprint(p.out, "\nTry again? (Y/N) [Y]: ")

		answer, more := p.readLine()
		if !more {
			return "", false
		}

		switch strings.ToUpper(answer) {
		case "N", "Н":
			return "", false
		}
	}
}

func (p *prompter) pattern(current string) string {
	if current == "" {
		current = "*"
	}

	fmt.Fprintf(p.out, "\nEnter the search pattern (e.g. *.txt) [%s]: ", current)

	answer, _ := p.readLine()
	if answer == "" {
		return current
	}

	return answer
}

// limit reads the file limit. Unparsable or negative input means unlimited.
func (p *prompter) limit(current int) int {
	fmt.Fprintf(p.out, "\nEnter the maximum number of files (0 = unlimited) [%d]: ", current)

	answer, _ := p.readLine()
	if answer == "" {
		return current
	}

	n, err := strconv.Atoi(answer)
	if err != nil || n < 0 {
		return 0
	}

	return n
}
