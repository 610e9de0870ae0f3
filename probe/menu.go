package probe

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// MenuAll is the menu entry that runs the whole suite.
const MenuAll = "5"

// Menu lists the numbered probes, reads one choice from in, and runs it.
// An empty or closed input prints "Exiting..." and returns nil.
func (s *Suite) Menu(ctx context.Context, in io.Reader) error {
	s.println("Available tests:")
	s.println("1. Base Case")
	s.println("2. Function Calling")
	s.println("3. Parameter Case")
	s.println("4. Structured Output")
	s.println("5. Run all tests")
	s.printf("Enter your choice (1, 2, 3, 4, or 5): ")

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		s.println("\nExiting...")
		return scanner.Err()
	}

	switch choice := strings.TrimSpace(scanner.Text()); choice {
	case "1", "2", "3", "4":
		_ = s.Run(ctx, int(choice[0]-'0'))
	case MenuAll:
		s.RunAll(ctx)
	default:
		s.println("Invalid choice. Please run with --help for usage information.")
	}
	return nil
}
