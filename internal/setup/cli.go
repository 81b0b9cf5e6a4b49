package setup

import (
	"fmt"
	"io"
	"os"
)

// CLI runs the setup subcommands of the MCP binary.
type CLI struct {
	out        io.Writer
	executable func() (string, error)
}

// NewCLI creates a CLI printing to out.
func NewCLI(out io.Writer) *CLI {
	if out == nil {
		out = os.Stdout
	}
	return &CLI{out: out, executable: os.Executable}
}

const usage = `Blood disease chatbot MCP setup

Usage:
  chatbot-mcp setup <command> [options]

Commands:
  register    Register this binary with the desktop MCP client
  unregister  Remove the registration
  status      Show the current registration

Options:
  --config <path>    MCP client config file (default: platform location)
  --binary <path>    Server binary to register (default: this executable)
  --data-dir <path>  Data directory passed to the server
`

// Run executes the setup command based on the provided arguments.
func (c *CLI) Run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(c.out, usage)
		return nil
	}

	opts, err := parseOptions(args[1:])
	if err != nil {
		return err
	}

	switch args[0] {
	case "register":
		return c.register(opts)
	case "unregister":
		removed, err := Unregister(opts.ConfigPath)
		if err != nil {
			return err
		}
		if removed {
			fmt.Fprintln(c.out, "Registration removed.")
		} else {
			fmt.Fprintln(c.out, "Chatbot was not registered.")
		}
		return nil
	case "status":
		return c.status(opts)
	case "help", "--help", "-h":
		fmt.Fprint(c.out, usage)
		return nil
	default:
		return fmt.Errorf("unknown setup command: %s", args[0])
	}
}

func parseOptions(args []string) (Options, error) {
	var opts Options
	for i := 0; i < len(args); i++ {
		if i+1 >= len(args) {
			return opts, fmt.Errorf("missing value for %s", args[i])
		}
		switch args[i] {
		case "--config", "-c":
			opts.ConfigPath = args[i+1]
		case "--binary", "-b":
			opts.BinaryPath = args[i+1]
		case "--data-dir", "-d":
			opts.DataDir = args[i+1]
		default:
			return opts, fmt.Errorf("unknown option: %s", args[i])
		}
		i++
	}
	return opts, nil
}

func (c *CLI) register(opts Options) error {
	if opts.BinaryPath == "" {
		path, err := c.executable()
		if err != nil {
			return fmt.Errorf("failed to locate executable: %w", err)
		}
		opts.BinaryPath = path
	}

	path, err := Register(opts)
	if err != nil {
		return fmt.Errorf("failed to register: %w", err)
	}

	fmt.Fprintf(c.out, "Registered %s in %s\n", opts.BinaryPath, path)
	fmt.Fprintln(c.out, "Restart the MCP client, then ask it about anemia symptoms to try the tools.")
	return nil
}

func (c *CLI) status(opts Options) error {
	status, err := GetStatus(opts.ConfigPath)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Config file: %s\n", status.ConfigPath)
	fmt.Fprintf(c.out, "Registered:  %t\n", status.Registered)
	if status.Registered {
		fmt.Fprintf(c.out, "Binary:      %s (found: %t)\n", status.BinaryPath, status.BinaryExists)
	}
	fmt.Fprintf(c.out, "Data dir:    %s (feedback db: %t)\n", status.DataDir, status.FeedbackDB)
	for _, issue := range status.Issues {
		fmt.Fprintf(c.out, "  ! %s\n", issue)
	}
	return nil
}
