// Package setup registers the chatbot MCP binary with desktop MCP clients.
package setup

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
)

// ServerName is the key the chatbot is registered under.
const ServerName = "blood-disease-chatbot"

// DataDirEnv is passed to the registered server.
const DataDirEnv = "CHATBOT_DATA_DIR"

// ClientConfig is the MCP client configuration file structure.
type ClientConfig struct {
	MCPServers map[string]MCPServerConfig `json:"mcpServers"`
}

// MCPServerConfig represents a single MCP server configuration.
type MCPServerConfig struct {
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// Options contains options for registering the server.
type Options struct {
	ConfigPath string // Client config file; empty uses the platform default
	BinaryPath string
	DataDir    string
}

// Status is what the client config says about the chatbot.
type Status struct {
	ConfigPath   string   `json:"config_path"`
	Registered   bool     `json:"registered"`
	BinaryPath   string   `json:"binary_path,omitempty"`
	BinaryExists bool     `json:"binary_exists"`
	DataDir      string   `json:"data_dir"`
	FeedbackDB   bool     `json:"feedback_db"`
	Issues       []string `json:"issues,omitempty"`
}

// DefaultConfigPath returns the Claude Desktop config file for this platform.
func DefaultConfigPath() (string, error) {
	var configDir string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support", "Claude")
	case "linux":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			configDir = filepath.Join(xdg, "Claude")
			break
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config", "Claude")
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", errors.New("APPDATA environment variable not set")
		}
		configDir = filepath.Join(appData, "Claude")
	default:
		return "", fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	return filepath.Join(configDir, "claude_desktop_config.json"), nil
}

// DefaultDataDir mirrors the MCP binary's default data directory.
func DefaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".blood-disease-chatbot")
}

func resolveConfigPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return DefaultConfigPath()
}

// LoadConfig reads a client config. A missing file yields an empty config.
func LoadConfig(path string) (*ClientConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &ClientConfig{MCPServers: make(map[string]MCPServerConfig)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config ClientConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if config.MCPServers == nil {
		config.MCPServers = make(map[string]MCPServerConfig)
	}
	return &config, nil
}

// SaveConfig writes a client config, creating its directory.
func SaveConfig(path string, config *ClientConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Register adds or replaces the chatbot entry, leaving other servers intact.
// It returns the config path written.
func Register(opts Options) (string, error) {
	if opts.BinaryPath == "" {
		return "", errors.New("binary path is required")
	}
	path, err := resolveConfigPath(opts.ConfigPath)
	if err != nil {
		return "", err
	}

	config, err := LoadConfig(path)
	if err != nil {
		return "", err
	}

	entry := MCPServerConfig{Command: opts.BinaryPath}
	if opts.DataDir != "" {
		entry.Env = map[string]string{DataDirEnv: opts.DataDir}
	}
	config.MCPServers[ServerName] = entry

	return path, SaveConfig(path, config)
}

// Unregister removes the chatbot entry. It reports whether one was present.
func Unregister(configPath string) (bool, error) {
	path, err := resolveConfigPath(configPath)
	if err != nil {
		return false, err
	}
	config, err := LoadConfig(path)
	if err != nil {
		return false, err
	}
	if _, ok := config.MCPServers[ServerName]; !ok {
		return false, nil
	}
	delete(config.MCPServers, ServerName)
	return true, SaveConfig(path, config)
}

// GetStatus inspects the client config and the data directory.
func GetStatus(configPath string) (*Status, error) {
	path, err := resolveConfigPath(configPath)
	if err != nil {
		return nil, err
	}
	status := &Status{ConfigPath: path}

	config, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	if entry, ok := config.MCPServers[ServerName]; ok {
		status.Registered = true
		status.BinaryPath = entry.Command
		if info, err := os.Stat(entry.Command); err != nil {
			status.Issues = append(status.Issues, fmt.Sprintf("server binary not found: %s", entry.Command))
		} else if info.Mode()&0111 == 0 {
			status.Issues = append(status.Issues, fmt.Sprintf("server binary is not executable: %s", entry.Command))
		} else {
			status.BinaryExists = true
		}
		status.DataDir = entry.Env[DataDirEnv]
	} else {
		status.Issues = append(status.Issues, "chatbot is not registered with the MCP client")
	}

	if status.DataDir == "" {
		status.DataDir = DefaultDataDir()
	}
	if _, err := os.Stat(filepath.Join(status.DataDir, "feedback.db")); err == nil {
		status.FeedbackDB = true
	}

	return status, nil
}
