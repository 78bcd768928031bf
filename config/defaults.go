package config

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		APIBaseURL:     "http://127.0.0.1:8000/api",
		DataDirectory:  "~/.local/share/thinkbot",
		RequestTimeout: 120,
	}
}

func GenerateSystemConfigTemplate() string {
	return `# ThinkBot System Configuration
# Location: ~/.config/thinkbot/settings.toml
# This file uses TOML format: https://toml.io

# Base URL of the ThinkBot backend API
api_base_url = "http://127.0.0.1:8000/api"

# Directory where the debug log is stored
data_directory = "~/.local/share/thinkbot"

# HTTP request timeout in seconds
request_timeout_seconds = 120
`
}
