package config

// File represents the structure of the stitch.yaml configuration file.
type File struct {
	// Vault is the directory holding the note file.
	Vault string `yaml:"vault"`
	// Note is the note filename inside the vault.
	Note string `yaml:"note"`
	// State overrides the sync snapshot location.
	State string `yaml:"state"`

	Todoist TodoistDTO `yaml:"todoist"`
	Triage  TriageDTO  `yaml:"triage"`
}

// TodoistDTO configures the remote task service.
type TodoistDTO struct {
	// Token is the API token. Prefer the TODOIST_API_TOKEN environment
	// variable over committing a secret to the file.
	Token string `yaml:"token"`
}

// TriageDTO configures the language-model triage provider.
type TriageDTO struct {
	Provider  string `yaml:"provider"`
	Model     string `yaml:"model"`
	APIKey    string `yaml:"apiKey"`
	MaxTokens int    `yaml:"maxTokens"`
}
