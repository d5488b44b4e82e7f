package agent

import (
	"fmt"

	"finhealth/pkg/core/llm"
)

// Config mirrors config/models.yaml: one globally active provider plus
// optional per-agent overrides (e.g. a cheaper model for insights).
type Config struct {
	ActiveProvider string                 `yaml:"active_provider"`
	Agents         map[string]AgentConfig `yaml:"agents"`
}

type AgentConfig struct {
	Provider    string `yaml:"provider"` // Optional override
	Description string `yaml:"description"`
}

// Manager resolves agent types ("insight") to concrete LLM providers.
type Manager struct {
	config    Config
	providers map[string]llm.Provider
}

func NewManager(config Config) *Manager {
	return &Manager{
		config: config,
		providers: map[string]llm.Provider{
			"openai":   &llm.OpenAIProvider{},
			"deepseek": &llm.DeepSeekProvider{},
			"gemini":   &llm.GeminiProvider{},
		},
	}
}

// GetProvider returns the provider for an agent type: the agent-specific
// override when configured, otherwise the global active provider, falling
// back to openai.
func (m *Manager) GetProvider(agentType string) llm.Provider {
	if agentConfig, ok := m.config.Agents[agentType]; ok && agentConfig.Provider != "" {
		if p, ok := m.providers[agentConfig.Provider]; ok {
			return p
		}
	}
	if p, ok := m.providers[m.config.ActiveProvider]; ok {
		return p
	}
	return m.providers["openai"]
}

// ResolveName returns the provider name an agent type maps to, following
// the same override order as GetProvider. Useful for picking the matching
// credential out of the environment.
func (m *Manager) ResolveName(agentType string) string {
	if agentConfig, ok := m.config.Agents[agentType]; ok && agentConfig.Provider != "" {
		if _, ok := m.providers[agentConfig.Provider]; ok {
			return agentConfig.Provider
		}
	}
	if _, ok := m.providers[m.config.ActiveProvider]; ok {
		return m.config.ActiveProvider
	}
	return "openai"
}

func (m *Manager) SetGlobalProvider(newProvider string) error {
	if _, ok := m.providers[newProvider]; !ok {
		return fmt.Errorf("provider %s not found", newProvider)
	}
	m.config.ActiveProvider = newProvider
	fmt.Printf("Global provider set to: %s\n", newProvider)
	return nil
}

func (m *Manager) GetActiveProvider() string {
	return m.config.ActiveProvider
}

// Available lists the registered provider names.
func (m *Manager) Available() []string {
	return []string{"openai", "deepseek", "gemini"}
}
