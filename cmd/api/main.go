package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"finhealth/pkg/api/analyze"
	"finhealth/pkg/api/config"
	"finhealth/pkg/core/agent"
	"finhealth/pkg/core/insight"
	"finhealth/pkg/core/pipeline"
)

// credentialFor maps a provider name to the env var carrying its key.
func credentialFor(provider string) string {
	switch provider {
	case "deepseek":
		return os.Getenv("DEEPSEEK_API_KEY")
	case "gemini":
		return os.Getenv("GEMINI_API_KEY")
	default:
		return os.Getenv("OPENAI_API_KEY")
	}
}

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize provider manager from config
	configData, err := os.ReadFile("config/models.yaml")
	if err != nil {
		fmt.Printf("[WARNING] Could not read config/models.yaml: %v. Using defaults.\n", err)
	}
	var agentCfg agent.Config
	if err := yaml.Unmarshal(configData, &agentCfg); err != nil {
		fmt.Printf("[WARNING] Invalid config/models.yaml: %v. Using defaults.\n", err)
	}
	agentMgr := agent.NewManager(agentCfg)

	// Wire the analysis pipeline with the configured insight provider.
	providerName := agentMgr.ResolveName("insight")
	requester := insight.NewRequester(agentMgr.GetProvider("insight"), credentialFor(providerName))
	if credentialFor(providerName) == "" {
		fmt.Printf("[WARNING] No API key set for provider %q. AI insights will be disabled.\n", providerName)
	}
	analyzer := pipeline.NewAnalyzer(requester)

	// Analysis endpoint
	analyzeHandler := analyze.NewHandler(analyzer)
	http.HandleFunc("/api/analyze", analyzeHandler.HandleAnalyze)

	// Config endpoints
	configHandler := config.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - POST /api/analyze  (multipart field 'file', up to 5 .xlsx)")
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
