package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev"
	Mode string
	// Addr is the binding address for the server
	Addr string
	// Port is the binding port for the server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where recall stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of the server
	Version string

	// RephraseQuestions enables LLM rephrasing of question text on delivery.
	RephraseQuestions bool

	// LLM configuration. LLMProvider selects the startup backend; it can be
	// switched at runtime through the settings API.
	LLMProvider   string // RECALL_LLM_PROVIDER: "gemini", "openai" or "ollama"
	GeminiAPIKey  string // RECALL_GEMINI_API_KEY
	GeminiModel   string // RECALL_GEMINI_MODEL (default: gemini-2.0-flash)
	OpenAIAPIKey  string // RECALL_OPENAI_API_KEY
	OpenAIModel   string // RECALL_OPENAI_MODEL (default: gpt-4o-mini)
	OllamaBaseURL string // RECALL_OLLAMA_BASE_URL (e.g. http://localhost:11434/v1)
	OllamaModel   string // RECALL_OLLAMA_MODEL
	LLMTimeout    time.Duration
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsLLMEnabled returns true if at least one backend is configured.
func (p *Profile) IsLLMEnabled() bool {
	return p.GeminiAPIKey != "" || p.OpenAIAPIKey != "" || p.OllamaBaseURL != ""
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "dev"
	}

	if p.Driver != "sqlite" && p.Driver != "postgres" {
		return errors.Errorf("unsupported db driver %q: only 'sqlite' and 'postgres' are supported", p.Driver)
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		return err
	}
	p.Data = dataDir

	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("recall_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}
	if p.Driver == "postgres" && p.DSN == "" {
		return errors.New("a DSN is required for the postgres driver")
	}

	if p.LLMProvider == "" {
		p.LLMProvider = "gemini"
	}
	if p.GeminiModel == "" {
		p.GeminiModel = "gemini-2.0-flash"
	}
	if p.OpenAIModel == "" {
		p.OpenAIModel = "gpt-4o-mini"
	}
	if p.OllamaModel == "" {
		p.OllamaModel = "llama3.1"
	}
	if p.LLMTimeout <= 0 {
		p.LLMTimeout = 30 * time.Second
	}

	return nil
}
