package config

import "os"

const (
	DefaultPort  = "10000"
	DefaultModel = "gpt-4o-mini"
)

// Settings contains the application config. It is read once at startup
// and passed into the handlers; nothing mutates it afterwards.
type Settings struct {
	Port            string // PORT
	VerifyToken     string // VERIFY_TOKEN, webhook handshake secret
	PageAccessToken string // PAGE_ACCESS_TOKEN, Graph API send credential
	OpenAIKey       string // OPENAI_API_KEY
	OpenAIModel     string // OPENAI_MODEL
	KnowledgeFile   string // KNOWLEDGE_FILE, optional explicit path
}

// Load reads the environment into a Settings value.
func Load() Settings {
	return Settings{
		Port:            getenv("PORT", DefaultPort),
		VerifyToken:     os.Getenv("VERIFY_TOKEN"),
		PageAccessToken: os.Getenv("PAGE_ACCESS_TOKEN"),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     getenv("OPENAI_MODEL", DefaultModel),
		KnowledgeFile:   os.Getenv("KNOWLEDGE_FILE"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
