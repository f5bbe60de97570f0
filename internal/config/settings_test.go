package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("VERIFY_TOKEN", "")
	t.Setenv("OPENAI_MODEL", "")

	s := Load()

	assert.Equal(t, DefaultPort, s.Port)
	assert.Equal(t, DefaultModel, s.OpenAIModel)
	assert.Empty(t, s.VerifyToken)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "5000")
	t.Setenv("VERIFY_TOKEN", "secreto")
	t.Setenv("PAGE_ACCESS_TOKEN", "page-token")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_MODEL", "gpt-4o")
	t.Setenv("KNOWLEDGE_FILE", "/tmp/knowledge.json")

	s := Load()

	assert.Equal(t, "5000", s.Port)
	assert.Equal(t, "secreto", s.VerifyToken)
	assert.Equal(t, "page-token", s.PageAccessToken)
	assert.Equal(t, "sk-test", s.OpenAIKey)
	assert.Equal(t, "gpt-4o", s.OpenAIModel)
	assert.Equal(t, "/tmp/knowledge.json", s.KnowledgeFile)
}
