package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hupe1980/roundtable/agent"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupFrom(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestCredentials_RequireReportsAllMissing(t *testing.T) {
	creds := LoadCredentials(lookupFrom(map[string]string{
		EnvAnthropicKey: "sk-ant",
		EnvGeminiKey:    "   ",
	}))

	err := creds.Require(DefaultPanel().Providers()...)
	require.Error(t, err)

	var missing *MissingEnvError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{EnvOpenAIKey, EnvGeminiKey}, missing.Vars)
	assert.Equal(t, "missing required environment variables: OPENAI_API_KEY, GEMINI_API_KEY", err.Error())
}

func TestCredentials_RequireEachSingleMissing(t *testing.T) {
	all := map[string]string{EnvOpenAIKey: "a", EnvAnthropicKey: "b", EnvGeminiKey: "c"}

	for _, p := range agent.Providers() {
		t.Run(string(p), func(t *testing.T) {
			env := map[string]string{}
			for k, v := range all {
				env[k] = v
			}
			delete(env, EnvVar(p))

			err := LoadCredentials(lookupFrom(env)).Require(DefaultPanel().Providers()...)

			var missing *MissingEnvError
			require.ErrorAs(t, err, &missing)
			assert.Equal(t, []string{EnvVar(p)}, missing.Vars)
		})
	}
}

func TestCredentials_RequiredProvidersCoverAllKeys(t *testing.T) {
	creds := LoadCredentials(lookupFrom(map[string]string{EnvOpenAIKey: "sk-a"}))

	err := creds.Require(RequiredProviders()...)

	var missing *MissingEnvError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{EnvAnthropicKey, EnvGeminiKey}, missing.Vars)
}

func TestCredentials_RequireOK(t *testing.T) {
	creds := LoadCredentials(lookupFrom(map[string]string{EnvOpenAIKey: " sk "}))

	require.NoError(t, creds.Require(agent.ProviderOpenAI, agent.ProviderOpenAI))
	assert.Equal(t, "sk", creds[agent.ProviderOpenAI])
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := `
# Comment
KEY1=value1
KEY2="value 2"
export KEY3='value 3'
KEY4=value 4 # inline comment
KEY5="sk-abc #def"
EMPTY=
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	env, err := LoadEnvFile(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"KEY1":  "value1",
		"KEY2":  "value 2",
		"KEY3":  "value 3",
		"KEY4":  "value 4",
		"KEY5":  "sk-abc #def",
		"EMPTY": "",
	}, env)

	_, err = LoadEnvFile(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoadEnvFile_QuotedValueKeepsHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(`OPENAI_API_KEY="sk-abc #def"`+"\n"), 0o600))

	env, err := LoadEnvFile(path)
	require.NoError(t, err)

	creds := LoadCredentials(Overlay(lookupFrom(nil), env))
	assert.Equal(t, "sk-abc #def", creds[agent.ProviderOpenAI])
}

func TestOverlay_EnvironmentWins(t *testing.T) {
	lookup := Overlay(lookupFrom(map[string]string{EnvOpenAIKey: "from-env"}), map[string]string{
		EnvOpenAIKey: "from-file",
		EnvGeminiKey: "file-only",
	})

	creds := LoadCredentials(lookup)
	assert.Equal(t, "from-env", creds[agent.ProviderOpenAI])
	assert.Equal(t, "file-only", creds[agent.ProviderGoogle])
	assert.Empty(t, creds[agent.ProviderAnthropic])
}

func TestDefaultPanel(t *testing.T) {
	p := DefaultPanel()

	require.NoError(t, p.Validate())
	assert.Equal(t, []string{"Client", "Statistician", "PM", "Client", "PM"}, p.Schedule)
	assert.Equal(t, 1500*time.Millisecond, p.Pause)
	assert.Equal(t, []agent.Provider{agent.ProviderOpenAI, agent.ProviderAnthropic, agent.ProviderGoogle}, p.Providers())
}

func TestParsePanel(t *testing.T) {
	p, err := ParsePanel([]byte(`
topic: Should we add feature X?
pause: 2s
agents:
  - name: A
    provider: openai
    model: gpt-4o-mini
    role: Skeptic
    style: Short
  - name: B
    provider: google
    model: gemini-1.5-flash
schedule: [A, B, A]
`))
	require.NoError(t, err)
	require.NoError(t, p.Validate())

	assert.Equal(t, "Should we add feature X?", p.Topic)
	assert.Equal(t, 2*time.Second, p.Pause)
	require.Len(t, p.Agents, 2)
	assert.Equal(t, agent.ProviderGoogle, p.Agents[1].Provider)
	assert.Equal(t, "gpt-4o-mini", p.Agents[0].ModelID)
	assert.Equal(t, []string{"A", "B", "A"}, p.Schedule)
	assert.Equal(t, []agent.Provider{agent.ProviderOpenAI, agent.ProviderGoogle}, p.Providers())
}

func TestParsePanel_TopicOnlyKeepsDefaults(t *testing.T) {
	p, err := ParsePanel([]byte("topic: Four-day week?\n"))
	require.NoError(t, err)

	assert.Equal(t, "Four-day week?", p.Topic)
	assert.Equal(t, DefaultPanel().Schedule, p.Schedule)
}

func TestParsePanel_PauseZeroDisablesPause(t *testing.T) {
	p, err := ParsePanel([]byte("pause: 0s\n"))
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), p.Pause)

	p, err = ParsePanel([]byte("topic: no pause key\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultPanel().Pause, p.Pause)
}

func TestParsePanel_CustomAgentsNeedSchedule(t *testing.T) {
	p, err := ParsePanel([]byte("agents:\n  - {name: A, provider: openai, model: m}\n"))
	require.NoError(t, err)

	assert.ErrorContains(t, p.Validate(), "empty schedule")
}

func TestParsePanel_InvalidYAML(t *testing.T) {
	_, err := ParsePanel([]byte("agents: [unterminated"))
	assert.Error(t, err)
}

func TestPanel_ValidateCollectsErrors(t *testing.T) {
	p := Panel{
		Agents: []agent.Definition{
			{Name: "A", Provider: agent.ProviderOpenAI, ModelID: "m"},
			{Name: "A", Provider: "cohere", ModelID: "m"},
		},
		Schedule: []string{"A", "Z"},
		Pause:    -time.Second,
	}

	err := p.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, `duplicate agent name "A"`)
	assert.ErrorContains(t, err, `unknown provider "cohere"`)
	assert.ErrorContains(t, err, `unknown speaker "Z"`)
	assert.ErrorContains(t, err, "pause must not be negative")
}

func TestLoadPanel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("topic: From file\n"), 0o600))

	p, err := LoadPanel(path)
	require.NoError(t, err)
	assert.Equal(t, "From file", p.Topic)

	_, err = LoadPanel(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
