package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/chatmem/config"
	"github.com/hupe1980/chatmem/internal/testutil"
	"github.com/hupe1980/chatmem/logging"
	"github.com/hupe1980/chatmem/memory"
	"github.com/hupe1980/chatmem/model"
	"github.com/hupe1980/chatmem/model/anthropic"
	"github.com/hupe1980/chatmem/model/openai"
)

// writeConfig creates a config using the mock provider and a memory file in
// a temp dir. It returns the config and memory paths.
func writeConfig(t *testing.T, maxItems int) (string, string) {
	t.Helper()

	dir := t.TempDir()
	memPath := filepath.Join(dir, "memory.json")
	cfgPath := filepath.Join(dir, "chatmem.yaml")

	content := "session: tester\n" +
		"memory:\n" +
		"  path: " + memPath + "\n" +
		"  max_items: " + strconv.Itoa(maxItems) + "\n" +
		"models:\n" +
		"  - provider: mock\n" +
		"    model: echo\n" +
		"logging:\n" +
		"  format: json\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))

	return cfgPath, memPath
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	cmd.SetArgs(args)

	output := &bytes.Buffer{}
	cmd.SetOut(output)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))

	err := cmd.Execute()
	return output.String(), err
}

func TestRootCommand(t *testing.T) {
	t.Run("version flag", func(t *testing.T) {
		out, err := run(t, "", "--version")
		require.NoError(t, err)

		assert.Contains(t, out, "chatmem version")
		assert.Contains(t, out, GetVersion())
	})

	t.Run("help flag", func(t *testing.T) {
		out, err := run(t, "", "--help")
		require.NoError(t, err)

		assert.Contains(t, out, "chatmem")
		assert.Contains(t, out, "memory")
	})

	t.Run("global flags", func(t *testing.T) {
		cmd := NewRootCmd()

		configFlag := cmd.PersistentFlags().Lookup("config")
		require.NotNil(t, configFlag)
		assert.Equal(t, "", configFlag.DefValue)

		logLevelFlag := cmd.PersistentFlags().Lookup("log-level")
		require.NotNil(t, logLevelFlag)
		assert.Equal(t, "info", logLevelFlag.DefValue)
	})

	t.Run("subcommands", func(t *testing.T) {
		names := map[string]bool{}
		for _, c := range NewRootCmd().Commands() {
			names[c.Name()] = true
		}
		assert.True(t, names["chat"])
		assert.True(t, names["memory"])
	})
}

func TestChatCommand(t *testing.T) {
	cfgPath, memPath := writeConfig(t, 100)

	out, err := run(t, "hello\n/memory\n/quit\n", "--config", cfgPath, "chat")
	require.NoError(t, err)

	assert.Contains(t, out, `session "tester"`)
	assert.Contains(t, out, "Assistant: Mock response to: Memory:")
	assert.Contains(t, out, "1. User: hello")
	assert.Contains(t, out, "2. Assistant: Mock response to:")

	store, err := memory.NewFileStore(memPath)
	require.NoError(t, err)
	entries, err := store.Get("tester")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "User: hello", entries[0])
}

func TestChatCommand_SessionFlagAndClear(t *testing.T) {
	cfgPath, memPath := writeConfig(t, 100)

	out, err := run(t, "hi\n/clear\n/memory\n", "--config", cfgPath, "chat", "--session", "alice")
	require.NoError(t, err)

	assert.Contains(t, out, "Cleared memory for alice")
	assert.Contains(t, out, "No memory yet for this session.")

	store, err := memory.NewFileStore(memPath)
	require.NoError(t, err)
	entries, err := store.Get("alice")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestChatCommand_EvictsOldest(t *testing.T) {
	cfgPath, memPath := writeConfig(t, 3)

	_, err := run(t, "one\ntwo\n/quit\n", "--config", cfgPath, "chat")
	require.NoError(t, err)

	store, err := memory.NewFileStore(memPath)
	require.NoError(t, err)
	entries, err := store.Get("tester")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.True(t, strings.HasPrefix(entries[0], "Assistant: "))
	assert.Equal(t, "User: two", entries[1])
}

func TestMemoryCommands(t *testing.T) {
	cfgPath, memPath := writeConfig(t, 100)

	testutil.NewDocumentBuilder().
		Session("tester", "User: a", "Assistant: b", "User: c").
		Session("other", "User: x").
		Write(t, filepath.Dir(memPath))

	t.Run("show", func(t *testing.T) {
		out, err := run(t, "", "--config", cfgPath, "memory", "show")
		require.NoError(t, err)
		assert.Equal(t, "1. User: a\n2. Assistant: b\n3. User: c\n", out)
	})

	t.Run("show last", func(t *testing.T) {
		out, err := run(t, "", "--config", cfgPath, "memory", "show", "--last", "1")
		require.NoError(t, err)
		assert.Equal(t, "1. User: c\n", out)
	})

	t.Run("sessions", func(t *testing.T) {
		out, err := run(t, "", "--config", cfgPath, "memory", "sessions")
		require.NoError(t, err)
		assert.Equal(t, "other\ntester\n", out)
	})

	t.Run("clear", func(t *testing.T) {
		out, err := run(t, "", "--config", cfgPath, "memory", "clear", "-s", "other")
		require.NoError(t, err)
		assert.Contains(t, out, "Cleared memory for other")

		doc := testutil.ReadDocument(t, memPath)
		assert.Empty(t, doc["other"])
		assert.Len(t, doc["tester"], 3)
	})
}

func TestMemoryShow_MalformedFile(t *testing.T) {
	cfgPath, memPath := writeConfig(t, 100)
	require.NoError(t, os.WriteFile(memPath, []byte("[1, 2]"), 0o600))

	_, err := run(t, "", "--config", cfgPath, "memory", "show")
	assert.ErrorIs(t, err, memory.ErrStorage)
}

func TestBuildModels(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GROQ_API_KEY", "gsk-test")
	t.Setenv("ANTHROPIC_API_KEY", "")

	models, err := buildModels([]config.ModelConfig{
		{Provider: "openai", Model: "gpt-4o-mini"},
		{Provider: "groq"},
		{Provider: "anthropic", Model: "claude", APIKey: "sk-ant"},
		{Provider: "mock"},
	}, logging.NoOpLogger{})
	require.NoError(t, err)
	require.Len(t, models, 3)

	infos := make([]model.Info, 0, len(models))
	for _, m := range models {
		infos = append(infos, m.Info())
	}
	assert.Equal(t, []model.Info{
		{Name: "llama-3.1-8b-instant", Provider: "groq"},
		{Name: "claude", Provider: "anthropic"},
		{Name: "echo", Provider: "mock"},
	}, infos)

	_, err = buildModels([]config.ModelConfig{{Provider: "openai"}}, logging.NoOpLogger{})
	assert.Error(t, err)
}

func TestApplyOptions_ZeroTemperature(t *testing.T) {
	mc := config.ModelConfig{Provider: "openai", Temperature: config.Float(0)}

	oo := openai.Options{Temperature: 0.2}
	applyOpenAIOptions(&oo, mc, "sk")
	assert.Equal(t, 0.0, oo.Temperature)
	assert.Equal(t, "sk", oo.APIKey)

	ao := anthropic.Options{Temperature: 0.2}
	applyAnthropicOptions(&ao, mc, "sk-ant")
	assert.Equal(t, 0.0, ao.Temperature)

	// unset keeps the adapter default
	oo = openai.Options{Temperature: 0.2}
	applyOpenAIOptions(&oo, config.ModelConfig{Provider: "openai"}, "sk")
	assert.Equal(t, 0.2, oo.Temperature)
}

func TestChatCommand_LongAndInvalidLines(t *testing.T) {
	cfgPath, memPath := writeConfig(t, 100)

	long := strings.Repeat("a", 200*1024)
	out, err := run(t, "caf\xe9\n"+long+"\n/quit\n", "--config", cfgPath, "chat")
	require.NoError(t, err)
	assert.Contains(t, out, "Input must be valid UTF-8.")

	entries := testutil.ReadDocument(t, memPath)["tester"]
	require.Len(t, entries, 2)
	assert.Equal(t, "User: "+long, entries[0])
}
