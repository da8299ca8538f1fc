package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/animator"
	"github.com/aretw0/animator/pkg/adapters/memory"
	"github.com/aretw0/animator/pkg/domain"
	"github.com/aretw0/animator/pkg/dsl"
	"github.com/aretw0/animator/pkg/scene"
	"github.com/aretw0/animator/pkg/scheduler"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inline runs work on the calling goroutine, for single-goroutine tests.
type inline struct{}

func (inline) Do(_ context.Context, fn func()) error {
	fn()
	return nil
}

func newTestSystem(t *testing.T) (*scene.Mounted, *scheduler.ManualClock) {
	t.Helper()
	b := dsl.New("ui")
	root := b.Root("root")
	root.Child("a")
	root.Child("b").Condition(false)
	sc, err := b.Build()
	require.NoError(t, err)

	clock := scheduler.NewManualClock()
	m, err := scene.NewSystem(sc, animator.WithClock(clock))
	require.NoError(t, err)
	return m, clock
}

func call(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return tc.Text
}

func decodeNode(t *testing.T, res *mcp.CallToolResult) domain.NodeSnapshot {
	t.Helper()
	require.False(t, res.IsError, text(t, res))
	var snap domain.NodeSnapshot
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &snap))
	return snap
}

func TestServer_ListAndGet(t *testing.T) {
	m, clock := newTestSystem(t)
	s := NewServer(m.System, inline{})
	clock.AdvanceSeconds(0.4)
	ctx := context.Background()

	res, err := s.handleListNodes(ctx, call("list_nodes", nil))
	require.NoError(t, err)
	var nodes []domain.NodeSnapshot
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &nodes))
	require.Len(t, nodes, 3)
	assert.Equal(t, "root", nodes[0].Name)
	assert.Equal(t, domain.StateEntered, nodes[0].State)

	res, err = s.handleGetNode(ctx, call("get_node", map[string]any{"node": "a"}))
	require.NoError(t, err)
	assert.Equal(t, domain.StateEntering, decodeNode(t, res).State)

	res, err = s.handleGetNode(ctx, call("get_node", map[string]any{"node": "ghost"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "node not found")

	res, err = s.handleGetNode(ctx, call("get_node", nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestServer_SendAction(t *testing.T) {
	m, clock := newTestSystem(t)
	s := NewServer(m.System, inline{})
	clock.AdvanceSeconds(1)
	ctx := context.Background()

	res, err := s.handleSendAction(ctx, call("send_action", map[string]any{"node": "a", "action": "exit"}))
	require.NoError(t, err)
	assert.Equal(t, domain.StateExiting, decodeNode(t, res).State)

	res, err = s.handleSendAction(ctx, call("send_action", map[string]any{"node": "a", "action": "jump"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestServer_Settings(t *testing.T) {
	m, clock := newTestSystem(t)
	store := memory.NewStore()
	s := NewServer(m.System, inline{}, WithStore(store))
	clock.AdvanceSeconds(0.4)
	ctx := context.Background()

	res, err := s.handleSetSettings(ctx, call("set_settings", map[string]any{
		"node":     "b",
		"settings": map[string]any{"condition": true},
	}))
	require.NoError(t, err)
	assert.Equal(t, domain.StateEntering, decodeNode(t, res).State)

	saved, err := store.Load(ctx, "ui")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"condition": true}, saved["b"])

	// A JSON string is accepted too; invalid settings are rejected and not stored.
	res, err = s.handleSetSettings(ctx, call("set_settings", map[string]any{
		"node":     "b",
		"settings": `{"manager": "zigzag"}`,
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	saved, _ = store.Load(ctx, "ui")
	assert.Equal(t, map[string]any{"condition": true}, saved["b"])

	res, err = s.handleSetSettings(ctx, call("set_settings", map[string]any{"node": "b"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)

	res, err = s.handleClearSettings(ctx, call("clear_settings", map[string]any{"node": "b"}))
	require.NoError(t, err)
	assert.Equal(t, domain.StateExiting, decodeNode(t, res).State)
	saved, _ = store.Load(ctx, "ui")
	assert.NotContains(t, saved, "b")
}

func TestServer_Protocol(t *testing.T) {
	m, _ := newTestSystem(t)
	s := NewServer(m.System, inline{})
	ctx := context.Background()

	resp := s.MCPServer().HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	out, err := json.Marshal(resp)
	require.NoError(t, err)
	for _, name := range []string{"list_nodes", "get_node", "send_action", "set_settings", "clear_settings"} {
		assert.Contains(t, string(out), `"`+name+`"`)
	}

	resp = s.MCPServer().HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":2,"method":"resources/read","params":{"uri":"animator://graph"}}`))
	out, err = json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(out), "graph TD")
}
