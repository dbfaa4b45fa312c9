package model

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/chatmem/core"
)

func userRequest(text string, stream bool) Request {
	return Request{Contents: []core.Content{core.NewTextContent("user", text)}, Stream: stream}
}

func TestMockModel_CannedAndDefaultResponses(t *testing.T) {
	m := NewMockModel("mock-1", "mock")
	m.AddResponse("hi", "hello!")

	resp, err := Collect(context.Background(), m, userRequest("hi", false))
	require.NoError(t, err)
	assert.Equal(t, "hello!", resp.Content.Text())
	assert.Equal(t, "stop", resp.FinishReason)

	resp, err = Collect(context.Background(), m, userRequest("other", true))
	require.NoError(t, err)
	assert.Equal(t, "Mock response to: other", resp.Content.Text())
	assert.False(t, resp.Partial)

	assert.Len(t, m.Requests(), 2)
	assert.Equal(t, Info{Name: "mock-1", Provider: "mock"}, m.Info())
}

func TestMockModel_Failure(t *testing.T) {
	m := NewMockModel("mock-1", "mock")
	m.FailWith(errors.New("provider down"))

	_, err := Collect(context.Background(), m, userRequest("hi", false))
	assert.EqualError(t, err, "provider down")

	m.FailWith(nil)
	_, err = Collect(context.Background(), m, userRequest("hi", false))
	assert.NoError(t, err)
}

func TestMockModel_NoContents(t *testing.T) {
	m := NewMockModel("mock-1", "mock")
	_, err := Collect(context.Background(), m, Request{})
	assert.Error(t, err)
}

type partialOnlyModel struct{}

func (partialOnlyModel) Generate(context.Context, Request) (<-chan Response, <-chan error) {
	respCh := make(chan Response, 1)
	errCh := make(chan error)
	respCh <- Response{Partial: true, Content: core.NewTextContent("assistant", "x")}
	close(respCh)
	close(errCh)
	return respCh, errCh
}

func (partialOnlyModel) Info() Info { return Info{Name: "p", Provider: "test"} }

func TestCollect_NoFinalResponse(t *testing.T) {
	_, err := Collect(context.Background(), partialOnlyModel{}, Request{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no final response")
}

type blockingModel struct{}

func (blockingModel) Generate(context.Context, Request) (<-chan Response, <-chan error) {
	return make(chan Response), make(chan error)
}

func (blockingModel) Info() Info { return Info{Name: "b", Provider: "test"} }

func TestCollect_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Collect(ctx, blockingModel{}, Request{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSend(t *testing.T) {
	out := make(chan Response, 1)
	assert.True(t, Send(context.Background(), out, Response{ID: "1"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// buffer is full, only the cancelled context can unblock
	assert.False(t, Send(ctx, out, Response{ID: "2"}))
	assert.Equal(t, "1", (<-out).ID)
}

func TestMockModel_StreamingStopsWhenCancelled(t *testing.T) {
	m := NewMockModel("mock-1", "mock")
	long := make([]byte, 500)
	for i := range long {
		long[i] = 'x'
	}

	ctx, cancel := context.WithCancel(context.Background())
	_, errCh := m.Generate(ctx, userRequest(string(long), true))

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("mock producer did not exit after cancellation")
	}
}
