package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"faq-chatbot-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndRecentMostRecentFirst(t *testing.T) {
	repo := NewChatMemoryRepository(time.Minute, 20)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, "s1", &entity.Message{Role: "user", Content: "first"}))
	require.NoError(t, repo.Append(ctx, "s1", &entity.Message{Role: "assistant", Content: "second"}))

	messages, err := repo.Recent(ctx, "s1", 10)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	assert.Equal(t, "second", messages[0].Content)
	assert.Equal(t, "first", messages[1].Content)
}

func TestRecentLimitsResult(t *testing.T) {
	repo := NewChatMemoryRepository(time.Minute, 20)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(ctx, "s1", &entity.Message{Role: "user", Content: fmt.Sprintf("m%d", i)}))
	}

	messages, err := repo.Recent(ctx, "s1", 3)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "m4", messages[0].Content)
	assert.Equal(t, "m2", messages[2].Content)
}

func TestAppendEvictsOldestBeyondCap(t *testing.T) {
	repo := NewChatMemoryRepository(time.Minute, 3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Append(ctx, "s1", &entity.Message{Role: "user", Content: fmt.Sprintf("m%d", i)}))
	}

	messages, err := repo.Recent(ctx, "s1", 10)
	require.NoError(t, err)
	require.Len(t, messages, 3)

	// Oldest turns are gone, newest survive
	assert.Equal(t, "m4", messages[0].Content)
	assert.Equal(t, "m2", messages[2].Content)
}

func TestConcurrentAppendsRetainEveryTurn(t *testing.T) {
	const turns = 32
	repo := NewChatMemoryRepository(time.Minute, turns*2)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < turns; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.Append(ctx, "s1", &entity.Message{Role: "user", Content: fmt.Sprintf("m%d", i)}))
		}()
	}
	wg.Wait()

	messages, err := repo.Recent(ctx, "s1", turns*2)
	require.NoError(t, err)
	assert.Len(t, messages, turns)
}

func TestRecentUnknownSessionIsEmpty(t *testing.T) {
	repo := NewChatMemoryRepository(time.Minute, 20)

	messages, err := repo.Recent(context.Background(), "missing", 10)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestSessionsAreIsolated(t *testing.T) {
	repo := NewChatMemoryRepository(time.Minute, 20)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, "s1", &entity.Message{Role: "user", Content: "one"}))
	require.NoError(t, repo.Append(ctx, "s2", &entity.Message{Role: "user", Content: "two"}))

	messages, err := repo.Recent(ctx, "s1", 10)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "one", messages[0].Content)
}
