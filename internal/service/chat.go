package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yakov100/recipe-book-sub000/config"
)

// ErrSuperseded is returned to a chat request that was aborted because a
// newer request arrived for the same conversation.
var ErrSuperseded = errors.New("superseded by a newer request")

const chatSystemPrompt = "You are a helpful cooking assistant for a personal recipe book. " +
	"Suggest recipes, substitutions and preparation tips. Answer in the language the user writes in. " +
	"Keep answers short and practical."

const chatHistoryLimit = 20

// ChatMessage is a single message in a conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
}

type inflightCall struct {
	cancel context.CancelFunc
	seq    uint64
}

// ChatService talks to the hosted chat-completions API. At most one request
// per conversation is ever in flight: asking again cancels the previous
// request, so a stale answer can never arrive after a newer one and
// overwrite it. Conversation history lives in Redis, best effort.
type ChatService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
	redis  *redis.Client

	mu       sync.Mutex
	nextSeq  uint64
	inflight map[string]inflightCall
}

// NewChatService creates a new ChatService instance. The Redis client may be
// shared with the snapshot store.
func NewChatService(cfg *config.Config, redisClient *redis.Client) (*ChatService, error) {
	if cfg.AIAPIKey == "" {
		return nil, fmt.Errorf("AI_API_KEY must be set")
	}
	return &ChatService{
		apiKey:   cfg.AIAPIKey,
		apiURL:   cfg.AIAPIURL,
		model:    cfg.AIModel,
		client:   &http.Client{Timeout: 60 * time.Second},
		redis:    redisClient,
		inflight: make(map[string]inflightCall),
	}, nil
}

// Ask sends a prompt on behalf of a conversation and returns the assistant's
// answer. A concurrent Ask on the same conversation aborts this one with
// ErrSuperseded.
func (s *ChatService) Ask(ctx context.Context, conversationID, prompt string) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if prev, ok := s.inflight[conversationID]; ok {
		prev.cancel()
	}
	s.nextSeq++
	seq := s.nextSeq
	s.inflight[conversationID] = inflightCall{cancel: cancel, seq: seq}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if cur, ok := s.inflight[conversationID]; ok && cur.seq == seq {
			delete(s.inflight, conversationID)
		}
		s.mu.Unlock()
	}()

	messages := make([]ChatMessage, 0, chatHistoryLimit+2)
	messages = append(messages, ChatMessage{Role: "system", Content: chatSystemPrompt})
	messages = append(messages, s.history(ctx, conversationID)...)
	messages = append(messages, ChatMessage{Role: "user", Content: prompt})

	answer, err := s.complete(ctx, messages)
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return "", ErrSuperseded
		}
		return "", err
	}

	s.appendHistory(conversationID,
		ChatMessage{Role: "user", Content: prompt},
		ChatMessage{Role: "assistant", Content: answer},
	)
	return answer, nil
}

func (s *ChatService) complete(ctx context.Context, messages []ChatMessage) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       s.model,
		Messages:    messages,
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat API returned status %d: %s", resp.StatusCode, raw)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat API returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// history loads the recent conversation messages. Failures degrade to an
// empty history.
func (s *ChatService) history(ctx context.Context, conversationID string) []ChatMessage {
	if s.redis == nil {
		return nil
	}
	raw, err := s.redis.LRange(ctx, historyKey(conversationID), int64(-chatHistoryLimit), -1).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && !errors.Is(err, context.Canceled) {
			log.Printf("[Chat] failed to load history for %s: %v", conversationID, err)
		}
		return nil
	}
	messages := make([]ChatMessage, 0, len(raw))
	for _, item := range raw {
		var msg ChatMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			continue
		}
		messages = append(messages, msg)
	}
	return messages
}

// appendHistory records an exchange. Best effort; uses a background context
// so a superseding cancellation does not lose a completed exchange.
func (s *ChatService) appendHistory(conversationID string, messages ...ChatMessage) {
	if s.redis == nil {
		return
	}
	ctx, cancelTimeout := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelTimeout()
	key := historyKey(conversationID)
	for _, msg := range messages {
		raw, err := json.Marshal(msg)
		if err != nil {
			continue
		}
		if err := s.redis.RPush(ctx, key, string(raw)).Err(); err != nil {
			log.Printf("[Chat] failed to append history for %s: %v", conversationID, err)
			return
		}
	}
	if err := s.redis.LTrim(ctx, key, int64(-chatHistoryLimit), -1).Err(); err != nil {
		log.Printf("[Chat] failed to trim history for %s: %v", conversationID, err)
	}
}

func historyKey(conversationID string) string {
	return "recipebook:chat:" + conversationID
}
