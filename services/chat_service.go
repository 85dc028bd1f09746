package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"script9/constants"
	"script9/dto"
	apperrors "script9/errors"
	"script9/models"
	"script9/services/logger"

	"github.com/goccy/go-json"
	"github.com/xeipuuv/gojsonschema"
)

const (
	defaultChatTimeout = 30 * time.Second
	maxChatReplyBytes  = 1 << 20

	ChatActionOpenCalendar = "open_calendar"
)

// chatReplySchema is the structured contract chat backends answer with.
const chatReplySchema = `{
	"type": "object",
	"required": ["reply"],
	"properties": {
		"reply": {"type": "string"},
		"actions": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["type"],
				"properties": {
					"type": {"type": "string", "enum": ["open_calendar"]},
					"params": {"type": "object"}
				}
			}
		}
	}
}`

// legacyReplyFields are tried in order on bodies that predate the structured contract.
var legacyReplyFields = []string{"reply", "response", "message", "content"}

var functionMarker = regexp.MustCompile(`(?s)<function=([a-z_]+)>(.*?)</function>`)

type ChatServiceOptions struct {
	// Webhooks maps a widget name to the URL its messages are forwarded to.
	Webhooks   map[string]string
	HTTPClient *http.Client
	Timeout    time.Duration
	History    ChatHistoryRepository
	Logger     logger.Logger
}

type ChatService struct {
	webhooks map[string]string
	client   *http.Client
	schema   *gojsonschema.Schema
	history  ChatHistoryRepository
	logger   logger.Logger
}

func NewChatService(opts ChatServiceOptions) (*ChatService, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(chatReplySchema))
	if err != nil {
		return nil, fmt.Errorf("compile chat reply schema: %w", err)
	}
	s := &ChatService{
		webhooks: opts.Webhooks,
		client:   opts.HTTPClient,
		schema:   schema,
		history:  opts.History,
		logger:   opts.Logger,
	}
	if s.client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultChatTimeout
		}
		s.client = &http.Client{Timeout: timeout}
	}
	if s.logger == nil {
		s.logger = logger.NewNop()
	}
	return s, nil
}

type chatPayload struct {
	Message   string            `json:"message"`
	Messages  []dto.ChatMessage `json:"messages"`
	SessionID string            `json:"sessionId,omitempty"`
	Widget    string            `json:"widget"`
}

// normalizeChatRequest turns either request form into a validated message list.
func normalizeChatRequest(req dto.ChatRequest) ([]dto.ChatMessage, error) {
	messages := req.Messages
	if len(messages) == 0 && strings.TrimSpace(req.Message) != "" {
		messages = []dto.ChatMessage{{Role: "user", Content: req.Message}}
	}
	if len(messages) == 0 {
		return nil, apperrors.BadRequest(apperrors.ErrCodeRequiredField, "message or messages is required")
	}

	out := make([]dto.ChatMessage, 0, len(messages))
	for i, m := range messages {
		content := strings.TrimSpace(m.Content)
		if content == "" {
			return nil, apperrors.BadRequest(apperrors.ErrCodeRequiredField, fmt.Sprintf("messages[%d].content is required", i))
		}
		if utf8.RuneCountInString(content) > constants.ChatMaxContentLength {
			return nil, apperrors.BadRequest(apperrors.ErrCodeValidation,
				fmt.Sprintf("messages[%d].content cannot exceed %d characters", i, constants.ChatMaxContentLength))
		}
		role := m.Role
		if role == "" {
			role = "user"
		}
		if role != "user" && role != "assistant" {
			return nil, apperrors.BadRequest(apperrors.ErrCodeValidation, fmt.Sprintf("messages[%d].role must be user or assistant", i))
		}
		out = append(out, dto.ChatMessage{Role: role, Content: content})
	}
	return out, nil
}

// Send forwards a widget message to its webhook and returns the structured reply.
func (s *ChatService) Send(ctx context.Context, widget string, userID *string, req dto.ChatRequest) (*dto.ChatReply, error) {
	url, ok := s.webhooks[widget]
	if !ok {
		return nil, apperrors.NotFound("unknown chat widget: " + widget)
	}
	messages, err := normalizeChatRequest(req)
	if err != nil {
		return nil, err
	}
	last := messages[len(messages)-1].Content

	body, err := json.Marshal(chatPayload{
		Message:   last,
		Messages:  messages,
		SessionID: req.SessionID,
		Widget:    widget,
	})
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.KindBadRequest, apperrors.ErrCodeInvalidFormat, "cannot encode chat request", err)
	}

	raw, err := s.post(ctx, url, body)
	if err != nil {
		s.logger.WithFields(logger.Fields{"widget": widget}).Error("chat webhook: %v", err)
		return nil, apperrors.BadGateway("chat backend unavailable", err)
	}
	reply, err := s.parseReply(raw)
	if err != nil {
		s.logger.WithFields(logger.Fields{"widget": widget}).Error("chat reply: %v", err)
		return nil, apperrors.BadGateway("chat backend returned an invalid reply", err)
	}

	s.saveTranscript(ctx, widget, userID, req.SessionID, last, reply.Reply)
	return reply, nil
}

func (s *ChatService) post(ctx context.Context, url string, body []byte) ([]byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxChatReplyBytes))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("webhook responded %d", resp.StatusCode)
	}
	return raw, nil
}

// parseReply accepts the structured contract or a legacy text body, and always
// returns text free of function markers with the markers turned into actions.
func (s *ChatService) parseReply(raw []byte) (*dto.ChatReply, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty body")
	}
	// Some workflow engines wrap the object in a one element array.
	if raw[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil || len(items) == 0 {
			return nil, fmt.Errorf("unparseable array body")
		}
		raw = items[0]
	}

	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("unparseable body: %w", err)
	}

	reply := &dto.ChatReply{}
	if result.Valid() {
		if err := json.Unmarshal(raw, reply); err != nil {
			return nil, err
		}
	} else {
		text, ok := legacyText(raw)
		if !ok {
			return nil, fmt.Errorf("reply does not match contract: %v", result.Errors())
		}
		reply.Reply = text
	}

	text, actions := extractFunctionMarkers(reply.Reply)
	reply.Reply = text
	reply.Actions = append(reply.Actions, actions...)
	if reply.Actions == nil {
		reply.Actions = []dto.ChatAction{}
	}
	return reply, nil
}

func legacyText(raw []byte) (string, bool) {
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", false
	}
	for _, field := range legacyReplyFields {
		if v, ok := body[field].(string); ok && strings.TrimSpace(v) != "" {
			return v, true
		}
	}
	return "", false
}

// extractFunctionMarkers strips <function=name>params</function> markers from
// text and returns them as actions. Marker params are kept when they are a JSON object.
func extractFunctionMarkers(text string) (string, []dto.ChatAction) {
	var actions []dto.ChatAction
	for _, m := range functionMarker.FindAllStringSubmatch(text, -1) {
		action := dto.ChatAction{Type: m[1]}
		var params map[string]interface{}
		if inner := strings.TrimSpace(m[2]); inner != "" && json.Unmarshal([]byte(inner), &params) == nil {
			action.Params = params
		}
		actions = append(actions, action)
	}
	if len(actions) == 0 {
		return strings.TrimSpace(text), nil
	}
	return strings.TrimSpace(functionMarker.ReplaceAllString(text, "")), actions
}

func (s *ChatService) saveTranscript(ctx context.Context, widget string, userID *string, sessionID, question, answer string) {
	if s.history == nil {
		return
	}
	entries := []models.ChatHistory{
		{UserID: userID, SessionID: sessionID, Widget: widget, Sender: "user", Content: question},
		{UserID: userID, SessionID: sessionID, Widget: widget, Sender: "assistant", Content: answer},
	}
	if err := s.history.Create(ctx, entries); err != nil {
		s.logger.Warn("save chat transcript: %v", err)
	}
}
