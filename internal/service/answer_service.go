package service

import (
	"context"
	"time"

	"feiyi/pkg/metrics"

	"go.uber.org/zap"
)

const systemPrompt = `你是一位博学的中华非物质文化遗产文化助手，深谙传统文化之精髓。

请以古雅而不失亲切的语调回答问题，遵循以下原则：
1. 提供准确、专业的非遗知识，引经据典
2. 语言典雅，体现传统文化底蕴
3. 适当运用古典文学表达，但保持现代人易懂
4. 体现对传统文化的敬重和传承精神
5. 如遇不确定信息，坦诚相告
6. 激发用户对非遗文化的兴趣和传承意识

你的回答应如春风化雨，既有学者之严谨，又有师者之温度。`

// ResolutionPath names where the returned text came from.
type ResolutionPath string

const (
	PathRemote  ResolutionPath = "remote"
	PathKeyword ResolutionPath = "keyword"
	PathGeneric ResolutionPath = "generic"
)

type Resolution struct {
	Answer  string
	Outcome RemoteOutcome
	Path    ResolutionPath
	Topic   string // fallback topic on the keyword path
}

// AnswerResolver tries the remote model once and otherwise answers locally.
// It never fails: every call ends in some text.
type AnswerResolver struct {
	completer ChatCompleter
	timeout   time.Duration
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

// NewAnswerResolver builds a resolver. A nil completer means the remote
// service is not configured and every call goes straight to the fallback.
func NewAnswerResolver(completer ChatCompleter, timeout time.Duration, m *metrics.Metrics, logger *zap.Logger) *AnswerResolver {
	return &AnswerResolver{
		completer: completer,
		timeout:   timeout,
		metrics:   m,
		logger:    logger,
	}
}

func (r *AnswerResolver) Configured() bool {
	return r.completer != nil
}

func (r *AnswerResolver) Provider() string {
	if r.completer == nil {
		return ""
	}
	return r.completer.Provider()
}

// Resolve answers question. background, when not empty, is appended to the system prompt.
func (r *AnswerResolver) Resolve(ctx context.Context, question, background string) Resolution {
	outcome := r.tryRemote(ctx, question, background)
	if outcome.Path == PathRemote {
		r.metrics.AnswerResolved(string(outcome.Outcome), string(PathRemote))
		return outcome
	}

	fb := LocalFallback(question)
	res := Resolution{
		Answer:  sanitizeUTF8(fb.Text),
		Outcome: outcome.Outcome,
		Path:    PathGeneric,
		Topic:   fb.Topic,
	}
	if fb.Matched() {
		res.Path = PathKeyword
	}

	r.metrics.AnswerResolved(string(res.Outcome), string(res.Path))
	r.logger.Info("Answered from local fallback",
		zap.String("outcome", string(res.Outcome)),
		zap.String("path", string(res.Path)),
		zap.String("topic", res.Topic),
	)
	return res
}

func (r *AnswerResolver) tryRemote(ctx context.Context, question, background string) Resolution {
	if r.completer == nil {
		return Resolution{Outcome: OutcomeNotConfigured}
	}

	prompt := systemPrompt
	if background != "" {
		prompt += "\n\n" + background
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	timer := r.metrics.RemoteTimer(r.completer.Provider())
	answer, err := r.completer.Complete(ctx, prompt, question)
	timer.ObserveDuration()

	if err != nil {
		remoteErr := classifyRemoteError(err)
		r.logger.Warn("Remote AI call failed",
			zap.String("provider", r.completer.Provider()),
			zap.String("outcome", string(remoteErr.Outcome)),
			zap.Int("status", remoteErr.StatusCode),
			zap.Error(err),
		)
		return Resolution{Outcome: remoteErr.Outcome}
	}

	return Resolution{
		Answer:  sanitizeUTF8(answer),
		Outcome: OutcomeSuccess,
		Path:    PathRemote,
	}
}
