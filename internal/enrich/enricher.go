package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/harryz-code/network-school-fitness-sub000/internal/health"
)

// Domain names which analysis is being enriched.
type Domain string

const (
	DomainNutrition  Domain = "nutrition"
	DomainBiometrics Domain = "biometrics"
	DomainExercise   Domain = "exercise"
)

// DefaultTimeout caps a single enrichment call when none is configured.
const DefaultTimeout = 4 * time.Second

// Enricher asks a Provider for replacement tips, optionally through a
// TipsCache. A nil *Enricher is valid and never enriches.
type Enricher struct {
	provider Provider
	cache    *TipsCache
	timeout  time.Duration
	logger   *zap.Logger
}

func New(provider Provider, cache *TipsCache, timeout time.Duration, logger *zap.Logger) *Enricher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enricher{provider: provider, cache: cache, timeout: timeout, logger: logger}
}

// Apply returns res with its tips replaced by generated ones when enrichment
// succeeds, and res unchanged otherwise.
func (e *Enricher) Apply(ctx context.Context, domain Domain, res health.AnalysisResult) health.AnalysisResult {
	return health.WithEnrichedTips(res, e.Tips(ctx, domain, res))
}

// Tips generates replacement tips for res. It returns nil when enrichment is
// disabled, times out or fails; failures are logged, never returned.
func (e *Enricher) Tips(ctx context.Context, domain Domain, res health.AnalysisResult) []string {
	if e == nil || e.provider == nil {
		return nil
	}
	log := e.logger.With(zap.String("domain", string(domain)))

	prompt, err := BuildPrompt(domain, res)
	if err != nil {
		log.Warn("enrich: build prompt", zap.Error(err))
		return nil
	}
	key := cacheKey(domain, prompt)

	if e.cache != nil {
		tips, ok, err := e.cache.Get(ctx, key)
		switch {
		case err != nil:
			log.Warn("enrich: cache read", zap.Error(err))
		case ok:
			log.Debug("enrich: cache hit")
			return tips
		}
	}

	genCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	raw, err := e.provider.Generate(genCtx, prompt)
	if err != nil {
		log.Warn("enrich: provider failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return nil
	}
	tips, err := parseTips(raw)
	if err != nil {
		log.Warn("enrich: unparseable response", zap.Error(err))
		return nil
	}
	if len(tips) == 0 {
		return nil
	}

	if e.cache != nil {
		if err := e.cache.Put(ctx, key, tips); err != nil {
			log.Warn("enrich: cache write", zap.Error(err))
		}
	}
	return tips
}

// BuildPrompt renders the analysis the provider rewrites. It is deterministic
// for a given result, which keeps cache keys stable.
func BuildPrompt(domain Domain, res health.AnalysisResult) (string, error) {
	var details interface{}
	switch {
	case res.Nutrition != nil:
		details = res.Nutrition
	case res.Biometrics != nil:
		details = res.Biometrics
	case res.Exercise != nil:
		details = res.Exercise
	}
	detailJSON, err := json.Marshal(details)
	if err != nil {
		return "", fmt.Errorf("marshal details: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analysis: %s\n", domain)
	fmt.Fprintf(&b, "Score: %d/100 (%s)\n", res.Score, res.Rating.Text)
	b.WriteString("Rule-based advice:\n")
	writeList(&b, res.Recommendations)
	b.WriteString("What is going well:\n")
	writeList(&b, res.Insights)
	fmt.Fprintf(&b, "Details: %s\n", detailJSON)
	return b.String(), nil
}

func writeList(b *strings.Builder, items []string) {
	if len(items) == 0 {
		b.WriteString("- (none)\n")
		return
	}
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
}

// parseTips accepts {"tips": [...]} or a bare array, optionally inside a
// markdown code fence, and returns the non-blank entries capped at MaxTips.
func parseTips(raw string) ([]string, error) {
	raw = stripCodeFence(strings.TrimSpace(raw))

	var tips []string
	if strings.HasPrefix(raw, "[") {
		if err := json.Unmarshal([]byte(raw), &tips); err != nil {
			return nil, fmt.Errorf("decode tips array: %w", err)
		}
	} else {
		var obj struct {
			Tips []string `json:"tips"`
		}
		if err := json.Unmarshal([]byte(raw), &obj); err != nil {
			return nil, fmt.Errorf("decode tips object: %w", err)
		}
		tips = obj.Tips
	}

	out := make([]string, 0, health.MaxTips)
	for _, t := range tips {
		if t = strings.TrimSpace(t); t != "" && len(out) < health.MaxTips {
			out = append(out, t)
		}
	}
	return out, nil
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}
