package pipeline

import (
	"github.com/samber/lo"

	"loopchat/domain"
)

// Longest is the placeholder summary: the longest message content,
// ties broken by first occurrence. An empty snapshot yields "".
func Longest(snapshot []domain.Message) string {
	if len(snapshot) == 0 {
		return ""
	}
	// lo.MaxBy keeps the earlier element on ties because the
	// comparison is strict.
	best := lo.MaxBy(snapshot, func(a, b domain.Message) bool {
		return len(a.Content) > len(b.Content)
	})
	return best.Content
}
