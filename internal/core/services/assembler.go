package services

import (
	"fmt"
	"strings"

	"github.com/rezumai/rezum-core/internal/core/domain"
)

// BuildCompletionRequest assembles the outbound completion request for one
// user turn. Pure: no I/O, no mutation of its inputs. Error turns are local
// artifacts and are excluded from the prior-turn sequence; everything else is
// carried in original order without truncation.
func BuildCompletionRequest(history []domain.Turn, message string, docs []domain.Document) domain.CompletionRequest {
	prior := make([]domain.Turn, 0, len(history))
	for _, turn := range history {
		if turn.Role.Dialogue() {
			prior = append(prior, turn)
		}
	}

	return domain.CompletionRequest{
		Message:         message,
		History:         prior,
		DocumentContext: DocumentContext(docs),
	}
}

// DocumentContext renders the document set as labeled blocks in store order,
// separated by a blank line. Returns "" when the set is empty, which callers
// must treat as an absent field rather than an empty one.
func DocumentContext(docs []domain.Document) string {
	if len(docs) == 0 {
		return ""
	}

	blocks := make([]string, len(docs))
	for i, doc := range docs {
		blocks[i] = fmt.Sprintf("=== Document %d: %s ===\n%s", i+1, doc.Name, doc.Text)
	}
	return strings.Join(blocks, "\n\n")
}
