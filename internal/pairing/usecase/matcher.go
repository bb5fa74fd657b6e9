package usecase

import (
	"context"
	"regexp"
	"strings"

	"github.com/shandysiswandi/otpbridge/internal/pairing/entity"
)

// a run of exactly six digits bounded by non-word characters
var reCandidate = regexp.MustCompile(`\b\d{6}\b`)

type MatchResult struct {
	Candidate string
	Found     bool
	Matched   bool
}

// ExtractCandidate returns the leftmost standalone six-digit run in text.
func ExtractCandidate(text string) (string, bool) {
	c := reCandidate.FindString(strings.TrimSpace(text))
	return c, c != ""
}

// MatchInbound checks the candidate code in text against the credential of identity.
func (s *Usecase) MatchInbound(ctx context.Context, identity entity.Identity, text string) MatchResult {
	candidate, found := ExtractCandidate(text)
	if !found {
		return MatchResult{}
	}

	return MatchResult{
		Candidate: candidate,
		Found:     true,
		Matched:   s.repoCredential.Verify(ctx, identity, candidate),
	}
}
