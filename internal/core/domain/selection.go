package domain

import (
	"github.com/Masterminds/semver/v3"
)

// Selection is the outcome of choosing one tag for a range expression.
type Selection struct {
	// Version is the chosen tag, or the lower bound text when nothing matched.
	Version string
	// Verified is false when Version is the lower-bound fallback and was not
	// found among the published tags.
	Verified bool
}

// taggedVersion pairs a parsed version with the tag text it came from.
type taggedVersion struct {
	tag     string
	version *semver.Version
}

// Select returns the single tag that satisfies r out of tags.
//
// Tags that are not semantic versions are ignored. An exact pin with no
// matching tag falls back to the newest tag. A general range with no matching
// tag falls back to the lower bound text, reported as unverified. Select never
// fails and returns the same answer for the same inputs regardless of tag order.
func Select(r RangeExpression, tags []string) Selection {
	candidates := parseTags(tags)

	if r.IsPinned() {
		var exact []taggedVersion
		for _, c := range candidates {
			if c.version.Equal(r.Low) {
				exact = append(exact, c)
			}
		}
		if match, ok := maxTagged(exact); ok {
			return Selection{Version: match.tag, Verified: true}
		}
		if newest, ok := maxTagged(candidates); ok {
			return Selection{Version: newest.tag, Verified: true}
		}
		return Selection{Version: r.Low.Original()}
	}

	var inRange []taggedVersion
	for _, c := range candidates {
		if r.admitsLow(c.version) && r.admitsHigh(c.version) {
			inRange = append(inRange, c)
		}
	}

	if best, ok := maxTagged(inRange); ok {
		return Selection{Version: best.tag, Verified: true}
	}
	return Selection{Version: r.Low.Original()}
}

// MaxTag returns the newest semantic version tag, if any.
func MaxTag(tags []string) (string, bool) {
	newest, ok := maxTagged(parseTags(tags))
	return newest.tag, ok
}

func parseTags(tags []string) []taggedVersion {
	out := make([]taggedVersion, 0, len(tags))
	for _, tag := range tags {
		v, err := semver.NewVersion(tag)
		if err != nil {
			continue
		}
		out = append(out, taggedVersion{tag: tag, version: v})
	}
	return out
}

// maxTagged picks the greatest version; semver-equal tags tie-break on the
// lexically smallest tag text so the result does not depend on input order.
func maxTagged(candidates []taggedVersion) (taggedVersion, bool) {
	if len(candidates) == 0 {
		return taggedVersion{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		switch cmp := c.version.Compare(best.version); {
		case cmp > 0:
			best = c
		case cmp == 0 && c.tag < best.tag:
			best = c
		}
	}
	return best, true
}
