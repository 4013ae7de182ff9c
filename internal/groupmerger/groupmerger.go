// Package groupmerger consolidates every AuthorEntry sharing a confirmed or
// sufficiently probable author identifier into a single destination folder,
// chosen by alignment with the authority record's name.
package groupmerger

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"libcleanup/internal/dirmerger"
	"libcleanup/internal/model"
	"libcleanup/internal/scorer"
	"libcleanup/internal/stringnorm"
)

// Logger is the subset of runlog.Writer a merge pass needs.
type Logger interface {
	dirmerger.Logger
}

// Plan describes one group that was (or would be) merged, for reporting.
type Plan struct {
	AuthorID    string
	Destination string
	Sources     []string
	// Residues counts sources that merged successfully but left a
	// non-empty directory behind (dirmerger.IsNonEmptyResidue); the merge
	// itself is not treated as a failure.
	Residues int
}

// Merge builds effective identifiers for every entry under root, groups
// entries sharing one, elects a destination per group by alignment score,
// and drives DirMerger to fold every other member into it. minFiles filters
// entries before grouping; probableThreshold gates which probable
// suggestions count as an effective identifier. It returns the plan for
// every group actually merged (or previewed, in dry-run mode).
func Merge(root string, entries []model.AuthorEntry, minFiles int, probableThreshold float64, dryRun bool, logger Logger) ([]Plan, error) {
	groups := make(map[string][]model.AuthorEntry)
	for _, e := range entries {
		if e.FileCount < minFiles {
			continue
		}
		id := e.EffectiveIdentifier(probableThreshold)
		if id == "" {
			continue
		}
		groups[id] = append(groups[id], e)
	}

	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var plans []Plan
	for _, id := range ids {
		members := groups[id]
		if len(members) < 2 {
			continue
		}

		referenceName := referenceDisplayName(members)
		sort.SliceStable(members, func(i, j int) bool {
			a, b := members[i], members[j]
			scoreA := alignmentScore(a.FolderName, referenceName)
			scoreB := alignmentScore(b.FolderName, referenceName)
			if scoreA != scoreB {
				return scoreA > scoreB
			}
			if a.FileCount != b.FileCount {
				return a.FileCount > b.FileCount
			}
			return a.FolderName < b.FolderName
		})

		destination := filepath.Join(root, members[0].FolderName)
		plan := Plan{AuthorID: id, Destination: destination}
		for _, m := range members[1:] {
			src := filepath.Join(root, m.FolderName)
			if err := dirmerger.Merge(src, destination, dryRun, logger); err != nil {
				if !dirmerger.IsNonEmptyResidue(err) {
					return nil, fmt.Errorf("groupmerger: merge %s into %s: %w", src, destination, err)
				}
				plan.Residues++
			}
			plan.Sources = append(plan.Sources, src)
		}
		plans = append(plans, plan)
	}

	return plans, nil
}

// referenceDisplayName returns the first confirmed author_name_db among
// members, or failing that the first probable suggestion's display name.
func referenceDisplayName(members []model.AuthorEntry) string {
	for _, m := range members {
		if m.AuthorNameDB != "" {
			return m.AuthorNameDB
		}
	}
	for _, m := range members {
		if m.Probable != nil {
			return m.Probable.Name
		}
	}
	return ""
}

// alignmentScore is the maximum of seq(folderName, referenceName) and
// seq(folderName, lastFirstPermutation(referenceName)), both compared on
// their loosely normalized (alphanumeric, lowercase, whitespace-collapsed)
// forms.
func alignmentScore(folderName, referenceName string) float64 {
	if strings.TrimSpace(referenceName) == "" {
		return 0
	}

	dirNorm := normalizeForCompare(folderName)
	dbNorm := normalizeForCompare(referenceName)
	if dirNorm == "" || dbNorm == "" {
		return 0
	}

	variants := []string{dbNorm}
	if permuted := rotateLastToFront(dbNorm); permuted != "" {
		variants = append(variants, permuted)
	}

	best := 0.0
	for _, v := range variants {
		if s := scorer.Score(dirNorm, v).Seq; s > best {
			best = s
		}
	}
	return best
}

// rotateLastToFront moves the final whitespace-delimited token of value to
// the front, the "last, first" permutation used to align folder names like
// "Dupont, Jean" against an authority name stored "Jean Dupont".
func rotateLastToFront(value string) string {
	tokens := strings.Fields(value)
	if len(tokens) < 2 {
		return ""
	}
	rotated := append([]string{tokens[len(tokens)-1]}, tokens[:len(tokens)-1]...)
	return strings.Join(rotated, " ")
}

func normalizeForCompare(value string) string {
	stripped := strings.ToLower(stringnorm.StripAccents(value))
	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
