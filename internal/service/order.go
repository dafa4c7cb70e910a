package service

import (
	"sort"

	"formforge/internal/model"
)

// OrderQuestions flattens a form's question set into the deterministic
// depth-first display order: root questions ascending by displayIndex, each
// immediately followed by its conditional subtree. Children follow the
// parent's conditionalChildren list; children missing from that list come
// after the listed ones, ordered by descending displayIndex (legacy authoring
// order, kept as-is because it is user-visible).
//
// The function never fails: orphans (parent id unknown) and members of
// parentRef cycles are appended after the root subtrees in input order, each
// question is emitted at most once, and questions without an id are dropped.
func OrderQuestions(questions []model.Question) []model.Question {
	byID := make(map[string]int, len(questions))
	childIdx := make(map[string][]int)
	var roots []int

	for i, q := range questions {
		if q.ID == "" {
			continue // untrackable, cannot dedupe
		}
		if _, seen := byID[q.ID]; seen {
			continue
		}
		byID[q.ID] = i
	}

	for i, q := range questions {
		if q.ID == "" {
			continue
		}
		if byID[q.ID] != i {
			continue
		}
		if q.ParentRef == nil {
			roots = append(roots, i)
		} else {
			childIdx[q.ParentRef.QuestionID] = append(childIdx[q.ParentRef.QuestionID], i)
		}
	}

	sort.SliceStable(roots, func(a, b int) bool {
		return questions[roots[a]].DisplayIndex < questions[roots[b]].DisplayIndex
	})

	out := make([]model.Question, 0, len(byID))
	processed := make(map[string]bool, len(byID))

	// Iterative DFS; marking before expansion breaks parentRef cycles and
	// self-references.
	emitSubtree := func(startIdx int) {
		stack := []int{startIdx}
		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			q := questions[idx]
			if processed[q.ID] {
				continue
			}
			processed[q.ID] = true
			out = append(out, q)

			kids := orderedChildren(questions, childIdx[q.ID], q.ConditionalChildren)
			for i := len(kids) - 1; i >= 0; i-- {
				if !processed[questions[kids[i]].ID] {
					stack = append(stack, kids[i])
				}
			}
		}
	}

	for _, idx := range roots {
		emitSubtree(idx)
	}

	// Orphans and cycle members unreachable from any root, in input order.
	for i, q := range questions {
		if q.ID == "" || byID[q.ID] != i || processed[q.ID] {
			continue
		}
		emitSubtree(i)
	}

	return out
}

// orderedChildren sorts a parent's child indices: entries of the
// conditionalChildren list first (list order), the rest after, by descending
// displayIndex. Both sorts are stable so equal keys keep input order.
func orderedChildren(questions []model.Question, kids []int, rules []model.ChildRule) []int {
	if len(kids) == 0 {
		return nil
	}

	rank := make(map[string]int, len(rules))
	for pos, rule := range rules {
		if _, seen := rank[rule.ChildID]; !seen {
			rank[rule.ChildID] = pos
		}
	}

	sorted := make([]int, len(kids))
	copy(sorted, kids)
	sort.SliceStable(sorted, func(a, b int) bool {
		ra, aListed := rank[questions[sorted[a]].ID]
		rb, bListed := rank[questions[sorted[b]].ID]
		switch {
		case aListed && bListed:
			return ra < rb
		case aListed != bListed:
			return aListed
		default:
			// Unlisted children keep the legacy reverse-insertion order.
			return questions[sorted[a]].DisplayIndex > questions[sorted[b]].DisplayIndex
		}
	})
	return sorted
}
