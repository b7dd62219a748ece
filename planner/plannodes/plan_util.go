package plannodes

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	stack "github.com/golang-collections/collections/stack"
	pair "github.com/notEpsilon/go-pair"

	"github.com/kagerodb/KageroDB/errors"
)

const ErrNotATree = errors.Error("plan node is reachable more than once: the structure is not a tree")

// PrintPlanTree writes an indented rendering of the tree rooted at plan.
func PrintPlanTree(plan Plan, indent int) {
	fmt.Print(SprintPlanTree(plan, indent))
}

func SprintPlanTree(plan Plan, indent int) string {
	var sb strings.Builder
	work := stack.New()
	work.Push(pair.Pair[Plan, int]{First: plan, Second: indent})
	for work.Len() > 0 {
		entry := work.Pop().(pair.Pair[Plan, int])
		for ii := 0; ii < entry.Second; ii++ {
			sb.WriteString(" ")
		}
		sb.WriteString(entry.First.GetDebugStr())
		sb.WriteString("\n")

		children := entry.First.GetChildren()
		for ii := len(children) - 1; ii >= 0; ii-- {
			work.Push(pair.Pair[Plan, int]{First: children[ii], Second: entry.Second + 2})
		}
	}
	return sb.String()
}

// ValidatePlanTree checks that no node is shared within the tree rooted at
// plan. Sharing whole trees is fine; sharing nodes inside one tree would
// break the exclusive parent-owns-children model.
func ValidatePlanTree(plan Plan) error {
	seen := mapset.NewSet[Plan]()
	work := stack.New()
	work.Push(plan)
	for work.Len() > 0 {
		node := work.Pop().(Plan)
		if !seen.Add(node) {
			return ErrNotATree
		}
		for _, child := range node.GetChildren() {
			work.Push(child)
		}
	}
	return nil
}
