package convert

import (
	"fmt"
	"sort"

	"github.com/aretw0/autoplan/pkg/domain"
)

// ColumnThreshold is the horizontal distance, in pixels, under which two
// nodes count as the same column when ordering by position.
const ColumnThreshold = 50.0

// chainByPosition links nodes left to right, top to bottom within a column.
// A column starts at its leftmost node and takes every node less than
// ColumnThreshold to its right, so the order does not depend on the
// document order.
func chainByPosition(nodes []domain.GraphNode) []domain.GraphEdge {
	ordered := make([]domain.GraphNode, len(nodes))
	copy(ordered, nodes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position.X < ordered[j].Position.X
	})

	for start := 0; start < len(ordered); {
		end := start + 1
		for end < len(ordered) && ordered[end].Position.X-ordered[start].Position.X < ColumnThreshold {
			end++
		}
		column := ordered[start:end]
		sort.SliceStable(column, func(i, j int) bool {
			a, b := column[i].Position, column[j].Position
			if a.Y != b.Y {
				return a.Y < b.Y
			}
			return a.X < b.X
		})
		start = end
	}

	edges := make([]domain.GraphEdge, 0, len(ordered)-1)
	for i := 1; i < len(ordered); i++ {
		edges = append(edges, domain.GraphEdge{
			ID:     fmt.Sprintf("edge-%d", i),
			Source: ordered[i-1].ID,
			Target: ordered[i].ID,
		})
	}
	return edges
}
