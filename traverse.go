package kdknn

import "fmt"

// planeEntry is a deferred subtree together with the squared distance from
// the query to the plane that separates it from the query.
type planeEntry struct {
	nodeID  int32
	sqrDist float32
}

// TraverseDefault runs a kNN query with an explicit stack, culling deferred
// subtrees by the distance to their splitting plane. Candidates are written
// into result; the return value is result.ReturnValue().
func TraverseDefault[D any, P Point[P], T DataTraits[D, P], L CandidateList, O Observer](result L, tree *Tree[D, P, T], query P, obs O) float32 {
	cullDist := result.InitialCullDist2()

	var stack [MaxStackDepth]planeEntry
	top := 0

	nodeID := int32(0)
	for {
		var node Node
		for {
			obs.NodeVisited()
			node = tree.Nodes[nodeID]
			if node.IsLeaf() {
				break
			}
			queryCoord := query.Coord(int(node.Dim))
			closeChild, farChild := node.Offset, node.Offset+1
			if queryCoord >= node.Pos {
				closeChild, farChild = farChild, closeChild
			}

			diff := queryCoord - node.Pos
			if sqrDistToPlane := diff * diff; sqrDistToPlane < cullDist {
				checkStackDepth(top)
				stack[top] = planeEntry{nodeID: farChild, sqrDist: sqrDistToPlane}
				top++
			}
			nodeID = closeChild
		}

		for _, primID := range tree.PrimIDs[node.Offset : node.Offset+node.Count] {
			obs.DistanceEvaluated()
			sqrDist := SqrDistance(tree.Traits.GetPoint(tree.Data[primID]), query)
			cullDist = result.ProcessCandidate(primID, sqrDist)
		}

		for {
			if top == 0 {
				return result.ReturnValue()
			}
			top--
			if stack[top].sqrDist >= cullDist {
				continue
			}
			nodeID = stack[top].nodeID
			break
		}
	}
}

// checkStackDepth panics with a descriptive message when a push would
// overflow the traversal stack. Without debug assertions the array bounds
// check still panics, only with a less helpful message.
func checkStackDepth(top int) {
	if debugAssertions && top >= MaxStackDepth {
		panic(fmt.Sprintf("kdknn: traversal stack overflow at depth %d", top))
	}
}
