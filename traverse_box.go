package kdknn

// cornerEntry is a deferred subtree together with the point of its bounding
// region closest to the query.
type cornerEntry[P any] struct {
	nodeID int32
	corner P
}

// TraverseClosestCorner runs a kNN query with an explicit stack, culling
// deferred subtrees by the distance from the query to the closest point of
// their bounding region. The bound is never looser than the plane distance
// used by TraverseDefault, so it visits no more nodes.
func TraverseClosestCorner[D any, P Point[P], T DataTraits[D, P], L CandidateList, O Observer](result L, tree *Tree[D, P, T], query P, obs O) float32 {
	cullDist := result.InitialCullDist2()

	var stack [MaxStackDepth]cornerEntry[P]
	top := 0

	// closest is the point of the current subtree's region nearest the query.
	closest := Project(tree.Bounds, query)
	if SqrDistance(query, closest) > cullDist {
		return result.ReturnValue()
	}

	nodeID := int32(0)
	for {
		var node Node
		for {
			obs.NodeVisited()
			node = tree.Nodes[nodeID]
			if node.IsLeaf() {
				break
			}
			dim := int(node.Dim)
			closeChild, farChild := node.Offset, node.Offset+1
			if query.Coord(dim) >= node.Pos {
				closeChild, farChild = farChild, closeChild
			}

			farCorner := closest.WithCoord(dim, node.Pos)
			if SqrDistance(farCorner, query) < cullDist {
				checkStackDepth(top)
				stack[top] = cornerEntry[P]{nodeID: farChild, corner: farCorner}
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
			closest = stack[top].corner
			if SqrDistance(closest, query) >= cullDist {
				continue
			}
			nodeID = stack[top].nodeID
			break
		}
	}
}
