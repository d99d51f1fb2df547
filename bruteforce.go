package kdknn

// BruteForce offers every data item to result and returns the final pruning
// radius (squared). Identifiers are indices into data, as in a Tree.
func BruteForce[D any, P Point[P], T DataTraits[D, P], L CandidateList](result L, data []D, traits T, query P) float32 {
	for i, d := range data {
		result.ProcessCandidate(int32(i), SqrDistance(traits.GetPoint(d), query))
	}
	return result.ReturnValue()
}
